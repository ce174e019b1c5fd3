package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/m1kezera/ai-faq-widget/internal/ask"
	"github.com/m1kezera/ai-faq-widget/internal/config"
	"github.com/m1kezera/ai-faq-widget/internal/db"
	"github.com/m1kezera/ai-faq-widget/internal/docs"
	"github.com/m1kezera/ai-faq-widget/internal/leads"
	"github.com/m1kezera/ai-faq-widget/internal/ollama"
	"github.com/m1kezera/ai-faq-widget/internal/server"
	"github.com/m1kezera/ai-faq-widget/internal/sites"
)

const configFilePath = "./configs/config.yaml"

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).With().Caller().Logger()

	configPath := flag.String("config", configFilePath, "Path to the config file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Error loading config")
	}

	dbClient, err := db.ConnectDB(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Error connecting to database")
	}
	bunDB := db.NewDB(dbClient, cfg.Database.Debug)
	defer bunDB.Close()

	if err := db.InitDB(context.Background(), bunDB); err != nil {
		log.Fatal().Err(err).Msg("Error initializing database")
	}

	generator := ollama.NewClient(cfg.Ollama.BaseURL, cfg.Ollama.Model, time.Duration(cfg.Ollama.TimeoutSecs)*time.Second)

	chunkStore := db.NewChunkStore(bunDB)
	handlers := &server.Handlers{
		Ask:   ask.NewService(chunkStore, generator, cfg.RAG.ConfidenceOverride),
		Docs:  docs.NewService(chunkStore, cfg.RAG.ChunkSize, cfg.RAG.ChunkOverlap),
		Leads: leads.NewService(db.NewLeadStore(bunDB)),
		Sites: sites.NewService(db.NewSiteStore(bunDB)),
	}

	r := server.New(&cfg.Server, handlers)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Info().Str("addr", addr).Str("model", cfg.Ollama.Model).Msg("API listening")
	if err := r.Run(addr); err != nil {
		log.Fatal().Err(err).Msg("Server stopped")
	}
}
