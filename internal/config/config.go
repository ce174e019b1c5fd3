package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type ServerConfig struct {
	Port         int      `yaml:"port"`
	AllowOrigins []string `yaml:"allow_origins"`
}

type DatabaseConfig struct {
	URL      string `yaml:"url"`
	Password string `yaml:"password"`
	Debug    bool   `yaml:"debug"`
}

type LLMConfig struct {
	BaseURL     string `yaml:"base_url"`
	Model       string `yaml:"model"`
	TimeoutSecs int    `yaml:"timeout"`
}

type RAGConfig struct {
	ChunkSize    int `yaml:"chunk_size"`
	ChunkOverlap int `yaml:"chunk_overlap"`

	// ConfidenceOverride pins the reported confidence to a constant, as
	// the reference backend does (0.2). Set to -1 to report the computed
	// retrieval confidence instead.
	ConfidenceOverride float64 `yaml:"confidence_override"`
}

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Ollama   LLMConfig      `yaml:"ollama"`
	RAG      RAGConfig      `yaml:"rag"`
}

// Default matches the reference deployment: local Ollama with llama3
// and the pinned 0.2 confidence.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port: 3001,
		},
		Ollama: LLMConfig{
			BaseURL:     "http://localhost:11434",
			Model:       "llama3",
			TimeoutSecs: 60,
		},
		RAG: RAGConfig{
			ChunkSize:          500,
			ChunkOverlap:       0,
			ConfidenceOverride: 0.2,
		},
	}
}

// LoadConfig reads the yaml file over the defaults. Environment
// variables win over the file.
func LoadConfig(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	applyEnv(cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Database.URL = v
	}
	if v := os.Getenv("DATABASE_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv("OLLAMA_BASE_URL"); v != "" {
		cfg.Ollama.BaseURL = v
	}
	if v := os.Getenv("OLLAMA_MODEL"); v != "" {
		cfg.Ollama.Model = v
	}
	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
}
