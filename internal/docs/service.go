package docs

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/m1kezera/ai-faq-widget/internal/ask"
	"github.com/m1kezera/ai-faq-widget/internal/parser"
)

// Store persists chunk batches for a site.
type Store interface {
	InsertChunks(ctx context.Context, siteKey string, texts []string) (int, error)
}

// Service turns uploaded reference material into stored chunks.
type Service struct {
	store        Store
	chunkSize    int
	chunkOverlap int
}

func NewService(store Store, chunkSize, chunkOverlap int) *Service {
	return &Service{store: store, chunkSize: chunkSize, chunkOverlap: chunkOverlap}
}

// SaveText splits raw text into chunks and stores them. Returns how
// many chunks were inserted.
func (s *Service) SaveText(ctx context.Context, siteKey, text string) (int, error) {
	if siteKey == "" {
		return 0, &ask.ValidationError{Msg: "Missing x-site-key header"}
	}
	if strings.TrimSpace(text) == "" {
		return 0, &ask.ValidationError{Msg: "Missing text in request body"}
	}

	chunks := parser.ChunkText(text, s.chunkSize, s.chunkOverlap)
	inserted, err := s.store.InsertChunks(ctx, siteKey, chunks)
	if err != nil {
		return 0, fmt.Errorf("store chunks: %w", err)
	}

	log.Debug().Str("siteKey", siteKey).Int("inserted", inserted).Msg("Chunks saved")
	return inserted, nil
}

// SaveFile parses an uploaded document on disk and stores its chunks.
func (s *Service) SaveFile(ctx context.Context, siteKey, filePath string) (int, error) {
	if siteKey == "" {
		return 0, &ask.ValidationError{Msg: "Missing x-site-key header"}
	}

	parsed, err := parser.Parse(filePath, s.chunkSize, s.chunkOverlap)
	if err != nil {
		return 0, fmt.Errorf("parse document: %w", err)
	}

	texts := make([]string, 0, len(parsed))
	for _, chunk := range parsed {
		texts = append(texts, chunk.Content)
	}

	inserted, err := s.store.InsertChunks(ctx, siteKey, texts)
	if err != nil {
		return 0, fmt.Errorf("store chunks: %w", err)
	}

	log.Debug().Str("siteKey", siteKey).Str("file", filePath).Int("inserted", inserted).Msg("Document ingested")
	return inserted, nil
}
