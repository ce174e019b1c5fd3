package ask

import (
	"context"
	"time"
)

// Chunk is an immutable fragment of ingested text scoped to a site key.
type Chunk struct {
	ID        string
	SiteKey   string
	Text      string
	CreatedAt time.Time
}

// ScoredChunk pairs a chunk with its overlap score against a question.
type ScoredChunk struct {
	Chunk Chunk
	Score float64
}

// Result is what the widget gets back for an answered question.
type Result struct {
	Answer     string   `json:"answer"`
	Confidence float64  `json:"confidence"`
	UsedChunks int      `json:"usedChunks"`
	Sources    []string `json:"sources"`
}

// Store is the chunk-store capability the retriever depends on. Both
// queries return newest-first, bounded result sets.
type Store interface {
	// FindMatching returns chunks for the site whose text contains at
	// least one of the terms as a case-insensitive substring. Terms are
	// literal text, never pattern syntax.
	FindMatching(ctx context.Context, siteKey string, terms []string, limit int) ([]Chunk, error)

	// FindRecent returns the most recent chunks for the site.
	FindRecent(ctx context.Context, siteKey string, limit int) ([]Chunk, error)
}

// Generator sends an assembled prompt to the text-generation backend.
// An empty answer with a nil error means the backend produced nothing
// usable, which callers treat as a degraded success.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
