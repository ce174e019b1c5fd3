package db

import (
	"context"
	"strings"
	"time"

	"github.com/uptrace/bun"

	"github.com/m1kezera/ai-faq-widget/internal/ask"
	"github.com/m1kezera/ai-faq-widget/internal/helper"
)

// ChunkStore is the Postgres-backed chunk store behind the ask
// pipeline. Implements ask.Store.
type ChunkStore struct {
	db *bun.DB
}

func NewChunkStore(db *bun.DB) *ChunkStore {
	return &ChunkStore{db: db}
}

// FindMatching returns up to limit chunks for the site whose text
// contains at least one of the terms, newest first. Terms are escaped
// so ILIKE metacharacters in user input stay literal.
func (s *ChunkStore) FindMatching(ctx context.Context, siteKey string, terms []string, limit int) ([]ask.Chunk, error) {
	if len(terms) == 0 {
		return nil, nil
	}
	var rows []DocChunk
	err := s.db.NewSelect().
		Model(&rows).
		Where("site_key = ?", siteKey).
		WhereGroup(" AND ", func(q *bun.SelectQuery) *bun.SelectQuery {
			for _, term := range terms {
				q = q.WhereOr("chunk ILIKE ?", "%"+escapeLike(term)+"%")
			}
			return q
		}).
		Order("created_at DESC").
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return toAskChunks(rows), nil
}

// FindRecent returns the limit most recent chunks for the site.
func (s *ChunkStore) FindRecent(ctx context.Context, siteKey string, limit int) ([]ask.Chunk, error) {
	var rows []DocChunk
	err := s.db.NewSelect().
		Model(&rows).
		Where("site_key = ?", siteKey).
		Order("created_at DESC").
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return toAskChunks(rows), nil
}

// InsertChunks stores one row per text fragment and returns how many
// were inserted.
func (s *ChunkStore) InsertChunks(ctx context.Context, siteKey string, texts []string) (int, error) {
	if len(texts) == 0 {
		return 0, nil
	}
	now := time.Now()
	rows := make([]DocChunk, 0, len(texts))
	for _, text := range texts {
		id, err := helper.GenerateUUID()
		if err != nil {
			return 0, err
		}
		rows = append(rows, DocChunk{
			ID:        id,
			SiteKey:   siteKey,
			Chunk:     text,
			CreatedAt: now,
		})
	}
	if _, err := s.db.NewInsert().Model(&rows).Exec(ctx); err != nil {
		return 0, err
	}
	return len(rows), nil
}

func toAskChunks(rows []DocChunk) []ask.Chunk {
	chunks := make([]ask.Chunk, 0, len(rows))
	for _, row := range rows {
		chunks = append(chunks, ask.Chunk{
			ID:        row.ID,
			SiteKey:   row.SiteKey,
			Text:      row.Chunk,
			CreatedAt: row.CreatedAt,
		})
	}
	return chunks
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(term string) string {
	return likeEscaper.Replace(term)
}
