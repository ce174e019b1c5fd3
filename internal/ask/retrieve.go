package ask

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"
)

const (
	// ignore tiny words when prefiltering candidates
	minTermLen = 3
	// cap the OR-predicate to keep the store query light
	maxFilterTerms = 8

	matchLimit  = 200
	recentLimit = 50
)

// ErrNoDocuments means the site key has no chunks at all, after both
// retrieval phases. Distinct from a store failure.
var ErrNoDocuments = errors.New("no documents found for this siteKey")

// Retriever fetches a bounded candidate set for a question using a
// cheap substring prefilter with a most-recent fallback.
type Retriever struct {
	store Store
}

func NewRetriever(store Store) *Retriever {
	return &Retriever{store: store}
}

// Retrieve returns candidate chunks for the site, newest first. Phase
// one narrows by token substrings; when that yields nothing (no usable
// terms, or no rows) the fallback returns the most recent chunks so the
// pipeline still has some context to work with.
func (r *Retriever) Retrieve(ctx context.Context, siteKey string, qTokens []string) ([]Chunk, error) {
	terms := filterTerms(qTokens)

	var candidates []Chunk
	if len(terms) > 0 {
		found, err := r.store.FindMatching(ctx, siteKey, terms, matchLimit)
		if err != nil {
			return nil, fmt.Errorf("prefiltered fetch: %w", err)
		}
		candidates = found
	}

	if len(candidates) == 0 {
		found, err := r.store.FindRecent(ctx, siteKey, recentLimit)
		if err != nil {
			return nil, fmt.Errorf("fallback fetch: %w", err)
		}
		candidates = found
	}

	if len(candidates) == 0 {
		return nil, ErrNoDocuments
	}
	return candidates, nil
}

func filterTerms(qTokens []string) []string {
	var terms []string
	for _, tok := range qTokens {
		if utf8.RuneCountInString(tok) < minTermLen {
			continue
		}
		terms = append(terms, tok)
		if len(terms) == maxFilterTerms {
			break
		}
	}
	return terms
}
