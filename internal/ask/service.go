package ask

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/m1kezera/ai-faq-widget/internal/models"
)

// ValidationError reports bad request input. No store or backend I/O
// has happened when one is returned.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// Service runs the answer pipeline: tokenize, retrieve, rank, prompt,
// generate. Every invocation is an independent computation over
// site-scoped data; nothing is cached between questions.
type Service struct {
	retriever *Retriever
	generator Generator

	// confidenceOverride replaces the computed confidence when >= 0.
	// The reference behavior pins every answer to 0.2; set it negative
	// to report the real retrieval quality instead.
	confidenceOverride float64
}

func NewService(store Store, generator Generator, confidenceOverride float64) *Service {
	return &Service{
		retriever:          NewRetriever(store),
		generator:          generator,
		confidenceOverride: confidenceOverride,
	}
}

// Answer resolves a question scoped to a site key. It returns
// ErrNoDocuments when the site has no chunks, a *ValidationError on bad
// input, and passes through generation failures untouched.
func (s *Service) Answer(ctx context.Context, siteKey, question string) (*Result, error) {
	if siteKey == "" {
		return nil, &ValidationError{Msg: "Missing x-site-key header"}
	}
	if strings.TrimSpace(question) == "" {
		return nil, &ValidationError{Msg: "Missing question in request body"}
	}

	qTokens := UniqueTokens(Tokenize(question))

	candidates, err := s.retriever.Retrieve(ctx, siteKey, qTokens)
	if err != nil {
		return nil, err
	}

	top := Rank(qTokens, candidates)
	prompt := BuildPrompt(ContextText(top), question)

	answer, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("generate answer: %w", err)
	}
	if answer == "" {
		answer = models.NoAnswerText
	}

	confidence := Confidence(top)
	if s.confidenceOverride >= 0 {
		confidence = s.confidenceOverride
	}

	sources := make([]string, 0, len(top))
	for _, sc := range top {
		sources = append(sources, sc.Chunk.ID)
	}

	log.Debug().
		Str("siteKey", siteKey).
		Int("candidates", len(candidates)).
		Int("usedChunks", len(top)).
		Float64("confidence", confidence).
		Msg("Answered question")

	return &Result{
		Answer:     answer,
		Confidence: confidence,
		UsedChunks: len(top),
		Sources:    sources,
	}, nil
}
