package ask

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m1kezera/ai-faq-widget/internal/models"
)

func TestRankSelectsTopFive(t *testing.T) {
	q := []string{"price"}
	var candidates []Chunk
	for i := 0; i < 8; i++ {
		candidates = append(candidates, chunk(fmt.Sprintf("c%d", i), "filler text"))
	}
	candidates[6].Text = "the price list"

	top := Rank(q, candidates)
	require.Len(t, top, 5)
	assert.Equal(t, "c6", top[0].Chunk.ID)
}

func TestRankSelectionSizeIsMin(t *testing.T) {
	q := []string{"price"}
	top := Rank(q, []Chunk{chunk("c0", "price"), chunk("c1", "other")})
	assert.Len(t, top, 2)

	assert.Empty(t, Rank(q, nil))
}

func TestRankStableTies(t *testing.T) {
	// candidates arrive newest-first; equal scores must keep that order
	q := []string{"nothing", "matches"}
	candidates := []Chunk{chunk("newest", "a"), chunk("middle", "b"), chunk("oldest", "c")}

	top := Rank(q, candidates)
	require.Len(t, top, 3)
	assert.Equal(t, "newest", top[0].Chunk.ID)
	assert.Equal(t, "middle", top[1].Chunk.ID)
	assert.Equal(t, "oldest", top[2].Chunk.ID)
}

func TestRankKeepsZeroScores(t *testing.T) {
	// more than five candidates, none overlapping: still hand the model
	// the top five rather than nothing
	q := []string{"unrelated"}
	var candidates []Chunk
	for i := 0; i < 7; i++ {
		candidates = append(candidates, chunk(fmt.Sprintf("c%d", i), "filler"))
	}
	top := Rank(q, candidates)
	assert.Len(t, top, 5)
	for _, sc := range top {
		assert.Zero(t, sc.Score)
	}
}

func TestRankOrderNonIncreasing(t *testing.T) {
	q := []string{"price", "support", "hours"}
	candidates := []Chunk{
		chunk("c0", "nothing relevant"),
		chunk("c1", "support hours are 9-5"),
		chunk("c2", "the price"),
		chunk("c3", "price support hours"),
	}
	top := Rank(q, candidates)
	for i := 1; i < len(top); i++ {
		assert.LessOrEqual(t, top[i].Score, top[i-1].Score)
	}
}

func TestContextText(t *testing.T) {
	top := []ScoredChunk{
		{Chunk: chunk("c0", "first")},
		{Chunk: chunk("c1", "second")},
	}
	assert.Equal(t, "first"+models.ContextSeparator+"second", ContextText(top))
	assert.Equal(t, "", ContextText(nil))
}

func TestBuildPrompt(t *testing.T) {
	prompt := BuildPrompt("the context block", "what is the price?")

	assert.Contains(t, prompt, "=== CONTEXT START ===\nthe context block\n=== CONTEXT END ===")
	assert.Contains(t, prompt, `QUESTION: """what is the price?"""`)
	// the three instructions: language matching, context only, contact fallback
	assert.Contains(t, prompt, "same language as the question")
	assert.Contains(t, prompt, "ONLY the information in CONTEXT")
	assert.Contains(t, prompt, "leaving contact details")
	assert.True(t, strings.HasSuffix(prompt, "ANSWER (use the same language as the QUESTION):"))
}

func TestBuildPromptNoContext(t *testing.T) {
	prompt := BuildPrompt("", "anything?")
	assert.Contains(t, prompt, models.NoContextPlaceholder)
}

func TestConfidenceIsTopScore(t *testing.T) {
	top := []ScoredChunk{{Score: 0.75}, {Score: 0.5}}
	assert.Equal(t, 0.75, Confidence(top))
}

func TestConfidenceEmptySelection(t *testing.T) {
	assert.Equal(t, 0.0, Confidence(nil))
}
