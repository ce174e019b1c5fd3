package ask

import (
	"fmt"
	"sort"
	"strings"

	"github.com/m1kezera/ai-faq-widget/internal/models"
)

// topChunks bounds how many ranked chunks go into the prompt context.
const topChunks = 5

// Rank scores every candidate against the question tokens and returns
// the top slice, highest score first. The sort is stable so ties keep
// the candidates' newest-first order. The top slice is kept even when
// every score is zero: if the site has any chunks at all we always hand
// the model something to work with.
func Rank(qTokens []string, candidates []Chunk) []ScoredChunk {
	scored := make([]ScoredChunk, 0, len(candidates))
	for _, c := range candidates {
		scored = append(scored, ScoredChunk{Chunk: c, Score: OverlapScore(qTokens, c.Text)})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if len(scored) > topChunks {
		scored = scored[:topChunks]
	}
	return scored
}

// ContextText joins the selected chunks' text into the bounded context
// block sent to the model.
func ContextText(top []ScoredChunk) string {
	if len(top) == 0 {
		return ""
	}
	texts := make([]string, 0, len(top))
	for _, sc := range top {
		texts = append(texts, sc.Chunk.Text)
	}
	return strings.Join(texts, models.ContextSeparator)
}

// BuildPrompt renders the final prompt: instruction preamble, context
// block and the literal question. The model must answer in the language
// of the question, from the context only, and fall back to suggesting
// the user leave contact details.
func BuildPrompt(contextText, question string) string {
	if contextText == "" {
		contextText = models.NoContextPlaceholder
	}
	lines := []string{
		"You are a helpful assistant.",
		"1) Detect the language of the user question.",
		"2) Answer STRICTLY in the same language as the question.",
		"3) Use ONLY the information in CONTEXT. If the answer is not in the context, say you are not sure and suggest leaving contact details.",
		"Keep answers concise and helpful.",
		"",
		"=== CONTEXT START ===",
		contextText,
		"=== CONTEXT END ===",
		"",
		fmt.Sprintf(`QUESTION: """%s"""`, question),
		"ANSWER (use the same language as the QUESTION):",
	}
	return strings.Join(lines, "\n")
}

// Confidence is the score of the highest-ranked selected chunk, zero
// when nothing was selected. The widget compares it against its own
// threshold to decide whether to ask for contact details.
func Confidence(top []ScoredChunk) float64 {
	if len(top) == 0 {
		return 0
	}
	return top[0].Score
}
