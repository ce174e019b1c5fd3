package models

const (
	// ContextSeparator joins selected chunks into the prompt context block
	ContextSeparator = "\n---\n"

	// NoContextPlaceholder stands in for the context block when a site
	// has chunks but none were selected
	NoContextPlaceholder = "(no relevant context found)"

	// NoAnswerText is returned when the generation backend produced an
	// empty or unparseable answer
	NoAnswerText = "No answer generated"
)

// Chunk represents a parsed chunk with metadata
type Chunk struct {
	Content    string
	PageNumber int
	ChunkID    int
}
