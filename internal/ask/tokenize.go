package ask

import (
	"regexp"
	"strings"
)

// word tokens are runs of ascii alphanumerics plus the accented latin
// letters that show up in the customer content we ingest
var nonWord = regexp.MustCompile(`[^a-z0-9áéíóúâêîôûãõç]+`)

// Tokenize lowercases text and splits it into word tokens. It never
// fails; empty or whitespace-only input yields no tokens.
func Tokenize(text string) []string {
	var tokens []string
	for _, tok := range nonWord.Split(strings.ToLower(text), -1) {
		if tok != "" {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}

// UniqueTokens drops duplicates keeping first-occurrence order, so the
// retriever's filter terms are stable for a given question.
func UniqueTokens(tokens []string) []string {
	seen := make(map[string]struct{}, len(tokens))
	var unique []string
	for _, tok := range tokens {
		if _, ok := seen[tok]; ok {
			continue
		}
		seen[tok] = struct{}{}
		unique = append(unique, tok)
	}
	return unique
}
