package ask

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenize(t *testing.T) {
	tokens := Tokenize("What is THE price, really?")
	assert.Equal(t, []string{"what", "is", "the", "price", "really"}, tokens)
}

func TestTokenizeAccentedLetters(t *testing.T) {
	tokens := Tokenize("Qual é o preço da manutenção?")
	assert.Equal(t, []string{"qual", "é", "o", "preço", "da", "manutenção"}, tokens)
}

func TestTokenizeEmpty(t *testing.T) {
	assert.Empty(t, Tokenize(""))
	assert.Empty(t, Tokenize("   \t\n"))
	assert.Empty(t, Tokenize("!!! ... ???"))
}

func TestTokenizeLowercaseNonEmpty(t *testing.T) {
	for _, tok := range Tokenize("MiXeD CaSe 42 Números!") {
		require.NotEmpty(t, tok)
		assert.Equal(t, strings.ToLower(tok), tok)
	}
}

func TestTokenizeIdempotent(t *testing.T) {
	first := Tokenize("The price is $10, support 9-5.")
	again := Tokenize(strings.Join(first, " "))
	assert.Equal(t, first, again)
}

func TestUniqueTokens(t *testing.T) {
	unique := UniqueTokens([]string{"price", "the", "price", "of", "the", "plan"})
	assert.Equal(t, []string{"price", "the", "of", "plan"}, unique)
}

func TestUniqueTokensEmpty(t *testing.T) {
	assert.Empty(t, UniqueTokens(nil))
}
