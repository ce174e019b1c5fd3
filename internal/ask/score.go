package ask

// OverlapScore is the fraction of question tokens also present in the
// chunk text. Always in [0,1]; the max(1, n) floor keeps an empty
// question well-defined.
func OverlapScore(qTokens []string, text string) float64 {
	chunkSet := make(map[string]struct{})
	for _, tok := range Tokenize(text) {
		chunkSet[tok] = struct{}{}
	}

	k := 0
	for _, tok := range qTokens {
		if _, ok := chunkSet[tok]; ok {
			k++
		}
	}

	n := len(qTokens)
	if n < 1 {
		n = 1
	}
	return float64(k) / float64(n)
}
