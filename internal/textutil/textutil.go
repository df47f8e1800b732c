// Package textutil provides the text normalization and similarity helpers
// shared by the chatbot engine and the pattern miner.
package textutil

import "strings"

// maxNormalizedLen caps normalized triggers so pattern keys stay bounded.
const maxNormalizedLen = 100

// Normalize lower-cases text, strips everything that is not a word character
// or whitespace, collapses whitespace runs to single spaces, trims, and
// truncates to at most 100 bytes. A cut that lands on a space is trimmed so
// the result never carries trailing whitespace. Normalize is idempotent.
func Normalize(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range strings.ToLower(text) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			b.WriteByte(' ')
		}
	}
	out := strings.Join(strings.Fields(b.String()), " ")
	if len(out) > maxNormalizedLen {
		out = strings.TrimRight(out[:maxNormalizedLen], " ")
	}
	return out
}

// Similarity computes a bag-of-words overlap ratio between two strings:
// the number of shared distinct words divided by the longer word count.
// Returns 0 when either side normalizes to nothing.
//
// The denominator is max(len(a), len(b)), not the union size; this is
// deliberately not true Jaccard and must stay that way for compatibility
// with previously mined pattern thresholds.
func Similarity(a, b string) float64 {
	wordsA := strings.Fields(Normalize(a))
	wordsB := strings.Fields(Normalize(b))
	if len(wordsA) == 0 || len(wordsB) == 0 {
		return 0
	}

	setA := make(map[string]struct{}, len(wordsA))
	for _, w := range wordsA {
		setA[w] = struct{}{}
	}
	seen := make(map[string]struct{}, len(wordsB))
	shared := 0
	for _, w := range wordsB {
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		if _, ok := setA[w]; ok {
			shared++
		}
	}

	denom := len(wordsA)
	if len(wordsB) > denom {
		denom = len(wordsB)
	}
	return float64(shared) / float64(denom)
}
