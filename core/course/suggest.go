package course

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

const suggestMinRatio = .6

// SuggestCategory returns the known category closest to the given input, for
// "did you mean" hints when a category filter matches nothing. Returns ""
// when nothing is close enough.
func SuggestCategory(input string, known []string) string {
	input = strings.ToLower(strings.TrimSpace(input))
	if input == "" {
		return ""
	}

	var best string
	bestRatio := suggestMinRatio
	for _, cat := range known {
		ratio := difflib.NewMatcher(
			strings.Split(input, ""),
			strings.Split(strings.ToLower(cat), ""),
		).QuickRatio()
		if ratio > bestRatio {
			best = cat
			bestRatio = ratio
		}
	}
	return best
}
