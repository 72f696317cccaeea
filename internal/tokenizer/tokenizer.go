// Package tokenizer provides the simple analysis used when building term
// vectors. It stands in for the host engine's analyzer: lowercase plus a
// split on non-alphanumeric characters, nothing more.
package tokenizer

import (
	"regexp"
	"strings"
)

// nonAlphanumericRegex matches sequences of non-alphanumeric characters.
var nonAlphanumericRegex = regexp.MustCompile(`[^a-zA-Z0-9]+`)

// Tokenize converts a string into a slice of tokens.
// It lowercases the string and splits by non-alphanumeric characters.
func Tokenize(text string) []string {
	lowerText := strings.ToLower(text)
	split := nonAlphanumericRegex.Split(lowerText, -1)

	tokens := make([]string, 0) // Initialize as empty slice, not nil
	for _, s := range split {
		if s != "" { // Filter out empty strings
			tokens = append(tokens, s)
		}
	}
	return tokens
}
