// Package tokens splits identifiers into normalized lowercase word tokens.
package tokens

import (
	"strings"
	"unicode"

	"github.com/fatih/camelcase"
	"github.com/surgebase/porter2"
)

// Split turns an identifier into its ordered lowercase word tokens. It splits
// at underscores, lowercase-to-uppercase transitions and digit boundaries,
// and strips leading/trailing underscores (privacy markers and dunder glue).
// Degenerate input yields nil rather than an error; the caller treats an
// empty token sequence as unscoreable.
//
// Concatenating the returned tokens reproduces the identifier's alphanumeric
// characters, case-insensitively.
func Split(name string) []string {
	name = strings.Trim(name, "_")
	if name == "" {
		return nil
	}

	var out []string
	for part := range strings.SplitSeq(name, "_") {
		if part == "" {
			continue
		}
		for _, word := range camelcase.Split(part) {
			word = strings.ToLower(word)
			if word != "" {
				out = append(out, word)
			}
		}
	}
	return out
}

// Numeric reports whether a token consists only of digits. Numeric tokens are
// kept by Split (so token concatenation stays lossless) but carry no
// matchable semantics.
func Numeric(token string) bool {
	for _, r := range token {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return len(token) > 0
}

// Stem normalizes a word to its Porter2 stem so different inflections match
// ("iterate", "iteration" and "iterating" share a stem). Words shorter than
// three characters are returned unchanged.
func Stem(word string) string {
	if len(word) < 3 {
		return word
	}
	return porter2.Stem(word)
}
