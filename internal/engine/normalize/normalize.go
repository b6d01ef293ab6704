// Package normalize prepares translated text for keyword matching and model
// input.
package normalize

import "strings"

// Normalize lowercases the text and trims surrounding whitespace. It is
// total: any input yields a result, empty only when the input had no
// non-whitespace content.
func Normalize(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}
