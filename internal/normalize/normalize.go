// Package normalize cleans raw text extracted from the search page.
package normalize

import "strings"

// Text collapses every run of whitespace (including newlines) to a single
// space and trims the ends. Pure and idempotent.
func Text(raw string) string {
	return strings.Join(strings.Fields(raw), " ")
}

// Lines splits raw text on line breaks and returns the non-empty lines,
// each individually normalized. Used to separate a record header from its
// body before the two are flattened.
func Lines(raw string) []string {
	var out []string
	for _, line := range strings.Split(raw, "\n") {
		if n := Text(line); n != "" {
			out = append(out, n)
		}
	}
	return out
}
