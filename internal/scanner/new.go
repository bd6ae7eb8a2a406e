package scanner

import "strings"

type implScanner struct {
	extensions map[string]bool
}

// New creates a Scanner for the given dot-prefixed extensions. Matching is
// case-insensitive.
func New(extensions []string) Scanner {
	allowed := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		allowed[strings.ToLower(ext)] = true
	}
	return &implScanner{extensions: allowed}
}
