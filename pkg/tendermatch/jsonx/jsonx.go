// Package jsonx recovers JSON objects from model replies that wrap
// them in prose.
package jsonx

import (
	"fmt"

	"github.com/licitatech/tendermatch/pkg/tendermatch/internalerr"
)

// ExtractObject returns the largest balanced {...} substring of s.
// Braces inside JSON strings are ignored. It fails when s contains no
// balanced object.
func ExtractObject(s string) (string, error) {
	best := ""
	for i := 0; i < len(s); i++ {
		if s[i] != '{' {
			continue
		}
		end, ok := matchBrace(s, i)
		if !ok {
			continue
		}
		if end-i+1 > len(best) {
			best = s[i : end+1]
		}
		i = end
	}
	if best == "" {
		return "", fmt.Errorf("jsonx: no balanced object found: %w", internalerr.ErrValidation)
	}
	return best, nil
}

// matchBrace scans from the opening brace at start and returns the
// index of its matching close brace.
func matchBrace(s string, start int) (int, bool) {
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i, true
			}
		}
	}
	return 0, false
}
