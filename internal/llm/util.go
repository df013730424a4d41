// Package llm - util.go provides shared utilities for LLM response processing.
package llm

import (
	"regexp"
	"strings"
)

// fenceLine matches an opening fence (with optional language tag) at line start
// or a closing fence at line end.
var fenceLine = regexp.MustCompile("(?m)^```[a-zA-Z]*\\n|```$")

// StripCodeFences removes markdown code fence markers wherever they open a line
// or close one. Content between fences is kept.
func StripCodeFences(text string) string {
	return fenceLine.ReplaceAllString(strings.TrimSpace(text), "")
}

// FirstObjectSpan returns the span from the first '{' to the last '}' after
// stripping code fences. It returns "" when the text has no such span.
func FirstObjectSpan(text string) string {
	t := StripCodeFences(text)
	start := strings.Index(t, "{")
	if start < 0 {
		return ""
	}
	end := strings.LastIndex(t, "}")
	if end < start {
		return ""
	}
	return t[start : end+1]
}

// ExtractJSONObject returns the first balanced {...} object in text, honoring
// string literals and escapes. It returns "" when no balanced object exists.
func ExtractJSONObject(text string) string {
	start := strings.Index(text, "{")
	if start < 0 {
		return ""
	}
	return balancedSpan(text[start:], '{', '}')
}

// balancedSpan scans s, which must start with open, and returns the prefix up
// to the matching close.
func balancedSpan(s string, open, closer byte) string {
	depth := 0
	inString := false
	escaped := false
	for i := 0; i < len(s); i++ {
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
		case open:
			depth++
		case closer:
			depth--
			if depth == 0 {
				return s[:i+1]
			}
		}
	}
	return ""
}

// SplitList splits a comma, semicolon or newline separated list and returns
// the trimmed, lowercased, non-empty entries in order.
func SplitList(text string) []string {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == ';' || r == '\n'
	})
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.ToLower(strings.TrimSpace(f))
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}
