// Package llm - util.go provides shared utilities for LLM response processing.
package llm

import "strings"

// CleanJSONBlock strips what models wrap around a JSON payload: markdown code fences,
// a conversational preamble and any trailing chatter. Text without a recognisable
// JSON value is returned trimmed but otherwise untouched.
func CleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)
	if inner, ok := fencedBody(text); ok {
		text = inner
	}

	start := strings.IndexAny(text, "{[")
	if start < 0 {
		return text
	}
	if value := extractJSONValue(text[start:]); value != "" {
		return value
	}
	return text
}

// fencedBody returns the contents of the first ``` block, dropping a language tag.
func fencedBody(text string) (string, bool) {
	open := strings.Index(text, "```")
	if open < 0 {
		return "", false
	}
	rest := text[open+3:]
	if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
		tag := rest[:nl]
		if len(tag) < 20 && !strings.ContainsAny(tag, " {[") {
			rest = rest[nl+1:]
		}
	} else {
		rest = strings.TrimPrefix(rest, "json")
	}
	if end := strings.Index(rest, "```"); end >= 0 {
		rest = rest[:end]
	}
	return strings.TrimSpace(rest), true
}

// extractJSONValue returns the balanced object or array at the start of s, or ""
// if s does not start with one. Brackets inside string literals are ignored.
func extractJSONValue(s string) string {
	if s == "" || (s[0] != '{' && s[0] != '[') {
		return ""
	}

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
		case '{', '[':
			depth++
		case '}', ']':
			depth--
			if depth == 0 {
				return s[:i+1]
			}
		}
	}
	return ""
}
