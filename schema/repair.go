package schema

import "strings"

// Repair applies best-effort fixes to a malformed JSON-LD block before a
// re-parse: truncated documents are trimmed to the last balanced object,
// and unescaped quotes inside HTML-bearing string values are escaped.
// The result is not guaranteed to parse; it is a second chance, not a
// validator.
func Repair(raw string) string {
	s := strings.TrimSpace(raw)
	s = trimToBalanced(s)
	return escapeInnerQuotes(s)
}

// trimToBalanced recovers a truncated document by cutting back to the
// last structural comma (the boundary of the last fully written member)
// and closing every container still open at that point. Publishers
// routinely truncate JSON-LD at a byte budget mid-description; the
// members before the cut survive as a valid subset.
func trimToBalanced(s string) string {
	start := strings.IndexAny(s, "{[")
	if start < 0 {
		return s
	}

	var stack []byte
	inString := false
	escaped := false
	lastComma := -1
	var lastCommaStack []byte

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
		case '{', '[':
			stack = append(stack, c)
		case '}', ']':
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		case ',':
			lastComma = i
			lastCommaStack = append(lastCommaStack[:0], stack...)
		}
	}

	if len(stack) == 0 && !inString {
		return s
	}
	if lastComma < 0 {
		return s
	}

	var b strings.Builder
	b.Grow(lastComma - start + len(lastCommaStack))
	b.WriteString(s[start:lastComma])
	for i := len(lastCommaStack) - 1; i >= 0; i-- {
		if lastCommaStack[i] == '{' {
			b.WriteByte('}')
		} else {
			b.WriteByte(']')
		}
	}
	return b.String()
}

// escapeInnerQuotes escapes quote characters that appear inside string
// values, as happens when raw HTML like <a href="..."> is embedded in a
// description without escaping. A quote inside a string is treated as a
// terminator only when the next non-space character could legally follow
// a string in JSON (comma, colon, closing brace or bracket, or EOF).
func escapeInnerQuotes(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	inString := false
	escaped := false

	for i := 0; i < len(s); i++ {
		c := s[i]

		if !inString {
			if c == '"' {
				inString = true
			}
			b.WriteByte(c)
			continue
		}

		if escaped {
			escaped = false
			b.WriteByte(c)
			continue
		}
		if c == '\\' {
			escaped = true
			b.WriteByte(c)
			continue
		}
		if c != '"' {
			b.WriteByte(c)
			continue
		}

		if terminatesString(s, i+1) {
			inString = false
			b.WriteByte(c)
		} else {
			b.WriteString(`\"`)
		}
	}

	return b.String()
}

// terminatesString reports whether a quote at position i-1 can legally
// close a JSON string given what follows.
func terminatesString(s string, i int) bool {
	for ; i < len(s); i++ {
		switch s[i] {
		case ' ', '\t', '\n', '\r':
			continue
		case ',', ':', '}', ']':
			return true
		default:
			return false
		}
	}
	return true
}
