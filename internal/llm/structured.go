package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// SchemaValidator checks a decoded value; a non-nil error rejects it.
type SchemaValidator[T any] func(T) error

// ExtractJSON decodes the first JSON object in raw model output into T.
// Markdown fences, surrounding prose, comments and bare leading-decimal
// numbers (".5") are tolerated. If validator is non-nil the decoded value
// must pass it. Every failure wraps ErrInvalidOutput.
func ExtractJSON[T any](raw string, validator SchemaValidator[T]) (T, error) {
	var zero T

	block := firstObject(stripCodeFences(raw))
	if block == "" {
		return zero, fmt.Errorf("%w: no JSON object found in response", ErrInvalidOutput)
	}
	block = normalizeNumbers(stripComments(block))

	var result T
	if err := json.Unmarshal([]byte(block), &result); err != nil {
		return zero, fmt.Errorf("%w: %v", ErrInvalidOutput, err)
	}
	if validator != nil {
		if err := validator(result); err != nil {
			return zero, fmt.Errorf("%w: validation failed: %v", ErrInvalidOutput, err)
		}
	}
	return result, nil
}

// stripCodeFences drops ``` fence lines, keeping their contents.
func stripCodeFences(s string) string {
	lines := strings.Split(s, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

// scan walks s calling visit for every byte outside string literals. visit
// returns how many extra bytes it consumed and whether to stop. Bytes inside
// strings, quotes included, are reported through inString.
func scan(s string, visit func(i int) (skip int, stop bool), inString func(c byte)) {
	quoted, escaped := false, false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if quoted {
			if inString != nil {
				inString(c)
			}
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				quoted = false
			}
			continue
		}
		if c == '"' {
			quoted = true
			if inString != nil {
				inString(c)
			}
			continue
		}
		skip, stop := visit(i)
		if stop {
			return
		}
		i += skip
	}
}

// firstObject returns the first balanced {...} block, or "".
func firstObject(s string) string {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return ""
	}
	depth, end := 0, -1
	scan(s[start:], func(i int) (int, bool) {
		switch s[start+i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				end = start + i + 1
				return 0, true
			}
		}
		return 0, false
	}, nil)
	if end < 0 {
		return ""
	}
	return s[start:end]
}

// stripComments removes // and /* */ comments outside string values.
func stripComments(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	scan(s, func(i int) (int, bool) {
		if s[i] == '/' && i+1 < len(s) {
			switch s[i+1] {
			case '/':
				n := strings.IndexByte(s[i:], '\n')
				if n < 0 {
					return len(s) - i, false
				}
				return n - 1, false
			case '*':
				n := strings.Index(s[i+2:], "*/")
				if n < 0 {
					return len(s) - i, false
				}
				return n + 3, false
			}
		}
		b.WriteByte(s[i])
		return 0, false
	}, func(c byte) { b.WriteByte(c) })
	return b.String()
}

// normalizeNumbers rewrites ".8" and "-.3" as "0.8" and "-0.3".
func normalizeNumbers(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 8)
	scan(s, func(i int) (int, bool) {
		if s[i] == '.' && i+1 < len(s) && isDigit(s[i+1]) && startsNumber(prevNonSpace(s, i-1)) {
			b.WriteByte('0')
		}
		b.WriteByte(s[i])
		return 0, false
	}, func(c byte) { b.WriteByte(c) })
	return b.String()
}

func prevNonSpace(s string, i int) byte {
	for ; i >= 0; i-- {
		switch s[i] {
		case ' ', '\n', '\r', '\t':
			continue
		}
		return s[i]
	}
	return 0
}

func startsNumber(c byte) bool {
	switch c {
	case 0, ':', ',', '[', '{', '-':
		return true
	}
	return false
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
