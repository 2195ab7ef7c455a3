package ai

import (
	"encoding/json"
	"fmt"
	"strings"
)

// DecodeError reports that model output could not be decoded into the
// requested type. Raw holds the original output so callers can surface
// it for manual review.
type DecodeError struct {
	Raw string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("undecodable ai response: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// DecodeJSON decodes model output into out. Models often wrap JSON in a
// markdown code fence or surround it with prose; both are stripped
// before decoding. Failures return a *DecodeError carrying the raw
// output.
// PRE: out is a non-nil pointer
// POST: out holds the decoded value, or a *DecodeError is returned
func DecodeJSON(raw string, out any) error {
	candidate := stripFence(raw)
	if extracted := extractJSON(candidate); extracted != "" {
		candidate = extracted
	}
	if err := json.Unmarshal([]byte(candidate), out); err != nil {
		return &DecodeError{Raw: raw, Err: err}
	}
	return nil
}

// stripFence removes a surrounding markdown code fence, if any.
func stripFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	// Drop the opening fence line (``` or ```json).
	nl := strings.Index(s, "\n")
	if nl == -1 {
		return s
	}
	body := s[nl+1:]
	if end := strings.LastIndex(body, "```"); end != -1 {
		body = body[:end]
	}
	return strings.TrimSpace(body)
}

// extractJSON returns the first balanced JSON object or array in s, or
// "" when none is found. Braces inside JSON strings are skipped.
func extractJSON(s string) string {
	start := -1
	var open, close byte
	for i := 0; i < len(s); i++ {
		if s[i] == '{' {
			start, open, close = i, '{', '}'
			break
		}
		if s[i] == '[' {
			start, open, close = i, '[', ']'
			break
		}
	}
	if start == -1 {
		return ""
	}

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
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}
	return ""
}
