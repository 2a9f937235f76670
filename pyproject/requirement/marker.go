package requirement

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidMarker = errors.New("invalid environment marker")

type markerTokenKind int

const (
	markerWord markerTokenKind = iota
	markerString
	markerOperator
	markerOpenParen
	markerCloseParen
)

type markerToken struct {
	kind  markerTokenKind
	value string
}

var markerOperators = []string{"===", "==", "!=", "<=", ">=", "~=", "<", ">"}

// CanonicalMarker renders an environment marker in a normalized form so that markers written with different
// spacing or quoting compare equal:
//
//	python_version>='3.8' and(sys_platform=="linux")  =>  python_version >= "3.8" and (sys_platform == "linux")
func CanonicalMarker(raw string) (string, error) {
	tokens, err := tokenizeMarker(raw)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	depth := 0
	for idx, tok := range tokens {
		if idx > 0 && tok.kind != markerCloseParen && tokens[idx-1].kind != markerOpenParen {
			sb.WriteByte(' ')
		}
		switch tok.kind {
		case markerString:
			if strings.Contains(tok.value, `"`) {
				sb.WriteString("'" + tok.value + "'")
			} else {
				sb.WriteString(`"` + tok.value + `"`)
			}
		case markerWord:
			switch lower := strings.ToLower(tok.value); lower {
			case "and", "or", "not", "in":
				sb.WriteString(lower)
			default:
				sb.WriteString(tok.value)
			}
		case markerOpenParen:
			depth++
			sb.WriteString(tok.value)
		case markerCloseParen:
			depth--
			if depth < 0 {
				return "", fmt.Errorf("%w: unbalanced parentheses in %q", ErrInvalidMarker, raw)
			}
			sb.WriteString(tok.value)
		default:
			sb.WriteString(tok.value)
		}
	}
	if depth != 0 {
		return "", fmt.Errorf("%w: unbalanced parentheses in %q", ErrInvalidMarker, raw)
	}
	return sb.String(), nil
}

func tokenizeMarker(raw string) ([]markerToken, error) {
	var tokens []markerToken
	for i := 0; i < len(raw); {
		c := raw[i]
		switch {
		case c == ' ' || c == '\t':
			i++
		case c == '(':
			tokens = append(tokens, markerToken{kind: markerOpenParen, value: "("})
			i++
		case c == ')':
			tokens = append(tokens, markerToken{kind: markerCloseParen, value: ")"})
			i++
		case c == '"' || c == '\'':
			end := strings.IndexByte(raw[i+1:], c)
			if end < 0 {
				return nil, fmt.Errorf("%w: unterminated string in %q", ErrInvalidMarker, raw)
			}
			tokens = append(tokens, markerToken{kind: markerString, value: raw[i+1 : i+1+end]})
			i += end + 2
		case strings.IndexByte("=!<>~", c) >= 0:
			op := matchMarkerOperator(raw[i:])
			if op == "" {
				return nil, fmt.Errorf("%w: unexpected %q in %q", ErrInvalidMarker, c, raw)
			}
			tokens = append(tokens, markerToken{kind: markerOperator, value: op})
			i += len(op)
		case isMarkerWordChar(c):
			start := i
			for i < len(raw) && isMarkerWordChar(raw[i]) {
				i++
			}
			tokens = append(tokens, markerToken{kind: markerWord, value: raw[start:i]})
		default:
			return nil, fmt.Errorf("%w: unexpected %q in %q", ErrInvalidMarker, c, raw)
		}
	}
	if len(tokens) == 0 {
		return nil, fmt.Errorf("%w: empty marker", ErrInvalidMarker)
	}
	return tokens, nil
}

func matchMarkerOperator(s string) string {
	for _, op := range markerOperators {
		if strings.HasPrefix(s, op) {
			return op
		}
	}
	return ""
}

func isMarkerWordChar(c byte) bool {
	return c == '_' || c == '-' || c == '.' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

// joinMarkers combines marker clauses with "and", grouping clauses that contain an "or".
func joinMarkers(clauses []string) string {
	if len(clauses) == 1 {
		return clauses[0]
	}
	parts := make([]string, 0, len(clauses))
	for _, clause := range clauses {
		if strings.Contains(strings.ToLower(clause), " or ") {
			clause = "(" + clause + ")"
		}
		parts = append(parts, clause)
	}
	return strings.Join(parts, " and ")
}
