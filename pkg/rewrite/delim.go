package rewrite

import "errors"

var (
	// ErrInvalidStart is returned when the start offset does not point at an
	// opening bracket character.
	ErrInvalidStart = errors.New("start offset is not an opening bracket")

	// ErrUnmatched is returned when the text ends before the nesting depth
	// returns to zero (truncated or malformed input).
	ErrUnmatched = errors.New("no matching closing bracket before end of input")
)

// bracketPairs maps opening bracket characters to their closing counterpart.
var bracketPairs = map[byte]byte{
	'(': ')',
	'[': ']',
	'{': '}',
}

// MatchDelimiter returns the offset of the closing bracket that structurally
// matches the opening bracket at text[open].
//
// Brackets inside string literals are ignored: when a quote character is
// encountered the scan enters string mode and advances until the matching
// quote, honoring a single backslash escape. Both single and double quotes
// are recognized (Dart allows either).
//
// The function is pure and never allocates.
func MatchDelimiter(text string, open int) (int, error) {
	if open < 0 || open >= len(text) {
		return 0, ErrInvalidStart
	}
	openCh := text[open]
	closeCh, ok := bracketPairs[openCh]
	if !ok {
		return 0, ErrInvalidStart
	}

	depth := 0
	for i := open; i < len(text); i++ {
		switch c := text[i]; c {
		case openCh:
			depth++
		case closeCh:
			depth--
			if depth == 0 {
				return i, nil
			}
		case '\'', '"':
			// String mode: skip to the matching quote.
			quote := c
			i++
			for i < len(text) && text[i] != quote {
				if text[i] == '\\' {
					i++ // escaped character
				}
				i++
			}
			if i >= len(text) {
				return 0, ErrUnmatched
			}
		}
	}

	return 0, ErrUnmatched
}

// ExtractProperty returns the raw value of a named parameter inside a
// balanced argument list, e.g. the "height" value in
// "height: 24, color: Colors.red". The value runs from after the colon to
// the next comma at nesting depth zero (or end of input), so values may span
// lines and contain nested balanced brackets or quoted strings.
//
// The bool result reports whether the parameter was found with an
// unambiguous boundary. Parameters nested inside deeper argument lists are
// not matched.
func ExtractProperty(args, name string) (string, bool) {
	label := name + ":"

	for i := 0; i < len(args); i++ {
		switch c := args[i]; c {
		case '(', '[', '{':
			end, err := MatchDelimiter(args[i:], 0)
			if err != nil {
				return "", false
			}
			i += end
		case '\'', '"':
			quote := c
			i++
			for i < len(args) && args[i] != quote {
				if args[i] == '\\' {
					i++
				}
				i++
			}
			if i >= len(args) {
				return "", false
			}
		default:
			if hasLabelAt(args, i, label) {
				return extractValue(args[i+len(label):])
			}
		}
	}
	return "", false
}

// hasLabelAt reports whether args[i:] starts with label at a word boundary.
func hasLabelAt(args string, i int, label string) bool {
	if i+len(label) > len(args) || args[i:i+len(label)] != label {
		return false
	}
	if i > 0 && isIdentByte(args[i-1]) {
		return false
	}
	return true
}

// extractValue captures rest up to the first comma at depth zero.
func extractValue(rest string) (string, bool) {
	for i := 0; i < len(rest); i++ {
		switch c := rest[i]; c {
		case '(', '[', '{':
			end, err := MatchDelimiter(rest[i:], 0)
			if err != nil {
				return "", false
			}
			i += end
		case '\'', '"':
			quote := c
			i++
			for i < len(rest) && rest[i] != quote {
				if rest[i] == '\\' {
					i++
				}
				i++
			}
			if i >= len(rest) {
				return "", false
			}
		case ',':
			return trimSpace(rest[:i]), true
		}
	}
	return trimSpace(rest), true
}

func isIdentByte(c byte) bool {
	return c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}

func trimSpace(s string) string {
	start := 0
	for start < len(s) && isSpaceByte(s[start]) {
		start++
	}
	end := len(s)
	for end > start && isSpaceByte(s[end-1]) {
		end--
	}
	return s[start:end]
}

func isSpaceByte(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
