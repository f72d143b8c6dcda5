// Package escape quotes values for command lines that are parsed with the
// Windows argv rules (CommandLineToArgvW), which is how vstest.console splits
// the string it is started with.
package escape

import "strings"

// whitespace splits an unquoted argument.
const whitespace = " \t\n\v"

// special lists every character that can change how an argument is parsed.
const special = whitespace + `"\`

// Escape returns s in a form that survives re-tokenization by the receiving
// process as a single argument. Values that are safe are returned unchanged,
// as are values already surrounded by quotes. A quote preceded by an odd run of
// backslashes is considered escaped already, which makes Escape idempotent.
func Escape(s string) string {
	if s == "" {
		return `""`
	}
	if !strings.ContainsAny(s, special) || isQuoted(s) {
		return s
	}
	quote := strings.ContainsAny(s, whitespace)

	var b strings.Builder
	b.Grow(len(s) + 2)
	if quote {
		b.WriteByte('"')
	}
	for i := 0; i < len(s); {
		n := 0
		for i < len(s) && s[i] == '\\' {
			n++
			i++
		}
		switch {
		case i == len(s):
			// Trailing backslashes would escape the closing quote.
			if quote {
				n *= 2
			}
			b.WriteString(strings.Repeat(`\`, n))
		case s[i] == '"':
			if n%2 == 0 {
				n = 2*n + 1
			}
			b.WriteString(strings.Repeat(`\`, n))
			b.WriteByte('"')
			i++
		default:
			b.WriteString(strings.Repeat(`\`, n))
			b.WriteByte(s[i])
			i++
		}
	}
	if quote {
		b.WriteByte('"')
	}
	return b.String()
}

// EscapeSlice escapes each value. See Escape.
func EscapeSlice(values []string) []string {
	escaped := make([]string, len(values))
	for i, v := range values {
		escaped[i] = Escape(v)
	}
	return escaped
}

// Join joins already escaped tokens into a single command line.
func Join(tokens []string) string {
	return strings.Join(tokens, " ")
}

func isQuoted(s string) bool {
	return len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"'
}
