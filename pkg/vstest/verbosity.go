package vstest

import "strings"

// consoleVerbosity maps a user verbosity to one of the levels the console
// logger understands. Unknown values fall back to minimal.
func consoleVerbosity(v string) string {
	switch strings.ToLower(v) {
	case "n", "normal", "d", "detailed", "diag", "diagnostic":
		return "normal"
	case "q", "quiet":
		return "quiet"
	default:
		return "minimal"
	}
}
