package escape

import "strings"

// Split breaks a command line into arguments the way the Microsoft C runtime
// does for a process started with it:
//
//   - space and tab separate arguments outside quotes
//   - 2n backslashes followed by a quote produce n backslashes and toggle quoting
//   - 2n+1 backslashes followed by a quote produce n backslashes and a literal quote
//   - backslashes not followed by a quote are literal
//   - inside quotes, "" produces a literal quote
func Split(cmdline string) []string {
	var args []string
	for len(cmdline) > 0 {
		if cmdline[0] == ' ' || cmdline[0] == '\t' {
			cmdline = cmdline[1:]
			continue
		}
		var arg string
		arg, cmdline = nextArg(cmdline)
		args = append(args, arg)
	}
	return args
}

// nextArg reads one argument from the start of cmdline and returns it together
// with the unread remainder.
func nextArg(cmdline string) (string, string) {
	var b strings.Builder
	inQuote := false
	slashes := 0
	for i := 0; i < len(cmdline); i++ {
		c := cmdline[i]
		switch c {
		case ' ', '\t':
			if !inQuote {
				b.WriteString(strings.Repeat(`\`, slashes))
				return b.String(), cmdline[i+1:]
			}
		case '\\':
			slashes++
			continue
		case '"':
			b.WriteString(strings.Repeat(`\`, slashes/2))
			if slashes%2 == 1 {
				b.WriteByte('"')
			} else if inQuote && i+1 < len(cmdline) && cmdline[i+1] == '"' {
				b.WriteByte('"')
				i++
			} else {
				inQuote = !inQuote
			}
			slashes = 0
			continue
		}
		b.WriteString(strings.Repeat(`\`, slashes))
		slashes = 0
		b.WriteByte(c)
	}
	b.WriteString(strings.Repeat(`\`, slashes))
	return b.String(), ""
}
