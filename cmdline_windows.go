//go:build windows

package ttyctl

import "strings"

// buildWindowsCommandLine joins argv into the single command-line string
// CreateProcess expects, applying the quoting algorithm from the
// original's nt_spawnve: each argument is wrapped in double quotes if it
// contains a space, tab, or double quote, or is empty, and runs of
// backslashes are doubled
// only when they immediately precede a quote that will be embedded or a
// closing quote added by this function.
func buildWindowsCommandLine(argv []string) string {
	var b strings.Builder
	for i, arg := range argv {
		if i > 0 {
			b.WriteByte(' ')
		}
		writeQuotedArg(&b, arg)
	}
	return b.String()
}

func writeQuotedArg(b *strings.Builder, arg string) {
	needsQuotes := arg == "" || strings.ContainsAny(arg, " \t\"")
	if !needsQuotes {
		b.WriteString(arg)
		return
	}

	b.WriteByte('"')
	backslashes := 0
	for _, r := range arg {
		switch r {
		case '\\':
			backslashes++
		case '"':
			// Every backslash before an embedded quote must be doubled,
			// plus one more to escape the quote itself.
			for ; backslashes > 0; backslashes-- {
				b.WriteString(`\\`)
			}
			b.WriteString(`\"`)
		default:
			for ; backslashes > 0; backslashes-- {
				b.WriteByte('\\')
			}
			b.WriteRune(r)
		}
	}
	// Backslashes immediately before the closing quote must be doubled
	// too, since the closing quote is not part of the argument's data.
	for ; backslashes > 0; backslashes-- {
		b.WriteString(`\\`)
	}
	b.WriteByte('"')
}
