// Package util provides common utility functions used across the codebase.
package util

import (
	"regexp"
	"strings"
)

// safeArg matches tokens that read the same with or without shell quoting.
var safeArg = regexp.MustCompile(`^[A-Za-z0-9_@%+=:,./-]+$`)

// ShellQuote wraps a string in single quotes, escaping any existing single quotes.
func ShellQuote(s string) string {
	// Replace ' with '\'' (end quote, escaped quote, start quote)
	escaped := strings.ReplaceAll(s, "'", "'\\''")
	return "'" + escaped + "'"
}

// QuoteArg quotes a single argv token only when a shell would otherwise
// split or expand it.
func QuoteArg(s string) string {
	if safeArg.MatchString(s) {
		return s
	}
	return ShellQuote(s)
}

// FormatArgv renders an argument vector as a copy-pasteable command line.
// Display only: commands are never executed through a shell.
func FormatArgv(argv []string) string {
	quoted := make([]string, len(argv))
	for i, a := range argv {
		quoted[i] = QuoteArg(a)
	}
	return strings.Join(quoted, " ")
}
