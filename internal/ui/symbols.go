package ui

// Unicode symbols for status indicators.
const (
	SymbolSuccess = "✓"
	SymbolFail    = "✗"
	SymbolWarning = "⚠"
	SymbolPending = "○"
)

// Success formats a green "✓ msg" line.
func Success(msg string) string {
	return successStyle.Render(SymbolSuccess) + " " + msg
}

// Fail formats a red "✗ msg" line.
func Fail(msg string) string {
	return errorStyle.Render(SymbolFail) + " " + msg
}

// Warning formats a yellow "⚠ msg" line.
func Warning(msg string) string {
	return warningStyle.Render(SymbolWarning) + " " + msg
}

// Pending formats a muted "○ msg" line.
func Pending(msg string) string {
	return mutedStyle.Render(SymbolPending) + " " + msg
}
