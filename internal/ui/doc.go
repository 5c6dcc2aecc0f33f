// Package ui provides terminal output helpers for stackctl.
//
// Styling uses Lip Gloss with ANSI colors so output degrades cleanly on
// basic terminals. DisableColors switches everything to plain text for
// --no-color and non-terminal output.
//
// # Symbols
//
//	SymbolSuccess  (checkmark) - endpoint up, check passed
//	SymbolFail     (X)         - endpoint down, check failed
//	SymbolWarning  (triangle)  - check passed with a caveat
//	SymbolPending  (circle)    - nothing happened (aborted)
//
// # Confirmation
//
// Confirmer is the gate in front of destructive operations. LineConfirmer
// reads one line; HuhConfirmer renders a Huh confirm field on a terminal.
// Both default to "no".
package ui
