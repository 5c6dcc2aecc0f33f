// Package stack turns operator intents into engine invocations.
//
// It is pure: nothing here runs a process. The pieces, leaf first:
//
//   - Selector maps a mode token to a Target (config file + namespace).
//   - Compose builds the engine argument vector for a verb.
//   - Dispatcher owns the static action table (up, down, logs, shell, ...).
//   - Aliases pre-bind a mode and/or service onto an action.
//   - Database plans build the dump, restore and client-shell invocations.
//   - Catalog lists everything for the help screen.
//
// The resulting Plan is handed to exec.Runner by the caller.
package stack
