// Package cli implements the stackctl command-line interface.
//
// The command tree is generated from the static tables in the stack
// package, so every action and alias is a real cobra command and the help
// listing cannot drift from what is registered.
//
// # Command Structure
//
//	stackctl up|down|build|logs|restart|shell|ps   - engine actions
//	stackctl dev-up, prod-logs, backend-restart, ... - aliases
//	stackctl mongo-shell                          - authenticated database client
//	stackctl backup [list] | restore <artifact>   - database archives
//	stackctl reset                                - remove containers and volumes
//	stackctl health                               - probe gateway and backend
//	stackctl init | doctor | version | completion | help
//
// # Flag Handling
//
// Global flags are persistent on the root command and bound into a
// per-invocation viper instance, so --mode and --service can also come from
// STACKCTL_MODE and STACKCTL_SERVICE. Arguments after "--" are passed to the
// engine verbatim:
//
//	stackctl up --mode prod -- --build -d
//
// # Exit Codes
//
// A non-zero exit from the engine or the database tools is returned as an
// *errors.ExitError and becomes stackctl's own exit code. Any other error is
// printed and exits 1.
package cli
