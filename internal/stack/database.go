package stack

import (
	"github.com/rileyhilliard/stackctl/internal/config"
)

// Database describes the database service and the tools inside its container.
type Database struct {
	Service     string
	Container   string
	AuthDB      string
	DumpTool    string
	RestoreTool string
	ClientTool  string
}

// DatabaseFromConfig reads the database section of the project config.
func DatabaseFromConfig(cfg *config.Config) Database {
	d := cfg.Database
	return Database{
		Service:     d.Service,
		Container:   d.Container,
		AuthDB:      d.AuthDB,
		DumpTool:    d.DumpTool,
		RestoreTool: d.RestoreTool,
		ClientTool:  d.ClientTool,
	}
}

// ContainerFor returns the database container name in target's namespace,
// following the compose "<project>-<service>-1" naming unless overridden.
func (db Database) ContainerFor(target Target) string {
	if db.Container != "" {
		return db.Container
	}
	return target.Namespace + "-" + db.Service + "-1"
}

// authArgs appends the credential flags and records where the password sits.
func (db Database) authArgs(argv []string, creds config.Credentials, redacted map[int]bool) []string {
	argv = append(argv, "--username", creds.Username, "--password")
	redacted[len(argv)] = true
	argv = append(argv, creds.Password, "--authenticationDatabase", db.AuthDB)
	return argv
}

// DatabaseShell composes an interactive database client session through the
// engine's exec verb:
//
//	<engine> -f <cfg> -p <ns> exec [extra...] <service> <client> --username u --password p --authenticationDatabase <db>
//
// service defaults to the configured database service.
func DatabaseShell(engine Engine, target Target, db Database, creds config.Credentials, service string, extra []string) Plan {
	if service == "" {
		service = db.Service
	}

	plan := Compose(engine, target, "exec", service, extra)
	plan.Redacted = make(map[int]bool)
	plan.Argv = append(plan.Argv, db.ClientTool)
	plan.Argv = db.authArgs(plan.Argv, creds, plan.Redacted)
	plan.Interactive = true
	return plan
}

// DumpPlan composes the archive dump run inside the database container.
// The gzip archive is written to stdout.
//
//	<binary> exec <container> <dump> --username u --password p --authenticationDatabase <db> --archive --gzip
func DumpPlan(engine Engine, target Target, db Database, creds config.Credentials) Plan {
	plan := Plan{Redacted: make(map[int]bool)}
	plan.Argv = []string{engine.Binary, "exec", db.ContainerFor(target), db.DumpTool}
	plan.Argv = db.authArgs(plan.Argv, creds, plan.Redacted)
	plan.Argv = append(plan.Argv, "--archive", "--gzip")
	return plan
}

// RestorePlan composes the archive restore. The gzip archive is read from
// stdin, so the container is exec'd with -i. Existing collections are dropped
// before each is restored.
func RestorePlan(engine Engine, target Target, db Database, creds config.Credentials) Plan {
	plan := Plan{Redacted: make(map[int]bool)}
	plan.Argv = []string{engine.Binary, "exec", "-i", db.ContainerFor(target), db.RestoreTool}
	plan.Argv = db.authArgs(plan.Argv, creds, plan.Redacted)
	plan.Argv = append(plan.Argv, "--archive", "--gzip", "--drop")
	return plan
}
