package stack

// Entry is one line of the command catalog.
type Entry struct {
	Name        string
	Description string
}

// Section groups catalog entries under a heading.
type Section struct {
	Title   string
	Entries []Entry
}

// Maintenance commands have their own protocols rather than an engine verb.
var Maintenance = []Entry{
	{Name: "backup", Description: "Dump the database to backups/<mode>_<timestamp>.gz"},
	{Name: "restore", Description: "Restore the database from a backup artifact (asks first)"},
	{Name: "reset", Description: "Remove the stack and its volumes for the mode (asks first)"},
	{Name: "health", Description: "Check the gateway and the backend through the gateway"},
}

// Tools are the remaining top-level commands.
var Tools = []Entry{
	{Name: "init", Description: "Write a default .stackctl.yaml"},
	{Name: "doctor", Description: "Check the engine, compose files and credentials"},
	{Name: "version", Description: "Print version information"},
	{Name: "completion", Description: "Generate a shell completion script"},
	{Name: "help", Description: "Show this listing"},
}

// Catalog returns every command stackctl declares, grouped for display.
func Catalog(actions []ActionSpec) []Section {
	actionEntries := make([]Entry, 0, len(actions))
	for _, a := range actions {
		actionEntries = append(actionEntries, Entry{Name: a.Name, Description: a.Description})
	}

	aliasEntries := make([]Entry, 0, len(Aliases))
	for _, a := range Aliases {
		aliasEntries = append(aliasEntries, Entry{Name: a.Name, Description: a.Description})
	}

	return []Section{
		{Title: "Actions", Entries: actionEntries},
		{Title: "Aliases", Entries: aliasEntries},
		{Title: "Maintenance", Entries: append([]Entry(nil), Maintenance...)},
		{Title: "Other", Entries: append([]Entry(nil), Tools...)},
	}
}
