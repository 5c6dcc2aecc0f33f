// Package help renders the command catalog as an aligned listing.
package help

import (
	"strings"

	"github.com/rileyhilliard/stackctl/internal/stack"
	"github.com/rileyhilliard/stackctl/internal/ui"
)

const indent = "  "

// Render lists every catalog entry once, grouped under styled section
// headers, with descriptions aligned in a single column across sections.
func Render(usage string, sections []stack.Section) string {
	width := 0
	for _, s := range sections {
		for _, e := range s.Entries {
			width = max(width, len(e.Name))
		}
	}

	var b strings.Builder
	if usage != "" {
		b.WriteString("Usage: ")
		b.WriteString(usage)
		b.WriteString("\n")
	}

	for _, s := range sections {
		if len(s.Entries) == 0 {
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString(ui.Heading(s.Title))
		b.WriteString("\n")
		for _, e := range s.Entries {
			b.WriteString(indent)
			b.WriteString(e.Name)
			if e.Description != "" {
				b.WriteString(strings.Repeat(" ", width-len(e.Name)+2))
				b.WriteString(ui.Muted(e.Description))
			}
			b.WriteString("\n")
		}
	}

	return b.String()
}
