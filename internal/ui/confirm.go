package ui

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"
)

// Confirmer asks the operator a yes/no question before a destructive step.
// Implementations must answer false unless the operator explicitly agreed.
type Confirmer interface {
	Confirm(prompt string) (bool, error)
}

// IsAffirmative reports whether an answer is exactly "y", ignoring
// surrounding whitespace. Everything else, including "Y" and "yes", is a no.
func IsAffirmative(answer string) bool {
	return strings.TrimSpace(answer) == "y"
}

// LineConfirmer prints the prompt and reads a single line. There is no
// re-prompt: anything that is not an explicit "y" aborts.
type LineConfirmer struct {
	In  io.Reader
	Out io.Writer
}

// Confirm implements Confirmer.
func (c LineConfirmer) Confirm(prompt string) (bool, error) {
	fmt.Fprintf(c.Out, "%s %s ", prompt, Muted("[y/N]"))

	line, err := bufio.NewReader(c.In).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	if errors.Is(err, io.EOF) && line == "" {
		// Closed stdin counts as a blank answer.
		fmt.Fprintln(c.Out)
	}
	return IsAffirmative(line), nil
}

// HuhConfirmer renders a Huh confirm field. "No" is preselected, and
// interrupting the form is treated as a no.
type HuhConfirmer struct {
	Description string
}

// Confirm implements Confirmer.
func (c HuhConfirmer) Confirm(prompt string) (bool, error) {
	var confirmed bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(prompt).
				Description(c.Description).
				Affirmative("Yes").
				Negative("No").
				Value(&confirmed),
		),
	)
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, nil
		}
		return false, err
	}
	return confirmed, nil
}

// NewConfirmer picks the Huh form when stdin and stdout are terminals and
// falls back to a plain line read otherwise (pipes, CI, tests).
func NewConfirmer(in *os.File, out *os.File) Confirmer {
	if term.IsTerminal(int(in.Fd())) && term.IsTerminal(int(out.Fd())) {
		return HuhConfirmer{Description: "This cannot be undone"}
	}
	return LineConfirmer{In: in, Out: out}
}
