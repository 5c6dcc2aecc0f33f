package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rileyhilliard/stackctl/internal/doctor"
	"github.com/rileyhilliard/stackctl/internal/errors"
	"github.com/rileyhilliard/stackctl/internal/stack"
	"github.com/rileyhilliard/stackctl/internal/ui"
	"github.com/spf13/cobra"
)

// DoctorOutput represents the JSON output for doctor command.
type DoctorOutput struct {
	Categories []CategoryOutput `json:"categories"`
	Summary    SummaryOutput    `json:"summary"`
}

// CategoryOutput represents a category of check results.
type CategoryOutput struct {
	Name    string               `json:"name"`
	Results []doctor.CheckResult `json:"results"`
}

// SummaryOutput summarizes the check results.
type SummaryOutput struct {
	Pass     int  `json:"pass"`
	Warn     int  `json:"warn"`
	Fail     int  `json:"fail"`
	AllClear bool `json:"all_clear"`
}

func (c *commands) doctorCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check the engine, compose files and credentials",
		Args:  cobra.NoArgs,
		Long: `Run diagnostic checks and report what needs fixing.

Exits 1 when any check fails. Warnings don't affect the exit code.

Examples:
  stackctl doctor
  stackctl doctor --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.session()
			if err != nil {
				return err
			}

			targets := make([]stack.Target, 0, len(stack.Modes))
			for _, m := range stack.Modes {
				targets = append(targets, s.selector.Resolve(string(m)))
			}
			checks := doctor.Collect(doctor.Inputs{
				Runner:     c.app.Runner,
				Engine:     stack.EngineFromConfig(s.cfg),
				Targets:    targets,
				ConfigPath: c.v.GetString(keyConfig),
				EnvFile:    c.v.GetString(keyEnvFile),
				Settings:   s.settings,
			})
			results := doctor.RunAll(cmd.Context(), checks)

			if asJSON {
				if err := c.outputDoctorJSON(checks, results); err != nil {
					return err
				}
			} else {
				c.outputDoctorText(checks, results)
			}

			if doctor.HasFailures(results) {
				return errors.NewExitError(1)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "output in JSON format")
	return cmd
}

func (c *commands) outputDoctorJSON(checks []doctor.Check, results []doctor.CheckResult) error {
	grouped := doctor.GroupByCategory(checks)

	output := DoctorOutput{Categories: make([]CategoryOutput, 0, len(doctor.CategoryOrder))}
	for _, cat := range doctor.CategoryOrder {
		indices := grouped[cat]
		if len(indices) == 0 {
			continue
		}
		co := CategoryOutput{Name: cat}
		for _, i := range indices {
			co.Results = append(co.Results, results[i])
		}
		output.Categories = append(output.Categories, co)
	}

	counts := doctor.CountByStatus(results)
	output.Summary = SummaryOutput{
		Pass:     counts[doctor.StatusPass],
		Warn:     counts[doctor.StatusWarn],
		Fail:     counts[doctor.StatusFail],
		AllClear: counts[doctor.StatusWarn]+counts[doctor.StatusFail] == 0,
	}

	enc := json.NewEncoder(c.app.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(output)
}

func (c *commands) outputDoctorText(checks []doctor.Check, results []doctor.CheckResult) {
	out := c.app.Stdout
	grouped := doctor.GroupByCategory(checks)

	fmt.Fprintln(out)
	fmt.Fprintln(out, ui.Heading("stackctl diagnostic report"))
	fmt.Fprintln(out)

	for _, cat := range doctor.CategoryOrder {
		indices := grouped[cat]
		if len(indices) == 0 {
			continue
		}
		fmt.Fprintln(out, ui.Heading(cat))
		for _, i := range indices {
			fmt.Fprintln(out, "  "+renderCheckResult(results[i]))
			if s := results[i].Suggestion; s != "" && results[i].Status != doctor.StatusPass {
				fmt.Fprintln(out, "    "+ui.Muted(s))
			}
		}
		fmt.Fprintln(out)
	}

	fmt.Fprintln(out, strings.Repeat("━", 60))
	fmt.Fprintln(out, doctor.Summary(results))
}

func renderCheckResult(r doctor.CheckResult) string {
	switch r.Status {
	case doctor.StatusPass:
		return ui.Success(r.Message)
	case doctor.StatusWarn:
		return ui.Warning(r.Message)
	default:
		return ui.Fail(r.Message)
	}
}
