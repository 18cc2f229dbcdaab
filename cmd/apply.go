package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/punchcard-cli/punchcard/internal/apply"
	"github.com/punchcard-cli/punchcard/internal/dates"
	"github.com/punchcard-cli/punchcard/internal/errors"
	"github.com/punchcard-cli/punchcard/internal/output"
)

var (
	applyFlagOn          []string
	applyFlagMaxInFlight int
)

// applyCmd stamps a template onto one or more calendar dates.
var applyCmd = &cobra.Command{
	Use:   "apply TEMPLATE",
	Short: "Stamp a template onto calendar dates",
	Long: `Expand a template across one or more dates and bulk-create the
resulting time entries.

Every (date, entry) pair becomes one create request; requests are issued
concurrently and failures never abort the rest of the batch. The outcome is
reported as an aggregate count.

Examples:
  punchcard apply "Office day" --on 2024-01-02
  punchcard apply "Office day" --on monday --on tuesday --on wednesday`,
	Args: cobra.ExactArgs(1),
	RunE: runApply,
}

func init() {
	applyCmd.Flags().StringArrayVar(&applyFlagOn, "on", nil,
		"Target date (repeatable; YYYY-MM-DD or natural expression)")
	applyCmd.Flags().IntVar(&applyFlagMaxInFlight, "max-in-flight", apply.DefaultMaxInFlight,
		"Maximum simultaneous create requests")

	rootCmd.AddCommand(applyCmd)
}

func runApply(cmd *cobra.Command, args []string) error {
	if err := requireConfigured(); err != nil {
		return err
	}
	if len(applyFlagOn) == 0 {
		return errors.NewUserError("No target dates",
			"Provide at least one --on date, e.g. --on 2024-01-02")
	}

	t, err := sess.FindTemplate(args[0])
	if err != nil {
		return err
	}
	if len(t.Entries) == 0 {
		return errors.NewUserError("Template has no entries",
			"Add entries with 'punchcard template entry add' before applying")
	}

	dateList, err := dates.Parse(applyFlagOn, time.Now(), time.Local)
	if err != nil {
		return err
	}

	engine := apply.NewEngine(sess)
	engine.MaxInFlight = applyFlagMaxInFlight

	result := engine.Apply(cmd.Context(), t, dateList)
	if result == nil {
		return nil
	}

	if isJSON() {
		return formatter.JSON(result)
	}

	// The aggregate notification was already emitted; list the failing
	// pairs so the user does not have to dig through logs.
	for _, f := range result.Failures {
		if f.Description == "" && f.Date.IsZero() {
			cli.Error(f.Err.Error())
			continue
		}
		cli.Error(f.Description + " on " + output.FormatDate(f.Date) + ": " + f.Err.Error())
	}
	return nil
}
