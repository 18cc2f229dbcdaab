package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/punchcard-cli/punchcard/internal/clockify"
	"github.com/punchcard-cli/punchcard/internal/dates"
	"github.com/punchcard-cli/punchcard/internal/errors"
	"github.com/punchcard-cli/punchcard/internal/output"
)

// entriesCmd groups time-entry operations.
var entriesCmd = &cobra.Command{
	Use:     "entries",
	Aliases: []string{"entry", "e"},
	Short:   "Browse and edit time entries",
	RunE:    runEntriesList,
}

var entriesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your time entries",
	RunE:  runEntriesList,
}

var entriesAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a time entry",
	RunE:  runEntriesAdd,
}

var entriesEditCmd = &cobra.Command{
	Use:   "edit ENTRY_ID",
	Short: "Update a time entry",
	Args:  cobra.ExactArgs(1),
	RunE:  runEntriesEdit,
}

var entriesDeleteCmd = &cobra.Command{
	Use:     "delete ENTRY_ID",
	Aliases: []string{"rm"},
	Short:   "Delete a time entry",
	Args:    cobra.ExactArgs(1),
	RunE:    runEntriesDelete,
}

// Entry subcommand flags.
var (
	entriesFlagFrom        string
	entriesFlagTo          string
	entriesFlagProject     string
	entriesFlagTask        string
	entriesFlagDescription string
	entriesFlagStart       string
	entriesFlagEnd         string
	entriesFlagBillable    bool
)

func init() {
	entriesListCmd.Flags().StringVar(&entriesFlagFrom, "from", "", "Window start (date or expression)")
	entriesListCmd.Flags().StringVar(&entriesFlagTo, "to", "", "Window end (date or expression)")

	for _, c := range []*cobra.Command{entriesAddCmd, entriesEditCmd} {
		c.Flags().StringVarP(&entriesFlagProject, "project", "p", "", "Project id")
		c.Flags().StringVarP(&entriesFlagTask, "task", "t", "", "Task id")
		c.Flags().StringVarP(&entriesFlagDescription, "description", "d", "", "Entry description")
		c.Flags().StringVar(&entriesFlagStart, "start", "", "Start instant (YYYY-MM-DD HH:mm)")
		c.Flags().StringVar(&entriesFlagEnd, "end", "", "End instant (YYYY-MM-DD HH:mm)")
		c.Flags().BoolVar(&entriesFlagBillable, "billable", false, "Mark the entry billable")
	}

	entriesCmd.AddCommand(entriesListCmd)
	entriesCmd.AddCommand(entriesAddCmd)
	entriesCmd.AddCommand(entriesEditCmd)
	entriesCmd.AddCommand(entriesDeleteCmd)
	rootCmd.AddCommand(entriesCmd)
}

// parseInstant accepts "YYYY-MM-DD HH:mm" and RFC 3339.
func parseInstant(value, field string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02 15:04", time.RFC3339} {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.NewUserErrorWithField(field, value,
		"Invalid instant",
		"Use 'YYYY-MM-DD HH:mm', e.g. '2024-01-02 09:00'")
}

func entryRequestFromFlags() (clockify.TimeEntryRequest, error) {
	var req clockify.TimeEntryRequest
	if entriesFlagStart == "" || entriesFlagEnd == "" {
		return req, errors.NewUserError("Start and end are required",
			"Provide both --start and --end instants")
	}
	start, err := parseInstant(entriesFlagStart, "start")
	if err != nil {
		return req, err
	}
	end, err := parseInstant(entriesFlagEnd, "end")
	if err != nil {
		return req, err
	}

	req = clockify.TimeEntryRequest{
		Start:       start,
		End:         end,
		Billable:    entriesFlagBillable,
		Description: entriesFlagDescription,
		ProjectID:   entriesFlagProject,
		TaskID:      entriesFlagTask,
	}
	return req, nil
}

func runEntriesList(cmd *cobra.Command, args []string) error {
	if err := requireConfigured(); err != nil {
		return err
	}
	if _, err := sess.RequireUser(); err != nil {
		return err
	}

	var window clockify.TimeWindow
	now := time.Now()
	if entriesFlagFrom != "" {
		d, err := dates.ParseOne(entriesFlagFrom, now, time.Local)
		if err != nil {
			return err
		}
		window.Start = &d
	}
	if entriesFlagTo != "" {
		d, err := dates.ParseOne(entriesFlagTo, now, time.Local)
		if err != nil {
			return err
		}
		// The upper bound is inclusive of the named day.
		end := d.AddDate(0, 0, 1)
		window.End = &end
	}

	entries, ok := sess.FetchTimeEntries(cmd.Context(), window)
	if !ok {
		return nil
	}

	if isJSON() {
		return formatter.JSON(entries)
	}

	cli.Title(fmt.Sprintf("Time entries (%d)", len(entries)))
	widths := []int{24, 17, 6, 7, 18, 28}
	cli.Header(widths, "ID", "START", "END", "DUR", "PROJECT", "DESCRIPTION")
	for _, e := range entries {
		project := e.ProjectID
		if e.Project != nil {
			project = e.Project.Name
		}
		dur := output.FormatDuration(e.TimeInterval.End.Sub(e.TimeInterval.Start))
		cli.Row(widths, e.ID,
			output.FormatInstant(e.TimeInterval.Start),
			output.FormatTimeOnly(e.TimeInterval.End),
			dur, project, e.Description)
	}
	return nil
}

func runEntriesAdd(cmd *cobra.Command, args []string) error {
	if err := requireConfigured(); err != nil {
		return err
	}
	req, err := entryRequestFromFlags()
	if err != nil {
		return err
	}

	// Failure was already reported by the tracker; the success notification
	// comes from the session.
	sess.CreateTimeEntry(cmd.Context(), req)
	return nil
}

func runEntriesEdit(cmd *cobra.Command, args []string) error {
	if err := requireConfigured(); err != nil {
		return err
	}
	req, err := entryRequestFromFlags()
	if err != nil {
		return err
	}

	sess.UpdateTimeEntry(cmd.Context(), args[0], req)
	return nil
}

func runEntriesDelete(cmd *cobra.Command, args []string) error {
	if err := requireConfigured(); err != nil {
		return err
	}

	// The boolean drives messaging only; the operation itself never
	// propagates its error.
	if !sess.DeleteTimeEntry(cmd.Context(), args[0]) {
		cli.Muted("Entry was not deleted.")
	}
	return nil
}
