package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/punchcard-cli/punchcard/internal/errors"
	"github.com/punchcard-cli/punchcard/internal/model"
)

// templateCmd groups template-collection operations. Templates are pure
// local state; nothing here touches the remote API.
var templateCmd = &cobra.Command{
	Use:     "template",
	Aliases: []string{"templates", "tpl"},
	Short:   "Manage local time-entry templates",
	Long: `Manage the local template collection.

A template is a named set of day-relative entries (project, task,
description, HH:mm interval, billable flag). Templates live only in the
local database and are stamped onto calendar dates with 'punchcard apply'.

Examples:
  punchcard template create "Office day"
  punchcard template entry add "Office day" -p PROJECT_ID --start 09:00 --end 12:00 -d "morning focus"
  punchcard template show "Office day"
  punchcard template copy "Office day" --name "Remote day"`,
	RunE: runTemplateList,
}

var templateListCmd = &cobra.Command{
	Use:   "list",
	Short: "List templates",
	RunE:  runTemplateList,
}

var templateShowCmd = &cobra.Command{
	Use:   "show TEMPLATE",
	Short: "Show one template with its entries",
	Args:  cobra.ExactArgs(1),
	RunE:  runTemplateShow,
}

var templateCreateCmd = &cobra.Command{
	Use:   "create NAME",
	Short: "Create an empty template",
	Args:  cobra.ExactArgs(1),
	RunE:  runTemplateCreate,
}

var templateEditCmd = &cobra.Command{
	Use:   "edit TEMPLATE",
	Short: "Rename a template",
	Args:  cobra.ExactArgs(1),
	RunE:  runTemplateEdit,
}

var templateDeleteCmd = &cobra.Command{
	Use:     "delete TEMPLATE",
	Aliases: []string{"rm"},
	Short:   "Delete a template",
	Args:    cobra.ExactArgs(1),
	RunE:    runTemplateDelete,
}

var templateCopyCmd = &cobra.Command{
	Use:   "copy TEMPLATE",
	Short: "Duplicate a template",
	Args:  cobra.ExactArgs(1),
	RunE:  runTemplateCopy,
}

// templateEntryCmd groups per-entry operations.
var templateEntryCmd = &cobra.Command{
	Use:   "entry",
	Short: "Manage the entries of a template",
}

var templateEntryAddCmd = &cobra.Command{
	Use:   "add TEMPLATE",
	Short: "Add an entry to a template",
	Args:  cobra.ExactArgs(1),
	RunE:  runTemplateEntryAdd,
}

var templateEntryRemoveCmd = &cobra.Command{
	Use:     "remove TEMPLATE ENTRY_ID",
	Aliases: []string{"rm"},
	Short:   "Remove an entry from a template",
	Args:    cobra.ExactArgs(2),
	RunE:    runTemplateEntryRemove,
}

// Template subcommand flags.
var (
	templateFlagName        string
	templateFlagProject     string
	templateFlagTask        string
	templateFlagDescription string
	templateFlagStart       string
	templateFlagEnd         string
	templateFlagBillable    bool
)

func init() {
	templateEditCmd.Flags().StringVarP(&templateFlagName, "name", "n", "", "New template name")
	templateCopyCmd.Flags().StringVarP(&templateFlagName, "name", "n", "", "Name for the copy")

	templateEntryAddCmd.Flags().StringVarP(&templateFlagProject, "project", "p", "", "Project id")
	templateEntryAddCmd.Flags().StringVarP(&templateFlagTask, "task", "t", "", "Task id")
	templateEntryAddCmd.Flags().StringVarP(&templateFlagDescription, "description", "d", "", "Entry description")
	templateEntryAddCmd.Flags().StringVar(&templateFlagStart, "start", "09:00", "Day-relative start (HH:mm)")
	templateEntryAddCmd.Flags().StringVar(&templateFlagEnd, "end", "17:00", "Day-relative end (HH:mm)")
	templateEntryAddCmd.Flags().BoolVar(&templateFlagBillable, "billable", false, "Mark the entry billable")

	templateEntryCmd.AddCommand(templateEntryAddCmd)
	templateEntryCmd.AddCommand(templateEntryRemoveCmd)

	templateCmd.AddCommand(templateListCmd)
	templateCmd.AddCommand(templateShowCmd)
	templateCmd.AddCommand(templateCreateCmd)
	templateCmd.AddCommand(templateEditCmd)
	templateCmd.AddCommand(templateDeleteCmd)
	templateCmd.AddCommand(templateCopyCmd)
	templateCmd.AddCommand(templateEntryCmd)
	rootCmd.AddCommand(templateCmd)
}

func runTemplateList(cmd *cobra.Command, args []string) error {
	if isJSON() {
		return formatter.JSON(sess.Templates.Templates)
	}

	cli.Title(fmt.Sprintf("Templates (%d)", len(sess.Templates.Templates)))
	widths := []int{36, 28, 8}
	cli.Header(widths, "ID", "NAME", "ENTRIES")
	for _, t := range sess.Templates.Templates {
		cli.Row(widths, t.ID, t.Name, fmt.Sprintf("%d", len(t.Entries)))
	}
	return nil
}

func runTemplateShow(cmd *cobra.Command, args []string) error {
	t, err := sess.FindTemplate(args[0])
	if err != nil {
		return err
	}

	if isJSON() {
		return formatter.JSON(t)
	}

	cli.Title(t.Name)
	cli.KeyValue("id", t.ID, 8)
	cli.Println()
	widths := []int{36, 12, 24, 9}
	cli.Header(widths, "ENTRY ID", "INTERVAL", "PROJECT", "BILLABLE")
	for _, e := range t.Entries {
		cli.Row(widths, e.ID, e.StartTime+"-"+e.EndTime, e.ProjectID, yesNo(e.Billable))
		if e.Description != "" {
			cli.Muted("    " + e.Description)
		}
	}
	return nil
}

func runTemplateCreate(cmd *cobra.Command, args []string) error {
	t := &model.Template{Name: args[0]}
	if err := sess.SaveTemplate(t, true); err != nil {
		return err
	}
	cli.Muted("id: " + t.ID)
	return nil
}

func runTemplateEdit(cmd *cobra.Command, args []string) error {
	t, err := sess.FindTemplate(args[0])
	if err != nil {
		return err
	}
	if templateFlagName == "" {
		return errors.NewUserError("Nothing to change", "Provide --name with the new template name")
	}
	t.Name = templateFlagName
	return sess.SaveTemplate(t, false)
}

func runTemplateDelete(cmd *cobra.Command, args []string) error {
	t, err := sess.FindTemplate(args[0])
	if err != nil {
		return err
	}
	return sess.DeleteTemplate(t.ID)
}

func runTemplateCopy(cmd *cobra.Command, args []string) error {
	src, err := sess.FindTemplate(args[0])
	if err != nil {
		return err
	}
	copy, err := sess.DuplicateTemplate(src.ID, templateFlagName)
	if err != nil {
		return err
	}
	cli.Muted("id: " + copy.ID)
	return nil
}

func runTemplateEntryAdd(cmd *cobra.Command, args []string) error {
	t, err := sess.FindTemplate(args[0])
	if err != nil {
		return err
	}

	entry := model.NewTemplateEntry(templateFlagProject, templateFlagTask,
		templateFlagDescription, templateFlagStart, templateFlagEnd, templateFlagBillable)
	t.Entries = append(t.Entries, entry)

	if err := sess.SaveTemplate(t, false); err != nil {
		return err
	}
	cli.Muted("entry id: " + entry.ID)
	return nil
}

func runTemplateEntryRemove(cmd *cobra.Command, args []string) error {
	t, err := sess.FindTemplate(args[0])
	if err != nil {
		return err
	}

	kept := t.Entries[:0]
	found := false
	for _, e := range t.Entries {
		if e.ID == args[1] {
			found = true
			continue
		}
		kept = append(kept, e)
	}
	if !found {
		return errors.ErrEntryNotFound
	}
	t.Entries = kept

	return sess.SaveTemplate(t, false)
}
