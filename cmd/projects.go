package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// projectsCmd lists the workspace's projects.
var projectsCmd = &cobra.Command{
	Use:     "projects",
	Aliases: []string{"project", "p"},
	Short:   "List workspace projects",
	RunE:    runProjects,
}

// tasksCmd lists the tasks of one project.
var tasksCmd = &cobra.Command{
	Use:     "tasks PROJECT_ID",
	Aliases: []string{"task"},
	Short:   "List tasks for a project",
	Args:    cobra.ExactArgs(1),
	RunE:    runTasks,
}

func init() {
	rootCmd.AddCommand(projectsCmd)
	rootCmd.AddCommand(tasksCmd)
}

func runProjects(cmd *cobra.Command, args []string) error {
	if err := requireConfigured(); err != nil {
		return err
	}

	projects, ok := sess.FetchProjects(cmd.Context())
	if !ok {
		// The tracker already reported the failure.
		return nil
	}

	if isJSON() {
		return formatter.JSON(projects)
	}

	cli.Title(fmt.Sprintf("Projects (%d)", len(projects)))
	widths := []int{24, 24, 20, 8}
	cli.Header(widths, "ID", "NAME", "CLIENT", "BILLABLE")
	for _, p := range projects {
		if p.Archived {
			continue
		}
		cli.Row(widths, p.ID, p.Name, p.ClientName, yesNo(p.Billable))
	}
	return nil
}

func runTasks(cmd *cobra.Command, args []string) error {
	if err := requireConfigured(); err != nil {
		return err
	}

	tasks, ok := sess.FetchTasks(cmd.Context(), args[0])
	if !ok {
		return nil
	}

	if isJSON() {
		return formatter.JSON(tasks)
	}

	cli.Title(fmt.Sprintf("Tasks (%d)", len(tasks)))
	widths := []int{24, 28, 10}
	cli.Header(widths, "ID", "NAME", "STATUS")
	for _, t := range tasks {
		cli.Row(widths, t.ID, t.Name, t.Status)
	}
	return nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
