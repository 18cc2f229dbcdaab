package cmd

import (
	"github.com/spf13/cobra"

	"github.com/punchcard-cli/punchcard/internal/suggest"
)

// suggestCmd asks the external text-generation collaborator for a
// description suggestion.
var suggestCmd = &cobra.Command{
	Use:   "suggest PROJECT_NAME [TASK_NAME]",
	Short: "Suggest a time-entry description",
	Long: `Ask the configured suggestion endpoint for a description matching a
project and optional task. The endpoint comes from PUNCHCARD_SUGGEST_URL;
without it the command reports the feature as disabled. Failures are
swallowed: the command never exits non-zero because of the collaborator.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runSuggest,
}

func init() {
	rootCmd.AddCommand(suggestCmd)
}

func runSuggest(cmd *cobra.Command, args []string) error {
	client := suggest.FromEnv()
	if !client.Enabled() {
		cli.Muted("Suggestions are disabled; set " + suggest.EnvEndpoint + " to enable them.")
		return nil
	}

	task := ""
	if len(args) > 1 {
		task = args[1]
	}

	text := client.Describe(cmd.Context(), args[0], task)
	if text == "" {
		cli.Muted("No suggestion available.")
		return nil
	}

	if isJSON() {
		return formatter.JSON(map[string]string{"suggestion": text})
	}
	cli.Println(text)
	return nil
}
