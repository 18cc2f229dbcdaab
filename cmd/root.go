// Package cmd provides the CLI commands for Punchcard.
package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/punchcard-cli/punchcard/internal/errors"
	"github.com/punchcard-cli/punchcard/internal/logging"
	"github.com/punchcard-cli/punchcard/internal/output"
	"github.com/punchcard-cli/punchcard/internal/session"
	"github.com/punchcard-cli/punchcard/internal/tracker"
)

// Version information (set at build time via ldflags).
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// Global flags.
var (
	flagFormat string
	flagColor  string
	flagDebug  bool
)

// sess is the per-invocation application state, built in the persistent
// pre-run hook and closed in the post-run hook.
var sess *session.Session

// formatter and cli render all command output.
var (
	formatter *output.Formatter
	cli       *output.CLIFormatter
)

// cliNotifier prints tracker notifications through the CLI formatter.
type cliNotifier struct{}

func (cliNotifier) Notify(n tracker.Notification) {
	if cli == nil {
		return
	}
	if n.Failure {
		cli.Error(n.Title + ": " + n.Message)
		return
	}
	cli.Success(n.Message)
}

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "punchcard",
	Short: "Batch time entry and templates for Clockify",
	Long: `Punchcard is a command-line front-end for the Clockify time-tracking API.

Sign in with an API key and workspace id, browse and edit time entries, and
define reusable templates that can be stamped onto one or more calendar dates
to bulk-create entries.

Examples:
  punchcard login --api-key KEY --workspace WORKSPACE_ID
  punchcard entries list --from 2024-01-01
  punchcard template create "Office day"
  punchcard apply "Office day" --on monday --on tuesday`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "completion" || cmd.Name() == "help" || cmd.Name() == "version" {
			return nil
		}

		if flagDebug {
			logging.InitDebug()
		} else {
			logging.Init(logging.DefaultConfig())
		}

		formatter = output.NewFormatter()
		switch flagFormat {
		case "json":
			formatter.Format = output.FormatJSON
		case "plain":
			formatter.Format = output.FormatPlain
		default:
			formatter.Format = output.FormatCLI
		}
		switch flagColor {
		case "always":
			formatter.ColorMode = output.ColorAlways
		case "never":
			formatter.ColorMode = output.ColorNever
		default:
			formatter.ColorMode = output.ColorAuto
		}
		cli = output.NewCLIFormatter(formatter)

		opts := session.DefaultOptions()
		opts.Notifier = cliNotifier{}

		var err error
		sess, err = session.New(cmd.Context(), opts)
		return err
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if sess != nil {
			return sess.Close()
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		printError(err)
	}
	return err
}

// printError renders an error with its suggestion, when one exists.
func printError(err error) {
	if ue, ok := errors.AsUserError(err); ok {
		os.Stderr.WriteString("Error: " + ue.Error() + "\n")
		if ue.Suggestion != "" {
			os.Stderr.WriteString("  " + ue.Suggestion + "\n")
		}
		return
	}
	os.Stderr.WriteString("Error: " + err.Error() + "\n")
}

// isJSON reports whether output should be machine-readable JSON.
func isJSON() bool {
	return formatter != nil && formatter.Format == output.FormatJSON
}

// requireConfigured guards remote-dependent commands.
func requireConfigured() error {
	if sess == nil || !sess.Configured() {
		return errors.NewUserError("Not signed in",
			"Run 'punchcard login --api-key KEY --workspace WORKSPACE_ID' first")
	}
	return nil
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&flagFormat, "format", "f", "cli",
		"Output format: cli, json, plain")
	rootCmd.PersistentFlags().StringVar(&flagColor, "color", "auto",
		"Color output: auto, always, never")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false,
		"Enable debug output")

	rootCmd.AddCommand(versionCmd)
}

// versionCmd shows version information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("punchcard %s\n", Version)
		cmd.Printf("  commit: %s\n", Commit)
		cmd.Printf("  built: %s\n", BuildTime)
	},
}
