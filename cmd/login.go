package cmd

import (
	"github.com/spf13/cobra"

	"github.com/punchcard-cli/punchcard/internal/logging"
)

var (
	loginFlagAPIKey    string
	loginFlagWorkspace string
)

// loginCmd stores the credential pair and resolves the current user.
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in with a Clockify API key and workspace id",
	Long: `Store the Clockify API key and workspace id locally.

The key is persisted in the local database and attached to every remote call.

Examples:
  punchcard login --api-key XXXX --workspace 5f1f7abc1234ab0001abcdef`,
	RunE: runLogin,
}

// logoutCmd clears the stored credentials.
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and forget the stored credentials",
	RunE:  runLogout,
}

// whoamiCmd shows the resolved current user.
var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the authenticated Clockify user",
	RunE:  runWhoami,
}

func init() {
	loginCmd.Flags().StringVar(&loginFlagAPIKey, "api-key", "", "Clockify API key")
	loginCmd.Flags().StringVar(&loginFlagWorkspace, "workspace", "", "Clockify workspace id")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
}

func runLogin(cmd *cobra.Command, args []string) error {
	if err := sess.SignIn(cmd.Context(), loginFlagAPIKey, loginFlagWorkspace); err != nil {
		return err
	}

	if sess.User != nil {
		cli.Success("Signed in as " + sess.User.Name + " (" + sess.User.Email + ")")
	} else {
		// The credential pair is stored even when the user fetch failed; the
		// tracker already reported the failure.
		cli.Warning("Credentials stored, but the user could not be verified.")
	}
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	if err := sess.SignOut(); err != nil {
		return err
	}
	logging.Info("signed out")
	cli.Success("Signed out.")
	return nil
}

func runWhoami(cmd *cobra.Command, args []string) error {
	if err := requireConfigured(); err != nil {
		return err
	}
	user, err := sess.RequireUser()
	if err != nil {
		return err
	}

	if isJSON() {
		return formatter.JSON(user)
	}

	cli.Title(user.Name)
	cli.KeyValue("email", user.Email, 10)
	cli.KeyValue("user id", user.ID, 10)
	cli.KeyValue("workspace", sess.Credentials.WorkspaceID, 10)
	return nil
}
