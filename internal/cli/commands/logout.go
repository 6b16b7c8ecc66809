package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rkendel1/AI-RAG-Assistant-Chatbot/internal/cli/config"
	"github.com/rkendel1/AI-RAG-Assistant-Chatbot/internal/cli/ui"
)

// logoutCmd is the logout command
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "discard saved credentials",
	Long: `Remove the stored access token from the local config file.

The server address is kept so the next login does not need it again.`,
	Example: `  # Log out of the current account
  $ luminactl logout`,
	Args: cobra.NoArgs,
	RunE: runLogout,
}

func init() {
	logoutCmd.SilenceUsage = true
}

func runLogout(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		ui.PrintError("failed to load config: %v", err)
		return fmt.Errorf("config load failed")
	}

	if !cfg.IsAuthenticated() {
		ui.PrintInfo("Not logged in.")
		return nil
	}

	email := cfg.Email
	cfg.ClearCredentials()
	if err := cfg.Save(); err != nil {
		ui.PrintError("failed to save config: %v", err)
		return fmt.Errorf("config save failed")
	}

	ui.PrintSuccess("Logged out %s", email)
	return nil
}
