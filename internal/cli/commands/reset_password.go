package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"github.com/rkendel1/AI-RAG-Assistant-Chatbot/internal/cli/client"
	"github.com/rkendel1/AI-RAG-Assistant-Chatbot/internal/cli/config"
	"github.com/rkendel1/AI-RAG-Assistant-Chatbot/internal/cli/ui"
)

var (
	resetEmail string
)

// resetPasswordCmd is the reset-password command
var resetPasswordCmd = &cobra.Command{
	Use:   "reset-password",
	Short: "reset the password for an account",
	Long: `Set a new password for an existing account.

The email is checked against the server first so a typo does not end in
a confusing failure.`,
	Example: `  # Reset the password for an account
  $ luminactl reset-password -e me@example.com`,
	Args: cobra.NoArgs,
	RunE: runResetPassword,
}

func init() {
	resetPasswordCmd.Flags().StringVarP(&resetEmail, "email", "e", "", "Email of the account")
	resetPasswordCmd.SilenceUsage = true
}

func runResetPassword(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		ui.PrintError("failed to load config: %v", err)
		return fmt.Errorf("config load failed")
	}

	if resetEmail == "" {
		prompt := &survey.Input{
			Message: "Email:",
		}
		if err := survey.AskOne(prompt, &resetEmail, survey.WithValidator(survey.Required)); err != nil {
			ui.PrintError("failed to read email: %v", err)
			return fmt.Errorf("input failed")
		}
	}

	apiClient, err := client.NewAPIClient(cfg.Server, "")
	if err != nil {
		ui.PrintError("failed to create client: %v", err)
		return fmt.Errorf("client creation failed")
	}

	exists, err := apiClient.VerifyEmail(ctx, resetEmail)
	if err != nil {
		ui.PrintError("failed to check email: %v", err)
		return fmt.Errorf("email check failed")
	}
	if !exists {
		ui.PrintError("no account found for %s", resetEmail)
		return fmt.Errorf("unknown account")
	}

	var password string
	passwordPrompt := &survey.Password{
		Message: "New password (6-72 characters):",
	}
	if err := survey.AskOne(passwordPrompt, &password, survey.WithValidator(survey.Required)); err != nil {
		ui.PrintError("failed to read password: %v", err)
		return fmt.Errorf("input failed")
	}

	if err := apiClient.ResetPassword(ctx, resetEmail, password); err != nil {
		ui.PrintErrorBox("Reset Failed", err.Error())
		return fmt.Errorf("password reset failed")
	}

	ui.PrintSuccess("Password updated for %s", resetEmail)
	ui.PrintInfo("Run 'luminactl login' to authenticate with the new password.")
	return nil
}
