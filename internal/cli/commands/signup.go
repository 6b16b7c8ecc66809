package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"github.com/rkendel1/AI-RAG-Assistant-Chatbot/internal/cli/client"
	"github.com/rkendel1/AI-RAG-Assistant-Chatbot/internal/cli/ui"
)

var (
	signupEmail string
)

// signupCmd is the signup command
var signupCmd = &cobra.Command{
	Use:   "signup [server]",
	Short: "create a new Lumina account",
	Long: `Create a new account on the Lumina API server.

After signing up, run 'luminactl login' to authenticate and save your
credentials locally.

If server is not provided, defaults to http://localhost:8080.`,
	Example: `  # Sign up on the default server
  $ luminactl signup

  # Sign up on a custom server
  $ luminactl signup http://api.example.com:8080`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSignup,
}

func init() {
	signupCmd.Flags().StringVarP(&signupEmail, "email", "e", "", "Email for the new account")
	signupCmd.SilenceUsage = true
}

func runSignup(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	server := "http://localhost:8080"
	if len(args) > 0 {
		server = args[0]
	}

	if signupEmail == "" {
		prompt := &survey.Input{
			Message: "Email:",
		}
		if err := survey.AskOne(prompt, &signupEmail, survey.WithValidator(survey.Required)); err != nil {
			ui.PrintError("failed to read email: %v", err)
			return fmt.Errorf("input failed")
		}
	}

	var password string
	passwordPrompt := &survey.Password{
		Message: "Password (6-72 characters):",
	}
	if err := survey.AskOne(passwordPrompt, &password, survey.WithValidator(survey.Required)); err != nil {
		ui.PrintError("failed to read password: %v", err)
		return fmt.Errorf("input failed")
	}

	var confirm string
	confirmPrompt := &survey.Password{
		Message: "Confirm password:",
	}
	if err := survey.AskOne(confirmPrompt, &confirm, survey.WithValidator(survey.Required)); err != nil {
		ui.PrintError("failed to read password: %v", err)
		return fmt.Errorf("input failed")
	}
	if password != confirm {
		ui.PrintError("passwords do not match")
		return fmt.Errorf("password mismatch")
	}

	apiClient, err := client.NewAPIClient(server, "")
	if err != nil {
		ui.PrintError("failed to create client: %v", err)
		return fmt.Errorf("client creation failed")
	}

	ui.PrintInfo("Connecting to %s...", server)

	user, err := apiClient.Signup(ctx, signupEmail, password)
	if err != nil {
		ui.PrintErrorBox("Signup Failed", err.Error())
		return fmt.Errorf("signup failed")
	}

	successContent := fmt.Sprintf(`Email:    %s
User ID:  %s`,
		user.Email,
		user.ID,
	)
	ui.PrintSuccessBox("✓ Account Created", successContent)

	fmt.Println()
	ui.PrintInfo("Run 'luminactl login' to authenticate.")

	return nil
}
