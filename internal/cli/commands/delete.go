package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"github.com/rkendel1/AI-RAG-Assistant-Chatbot/internal/cli/ui"
)

var (
	deleteForce bool
)

// deleteCmd is the delete command
var deleteCmd = &cobra.Command{
	Use:   "delete <conversation-id>",
	Short: "delete a conversation",
	Long: `Delete a saved conversation and its transcript permanently.

By default, you will be prompted to confirm the deletion. Use --force to skip confirmation.`,
	Example: `  # Delete a conversation
  $ luminactl delete 3f2a9c1e-...

  # Force delete without confirmation
  $ luminactl delete 3f2a9c1e-... --force`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

func init() {
	deleteCmd.Flags().BoolVarP(&deleteForce, "force", "f", false, "Skip confirmation prompt")
	deleteCmd.SilenceUsage = true
}

func runDelete(cmd *cobra.Command, args []string) error {
	id := args[0]

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	apiClient, err := authenticatedClient()
	if err != nil {
		return err
	}

	if !deleteForce {
		var confirmed bool
		prompt := &survey.Confirm{
			Message: fmt.Sprintf("Delete conversation %s? This cannot be undone.", id),
			Default: false,
		}
		if err := survey.AskOne(prompt, &confirmed); err != nil {
			ui.PrintError("failed to read confirmation: %v", err)
			return fmt.Errorf("input failed")
		}
		if !confirmed {
			ui.PrintInfo("Deletion cancelled.")
			return nil
		}
	}

	if err := apiClient.DeleteConversation(ctx, id); err != nil {
		ui.PrintError("failed to delete conversation: %v", err)
		return fmt.Errorf("delete operation failed")
	}

	ui.PrintSuccess("Deleted conversation %s", id)
	return nil
}
