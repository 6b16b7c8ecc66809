package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/rkendel1/AI-RAG-Assistant-Chatbot/internal/cli/ui"
)

// renameCmd is the rename command
var renameCmd = &cobra.Command{
	Use:   "rename <conversation-id> <title>",
	Short: "rename a conversation",
	Long: `Set a new title for a saved conversation. Words after the
conversation id are joined into the title, so quoting is optional.`,
	Example: `  # Rename a conversation
  $ luminactl rename 3f2a9c1e-... "Trip planning"

  # Quoting is optional for multi-word titles
  $ luminactl rename 3f2a9c1e-... Trip planning`,
	Args: cobra.MinimumNArgs(2),
	RunE: runRename,
}

func init() {
	renameCmd.SilenceUsage = true
}

func runRename(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	id := args[0]
	title := strings.Join(args[1:], " ")

	apiClient, err := authenticatedClient()
	if err != nil {
		return err
	}

	if err := apiClient.RenameConversation(ctx, id, title); err != nil {
		ui.PrintError("failed to rename conversation: %v", err)
		return fmt.Errorf("rename operation failed")
	}

	ui.PrintSuccess("Renamed conversation %s to %q", id, title)
	return nil
}
