package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/rkendel1/AI-RAG-Assistant-Chatbot/internal/cli/ui"
)

// searchCmd is the search command
var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "search conversations by title or content",
	Long: `Search the signed-in account's conversations. The query is
matched case-insensitively against both titles and message text.`,
	Example: `  # Find conversations mentioning kubernetes
  $ luminactl search kubernetes

  # Multi-word queries are joined
  $ luminactl search trip planning`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.SilenceUsage = true
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	apiClient, err := authenticatedClient()
	if err != nil {
		return err
	}

	summaries, err := apiClient.SearchConversations(ctx, query)
	if err != nil {
		ui.PrintError("failed to search conversations: %v", err)
		return fmt.Errorf("search operation failed")
	}

	if len(summaries) == 0 {
		ui.PrintInfo("No conversations matched %q.", query)
		return nil
	}

	fmt.Println()
	fmt.Println(ui.RenderConversationTable(summaries))
	fmt.Println()
	ui.PrintInfo("%d conversation(s) matched %q", len(summaries), query)

	return nil
}
