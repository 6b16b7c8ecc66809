package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rkendel1/AI-RAG-Assistant-Chatbot/internal/cli/client"
	"github.com/rkendel1/AI-RAG-Assistant-Chatbot/internal/cli/config"
	"github.com/rkendel1/AI-RAG-Assistant-Chatbot/internal/cli/ui"
)

// listCmd is the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "list saved conversations",
	Long: `List the signed-in account's conversations, most recently
updated first. Each row shows the conversation id, title, message count,
and when it was last active.`,
	Example: `  # List conversations
  $ luminactl list`,
	RunE: runList,
}

func init() {
	listCmd.SilenceUsage = true
}

func runList(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		ui.PrintError("unexpected argument: %s", args[0])
		fmt.Printf("\nRun '%s --help' for usage.\n", cmd.CommandPath())
		return fmt.Errorf("invalid arguments")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	apiClient, err := authenticatedClient()
	if err != nil {
		return err
	}

	summaries, err := apiClient.ListConversations(ctx)
	if err != nil {
		ui.PrintError("failed to list conversations: %v", err)
		return fmt.Errorf("list operation failed")
	}

	if len(summaries) == 0 {
		ui.PrintInfo("No conversations yet. Start one with 'luminactl chat'.")
		return nil
	}

	fmt.Println()
	fmt.Println(ui.RenderConversationTable(summaries))
	fmt.Println()
	ui.PrintInfo("%d conversation(s)", len(summaries))

	return nil
}

// authenticatedClient loads the config and builds a client with the
// stored token, failing with a login hint when no credentials exist.
func authenticatedClient() (*client.APIClient, error) {
	cfg, err := config.Load()
	if err != nil {
		ui.PrintError("failed to load config: %v", err)
		return nil, fmt.Errorf("config load failed")
	}

	if !cfg.IsAuthenticated() {
		ui.PrintError("not authenticated, please login first")
		fmt.Println("\nRun 'luminactl login' to authenticate.")
		return nil, fmt.Errorf("authentication required")
	}

	apiClient, err := client.NewAPIClient(cfg.Server, cfg.AccessToken)
	if err != nil {
		ui.PrintError("failed to create client: %v", err)
		return nil, fmt.Errorf("client creation failed")
	}

	return apiClient, nil
}
