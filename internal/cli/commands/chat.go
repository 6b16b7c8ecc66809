package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rkendel1/AI-RAG-Assistant-Chatbot/internal/cli/client"
	"github.com/rkendel1/AI-RAG-Assistant-Chatbot/internal/cli/config"
	"github.com/rkendel1/AI-RAG-Assistant-Chatbot/internal/cli/session"
	"github.com/rkendel1/AI-RAG-Assistant-Chatbot/internal/cli/tui"
	"github.com/rkendel1/AI-RAG-Assistant-Chatbot/internal/cli/types"
	"github.com/rkendel1/AI-RAG-Assistant-Chatbot/internal/cli/ui"
)

var (
	chatGuest          bool
	chatConversationID string
)

// chatCmd is the chat command
var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "start an interactive chat with the assistant",
	Long: `Start an interactive chat session with the Lumina assistant.

When signed in, turns are saved to a conversation on the server and can
be resumed later. With --guest (or when not logged in) the session is
anonymous and vanishes when the server's guest window expires.

Keyboard controls:
  • Enter sends the message
  • Up/Down recall earlier inputs
  • PgUp/PgDn scroll the transcript
  • Esc or Ctrl+C exits the session`,
	Example: `  # Chat with the signed-in account
  $ luminactl chat

  # Resume a saved conversation
  $ luminactl chat --conversation 3f2a9c1e-...

  # Chat anonymously
  $ luminactl chat --guest`,
	Args: cobra.NoArgs,
	RunE: runChat,
}

func init() {
	chatCmd.Flags().BoolVarP(&chatGuest, "guest", "g", false, "Chat anonymously without an account")
	chatCmd.Flags().StringVar(&chatConversationID, "conversation", "", "Conversation id to resume")
	chatCmd.SilenceUsage = true
}

func runChat(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		ui.PrintError("failed to load config: %v", err)
		return fmt.Errorf("config load failed")
	}

	authenticated := cfg.IsAuthenticated() && !chatGuest
	if !cfg.IsAuthenticated() && !chatGuest {
		ui.PrintWarning("not logged in, continuing as guest")
	}
	if chatConversationID != "" && !authenticated {
		ui.PrintError("resuming a conversation requires being logged in")
		return fmt.Errorf("authentication required")
	}

	token := ""
	if authenticated {
		token = cfg.AccessToken
	}
	apiClient, err := client.NewAPIClient(cfg.Server, token)
	if err != nil {
		ui.PrintError("failed to create client: %v", err)
		return fmt.Errorf("client creation failed")
	}

	// Resume: load the transcript so the TUI can replay it.
	var transcript []*types.Message
	if chatConversationID != "" {
		conv, err := apiClient.GetConversation(context.Background(), chatConversationID)
		if err != nil {
			ui.PrintError("failed to load conversation: %v", err)
			return fmt.Errorf("conversation load failed")
		}
		transcript = conv.Messages
	}

	ses := session.NewSession(apiClient, authenticated, chatConversationID)
	ses.ClearGuest()

	var poller *session.TokenPoller
	if authenticated {
		poller = session.NewTokenPoller(apiClient.ValidateToken)
	}

	// Invalidation purges the stored token so later commands fail fast
	// with the login hint instead of a string of 401s.
	onInvalidated := func() {
		cfg.ClearCredentials()
		_ = cfg.Save()
	}

	ui.PrintChatWelcomeBanner(!authenticated)

	program := tui.NewChatProgram(ses, poller, authenticated, transcript, onInvalidated)
	if err := program.Run(); err != nil {
		return fmt.Errorf("failed to run chat TUI: %w", err)
	}

	return nil
}
