package domain

import (
	"context"

	"github.com/rkendel1/AI-RAG-Assistant-Chatbot/internal/domain/entity"
)

// ============ Usecase-internal DTOs ============

// ChatResult is the outcome of one chat exchange. Exactly one of
// ConversationID or GuestID is set, depending on which store served it.
type ChatResult struct {
	Answer         string
	ConversationID string
	GuestID        string
}

// ============ Collaborator interfaces ============

// Completer wraps the external generative-AI completion call. The turns are
// the fully assembled prompt history, instruction first and the new user
// message last. Implementations apply fixed generation parameters and do not
// retry.
type Completer interface {
	Complete(ctx context.Context, turns []entity.PromptTurn) (string, error)
}

// KnowledgeRetriever wraps the external vector-similarity search.
type KnowledgeRetriever interface {
	// Search returns up to topK snippets relevant to the query
	Search(ctx context.Context, query string, topK int) ([]entity.Snippet, error)
}

// ChatUsecase routes a message through the right store, assembles the prompt
// history, and invokes the completion backend.
type ChatUsecase interface {
	// ChatAuthenticated handles a send from a logged-in user. An empty
	// conversationID creates a new conversation first.
	ChatAuthenticated(ctx context.Context, userID, conversationID, message string) (*ChatResult, error)

	// ChatGuest handles a send from an anonymous caller. An empty or
	// unknown guestID mints a fresh one.
	ChatGuest(ctx context.Context, guestID, message string) (*ChatResult, error)
}
