package domain

import (
	"context"

	"github.com/rkendel1/AI-RAG-Assistant-Chatbot/internal/domain/entity"
)

// ConversationRepository is the durable conversation store. Every read and
// write is scoped by owner: a conversation id belonging to another user is
// indistinguishable from one that does not exist.
type ConversationRepository interface {
	// Create creates an empty conversation with the default title
	Create(ctx context.Context, userID string) (*entity.Conversation, error)

	// GetByID loads a conversation by id, filtered by owner
	GetByID(ctx context.Context, id, userID string) (*entity.Conversation, error)

	// AppendMessage appends a message to an owned conversation
	AppendMessage(ctx context.Context, id, userID string, msg entity.Message) error

	// Rename updates the title of an owned conversation
	Rename(ctx context.Context, id, userID, title string) (*entity.Conversation, error)

	// Delete removes an owned conversation and its messages
	Delete(ctx context.Context, id, userID string) error

	// List returns all conversations owned by the user
	List(ctx context.Context, userID string) ([]*entity.Conversation, error)

	// Search returns owned conversations whose title or message text
	// contains the query (case-insensitive substring)
	Search(ctx context.Context, userID, query string) ([]*entity.Conversation, error)
}

// GuestConversationStore is the ephemeral transcript store for anonymous
// sessions. Implementations are volatile; durability across restarts is an
// explicit non-goal.
type GuestConversationStore interface {
	// Create mints a fresh guest id with an empty transcript
	Create(ctx context.Context) (string, error)

	// Get returns the transcript for a guest id
	Get(ctx context.Context, guestID string) ([]entity.Message, error)

	// Append adds a message to the transcript
	Append(ctx context.Context, guestID string, msg entity.Message) error
}

// ConversationUsecase is the conversation management business logic.
type ConversationUsecase interface {
	Create(ctx context.Context, userID string) (*entity.Conversation, error)
	Get(ctx context.Context, id, userID string) (*entity.Conversation, error)
	Rename(ctx context.Context, id, userID, title string) (*entity.Conversation, error)
	Delete(ctx context.Context, id, userID string) error
	List(ctx context.Context, userID string) ([]*entity.Conversation, error)
	Search(ctx context.Context, userID, query string) ([]*entity.Conversation, error)
}
