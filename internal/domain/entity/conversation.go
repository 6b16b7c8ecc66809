package entity

import "time"

// Sender identifies which side of the conversation produced a message.
type Sender string

const (
	SenderUser      Sender = "user"
	SenderAssistant Sender = "assistant"
)

// DefaultConversationTitle is assigned to every newly created conversation.
// Titles are freeform user metadata afterwards, never derived from content.
const DefaultConversationTitle = "New Conversation"

// Message is a single turn in a conversation. Immutable once appended,
// ordered by append sequence within its parent.
type Message struct {
	Sender    Sender
	Text      string
	Timestamp time.Time
}

// Conversation is a durable transcript owned by exactly one user.
type Conversation struct {
	ID        string
	UserID    string
	Title     string
	Messages  []Message
	CreatedAt time.Time
	UpdatedAt time.Time
}

// GuestConversation is a volatile transcript keyed by an opaque guest id.
// It never migrates into the authenticated store.
type GuestConversation struct {
	GuestID   string
	Messages  []Message
	CreatedAt time.Time
	UpdatedAt time.Time
}
