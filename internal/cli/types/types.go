// Package types holds the wire shapes exchanged with the Lumina server.
package types

// APIResponse is the server's uniform envelope.
type APIResponse[T any] struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}

// ListData wraps list payloads.
type ListData[T any] struct {
	Items      []T `json:"items"`
	TotalCount int `json:"totalCount"`
}

// User is the account as the server presents it.
type User struct {
	ID          string  `json:"id"`
	Email       string  `json:"email"`
	LastLoginAt *string `json:"last_login_at,omitempty"`
	CreatedAt   string  `json:"created_at"`
}

// LoginRequest is the credential payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignupRequest is the account creation payload.
type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ResetPasswordRequest replaces the password for an existing account.
type ResetPasswordRequest struct {
	Email       string `json:"email"`
	NewPassword string `json:"newPassword"`
}

// LoginData is returned after a successful login.
type LoginData struct {
	Token  string `json:"token"`
	Expire string `json:"expire"`
	User   *User  `json:"user"`
}

// EmailCheckData reports account existence.
type EmailCheckData struct {
	Exists bool `json:"exists"`
}

// TokenValidationData reports token liveness.
type TokenValidationData struct {
	Valid bool `json:"valid"`
}

// Message is one transcript turn.
type Message struct {
	Sender    string `json:"sender"`
	Text      string `json:"text"`
	Timestamp string `json:"timestamp"`
}

// Conversation is a full conversation with transcript.
type Conversation struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Messages  []*Message `json:"messages"`
	CreatedAt string     `json:"created_at"`
	UpdatedAt string     `json:"updated_at"`
}

// ConversationSummary is the sidebar view of a conversation.
type ConversationSummary struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	MessageCount int    `json:"message_count"`
	UpdatedAt    string `json:"updated_at"`
}

// RenameRequest sets a conversation title.
type RenameRequest struct {
	Title string `json:"title"`
}

// ChatRequest is one authenticated chat turn.
type ChatRequest struct {
	Message        string `json:"message"`
	ConversationID string `json:"conversationId,omitempty"`
}

// GuestChatRequest is one anonymous chat turn.
type GuestChatRequest struct {
	Message string `json:"message"`
	GuestID string `json:"guestId,omitempty"`
}

// ChatData carries the answer and the applicable conversation handle.
type ChatData struct {
	Answer         string `json:"answer"`
	ConversationID string `json:"conversationId,omitempty"`
	GuestID        string `json:"guestId,omitempty"`
}
