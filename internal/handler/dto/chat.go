package dto

// ChatRequest is one chat turn from an authenticated client. An empty
// ConversationID starts a new conversation.
type ChatRequest struct {
	Message        string `json:"message" binding:"required"`
	ConversationID string `json:"conversationId,omitempty"`
}

// GuestChatRequest is one chat turn from an anonymous client. An empty or
// stale GuestID starts a fresh guest conversation.
type GuestChatRequest struct {
	Message string `json:"message" binding:"required"`
	GuestID string `json:"guestId,omitempty"`
}

// ChatResponse carries the answer plus whichever conversation handle
// applies to the caller.
type ChatResponse struct {
	Answer         string `json:"answer"`
	ConversationID string `json:"conversationId,omitempty"`
	GuestID        string `json:"guestId,omitempty"`
}
