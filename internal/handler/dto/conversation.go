package dto

import (
	"time"

	"github.com/rkendel1/AI-RAG-Assistant-Chatbot/internal/domain/entity"
)

// MessageResponse is one transcript turn.
type MessageResponse struct {
	Sender    string `json:"sender"`
	Text      string `json:"text"`
	Timestamp string `json:"timestamp"`
}

// ConversationResponse is a conversation with its transcript.
type ConversationResponse struct {
	ID        string             `json:"id"`
	Title     string             `json:"title"`
	Messages  []*MessageResponse `json:"messages"`
	CreatedAt string             `json:"created_at"`
	UpdatedAt string             `json:"updated_at"`
}

// ConversationSummary is the sidebar view: no transcript, just enough to
// render and sort the list.
type ConversationSummary struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	MessageCount int    `json:"message_count"`
	UpdatedAt    string `json:"updated_at"`
}

// RenameConversationRequest sets a new title.
type RenameConversationRequest struct {
	Title string `json:"title" binding:"required"`
}

// ToMessageResponse converts entity.Message to its DTO.
func ToMessageResponse(msg entity.Message) *MessageResponse {
	return &MessageResponse{
		Sender:    string(msg.Sender),
		Text:      msg.Text,
		Timestamp: msg.Timestamp.Format(time.RFC3339),
	}
}

// ToConversationResponse converts entity.Conversation to its DTO.
func ToConversationResponse(conv *entity.Conversation) *ConversationResponse {
	messages := make([]*MessageResponse, len(conv.Messages))
	for i, msg := range conv.Messages {
		messages[i] = ToMessageResponse(msg)
	}

	return &ConversationResponse{
		ID:        conv.ID,
		Title:     conv.Title,
		Messages:  messages,
		CreatedAt: conv.CreatedAt.Format(time.RFC3339),
		UpdatedAt: conv.UpdatedAt.Format(time.RFC3339),
	}
}

// ToConversationSummaries converts a conversation list to sidebar entries.
func ToConversationSummaries(convs []*entity.Conversation) []*ConversationSummary {
	out := make([]*ConversationSummary, len(convs))
	for i, conv := range convs {
		out[i] = &ConversationSummary{
			ID:           conv.ID,
			Title:        conv.Title,
			MessageCount: len(conv.Messages),
			UpdatedAt:    conv.UpdatedAt.Format(time.RFC3339),
		}
	}
	return out
}
