package database

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rkendel1/AI-RAG-Assistant-Chatbot/internal/domain"
	"github.com/rkendel1/AI-RAG-Assistant-Chatbot/internal/domain/entity"
)

// conversationRepository is the MySQL implementation of
// domain.ConversationRepository. Every query is scoped to the owning user,
// so one account can never read or mutate another account's transcripts.
type conversationRepository struct {
	db *gorm.DB
}

// NewConversationRepository creates a new ConversationRepository instance.
func NewConversationRepository(db *gorm.DB) domain.ConversationRepository {
	return &conversationRepository{db: db}
}

// Create starts an empty conversation with the default title.
func (r *conversationRepository) Create(ctx context.Context, userID string) (*entity.Conversation, error) {
	m := &ConversationModel{
		ID:     uuid.NewString(),
		UserID: userID,
		Title:  entity.DefaultConversationTitle,
	}

	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return nil, fmt.Errorf("failed to create conversation: %w", err)
	}

	return toEntityConversation(m), nil
}

// GetByID loads a conversation with its full transcript. The user filter
// makes someone else's conversation indistinguishable from a missing one.
func (r *conversationRepository) GetByID(ctx context.Context, id, userID string) (*entity.Conversation, error) {
	var m ConversationModel
	err := r.db.WithContext(ctx).
		Preload("Messages", func(db *gorm.DB) *gorm.DB {
			return db.Order("messages.id ASC")
		}).
		Where("id = ? AND user_id = ?", id, userID).
		First(&m).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Conversation", id)
		}
		return nil, fmt.Errorf("failed to get conversation: %w", err)
	}

	return toEntityConversation(&m), nil
}

// AppendMessage adds one turn to the transcript and bumps the parent's
// updated_at so recency ordering reflects activity, not renames alone.
func (r *conversationRepository) AppendMessage(ctx context.Context, id, userID string, msg entity.Message) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m ConversationModel
		err := tx.Select("id").Where("id = ? AND user_id = ?", id, userID).First(&m).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.NewNotFoundError("Conversation", id)
			}
			return fmt.Errorf("failed to load conversation: %w", err)
		}

		row := &MessageModel{
			ConversationID: id,
			Sender:         string(msg.Sender),
			Text:           msg.Text,
			Timestamp:      msg.Timestamp,
		}
		if err := tx.Create(row).Error; err != nil {
			return fmt.Errorf("failed to append message: %w", err)
		}

		if err := tx.Model(&ConversationModel{}).
			Where("id = ?", id).
			Update("updated_at", msg.Timestamp).Error; err != nil {
			return fmt.Errorf("failed to touch conversation: %w", err)
		}

		return nil
	})
}

// Rename replaces the conversation title and returns the updated
// conversation.
func (r *conversationRepository) Rename(ctx context.Context, id, userID, title string) (*entity.Conversation, error) {
	res := r.db.WithContext(ctx).
		Model(&ConversationModel{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("title", title)

	if res.Error != nil {
		return nil, fmt.Errorf("failed to rename conversation: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, domain.NewNotFoundError("Conversation", id)
	}

	return r.GetByID(ctx, id, userID)
}

// Delete removes the conversation and its messages.
func (r *conversationRepository) Delete(ctx context.Context, id, userID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND user_id = ?", id, userID).Delete(&ConversationModel{})
		if res.Error != nil {
			return fmt.Errorf("failed to delete conversation: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return domain.NewNotFoundError("Conversation", id)
		}

		if err := tx.Where("conversation_id = ?", id).Delete(&MessageModel{}).Error; err != nil {
			return fmt.Errorf("failed to delete messages: %w", err)
		}

		return nil
	})
}

// List returns the user's conversations, most recently active first,
// with transcripts loaded.
func (r *conversationRepository) List(ctx context.Context, userID string) ([]*entity.Conversation, error) {
	var models []ConversationModel
	err := r.db.WithContext(ctx).
		Preload("Messages", func(db *gorm.DB) *gorm.DB {
			return db.Order("messages.id ASC")
		}).
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Find(&models).Error

	if err != nil {
		return nil, fmt.Errorf("failed to list conversations: %w", err)
	}

	result := make([]*entity.Conversation, len(models))
	for i := range models {
		result[i] = toEntityConversation(&models[i])
	}
	return result, nil
}

// Search matches the query case-insensitively against titles and message
// text, returning each matching conversation once.
func (r *conversationRepository) Search(ctx context.Context, userID, query string) ([]*entity.Conversation, error) {
	pattern := "%" + strings.ToLower(query) + "%"

	var ids []string
	err := r.db.WithContext(ctx).
		Model(&ConversationModel{}).
		Distinct("conversations.id").
		Joins("LEFT JOIN messages ON messages.conversation_id = conversations.id").
		Where("conversations.user_id = ?", userID).
		Where("LOWER(conversations.title) LIKE ? OR LOWER(messages.text) LIKE ?", pattern, pattern).
		Pluck("conversations.id", &ids).Error

	if err != nil {
		return nil, fmt.Errorf("failed to search conversations: %w", err)
	}

	if len(ids) == 0 {
		return []*entity.Conversation{}, nil
	}

	var models []ConversationModel
	err = r.db.WithContext(ctx).
		Preload("Messages", func(db *gorm.DB) *gorm.DB {
			return db.Order("messages.id ASC")
		}).
		Where("id IN ?", ids).
		Order("updated_at DESC").
		Find(&models).Error

	if err != nil {
		return nil, fmt.Errorf("failed to load search results: %w", err)
	}

	result := make([]*entity.Conversation, len(models))
	for i := range models {
		result[i] = toEntityConversation(&models[i])
	}
	return result, nil
}
