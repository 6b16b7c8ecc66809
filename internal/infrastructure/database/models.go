package database

import (
	"time"

	"gorm.io/gorm"

	"github.com/rkendel1/AI-RAG-Assistant-Chatbot/internal/domain/entity"
)

// UserModel is the persistence shape of an account row.
type UserModel struct {
	ID           string `gorm:"primaryKey;size:36"`
	Email        string `gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string `gorm:"size:255;not null"`
	LastLoginAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName overrides the default pluralization.
func (UserModel) TableName() string { return "users" }

// ConversationModel is the persistence shape of a conversation row.
// Messages are a child table so appends never rewrite the transcript.
type ConversationModel struct {
	ID        string         `gorm:"primaryKey;size:36"`
	UserID    string         `gorm:"index;size:36;not null"`
	Title     string         `gorm:"size:255;not null"`
	Messages  []MessageModel `gorm:"foreignKey:ConversationID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (ConversationModel) TableName() string { return "conversations" }

// MessageModel is one transcript turn. The auto-increment ID preserves
// append order even when timestamps collide.
type MessageModel struct {
	ID             uint      `gorm:"primaryKey;autoIncrement"`
	ConversationID string    `gorm:"index;size:36;not null"`
	Sender         string    `gorm:"size:16;not null"`
	Text           string    `gorm:"type:text;not null"`
	Timestamp      time.Time `gorm:"not null"`
}

func (MessageModel) TableName() string { return "messages" }

// Migrate creates or updates the schema for all models.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&UserModel{}, &ConversationModel{}, &MessageModel{})
}

func toEntityUser(m *UserModel) *entity.User {
	return &entity.User{
		ID:           m.ID,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		LastLoginAt:  m.LastLoginAt,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func toEntityMessages(models []MessageModel) []entity.Message {
	msgs := make([]entity.Message, 0, len(models))
	for _, m := range models {
		msgs = append(msgs, entity.Message{
			Sender:    entity.Sender(m.Sender),
			Text:      m.Text,
			Timestamp: m.Timestamp,
		})
	}
	return msgs
}

func toEntityConversation(m *ConversationModel) *entity.Conversation {
	return &entity.Conversation{
		ID:        m.ID,
		UserID:    m.UserID,
		Title:     m.Title,
		Messages:  toEntityMessages(m.Messages),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
