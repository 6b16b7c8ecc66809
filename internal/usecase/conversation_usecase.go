package usecase

import (
	"context"
	"log/slog"
	"strings"

	"github.com/rkendel1/AI-RAG-Assistant-Chatbot/internal/domain"
	"github.com/rkendel1/AI-RAG-Assistant-Chatbot/internal/domain/entity"
)

const maxTitleLength = 255

// conversationUsecase implements domain.ConversationUsecase.
type conversationUsecase struct {
	convRepo domain.ConversationRepository
	logger   *slog.Logger
}

// NewConversationUsecase creates a new ConversationUsecase instance.
func NewConversationUsecase(
	convRepo domain.ConversationRepository,
	logger *slog.Logger,
) domain.ConversationUsecase {
	return &conversationUsecase{
		convRepo: convRepo,
		logger:   logger,
	}
}

// Create starts an empty conversation for the user.
func (u *conversationUsecase) Create(ctx context.Context, userID string) (*entity.Conversation, error) {
	conv, err := u.convRepo.Create(ctx, userID)
	if err != nil {
		return nil, err
	}

	u.logger.Info("conversation created", "conversation_id", conv.ID, "user_id", userID)
	return conv, nil
}

// Get loads one conversation with its transcript.
func (u *conversationUsecase) Get(ctx context.Context, id, userID string) (*entity.Conversation, error) {
	return u.convRepo.GetByID(ctx, id, userID)
}

// Rename sets a new title and returns the updated conversation.
func (u *conversationUsecase) Rename(ctx context.Context, id, userID, title string) (*entity.Conversation, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, domain.NewInvalidInputError("title must not be empty")
	}
	if len(title) > maxTitleLength {
		return nil, domain.NewInvalidInputError("title too long (max 255 characters)")
	}

	conv, err := u.convRepo.Rename(ctx, id, userID, title)
	if err != nil {
		return nil, err
	}

	u.logger.Info("conversation renamed", "conversation_id", id, "user_id", userID)
	return conv, nil
}

// Delete removes a conversation permanently.
func (u *conversationUsecase) Delete(ctx context.Context, id, userID string) error {
	if err := u.convRepo.Delete(ctx, id, userID); err != nil {
		return err
	}

	u.logger.Info("conversation deleted", "conversation_id", id, "user_id", userID)
	return nil
}

// List returns all of the user's conversations, most recent first.
func (u *conversationUsecase) List(ctx context.Context, userID string) ([]*entity.Conversation, error) {
	return u.convRepo.List(ctx, userID)
}

// Search finds conversations whose title or messages contain the query.
// A blank query matches nothing rather than everything.
func (u *conversationUsecase) Search(ctx context.Context, userID, query string) ([]*entity.Conversation, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []*entity.Conversation{}, nil
	}
	return u.convRepo.Search(ctx, userID, query)
}
