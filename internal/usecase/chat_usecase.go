package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/rkendel1/AI-RAG-Assistant-Chatbot/internal/domain"
	"github.com/rkendel1/AI-RAG-Assistant-Chatbot/internal/domain/entity"
)

const maxMessageLength = 32 * 1024

// chatUsecase implements domain.ChatUsecase. It coordinates the
// conversation stores, optional knowledge retrieval, and the completion
// backend for both authenticated and guest callers.
type chatUsecase struct {
	convRepo    domain.ConversationRepository
	guestStore  domain.GuestConversationStore
	completer   domain.Completer
	retriever   domain.KnowledgeRetriever // nil when retrieval is disabled
	instruction string
	topK        int
	logger      *slog.Logger
}

// NewChatUsecase creates a new ChatUsecase instance. Pass a nil retriever
// to run without knowledge enrichment.
func NewChatUsecase(
	convRepo domain.ConversationRepository,
	guestStore domain.GuestConversationStore,
	completer domain.Completer,
	retriever domain.KnowledgeRetriever,
	instruction string,
	topK int,
	logger *slog.Logger,
) domain.ChatUsecase {
	return &chatUsecase{
		convRepo:    convRepo,
		guestStore:  guestStore,
		completer:   completer,
		retriever:   retriever,
		instruction: instruction,
		topK:        topK,
		logger:      logger,
	}
}

// ChatAuthenticated handles one chat turn for a signed-in user. The user's
// message is committed to the conversation before the completion call, so
// a backend failure never loses what the user typed.
func (u *chatUsecase) ChatAuthenticated(ctx context.Context, userID, conversationID, message string) (*domain.ChatResult, error) {
	if err := validateMessage(message); err != nil {
		return nil, err
	}

	if conversationID == "" {
		conv, err := u.convRepo.Create(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("failed to create conversation: %w", err)
		}
		conversationID = conv.ID
	}

	conv, err := u.convRepo.GetByID(ctx, conversationID, userID)
	if err != nil {
		return nil, err
	}
	prior := conv.Messages

	userMsg := entity.Message{
		Sender:    entity.SenderUser,
		Text:      message,
		Timestamp: time.Now(),
	}
	if err := u.convRepo.AppendMessage(ctx, conversationID, userID, userMsg); err != nil {
		return nil, fmt.Errorf("failed to store user message: %w", err)
	}

	answer, err := u.complete(ctx, prior, message)
	if err != nil {
		return nil, err
	}

	assistantMsg := entity.Message{
		Sender:    entity.SenderAssistant,
		Text:      answer,
		Timestamp: time.Now(),
	}
	if err := u.convRepo.AppendMessage(ctx, conversationID, userID, assistantMsg); err != nil {
		return nil, fmt.Errorf("failed to store assistant message: %w", err)
	}

	u.logger.Info("chat turn completed",
		"user_id", userID,
		"conversation_id", conversationID,
		"answer_len", len(answer),
	)

	return &domain.ChatResult{
		Answer:         answer,
		ConversationID: conversationID,
	}, nil
}

// ChatGuest handles one chat turn for an anonymous caller. An unknown or
// expired guest ID silently starts a fresh conversation instead of
// erroring, since the caller cannot repair a stale ID themselves.
func (u *chatUsecase) ChatGuest(ctx context.Context, guestID, message string) (*domain.ChatResult, error) {
	if err := validateMessage(message); err != nil {
		return nil, err
	}

	var prior []entity.Message
	if guestID != "" {
		msgs, err := u.guestStore.Get(ctx, guestID)
		switch {
		case err == nil:
			prior = msgs
		case domain.IsNotFound(err):
			guestID = ""
		default:
			return nil, fmt.Errorf("failed to load guest conversation: %w", err)
		}
	}
	if guestID == "" {
		id, err := u.guestStore.Create(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to create guest conversation: %w", err)
		}
		guestID = id
	}

	userMsg := entity.Message{
		Sender:    entity.SenderUser,
		Text:      message,
		Timestamp: time.Now(),
	}
	if err := u.guestStore.Append(ctx, guestID, userMsg); err != nil {
		return nil, fmt.Errorf("failed to store user message: %w", err)
	}

	answer, err := u.complete(ctx, prior, message)
	if err != nil {
		return nil, err
	}

	assistantMsg := entity.Message{
		Sender:    entity.SenderAssistant,
		Text:      answer,
		Timestamp: time.Now(),
	}
	if err := u.guestStore.Append(ctx, guestID, assistantMsg); err != nil {
		return nil, fmt.Errorf("failed to store assistant message: %w", err)
	}

	u.logger.Info("guest chat turn completed",
		"guest_id", guestID,
		"answer_len", len(answer),
	)

	return &domain.ChatResult{
		Answer:  answer,
		GuestID: guestID,
	}, nil
}

// complete runs retrieval, assembles the prompt, and calls the backend.
func (u *chatUsecase) complete(ctx context.Context, prior []entity.Message, message string) (string, error) {
	retrieval := u.retrieve(ctx, message)
	turns := assemblePrompt(u.instruction, prior, message, retrieval)

	answer, err := u.completer.Complete(ctx, turns)
	if err != nil {
		return "", err
	}
	return answer, nil
}

// retrieve runs the knowledge search when configured. A retrieval failure
// degrades to answering without grounding rather than failing the chat.
func (u *chatUsecase) retrieve(ctx context.Context, query string) *entity.Retrieval {
	if u.retriever == nil {
		return nil
	}

	snippets, err := u.retriever.Search(ctx, query, u.topK)
	if err != nil {
		u.logger.Warn("knowledge retrieval failed, answering without grounding", "error", err)
		return nil
	}

	return &entity.Retrieval{Snippets: snippets}
}

func validateMessage(message string) error {
	if strings.TrimSpace(message) == "" {
		return domain.NewInvalidInputError("message must not be empty")
	}
	if len(message) > maxMessageLength {
		return domain.NewInvalidInputError("message too long")
	}
	return nil
}
