package handler

import (
	"context"
	"log/slog"

	"github.com/cloudwego/hertz/pkg/app"

	"github.com/rkendel1/AI-RAG-Assistant-Chatbot/internal/domain"
	"github.com/rkendel1/AI-RAG-Assistant-Chatbot/internal/handler/dto"
)

// ConversationHandler handles conversation management HTTP requests.
// Every route here sits behind the auth middleware; guests have no
// conversation management surface at all.
type ConversationHandler struct {
	usecase domain.ConversationUsecase
	logger  *slog.Logger
}

// NewConversationHandler creates a new conversation handler
func NewConversationHandler(usecase domain.ConversationUsecase, logger *slog.Logger) *ConversationHandler {
	return &ConversationHandler{
		usecase: usecase,
		logger:  logger,
	}
}

// Create starts an empty conversation
// POST /api/v1/conversations
func (h *ConversationHandler) Create(ctx context.Context, c *app.RequestContext) {
	userID := currentUserID(c)
	if userID == "" {
		ErrorResponse(c, domain.ErrUnauthorized)
		return
	}

	conv, err := h.usecase.Create(ctx, userID)
	if err != nil {
		h.logger.Error("failed to create conversation", "error", err, "user_id", userID)
		ErrorResponse(c, err)
		return
	}

	CreatedResponse(c, dto.ToConversationResponse(conv))
}

// Get returns one conversation with its transcript
// GET /api/v1/conversations/:id
func (h *ConversationHandler) Get(ctx context.Context, c *app.RequestContext) {
	userID := currentUserID(c)
	if userID == "" {
		ErrorResponse(c, domain.ErrUnauthorized)
		return
	}

	id := c.Param("id")
	if id == "" {
		ErrorResponse(c, domain.ErrInvalidInput)
		return
	}

	conv, err := h.usecase.Get(ctx, id, userID)
	if err != nil {
		ErrorResponse(c, err)
		return
	}

	SuccessResponse(c, dto.ToConversationResponse(conv))
}

// List returns the user's conversations, most recently active first
// GET /api/v1/conversations
func (h *ConversationHandler) List(ctx context.Context, c *app.RequestContext) {
	userID := currentUserID(c)
	if userID == "" {
		ErrorResponse(c, domain.ErrUnauthorized)
		return
	}

	convs, err := h.usecase.List(ctx, userID)
	if err != nil {
		h.logger.Error("failed to list conversations", "error", err, "user_id", userID)
		ErrorResponse(c, err)
		return
	}

	SuccessResponse(c, ListResponse{
		Items:      dto.ToConversationSummaries(convs),
		TotalCount: len(convs),
	})
}

// Rename sets a new title
// PUT /api/v1/conversations/:id
func (h *ConversationHandler) Rename(ctx context.Context, c *app.RequestContext) {
	userID := currentUserID(c)
	if userID == "" {
		ErrorResponse(c, domain.ErrUnauthorized)
		return
	}

	id := c.Param("id")
	if id == "" {
		ErrorResponse(c, domain.ErrInvalidInput)
		return
	}

	var req dto.RenameConversationRequest
	if err := c.BindJSON(&req); err != nil {
		ErrorResponse(c, domain.ErrInvalidInput)
		return
	}

	conv, err := h.usecase.Rename(ctx, id, userID, req.Title)
	if err != nil {
		ErrorResponse(c, err)
		return
	}

	SuccessResponse(c, dto.ToConversationResponse(conv))
}

// Delete removes a conversation permanently
// DELETE /api/v1/conversations/:id
func (h *ConversationHandler) Delete(ctx context.Context, c *app.RequestContext) {
	userID := currentUserID(c)
	if userID == "" {
		ErrorResponse(c, domain.ErrUnauthorized)
		return
	}

	id := c.Param("id")
	if id == "" {
		ErrorResponse(c, domain.ErrInvalidInput)
		return
	}

	if err := h.usecase.Delete(ctx, id, userID); err != nil {
		ErrorResponse(c, err)
		return
	}

	SuccessResponse(c, map[string]string{"message": "conversation deleted"})
}

// Search finds conversations matching the query in titles or messages
// GET /api/v1/conversations/search/:query
func (h *ConversationHandler) Search(ctx context.Context, c *app.RequestContext) {
	userID := currentUserID(c)
	if userID == "" {
		ErrorResponse(c, domain.ErrUnauthorized)
		return
	}

	query := c.Param("query")

	convs, err := h.usecase.Search(ctx, userID, query)
	if err != nil {
		h.logger.Error("conversation search failed", "error", err, "user_id", userID)
		ErrorResponse(c, err)
		return
	}

	SuccessResponse(c, ListResponse{
		Items:      dto.ToConversationSummaries(convs),
		TotalCount: len(convs),
	})
}
