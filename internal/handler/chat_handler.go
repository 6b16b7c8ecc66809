package handler

import (
	"context"
	"log/slog"

	"github.com/cloudwego/hertz/pkg/app"

	"github.com/rkendel1/AI-RAG-Assistant-Chatbot/internal/domain"
	"github.com/rkendel1/AI-RAG-Assistant-Chatbot/internal/handler/dto"
	"github.com/rkendel1/AI-RAG-Assistant-Chatbot/internal/identity"
)

// ChatHandler handles chat-send HTTP requests. Neither chat route sits
// behind the enforcing JWT middleware: the authenticated route resolves
// the token itself so a dead token degrades to a guest turn instead of
// a 401.
type ChatHandler struct {
	usecase  domain.ChatUsecase
	resolver *identity.Resolver
	logger   *slog.Logger
}

// NewChatHandler creates a new chat handler
func NewChatHandler(usecase domain.ChatUsecase, resolver *identity.Resolver, logger *slog.Logger) *ChatHandler {
	return &ChatHandler{
		usecase:  usecase,
		resolver: resolver,
		logger:   logger,
	}
}

// ChatAuth handles one chat turn for a (nominally) signed-in client.
// POST /api/v1/chat/auth
func (h *ChatHandler) ChatAuth(ctx context.Context, c *app.RequestContext) {
	var req dto.ChatRequest
	if err := c.BindJSON(&req); err != nil {
		ErrorResponse(c, domain.ErrInvalidInput)
		return
	}

	ident := h.resolver.Resolve(string(c.GetHeader("Authorization")))
	if !ident.Authenticated {
		// Token missing or dead: answer as a guest turn rather than
		// bouncing the message the user already typed.
		h.logger.Info("chat auth degraded to guest")
		res, err := h.usecase.ChatGuest(ctx, "", req.Message)
		if err != nil {
			h.logger.Error("guest chat fallback failed", "error", err)
			ErrorResponse(c, err)
			return
		}
		SuccessResponse(c, dto.ChatResponse{Answer: res.Answer, GuestID: res.GuestID})
		return
	}

	res, err := h.usecase.ChatAuthenticated(ctx, ident.UserID, req.ConversationID, req.Message)
	if err != nil {
		h.logger.Error("chat failed", "error", err, "user_id", ident.UserID)
		ErrorResponse(c, err)
		return
	}

	SuccessResponse(c, dto.ChatResponse{
		Answer:         res.Answer,
		ConversationID: res.ConversationID,
	})
}

// ChatGuest handles one chat turn for an anonymous client.
// POST /api/v1/chat/guest
func (h *ChatHandler) ChatGuest(ctx context.Context, c *app.RequestContext) {
	var req dto.GuestChatRequest
	if err := c.BindJSON(&req); err != nil {
		ErrorResponse(c, domain.ErrInvalidInput)
		return
	}

	res, err := h.usecase.ChatGuest(ctx, req.GuestID, req.Message)
	if err != nil {
		h.logger.Error("guest chat failed", "error", err)
		ErrorResponse(c, err)
		return
	}

	SuccessResponse(c, dto.ChatResponse{
		Answer:  res.Answer,
		GuestID: res.GuestID,
	})
}
