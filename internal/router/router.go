package router

import (
	"github.com/cloudwego/hertz/pkg/app/server"

	"github.com/rkendel1/AI-RAG-Assistant-Chatbot/internal/handler"
	"github.com/rkendel1/AI-RAG-Assistant-Chatbot/internal/middleware"
)

// Setup sets up all routes
func Setup(
	h *server.Hertz,
	allowedOrigins []string,
	userHandler *handler.UserHandler,
	conversationHandler *handler.ConversationHandler,
	chatHandler *handler.ChatHandler,
	healthHandler *handler.HealthHandler,
) {
	// Global middleware
	h.Use(middleware.Recovery())
	h.Use(middleware.Logger())
	h.Use(middleware.CORS(allowedOrigins))

	// Health check routes (no authentication required)
	h.GET("/ping", healthHandler.Ping)
	h.GET("/health/ready", healthHandler.Readiness)
	h.GET("/health/live", healthHandler.Liveness)

	// API v1 routes
	apiV1 := h.Group("/api/v1")
	{
		// ============ Public routes (no authentication required) ============
		auth := apiV1.Group("/auth")
		{
			auth.POST("/signup", userHandler.Signup)
			auth.POST("/login", userHandler.Login)
			auth.POST("/refresh", userHandler.RefreshToken)
			auth.GET("/verify-email", userHandler.VerifyEmail)
			auth.POST("/reset-password", userHandler.ResetPassword)
		}

		// Chat routes resolve the token themselves so a dead token
		// degrades to a guest turn instead of a 401.
		chat := apiV1.Group("/chat")
		{
			chat.POST("/auth", chatHandler.ChatAuth)
			chat.POST("/guest", chatHandler.ChatGuest)
		}

		// ============ Protected routes (JWT authentication required) ============
		authorized := apiV1.Group("")
		authorized.Use(userHandler.AuthMiddleware())
		{
			authorized.GET("/auth/validate-token", userHandler.ValidateToken)
			authorized.GET("/users/me", userHandler.GetCurrentUser)

			conversations := authorized.Group("/conversations")
			{
				conversations.POST("", conversationHandler.Create)
				conversations.GET("", conversationHandler.List)
				conversations.GET("/:id", conversationHandler.Get)
				conversations.PUT("/:id", conversationHandler.Rename)
				conversations.DELETE("/:id", conversationHandler.Delete)
				conversations.GET("/search/:query", conversationHandler.Search)
			}
		}
	}
}
