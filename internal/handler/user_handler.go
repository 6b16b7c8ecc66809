package handler

import (
	"context"
	"log/slog"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/hertz-contrib/jwt"

	"github.com/rkendel1/AI-RAG-Assistant-Chatbot/internal/domain"
	"github.com/rkendel1/AI-RAG-Assistant-Chatbot/internal/domain/entity"
	"github.com/rkendel1/AI-RAG-Assistant-Chatbot/internal/handler/dto"
)

// UserHandler handles auth and account HTTP requests.
type UserHandler struct {
	usecase        domain.UserUsecase
	authMiddleware *jwt.HertzJWTMiddleware
	logger         *slog.Logger
}

// NewUserHandler creates a new user handler
func NewUserHandler(usecase domain.UserUsecase, jwtSecret string, logger *slog.Logger) *UserHandler {
	authMiddleware, err := jwt.New(&jwt.HertzJWTMiddleware{
		Realm:       "lumina-api",
		Key:         []byte(jwtSecret),
		Timeout:     time.Hour * 24,
		MaxRefresh:  time.Hour * 24 * 7,
		IdentityKey: "user_id",

		Authenticator: func(ctx context.Context, c *app.RequestContext) (interface{}, error) {
			var loginReq dto.LoginRequest
			if err := c.BindJSON(&loginReq); err != nil {
				return nil, jwt.ErrMissingLoginValues
			}

			user, err := usecase.Login(ctx, loginReq.Email, loginReq.Password)
			if err != nil {
				logger.Error("login failed", "email", loginReq.Email, "error", err)
				return nil, jwt.ErrFailedAuthentication
			}

			// Stash the user so LoginResponse can include it.
			c.Set("user", user)
			return user, nil
		},

		PayloadFunc: func(data interface{}) jwt.MapClaims {
			if user, ok := data.(*entity.User); ok {
				return jwt.MapClaims{
					"user_id": user.ID,
					"email":   user.Email,
				}
			}
			return jwt.MapClaims{}
		},

		IdentityHandler: func(ctx context.Context, c *app.RequestContext) interface{} {
			claims := jwt.ExtractClaims(ctx, c)
			if userID, ok := claims["user_id"].(string); ok {
				c.Set("user_id", userID)
				return userID
			}
			return ""
		},

		Authorizator: func(data interface{}, ctx context.Context, c *app.RequestContext) bool {
			return data != nil
		},

		Unauthorized: unauthorizedResponse,

		LoginResponse: func(ctx context.Context, c *app.RequestContext, code int, token string, expire time.Time) {
			user, exists := c.Get("user")
			if !exists {
				c.JSON(consts.StatusInternalServerError, map[string]interface{}{
					"code":    "INTERNAL_ERROR",
					"message": "failed to get user info",
				})
				return
			}
			userEntity := user.(*entity.User)

			c.JSON(consts.StatusOK, map[string]interface{}{
				"code": "SUCCESS",
				"data": dto.LoginResponse{
					Token:  token,
					Expire: expire.Format(time.RFC3339),
					User:   dto.ToUserResponse(userEntity),
				},
			})
		},

		TokenLookup:   "header: Authorization, query: token",
		TokenHeadName: "Bearer",
		TimeFunc:      time.Now,
	})

	if err != nil {
		logger.Error("failed to create jwt middleware", "error", err)
		panic(err)
	}

	return &UserHandler{
		usecase:        usecase,
		authMiddleware: authMiddleware,
		logger:         logger,
	}
}

// AuthMiddleware returns the JWT middleware used to protect routes.
func (h *UserHandler) AuthMiddleware() app.HandlerFunc {
	return h.authMiddleware.MiddlewareFunc()
}

// Signup handles account creation
// POST /api/v1/auth/signup
func (h *UserHandler) Signup(ctx context.Context, c *app.RequestContext) {
	var req dto.SignupRequest
	if err := c.BindJSON(&req); err != nil {
		h.logger.Error("invalid signup request", "error", err)
		ErrorResponse(c, domain.ErrInvalidInput)
		return
	}

	user, err := h.usecase.Register(ctx, req.Email, req.Password)
	if err != nil {
		h.logger.Error("signup failed", "error", err)
		ErrorResponse(c, err)
		return
	}

	CreatedResponse(c, dto.ToUserResponse(user))
}

// Login handles credential login (via the JWT LoginHandler)
// POST /api/v1/auth/login
func (h *UserHandler) Login(ctx context.Context, c *app.RequestContext) {
	h.authMiddleware.LoginHandler(ctx, c)
}

// RefreshToken exchanges a live token for a fresh one
// POST /api/v1/auth/refresh
func (h *UserHandler) RefreshToken(ctx context.Context, c *app.RequestContext) {
	h.authMiddleware.RefreshHandler(ctx, c)
}

// VerifyEmail reports whether an account exists for the email. Backs the
// existence check before the password-reset form is shown.
// GET /api/v1/auth/verify-email?email=
func (h *UserHandler) VerifyEmail(ctx context.Context, c *app.RequestContext) {
	email := c.Query("email")
	if email == "" {
		ErrorResponse(c, domain.NewInvalidInputError("email query parameter is required"))
		return
	}

	exists, err := h.usecase.EmailExists(ctx, email)
	if err != nil {
		h.logger.Error("email verification failed", "error", err)
		ErrorResponse(c, err)
		return
	}

	SuccessResponse(c, dto.EmailCheckResponse{Exists: exists})
}

// ResetPassword replaces the password for an existing account
// POST /api/v1/auth/reset-password
func (h *UserHandler) ResetPassword(ctx context.Context, c *app.RequestContext) {
	var req dto.ResetPasswordRequest
	if err := c.BindJSON(&req); err != nil {
		h.logger.Error("invalid reset-password request", "error", err)
		ErrorResponse(c, domain.ErrInvalidInput)
		return
	}

	if err := h.usecase.ResetPassword(ctx, req.Email, req.NewPassword); err != nil {
		h.logger.Error("password reset failed", "error", err)
		ErrorResponse(c, err)
		return
	}

	SuccessResponse(c, map[string]string{"message": "password reset successfully"})
}

// ValidateToken confirms the presented token is still live. The route is
// behind the auth middleware, so reaching this handler means the token
// verified; clients poll this to detect invalidation.
// GET /api/v1/auth/validate-token
func (h *UserHandler) ValidateToken(ctx context.Context, c *app.RequestContext) {
	SuccessResponse(c, dto.TokenValidationResponse{Valid: true})
}

// GetCurrentUser returns the signed-in account
// GET /api/v1/users/me
func (h *UserHandler) GetCurrentUser(ctx context.Context, c *app.RequestContext) {
	userID := currentUserID(c)
	if userID == "" {
		h.logger.Error("user_id not found in context")
		ErrorResponse(c, domain.ErrUnauthorized)
		return
	}

	user, err := h.usecase.GetUser(ctx, userID)
	if err != nil {
		h.logger.Error("failed to get current user", "error", err, "user_id", userID)
		ErrorResponse(c, err)
		return
	}

	SuccessResponse(c, dto.ToUserResponse(user))
}

// unauthorizedResponse is the JWT middleware's rejection body. Token-poller
// clients read "valid" from the 401 payload, so it always carries one.
func unauthorizedResponse(ctx context.Context, c *app.RequestContext, code int, message string) {
	c.JSON(code, map[string]interface{}{
		"code":    "UNAUTHORIZED",
		"message": message,
		"data":    dto.TokenValidationResponse{Valid: false},
	})
}

// currentUserID reads the authenticated user set by the JWT middleware.
func currentUserID(c *app.RequestContext) string {
	val, exists := c.Get("user_id")
	if !exists {
		return ""
	}
	userID, ok := val.(string)
	if !ok {
		return ""
	}
	return userID
}
