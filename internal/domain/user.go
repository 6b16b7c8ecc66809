package domain

import (
	"context"

	"github.com/rkendel1/AI-RAG-Assistant-Chatbot/internal/domain/entity"
)

// ============ Repository interface ============

// UserRepository is the user data access interface.
type UserRepository interface {
	// Create creates a user
	Create(ctx context.Context, email, passwordHash string) (*entity.User, error)

	// GetByEmail looks a user up by email (used for login and email checks)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)

	// GetByID looks a user up by id
	GetByID(ctx context.Context, userID string) (*entity.User, error)

	// UpdatePassword replaces the stored password hash
	UpdatePassword(ctx context.Context, userID, passwordHash string) error

	// UpdateLastLogin updates the last login timestamp
	UpdateLastLogin(ctx context.Context, userID string) error
}

// ============ Usecase interface ============

// UserUsecase is the user business logic interface.
type UserUsecase interface {
	// Register creates a new account
	Register(ctx context.Context, email, password string) (*entity.User, error)

	// Login verifies credentials and returns the user
	Login(ctx context.Context, email, password string) (*entity.User, error)

	// GetUser fetches a user by id
	GetUser(ctx context.Context, userID string) (*entity.User, error)

	// EmailExists reports whether an account with the email exists
	EmailExists(ctx context.Context, email string) (bool, error)

	// ResetPassword replaces the password for the account with the email
	ResetPassword(ctx context.Context, email, newPassword string) error
}
