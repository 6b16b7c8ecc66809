package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rkendel1/AI-RAG-Assistant-Chatbot/internal/domain"
	"github.com/rkendel1/AI-RAG-Assistant-Chatbot/internal/domain/entity"
)

// userRepository is the MySQL implementation of domain.UserRepository.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository instance
func NewUserRepository(db *gorm.DB) domain.UserRepository {
	return &userRepository{db: db}
}

// Create inserts a new account row. Email uniqueness is enforced by the
// unique index, so a duplicate surfaces as AlreadyExists.
func (r *userRepository) Create(ctx context.Context, email, passwordHash string) (*entity.User, error) {
	m := &UserModel{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: passwordHash,
	}

	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domain.NewAlreadyExistsError("User", email)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return toEntityUser(m), nil
}

// GetByEmail looks up an account by its login email.
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	var m UserModel
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("User", email)
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return toEntityUser(&m), nil
}

// GetByID looks up an account by its primary key.
func (r *userRepository) GetByID(ctx context.Context, userID string) (*entity.User, error) {
	var m UserModel
	err := r.db.WithContext(ctx).Where("id = ?", userID).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("User", userID)
		}
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}

	return toEntityUser(&m), nil
}

// UpdatePassword replaces the stored credential hash.
func (r *userRepository) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	res := r.db.WithContext(ctx).
		Model(&UserModel{}).
		Where("id = ?", userID).
		Update("password_hash", passwordHash)

	if res.Error != nil {
		return fmt.Errorf("failed to update password: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.NewNotFoundError("User", userID)
	}

	return nil
}

// UpdateLastLogin records the login timestamp.
func (r *userRepository) UpdateLastLogin(ctx context.Context, userID string) error {
	now := time.Now()
	res := r.db.WithContext(ctx).
		Model(&UserModel{}).
		Where("id = ?", userID).
		Update("last_login_at", now)

	if res.Error != nil {
		return fmt.Errorf("failed to update last login: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.NewNotFoundError("User", userID)
	}

	return nil
}
