package usecase

import (
	"context"
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/rkendel1/AI-RAG-Assistant-Chatbot/internal/domain"
	"github.com/rkendel1/AI-RAG-Assistant-Chatbot/internal/domain/entity"
)

type fakeUserRepo struct {
	byEmail map[string]*entity.User
	byID    map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byEmail: make(map[string]*entity.User),
		byID:    make(map[string]*entity.User),
	}
}

func (r *fakeUserRepo) put(u *entity.User) {
	r.byEmail[u.Email] = u
	r.byID[u.ID] = u
}

func (r *fakeUserRepo) Create(ctx context.Context, email, passwordHash string) (*entity.User, error) {
	if _, ok := r.byEmail[email]; ok {
		return nil, domain.NewAlreadyExistsError("User", email)
	}
	u := &entity.User{
		ID:           "id-" + email,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	r.put(u)
	return u, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	if u, ok := r.byEmail[email]; ok {
		return u, nil
	}
	return nil, domain.NewNotFoundError("User", email)
}

func (r *fakeUserRepo) GetByID(ctx context.Context, userID string) (*entity.User, error) {
	if u, ok := r.byID[userID]; ok {
		return u, nil
	}
	return nil, domain.NewNotFoundError("User", userID)
}

func (r *fakeUserRepo) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	u, ok := r.byID[userID]
	if !ok {
		return domain.NewNotFoundError("User", userID)
	}
	u.PasswordHash = passwordHash
	return nil
}

func (r *fakeUserRepo) UpdateLastLogin(ctx context.Context, userID string) error {
	u, ok := r.byID[userID]
	if !ok {
		return domain.NewNotFoundError("User", userID)
	}
	now := time.Now()
	u.LastLoginAt = &now
	return nil
}

func TestRegister(t *testing.T) {
	tests := []struct {
		name        string
		email       string
		password    string
		setup       func(*fakeUserRepo)
		wantErr     bool
		errContains string
	}{
		{
			name:     "valid registration",
			email:    "alice@example.com",
			password: "password123",
		},
		{
			name:     "email already registered",
			email:    "taken@example.com",
			password: "password123",
			setup: func(r *fakeUserRepo) {
				r.put(&entity.User{ID: "existing", Email: "taken@example.com"})
			},
			wantErr:     true,
			errContains: "already exists",
		},
		{
			name:        "malformed email",
			email:       "not-an-email",
			password:    "password123",
			wantErr:     true,
			errContains: "invalid email",
		},
		{
			name:        "email with spaces",
			email:       "a b@example.com",
			password:    "password123",
			wantErr:     true,
			errContains: "invalid email",
		},
		{
			name:        "password too short",
			email:       "bob@example.com",
			password:    "12345",
			wantErr:     true,
			errContains: "at least 6 characters",
		},
		{
			name:        "password too long",
			email:       "bob@example.com",
			password:    strings.Repeat("a", 73),
			wantErr:     true,
			errContains: "too long",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeUserRepo()
			if tt.setup != nil {
				tt.setup(repo)
			}

			uc := NewUserUsecase(repo, testLogger())
			user, err := uc.Register(context.Background(), tt.email, tt.password)

			if tt.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				if tt.errContains != "" && !strings.Contains(err.Error(), tt.errContains) {
					t.Errorf("error = %v, want it to contain %q", err, tt.errContains)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if user == nil {
				t.Fatal("expected a user")
			}
			if user.PasswordHash == tt.password {
				t.Error("password stored in the clear")
			}
		})
	}
}

func TestLogin(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("correct-password"), bcrypt.DefaultCost)

	seed := func(r *fakeUserRepo) {
		r.put(&entity.User{
			ID:           "user-1",
			Email:        "alice@example.com",
			PasswordHash: string(hash),
		})
	}

	tests := []struct {
		name        string
		email       string
		password    string
		setup       func(*fakeUserRepo)
		wantErr     bool
		errContains string
	}{
		{
			name:     "valid credentials",
			email:    "alice@example.com",
			password: "correct-password",
			setup:    seed,
		},
		{
			name:        "unknown email",
			email:       "nobody@example.com",
			password:    "whatever",
			setup:       seed,
			wantErr:     true,
			errContains: "invalid email or password",
		},
		{
			name:        "wrong password",
			email:       "alice@example.com",
			password:    "wrong-password",
			setup:       seed,
			wantErr:     true,
			errContains: "invalid email or password",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeUserRepo()
			if tt.setup != nil {
				tt.setup(repo)
			}

			uc := NewUserUsecase(repo, testLogger())
			user, err := uc.Login(context.Background(), tt.email, tt.password)

			if tt.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				if tt.errContains != "" && !strings.Contains(err.Error(), tt.errContains) {
					t.Errorf("error = %v, want it to contain %q", err, tt.errContains)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if user == nil || user.ID != "user-1" {
				t.Errorf("user = %+v, want user-1", user)
			}
		})
	}
}

func TestEmailExists(t *testing.T) {
	repo := newFakeUserRepo()
	repo.put(&entity.User{ID: "user-1", Email: "alice@example.com"})
	uc := NewUserUsecase(repo, testLogger())
	ctx := context.Background()

	exists, err := uc.EmailExists(ctx, "alice@example.com")
	if err != nil || !exists {
		t.Errorf("EmailExists(alice) = %v, %v; want true", exists, err)
	}

	exists, err = uc.EmailExists(ctx, "bob@example.com")
	if err != nil || exists {
		t.Errorf("EmailExists(bob) = %v, %v; want false", exists, err)
	}

	if _, err := uc.EmailExists(ctx, "junk"); !domain.IsInvalidInput(err) {
		t.Errorf("EmailExists(junk) error = %v, want InvalidInput", err)
	}
}

func TestResetPassword(t *testing.T) {
	oldHash, _ := bcrypt.GenerateFromPassword([]byte("old-password"), bcrypt.DefaultCost)
	repo := newFakeUserRepo()
	repo.put(&entity.User{
		ID:           "user-1",
		Email:        "alice@example.com",
		PasswordHash: string(oldHash),
	})
	uc := NewUserUsecase(repo, testLogger())
	ctx := context.Background()

	if err := uc.ResetPassword(ctx, "alice@example.com", "new-password"); err != nil {
		t.Fatalf("ResetPassword failed: %v", err)
	}

	// The old credential stops working and the new one takes over.
	if _, err := uc.Login(ctx, "alice@example.com", "old-password"); err == nil {
		t.Error("old password still accepted after reset")
	}
	if _, err := uc.Login(ctx, "alice@example.com", "new-password"); err != nil {
		t.Errorf("new password rejected after reset: %v", err)
	}

	if err := uc.ResetPassword(ctx, "missing@example.com", "whatever1"); !domain.IsNotFound(err) {
		t.Errorf("reset for unknown email returned %v, want NotFound", err)
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := hashPassword("securePassword123")
	if err != nil {
		t.Fatalf("hashPassword failed: %v", err)
	}
	if hash == "securePassword123" {
		t.Error("hash equals the plaintext")
	}

	if err := verifyPassword(hash, "securePassword123"); err != nil {
		t.Error("correct password rejected")
	}
	if err := verifyPassword(hash, "wrongPassword"); err == nil {
		t.Error("wrong password accepted")
	}

	// bcrypt salts, so two hashes of the same input differ.
	hash2, _ := hashPassword("securePassword123")
	if hash == hash2 {
		t.Error("identical hashes for the same password")
	}
}
