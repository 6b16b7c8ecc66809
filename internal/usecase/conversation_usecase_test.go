package usecase

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/rkendel1/AI-RAG-Assistant-Chatbot/internal/domain"
	"github.com/rkendel1/AI-RAG-Assistant-Chatbot/internal/domain/entity"
)

func TestConversationRename(t *testing.T) {
	repo := newFakeConvRepo()
	uc := NewConversationUsecase(repo, testLogger())
	ctx := context.Background()

	conv, _ := repo.Create(ctx, "user-1")

	tests := []struct {
		name    string
		id      string
		userID  string
		title   string
		wantErr func(error) bool
	}{
		{
			name:   "valid rename",
			id:     conv.ID,
			userID: "user-1",
			title:  "Shipping questions",
		},
		{
			name:   "whitespace trimmed",
			id:     conv.ID,
			userID: "user-1",
			title:  "  padded  ",
		},
		{
			name:    "empty title",
			id:      conv.ID,
			userID:  "user-1",
			title:   "   ",
			wantErr: domain.IsInvalidInput,
		},
		{
			name:    "title too long",
			id:      conv.ID,
			userID:  "user-1",
			title:   strings.Repeat("x", 256),
			wantErr: domain.IsInvalidInput,
		},
		{
			name:    "not the owner",
			id:      conv.ID,
			userID:  "user-2",
			title:   "hijack",
			wantErr: domain.IsNotFound,
		},
		{
			name:    "unknown conversation",
			id:      "missing",
			userID:  "user-1",
			title:   "whatever",
			wantErr: domain.IsNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			renamed, err := uc.Rename(ctx, tt.id, tt.userID, tt.title)
			if tt.wantErr != nil {
				if !tt.wantErr(err) {
					t.Errorf("error = %v, want a different class", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if renamed == nil {
				t.Fatal("expected the renamed conversation back")
			}
			if want := strings.TrimSpace(tt.title); renamed.Title != want {
				t.Errorf("returned title = %q, want %q", renamed.Title, want)
			}
		})
	}

	stored, _ := repo.GetByID(ctx, conv.ID, "user-1")
	if stored.Title != "padded" {
		t.Errorf("title = %q, want trimmed %q", stored.Title, "padded")
	}
}

func TestConversationDelete(t *testing.T) {
	repo := newFakeConvRepo()
	uc := NewConversationUsecase(repo, testLogger())
	ctx := context.Background()

	conv, _ := repo.Create(ctx, "user-1")

	if err := uc.Delete(ctx, conv.ID, "user-2"); !domain.IsNotFound(err) {
		t.Errorf("cross-user delete returned %v, want NotFound", err)
	}
	if err := uc.Delete(ctx, conv.ID, "user-1"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := uc.Delete(ctx, conv.ID, "user-1"); !domain.IsNotFound(err) {
		t.Errorf("second delete returned %v, want NotFound", err)
	}
}

func TestConversationSearchBlankQuery(t *testing.T) {
	repo := newFakeConvRepo()
	uc := NewConversationUsecase(repo, testLogger())
	ctx := context.Background()

	conv, _ := repo.Create(ctx, "user-1")
	repo.AppendMessage(ctx, conv.ID, "user-1", entity.Message{
		Sender:    entity.SenderUser,
		Text:      "anything at all",
		Timestamp: time.Now(),
	})

	// A blank query matches nothing rather than everything.
	results, err := uc.Search(ctx, "user-1", "   ")
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("blank query returned %d conversations, want 0", len(results))
	}

	results, err = uc.Search(ctx, "user-1", "ANYTHING")
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(results) != 1 {
		t.Errorf("case-insensitive search returned %d conversations, want 1", len(results))
	}
}
