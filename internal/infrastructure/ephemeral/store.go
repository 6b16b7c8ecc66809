// Package ephemeral keeps guest conversations in process memory. Nothing
// here survives a restart, which is the point: guests get continuity within
// a browsing session and no stored footprint beyond it.
package ephemeral

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rkendel1/AI-RAG-Assistant-Chatbot/internal/domain"
	"github.com/rkendel1/AI-RAG-Assistant-Chatbot/internal/domain/entity"
)

type guestConversation struct {
	messages  []entity.Message
	createdAt time.Time
	updatedAt time.Time
}

// Store is an in-memory, TTL-bounded implementation of
// domain.GuestConversationStore.
type Store struct {
	mu    sync.Mutex
	ttl   time.Duration
	now   func() time.Time
	convs map[string]*guestConversation
}

// NewStore creates a guest store whose entries expire after ttl of
// inactivity.
func NewStore(ttl time.Duration) *Store {
	return newStore(ttl, time.Now)
}

func newStore(ttl time.Duration, now func() time.Time) *Store {
	return &Store{
		ttl:   ttl,
		now:   now,
		convs: make(map[string]*guestConversation),
	}
}

var _ domain.GuestConversationStore = (*Store)(nil)

// Create mints a fresh guest conversation and returns its ID.
func (s *Store) Create(ctx context.Context) (string, error) {
	id := uuid.NewString()
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.convs[id] = &guestConversation{
		createdAt: now,
		updatedAt: now,
	}
	return id, nil
}

// Get returns a copy of the transcript. An expired or unknown ID is
// NotFound; the caller decides whether that means minting a new one.
func (s *Store) Get(ctx context.Context, guestID string) ([]entity.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv, ok := s.convs[guestID]
	if !ok || s.expired(conv) {
		delete(s.convs, guestID)
		return nil, domain.NewNotFoundError("GuestConversation", guestID)
	}

	out := make([]entity.Message, len(conv.messages))
	copy(out, conv.messages)
	return out, nil
}

// Append adds a turn and refreshes the entry's TTL.
func (s *Store) Append(ctx context.Context, guestID string, msg entity.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv, ok := s.convs[guestID]
	if !ok || s.expired(conv) {
		delete(s.convs, guestID)
		return domain.NewNotFoundError("GuestConversation", guestID)
	}

	conv.messages = append(conv.messages, msg)
	conv.updatedAt = s.now()
	return nil
}

// Len reports the number of live entries. Used by tests and the sweeper log.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.convs)
}

// Sweep drops every expired entry and returns how many were removed.
func (s *Store) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, conv := range s.convs {
		if s.expired(conv) {
			delete(s.convs, id)
			removed++
		}
	}
	return removed
}

// Run sweeps periodically until the context is cancelled. Expiry is also
// checked on access, so the sweeper only bounds memory for abandoned guests.
func (s *Store) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}

func (s *Store) expired(conv *guestConversation) bool {
	return s.now().Sub(conv.updatedAt) > s.ttl
}
