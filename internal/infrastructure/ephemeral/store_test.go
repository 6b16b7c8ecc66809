package ephemeral

import (
	"context"
	"testing"
	"time"

	"github.com/rkendel1/AI-RAG-Assistant-Chatbot/internal/domain"
	"github.com/rkendel1/AI-RAG-Assistant-Chatbot/internal/domain/entity"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestStore(ttl time.Duration) (*Store, *fakeClock) {
	clock := &fakeClock{t: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	return newStore(ttl, clock.now), clock
}

func TestStoreAppendAndGet(t *testing.T) {
	store, clock := newTestStore(30 * time.Minute)
	ctx := context.Background()

	id, err := store.Create(ctx)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if id == "" {
		t.Fatal("expected a non-empty guest id")
	}

	msgs, err := store.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get on fresh conversation failed: %v", err)
	}
	if len(msgs) != 0 {
		t.Errorf("fresh conversation has %d messages, want 0", len(msgs))
	}

	if err := store.Append(ctx, id, entity.Message{
		Sender:    entity.SenderUser,
		Text:      "hello",
		Timestamp: clock.now(),
	}); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if err := store.Append(ctx, id, entity.Message{
		Sender:    entity.SenderAssistant,
		Text:      "hi there",
		Timestamp: clock.now(),
	}); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	msgs, err = store.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if len(msgs) != 2 {
		t.Fatalf("got %d messages, want 2", len(msgs))
	}
	if msgs[0].Sender != entity.SenderUser || msgs[0].Text != "hello" {
		t.Errorf("first message = %+v, want user hello", msgs[0])
	}
	if msgs[1].Sender != entity.SenderAssistant {
		t.Errorf("second message sender = %s, want assistant", msgs[1].Sender)
	}
}

func TestStoreUnknownID(t *testing.T) {
	store, _ := newTestStore(30 * time.Minute)
	ctx := context.Background()

	if _, err := store.Get(ctx, "no-such-guest"); !domain.IsNotFound(err) {
		t.Errorf("Get on unknown id returned %v, want NotFound", err)
	}

	err := store.Append(ctx, "no-such-guest", entity.Message{Sender: entity.SenderUser, Text: "x"})
	if !domain.IsNotFound(err) {
		t.Errorf("Append on unknown id returned %v, want NotFound", err)
	}
}

func TestStoreExpiry(t *testing.T) {
	store, clock := newTestStore(30 * time.Minute)
	ctx := context.Background()

	id, _ := store.Create(ctx)

	clock.advance(29 * time.Minute)
	if _, err := store.Get(ctx, id); err != nil {
		t.Fatalf("Get before expiry failed: %v", err)
	}

	// Access refreshes nothing; only Append does. Push past the TTL.
	clock.advance(2 * time.Minute)
	if _, err := store.Get(ctx, id); !domain.IsNotFound(err) {
		t.Errorf("Get after expiry returned %v, want NotFound", err)
	}
}

func TestStoreAppendRefreshesTTL(t *testing.T) {
	store, clock := newTestStore(30 * time.Minute)
	ctx := context.Background()

	id, _ := store.Create(ctx)

	clock.advance(20 * time.Minute)
	if err := store.Append(ctx, id, entity.Message{Sender: entity.SenderUser, Text: "still here"}); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	// 20m + 20m past creation, but only 20m past the last append.
	clock.advance(20 * time.Minute)
	if _, err := store.Get(ctx, id); err != nil {
		t.Errorf("Get after refreshed TTL failed: %v", err)
	}
}

func TestStoreSweep(t *testing.T) {
	store, clock := newTestStore(10 * time.Minute)
	ctx := context.Background()

	stale, _ := store.Create(ctx)
	clock.advance(15 * time.Minute)
	fresh, _ := store.Create(ctx)

	removed := store.Sweep()
	if removed != 1 {
		t.Errorf("Sweep removed %d entries, want 1", removed)
	}
	if store.Len() != 1 {
		t.Errorf("store has %d entries after sweep, want 1", store.Len())
	}
	if _, err := store.Get(ctx, stale); !domain.IsNotFound(err) {
		t.Errorf("stale entry still readable after sweep")
	}
	if _, err := store.Get(ctx, fresh); err != nil {
		t.Errorf("fresh entry lost by sweep: %v", err)
	}
}
