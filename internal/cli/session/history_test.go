package session

import "testing"

func TestHistoryRecallBackwardForward(t *testing.T) {
	h := NewInputHistory()
	h.Add("first")
	h.Add("second")
	h.Add("third")

	// Up walks backward from newest.
	if got, ok := h.Prev(""); !ok || got != "third" {
		t.Fatalf("Prev = %q, %v; want third", got, ok)
	}
	if got, ok := h.Prev(""); !ok || got != "second" {
		t.Fatalf("Prev = %q, %v; want second", got, ok)
	}
	if got, ok := h.Prev(""); !ok || got != "first" {
		t.Fatalf("Prev = %q, %v; want first", got, ok)
	}

	// At the oldest entry, further Up stays put.
	if _, ok := h.Prev(""); ok {
		t.Error("Prev past the oldest entry reported ok")
	}

	// Down walks forward again.
	if got, ok := h.Next(); !ok || got != "second" {
		t.Fatalf("Next = %q, %v; want second", got, ok)
	}
	if got, ok := h.Next(); !ok || got != "third" {
		t.Fatalf("Next = %q, %v; want third", got, ok)
	}
}

func TestHistoryDraftStashAndRestore(t *testing.T) {
	h := NewInputHistory()
	h.Add("sent earlier")

	// Entering recall with a half-typed draft stashes it.
	if got, _ := h.Prev("half-typed dra"); got != "sent earlier" {
		t.Fatalf("Prev = %q, want the history entry", got)
	}

	// Stepping past the newest entry restores the draft and exits recall.
	got, ok := h.Next()
	if !ok || got != "half-typed dra" {
		t.Fatalf("Next = %q, %v; want the stashed draft", got, ok)
	}
	if h.Recalling() {
		t.Error("still recalling after draft restore")
	}

	// Down outside recall does nothing.
	if _, ok := h.Next(); ok {
		t.Error("Next outside recall reported ok")
	}
}

func TestHistoryEmptyAndDuplicates(t *testing.T) {
	h := NewInputHistory()

	if _, ok := h.Prev("draft"); ok {
		t.Error("Prev on empty history reported ok")
	}

	h.Add("same")
	h.Add("same")
	if h.Len() != 1 {
		t.Errorf("consecutive duplicate stored, len = %d", h.Len())
	}

	h.Add("")
	if h.Len() != 1 {
		t.Errorf("empty text stored, len = %d", h.Len())
	}
}

func TestHistorySendDuringRecallResets(t *testing.T) {
	h := NewInputHistory()
	h.Add("one")
	h.Add("two")

	h.Prev("") // recall "two"
	h.Add("three")

	if h.Recalling() {
		t.Error("still recalling after Add")
	}
	// The next Up starts from the newest entry again.
	if got, _ := h.Prev(""); got != "three" {
		t.Errorf("Prev after Add = %q, want three", got)
	}
}
