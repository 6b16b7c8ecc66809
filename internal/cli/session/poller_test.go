package session

import (
	"context"
	"errors"
	"testing"
	"time"
)

func newTestPoller(validate func(ctx context.Context) (bool, error)) (*TokenPoller, *[]time.Duration) {
	p := NewTokenPoller(validate)
	var slept []time.Duration
	p.sleep = func(d time.Duration) { slept = append(slept, d) }
	return p, &slept
}

func TestPollerValidToken(t *testing.T) {
	p, slept := newTestPoller(func(ctx context.Context) (bool, error) {
		return true, nil
	})

	if got := p.Check(context.Background()); got != PollValid {
		t.Errorf("Check = %v, want PollValid", got)
	}
	if len(*slept) != 0 {
		t.Errorf("slept %v on a clean check", *slept)
	}
}

func TestPollerInvalidationFiresOnce(t *testing.T) {
	p, _ := newTestPoller(func(ctx context.Context) (bool, error) {
		return false, nil
	})

	if got := p.Check(context.Background()); got != PollInvalidated {
		t.Fatalf("first Check = %v, want PollInvalidated", got)
	}
	if !p.Triggered() {
		t.Error("Triggered = false after invalidation")
	}

	// Repeated rejections must not fire the reset again.
	for i := 0; i < 3; i++ {
		if got := p.Check(context.Background()); got != PollSuppressed {
			t.Errorf("repeat Check = %v, want PollSuppressed", got)
		}
	}
}

func TestPollerRetriesTransportErrors(t *testing.T) {
	calls := 0
	p, slept := newTestPoller(func(ctx context.Context) (bool, error) {
		calls++
		if calls < 3 {
			return false, errors.New("connection refused")
		}
		return true, nil
	})

	if got := p.Check(context.Background()); got != PollValid {
		t.Errorf("Check = %v, want PollValid after retries", got)
	}
	if calls != 3 {
		t.Errorf("validate called %d times, want 3", calls)
	}

	// Backoff grows with the attempt number.
	want := []time.Duration{200 * time.Millisecond, 400 * time.Millisecond}
	if len(*slept) != len(want) {
		t.Fatalf("slept %v, want %v", *slept, want)
	}
	for i, d := range want {
		if (*slept)[i] != d {
			t.Errorf("backoff %d = %v, want %v", i, (*slept)[i], d)
		}
	}
}

func TestPollerInconclusive(t *testing.T) {
	p, _ := newTestPoller(func(ctx context.Context) (bool, error) {
		return false, errors.New("network down")
	})

	if got := p.Check(context.Background()); got != PollInconclusive {
		t.Errorf("Check = %v, want PollInconclusive", got)
	}
	// Unreachable is not invalid: no reset fires.
	if p.Triggered() {
		t.Error("transport failure triggered invalidation")
	}
}
