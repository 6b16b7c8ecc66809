package session

import (
	"context"
	"time"
)

// PollOutcome is the result of one token liveness check.
type PollOutcome int

const (
	// PollValid means the token verified.
	PollValid PollOutcome = iota
	// PollInvalidated means the token was rejected and this is the FIRST
	// detection; the caller should reset the session exactly once.
	PollInvalidated
	// PollSuppressed means the token is invalid but the reset was already
	// triggered; repeated failures must not loop resets.
	PollSuppressed
	// PollInconclusive means the check could not be completed (transport
	// errors on every attempt); the token's state is unknown.
	PollInconclusive
)

// TokenPoller periodically re-validates the auth token. Transport errors
// are retried with a growing backoff before giving up on the attempt;
// a definitive rejection fires the invalidation signal exactly once.
type TokenPoller struct {
	validate  func(ctx context.Context) (bool, error)
	attempts  int
	backoff   time.Duration
	sleep     func(time.Duration)
	triggered bool
}

// NewTokenPoller creates a poller around a validate call that returns
// (false, nil) for a definitive rejection and an error for transport
// failures.
func NewTokenPoller(validate func(ctx context.Context) (bool, error)) *TokenPoller {
	return &TokenPoller{
		validate: validate,
		attempts: 3,
		backoff:  200 * time.Millisecond,
		sleep:    time.Sleep,
	}
}

// Check runs one poll cycle.
func (p *TokenPoller) Check(ctx context.Context) PollOutcome {
	for attempt := 1; attempt <= p.attempts; attempt++ {
		valid, err := p.validate(ctx)
		if err != nil {
			if attempt < p.attempts {
				p.sleep(time.Duration(attempt) * p.backoff)
			}
			continue
		}
		if valid {
			return PollValid
		}
		if p.triggered {
			return PollSuppressed
		}
		p.triggered = true
		return PollInvalidated
	}
	return PollInconclusive
}

// Triggered reports whether the invalidation signal has already fired.
func (p *TokenPoller) Triggered() bool {
	return p.triggered
}
