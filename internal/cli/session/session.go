package session

import "context"

// ChatAPI is the slice of the server client the session needs.
type ChatAPI interface {
	CreateConversation(ctx context.Context) (string, error)
	ChatAuth(ctx context.Context, conversationID, message string) (answer string, err error)
	ChatGuest(ctx context.Context, guestID, message string) (answer, guestID2 string, err error)
}

// Session reconciles conversation identity across sends. Authenticated
// sessions create their conversation server-side before the first chat
// call so the id exists for it; guest sessions let the server mint the id
// on the first send and reuse it afterwards.
type Session struct {
	api           ChatAPI
	authenticated bool

	conversationID string
	guestID        string
}

// NewSession creates a session. An existing conversationID resumes that
// conversation; pass "" to start fresh.
func NewSession(api ChatAPI, authenticated bool, conversationID string) *Session {
	return &Session{
		api:            api,
		authenticated:  authenticated,
		conversationID: conversationID,
	}
}

// ConversationID returns the persistent conversation id, if any.
func (s *Session) ConversationID() string {
	return s.conversationID
}

// GuestID returns the server-minted guest id, if any.
func (s *Session) GuestID() string {
	return s.guestID
}

// ClearGuest drops the guest id so the next send starts a fresh guest
// conversation. Called on session start: a new launch is the terminal
// equivalent of a hard page reload.
func (s *Session) ClearGuest() {
	s.guestID = ""
}

// Send performs one chat turn, creating or adopting whichever
// conversation handle applies.
func (s *Session) Send(ctx context.Context, message string) (string, error) {
	if !s.authenticated {
		answer, guestID, err := s.api.ChatGuest(ctx, s.guestID, message)
		if err != nil {
			return "", err
		}
		s.guestID = guestID
		return answer, nil
	}

	if s.conversationID == "" {
		id, err := s.api.CreateConversation(ctx)
		if err != nil {
			return "", err
		}
		s.conversationID = id
	}

	return s.api.ChatAuth(ctx, s.conversationID, message)
}
