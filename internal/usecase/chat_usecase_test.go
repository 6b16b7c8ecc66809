package usecase

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/rkendel1/AI-RAG-Assistant-Chatbot/internal/domain"
	"github.com/rkendel1/AI-RAG-Assistant-Chatbot/internal/domain/entity"
)

// In-memory fakes for the chat collaborators.

type fakeConvRepo struct {
	convs   map[string]*entity.Conversation
	nextID  int
	created int
}

func newFakeConvRepo() *fakeConvRepo {
	return &fakeConvRepo{convs: make(map[string]*entity.Conversation)}
}

func (r *fakeConvRepo) Create(ctx context.Context, userID string) (*entity.Conversation, error) {
	r.nextID++
	r.created++
	conv := &entity.Conversation{
		ID:     "conv-" + string(rune('0'+r.nextID)),
		UserID: userID,
		Title:  entity.DefaultConversationTitle,
	}
	r.convs[conv.ID] = conv
	return conv, nil
}

func (r *fakeConvRepo) GetByID(ctx context.Context, id, userID string) (*entity.Conversation, error) {
	conv, ok := r.convs[id]
	if !ok || conv.UserID != userID {
		return nil, domain.NewNotFoundError("Conversation", id)
	}
	cp := *conv
	cp.Messages = append([]entity.Message(nil), conv.Messages...)
	return &cp, nil
}

func (r *fakeConvRepo) AppendMessage(ctx context.Context, id, userID string, msg entity.Message) error {
	conv, ok := r.convs[id]
	if !ok || conv.UserID != userID {
		return domain.NewNotFoundError("Conversation", id)
	}
	conv.Messages = append(conv.Messages, msg)
	return nil
}

func (r *fakeConvRepo) Rename(ctx context.Context, id, userID, title string) (*entity.Conversation, error) {
	conv, ok := r.convs[id]
	if !ok || conv.UserID != userID {
		return nil, domain.NewNotFoundError("Conversation", id)
	}
	conv.Title = title
	return conv, nil
}

func (r *fakeConvRepo) Delete(ctx context.Context, id, userID string) error {
	conv, ok := r.convs[id]
	if !ok || conv.UserID != userID {
		return domain.NewNotFoundError("Conversation", id)
	}
	delete(r.convs, id)
	return nil
}

func (r *fakeConvRepo) List(ctx context.Context, userID string) ([]*entity.Conversation, error) {
	var out []*entity.Conversation
	for _, conv := range r.convs {
		if conv.UserID == userID {
			out = append(out, conv)
		}
	}
	return out, nil
}

func (r *fakeConvRepo) Search(ctx context.Context, userID, query string) ([]*entity.Conversation, error) {
	var out []*entity.Conversation
	q := strings.ToLower(query)
	for _, conv := range r.convs {
		if conv.UserID != userID {
			continue
		}
		if strings.Contains(strings.ToLower(conv.Title), q) {
			out = append(out, conv)
			continue
		}
		for _, m := range conv.Messages {
			if strings.Contains(strings.ToLower(m.Text), q) {
				out = append(out, conv)
				break
			}
		}
	}
	return out, nil
}

type fakeGuestStore struct {
	convs  map[string][]entity.Message
	nextID int
}

func newFakeGuestStore() *fakeGuestStore {
	return &fakeGuestStore{convs: make(map[string][]entity.Message)}
}

func (s *fakeGuestStore) Create(ctx context.Context) (string, error) {
	s.nextID++
	id := "guest-" + string(rune('0'+s.nextID))
	s.convs[id] = nil
	return id, nil
}

func (s *fakeGuestStore) Get(ctx context.Context, guestID string) ([]entity.Message, error) {
	msgs, ok := s.convs[guestID]
	if !ok {
		return nil, domain.NewNotFoundError("GuestConversation", guestID)
	}
	return append([]entity.Message(nil), msgs...), nil
}

func (s *fakeGuestStore) Append(ctx context.Context, guestID string, msg entity.Message) error {
	if _, ok := s.convs[guestID]; !ok {
		return domain.NewNotFoundError("GuestConversation", guestID)
	}
	s.convs[guestID] = append(s.convs[guestID], msg)
	return nil
}

type fakeCompleter struct {
	answer   string
	err      error
	gotTurns []entity.PromptTurn
	calls    int
}

func (c *fakeCompleter) Complete(ctx context.Context, turns []entity.PromptTurn) (string, error) {
	c.calls++
	c.gotTurns = append([]entity.PromptTurn(nil), turns...)
	if c.err != nil {
		return "", c.err
	}
	return c.answer, nil
}

type fakeRetriever struct {
	snippets []entity.Snippet
	err      error
}

func (r *fakeRetriever) Search(ctx context.Context, query string, topK int) ([]entity.Snippet, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.snippets, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newChatFixture(completer *fakeCompleter, retriever domain.KnowledgeRetriever) (domain.ChatUsecase, *fakeConvRepo, *fakeGuestStore) {
	convRepo := newFakeConvRepo()
	guestStore := newFakeGuestStore()
	uc := NewChatUsecase(convRepo, guestStore, completer, retriever, testInstruction, 3, testLogger())
	return uc, convRepo, guestStore
}

func TestChatAuthenticatedNewConversation(t *testing.T) {
	completer := &fakeCompleter{answer: "hi, I can help"}
	uc, convRepo, _ := newChatFixture(completer, nil)

	res, err := uc.ChatAuthenticated(context.Background(), "user-1", "", "hello")
	if err != nil {
		t.Fatalf("ChatAuthenticated failed: %v", err)
	}

	if res.Answer != "hi, I can help" {
		t.Errorf("answer = %q", res.Answer)
	}
	if res.ConversationID == "" {
		t.Fatal("expected a minted conversation id")
	}
	if convRepo.created != 1 {
		t.Errorf("created %d conversations, want 1", convRepo.created)
	}

	conv, err := convRepo.GetByID(context.Background(), res.ConversationID, "user-1")
	if err != nil {
		t.Fatalf("loading conversation: %v", err)
	}
	if len(conv.Messages) != 2 {
		t.Fatalf("stored %d messages, want 2", len(conv.Messages))
	}
	if conv.Messages[0].Sender != entity.SenderUser || conv.Messages[0].Text != "hello" {
		t.Errorf("first stored message = %+v", conv.Messages[0])
	}
	if conv.Messages[1].Sender != entity.SenderAssistant {
		t.Errorf("second stored message sender = %s", conv.Messages[1].Sender)
	}
}

func TestChatAuthenticatedTurnsCarryHistory(t *testing.T) {
	completer := &fakeCompleter{answer: "answer two"}
	uc, convRepo, _ := newChatFixture(completer, nil)
	ctx := context.Background()

	conv, _ := convRepo.Create(ctx, "user-1")
	convRepo.AppendMessage(ctx, conv.ID, "user-1", entity.Message{Sender: entity.SenderUser, Text: "q1", Timestamp: time.Now()})
	convRepo.AppendMessage(ctx, conv.ID, "user-1", entity.Message{Sender: entity.SenderAssistant, Text: "a1", Timestamp: time.Now()})

	if _, err := uc.ChatAuthenticated(ctx, "user-1", conv.ID, "q2"); err != nil {
		t.Fatalf("ChatAuthenticated failed: %v", err)
	}

	// instruction + q1 + a1 + q2
	if len(completer.gotTurns) != 4 {
		t.Fatalf("completer saw %d turns, want 4", len(completer.gotTurns))
	}
	if completer.gotTurns[0].Text != testInstruction {
		t.Errorf("first turn = %q, want instruction", completer.gotTurns[0].Text)
	}
	if completer.gotTurns[1].Text != "q1" || completer.gotTurns[1].Role != entity.RoleUser {
		t.Errorf("history turn 1 = %+v", completer.gotTurns[1])
	}
	if completer.gotTurns[2].Text != "a1" || completer.gotTurns[2].Role != entity.RoleModel {
		t.Errorf("history turn 2 = %+v", completer.gotTurns[2])
	}
	if completer.gotTurns[3].Text != "q2" {
		t.Errorf("last turn = %+v", completer.gotTurns[3])
	}
}

func TestChatAuthenticatedUserMessageSurvivesBackendFailure(t *testing.T) {
	completer := &fakeCompleter{err: domain.NewUpstreamError(errors.New("no candidates"))}
	uc, convRepo, _ := newChatFixture(completer, nil)
	ctx := context.Background()

	conv, _ := convRepo.Create(ctx, "user-1")

	_, err := uc.ChatAuthenticated(ctx, "user-1", conv.ID, "will this be kept?")
	if !domain.IsUpstream(err) {
		t.Fatalf("error = %v, want upstream", err)
	}

	// The user turn is committed even though the completion failed.
	stored, _ := convRepo.GetByID(ctx, conv.ID, "user-1")
	if len(stored.Messages) != 1 {
		t.Fatalf("stored %d messages, want the user turn alone", len(stored.Messages))
	}
	if stored.Messages[0].Text != "will this be kept?" {
		t.Errorf("stored message = %+v", stored.Messages[0])
	}
}

func TestChatAuthenticatedWrongOwner(t *testing.T) {
	completer := &fakeCompleter{answer: "x"}
	uc, convRepo, _ := newChatFixture(completer, nil)
	ctx := context.Background()

	conv, _ := convRepo.Create(ctx, "user-1")

	_, err := uc.ChatAuthenticated(ctx, "user-2", conv.ID, "hello")
	if !domain.IsNotFound(err) {
		t.Errorf("cross-user access returned %v, want NotFound", err)
	}
	if completer.calls != 0 {
		t.Errorf("completer called %d times for a denied conversation", completer.calls)
	}
}

func TestChatGuestMintsAndReusesID(t *testing.T) {
	completer := &fakeCompleter{answer: "guest answer"}
	uc, _, guestStore := newChatFixture(completer, nil)
	ctx := context.Background()

	res1, err := uc.ChatGuest(ctx, "", "first")
	if err != nil {
		t.Fatalf("ChatGuest failed: %v", err)
	}
	if res1.GuestID == "" {
		t.Fatal("expected a minted guest id")
	}
	if res1.ConversationID != "" {
		t.Errorf("guest result carries conversation id %q", res1.ConversationID)
	}

	res2, err := uc.ChatGuest(ctx, res1.GuestID, "second")
	if err != nil {
		t.Fatalf("ChatGuest follow-up failed: %v", err)
	}
	if res2.GuestID != res1.GuestID {
		t.Errorf("follow-up minted a new id %q, want %q", res2.GuestID, res1.GuestID)
	}

	msgs, _ := guestStore.Get(ctx, res1.GuestID)
	if len(msgs) != 4 {
		t.Fatalf("guest transcript has %d messages, want 4", len(msgs))
	}

	// The second call's prompt includes the first exchange.
	if len(completer.gotTurns) != 4 {
		t.Fatalf("completer saw %d turns on second call, want 4", len(completer.gotTurns))
	}
}

func TestChatGuestUnknownIDStartsFresh(t *testing.T) {
	completer := &fakeCompleter{answer: "ok"}
	uc, _, _ := newChatFixture(completer, nil)

	res, err := uc.ChatGuest(context.Background(), "expired-or-bogus", "hello")
	if err != nil {
		t.Fatalf("ChatGuest failed: %v", err)
	}
	if res.GuestID == "" || res.GuestID == "expired-or-bogus" {
		t.Errorf("guest id = %q, want a freshly minted one", res.GuestID)
	}
}

func TestChatRetrievalInjectsSnippets(t *testing.T) {
	completer := &fakeCompleter{answer: "grounded answer"}
	retriever := &fakeRetriever{snippets: []entity.Snippet{{Text: "fact one", Score: 0.9}}}
	uc, _, _ := newChatFixture(completer, retriever)

	if _, err := uc.ChatGuest(context.Background(), "", "question"); err != nil {
		t.Fatalf("ChatGuest failed: %v", err)
	}

	// instruction + retrieval turn + user message
	if len(completer.gotTurns) != 3 {
		t.Fatalf("completer saw %d turns, want 3", len(completer.gotTurns))
	}
	if !strings.Contains(completer.gotTurns[1].Text, "fact one") {
		t.Errorf("retrieval turn = %q, want the snippet text", completer.gotTurns[1].Text)
	}
}

func TestChatRetrievalFailureDegrades(t *testing.T) {
	completer := &fakeCompleter{answer: "ungrounded answer"}
	retriever := &fakeRetriever{err: errors.New("vector store down")}
	uc, _, _ := newChatFixture(completer, retriever)

	res, err := uc.ChatGuest(context.Background(), "", "question")
	if err != nil {
		t.Fatalf("retrieval failure must not fail the chat: %v", err)
	}
	if res.Answer != "ungrounded answer" {
		t.Errorf("answer = %q", res.Answer)
	}

	// No synthetic retrieval turn when the search errored.
	if len(completer.gotTurns) != 2 {
		t.Fatalf("completer saw %d turns, want 2", len(completer.gotTurns))
	}
}

func TestChatRejectsEmptyMessage(t *testing.T) {
	completer := &fakeCompleter{answer: "x"}
	uc, _, _ := newChatFixture(completer, nil)

	if _, err := uc.ChatGuest(context.Background(), "", ""); !domain.IsInvalidInput(err) {
		t.Errorf("empty guest message returned %v, want InvalidInput", err)
	}
	if _, err := uc.ChatGuest(context.Background(), "", "   \t\n"); !domain.IsInvalidInput(err) {
		t.Errorf("whitespace-only guest message returned %v, want InvalidInput", err)
	}
	if _, err := uc.ChatAuthenticated(context.Background(), "user-1", "", ""); !domain.IsInvalidInput(err) {
		t.Errorf("empty auth message returned %v, want InvalidInput", err)
	}
	if _, err := uc.ChatAuthenticated(context.Background(), "user-1", "", "   "); !domain.IsInvalidInput(err) {
		t.Errorf("whitespace-only auth message returned %v, want InvalidInput", err)
	}
	if completer.calls != 0 {
		t.Errorf("completer called for empty messages")
	}
}
