// Package client is the HTTP client for the Lumina API server.
package client

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/cloudwego/hertz/pkg/app/client"
	"github.com/cloudwego/hertz/pkg/network/standard"
	"github.com/cloudwego/hertz/pkg/protocol"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"github.com/rkendel1/AI-RAG-Assistant-Chatbot/internal/cli/types"
)

// APIClient wraps the Hertz client for HTTP communication with the server.
type APIClient struct {
	client *client.Client
	server string
	token  string
}

// NewAPIClient creates a new API client
func NewAPIClient(server, token string) (*APIClient, error) {
	normalizedServer, err := normalizeServerURL(server)
	if err != nil {
		return nil, fmt.Errorf("invalid server URL: %w", err)
	}

	c, err := client.NewClient(
		client.WithDialTimeout(10*time.Second),
		client.WithMaxIdleConnDuration(60*time.Second),
		client.WithDialer(standard.NewDialer()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP client: %w", err)
	}

	return &APIClient{
		client: c,
		server: normalizedServer,
		token:  token,
	}, nil
}

// normalizeServerURL ensures the server address has a scheme and no path.
func normalizeServerURL(server string) (string, error) {
	if !strings.Contains(server, "://") {
		server = "http://" + server
	}

	u, err := url.Parse(server)
	if err != nil || u.Host == "" {
		return "", fmt.Errorf("invalid server URL")
	}

	return fmt.Sprintf("%s://%s", u.Scheme, u.Host), nil
}

// do sends one JSON request and returns the raw body and status code.
func (c *APIClient) do(ctx context.Context, method, endpoint string, body interface{}, withAuth bool) ([]byte, int, error) {
	req := protocol.AcquireRequest()
	resp := protocol.AcquireResponse()
	defer func() {
		protocol.ReleaseRequest(req)
		protocol.ReleaseResponse(resp)
	}()

	req.SetMethod(method)
	req.SetRequestURI(c.server + endpoint)

	if body != nil {
		bodyBytes, err := sonic.Marshal(body)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to marshal request: %w", err)
		}
		req.Header.SetContentTypeBytes([]byte("application/json"))
		req.SetBody(bodyBytes)
	}
	if withAuth && c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	if err := c.client.Do(ctx, req, resp); err != nil {
		return nil, 0, fmt.Errorf("request failed: %w", err)
	}

	// Copy the body out of the pooled response before release.
	out := append([]byte(nil), resp.Body()...)
	return out, resp.StatusCode(), nil
}

// Signup creates a new account.
func (c *APIClient) Signup(ctx context.Context, email, password string) (*types.User, error) {
	body, status, err := c.do(ctx, consts.MethodPost, endpointSignup,
		types.SignupRequest{Email: email, Password: password}, false)
	if err != nil {
		return nil, err
	}
	if status != 200 && status != 201 {
		return nil, apiError("signup", status, body)
	}

	var resp types.APIResponse[*types.User]
	if err := sonic.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return resp.Data, nil
}

// Login authenticates and returns the issued token with the account.
func (c *APIClient) Login(ctx context.Context, email, password string) (*types.LoginData, error) {
	body, status, err := c.do(ctx, consts.MethodPost, endpointLogin,
		types.LoginRequest{Email: email, Password: password}, false)
	if err != nil {
		return nil, err
	}
	if status != 200 {
		return nil, apiError("login", status, body)
	}

	var resp types.APIResponse[types.LoginData]
	if err := sonic.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return &resp.Data, nil
}

// VerifyEmail reports whether an account exists for the email.
func (c *APIClient) VerifyEmail(ctx context.Context, email string) (bool, error) {
	endpoint := endpointVerifyEmail + "?email=" + url.QueryEscape(email)
	body, status, err := c.do(ctx, consts.MethodGet, endpoint, nil, false)
	if err != nil {
		return false, err
	}
	if status != 200 {
		return false, apiError("verify email", status, body)
	}

	var resp types.APIResponse[types.EmailCheckData]
	if err := sonic.Unmarshal(body, &resp); err != nil {
		return false, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return resp.Data.Exists, nil
}

// ResetPassword replaces the password for an existing account.
func (c *APIClient) ResetPassword(ctx context.Context, email, newPassword string) error {
	body, status, err := c.do(ctx, consts.MethodPost, endpointResetPassword,
		types.ResetPasswordRequest{Email: email, NewPassword: newPassword}, false)
	if err != nil {
		return err
	}
	if status != 200 {
		return apiError("reset password", status, body)
	}
	return nil
}

// ValidateToken checks token liveness. A definitive 401 returns
// (false, nil); transport failures return an error so the caller can
// distinguish "rejected" from "unreachable".
func (c *APIClient) ValidateToken(ctx context.Context) (bool, error) {
	body, status, err := c.do(ctx, consts.MethodGet, endpointValidateToken, nil, true)
	if err != nil {
		return false, err
	}
	switch status {
	case 200:
		return true, nil
	case 401:
		return false, nil
	default:
		return false, apiError("validate token", status, body)
	}
}

// GetCurrentUser returns the signed-in account.
func (c *APIClient) GetCurrentUser(ctx context.Context) (*types.User, error) {
	body, status, err := c.do(ctx, consts.MethodGet, endpointCurrentUser, nil, true)
	if err != nil {
		return nil, err
	}
	if status != 200 {
		return nil, apiError("get current user", status, body)
	}

	var resp types.APIResponse[*types.User]
	if err := sonic.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return resp.Data, nil
}

// CreateConversation starts an empty conversation and returns its id.
func (c *APIClient) CreateConversation(ctx context.Context) (string, error) {
	body, status, err := c.do(ctx, consts.MethodPost, endpointConversations, nil, true)
	if err != nil {
		return "", err
	}
	if status != 200 && status != 201 {
		return "", apiError("create conversation", status, body)
	}

	var resp types.APIResponse[types.Conversation]
	if err := sonic.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return resp.Data.ID, nil
}

// GetConversation loads one conversation with its transcript.
func (c *APIClient) GetConversation(ctx context.Context, id string) (*types.Conversation, error) {
	endpoint := fmt.Sprintf(endpointConversationByID, url.PathEscape(id))
	body, status, err := c.do(ctx, consts.MethodGet, endpoint, nil, true)
	if err != nil {
		return nil, err
	}
	if status != 200 {
		return nil, apiError("get conversation", status, body)
	}

	var resp types.APIResponse[types.Conversation]
	if err := sonic.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return &resp.Data, nil
}

// ListConversations returns the account's conversations, newest first.
func (c *APIClient) ListConversations(ctx context.Context) ([]types.ConversationSummary, error) {
	body, status, err := c.do(ctx, consts.MethodGet, endpointConversations, nil, true)
	if err != nil {
		return nil, err
	}
	if status != 200 {
		return nil, apiError("list conversations", status, body)
	}

	var resp types.APIResponse[types.ListData[types.ConversationSummary]]
	if err := sonic.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return resp.Data.Items, nil
}

// RenameConversation sets a new title.
func (c *APIClient) RenameConversation(ctx context.Context, id, title string) error {
	endpoint := fmt.Sprintf(endpointConversationByID, url.PathEscape(id))
	body, status, err := c.do(ctx, consts.MethodPut, endpoint, types.RenameRequest{Title: title}, true)
	if err != nil {
		return err
	}
	if status != 200 {
		return apiError("rename conversation", status, body)
	}
	return nil
}

// DeleteConversation removes a conversation permanently.
func (c *APIClient) DeleteConversation(ctx context.Context, id string) error {
	endpoint := fmt.Sprintf(endpointConversationByID, url.PathEscape(id))
	body, status, err := c.do(ctx, consts.MethodDelete, endpoint, nil, true)
	if err != nil {
		return err
	}
	if status < 200 || status >= 300 {
		return apiError("delete conversation", status, body)
	}
	return nil
}

// SearchConversations finds conversations matching the query.
func (c *APIClient) SearchConversations(ctx context.Context, query string) ([]types.ConversationSummary, error) {
	endpoint := fmt.Sprintf(endpointConversationsSearch, url.PathEscape(query))
	body, status, err := c.do(ctx, consts.MethodGet, endpoint, nil, true)
	if err != nil {
		return nil, err
	}
	if status != 200 {
		return nil, apiError("search conversations", status, body)
	}

	var resp types.APIResponse[types.ListData[types.ConversationSummary]]
	if err := sonic.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return resp.Data.Items, nil
}

// ChatAuth sends one authenticated chat turn.
func (c *APIClient) ChatAuth(ctx context.Context, conversationID, message string) (string, error) {
	body, status, err := c.do(ctx, consts.MethodPost, endpointChatAuth,
		types.ChatRequest{Message: message, ConversationID: conversationID}, true)
	if err != nil {
		return "", err
	}
	if status != 200 {
		return "", apiError("chat", status, body)
	}

	var resp types.APIResponse[types.ChatData]
	if err := sonic.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return resp.Data.Answer, nil
}

// ChatGuest sends one anonymous chat turn and returns the answer plus the
// (possibly newly minted) guest id.
func (c *APIClient) ChatGuest(ctx context.Context, guestID, message string) (string, string, error) {
	body, status, err := c.do(ctx, consts.MethodPost, endpointChatGuest,
		types.GuestChatRequest{Message: message, GuestID: guestID}, false)
	if err != nil {
		return "", "", err
	}
	if status != 200 {
		return "", "", apiError("guest chat", status, body)
	}

	var resp types.APIResponse[types.ChatData]
	if err := sonic.Unmarshal(body, &resp); err != nil {
		return "", "", fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return resp.Data.Answer, resp.Data.GuestID, nil
}

// apiError surfaces the server's envelope message when present.
func apiError(op string, status int, body []byte) error {
	var envelope struct {
		Message string `json:"message"`
	}
	if err := sonic.Unmarshal(body, &envelope); err == nil && envelope.Message != "" {
		return fmt.Errorf("%s failed (HTTP %d): %s", op, status, envelope.Message)
	}
	return fmt.Errorf("%s failed (HTTP %d)", op, status)
}
