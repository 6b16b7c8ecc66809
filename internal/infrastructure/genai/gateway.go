// Package genai adapts the Gemini completion API to the domain Completer
// interface.
package genai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"

	"github.com/rkendel1/AI-RAG-Assistant-Chatbot/internal/config"
	"github.com/rkendel1/AI-RAG-Assistant-Chatbot/internal/domain"
	"github.com/rkendel1/AI-RAG-Assistant-Chatbot/internal/domain/entity"
)

// Gateway calls the Gemini API with fixed generation parameters and
// permissive safety thresholds. Parameters are set once from config and
// applied uniformly to every request.
type Gateway struct {
	llm    *googleai.GoogleAI
	cfg    config.AIConfig
	logger *slog.Logger
}

var _ domain.Completer = (*Gateway)(nil)

// NewGateway connects to the Gemini API.
func NewGateway(ctx context.Context, cfg config.AIConfig, logger *slog.Logger) (*Gateway, error) {
	llm, err := googleai.New(ctx,
		googleai.WithAPIKey(cfg.APIKey),
		googleai.WithDefaultModel(cfg.Model),
		googleai.WithHarmThreshold(googleai.HarmBlockNone),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	logger.Info("genai gateway ready", "model", cfg.Model)
	return &Gateway{llm: llm, cfg: cfg, logger: logger}, nil
}

// Complete sends the assembled turns and returns the answer text. A
// response with no usable text is an upstream error; there is no retry
// here, the caller decides what a failed turn means.
func (g *Gateway) Complete(ctx context.Context, turns []entity.PromptTurn) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.cfg.Timeout)
	defer cancel()

	messages := make([]llms.MessageContent, 0, len(turns))
	for _, turn := range turns {
		messages = append(messages, llms.TextParts(messageType(turn.Role), turn.Text))
	}

	resp, err := g.llm.GenerateContent(ctx, messages,
		llms.WithTemperature(g.cfg.Temperature),
		llms.WithTopP(g.cfg.TopP),
		llms.WithTopK(g.cfg.TopK),
		llms.WithMaxTokens(g.cfg.MaxOutputTokens),
	)
	if err != nil {
		return "", domain.NewUpstreamError(fmt.Errorf("completion request failed: %w", err))
	}
	if resp == nil || len(resp.Choices) == 0 {
		return "", domain.NewUpstreamError(errors.New("completion returned no candidates"))
	}

	answer := strings.TrimSpace(resp.Choices[0].Content)
	if answer == "" {
		return "", domain.NewUpstreamError(errors.New("completion returned empty text"))
	}

	return answer, nil
}

// Embed turns a text into its embedding vector. Used by the knowledge
// retriever to embed search queries with the same provider that answers.
func (g *Gateway) Embed(ctx context.Context, text string) ([]float32, error) {
	vectors, err := g.llm.CreateEmbedding(ctx, []string{text})
	if err != nil {
		return nil, fmt.Errorf("embedding request failed: %w", err)
	}
	if len(vectors) == 0 || len(vectors[0]) == 0 {
		return nil, errors.New("embedding request returned no vector")
	}
	return vectors[0], nil
}

func messageType(role entity.Role) llms.ChatMessageType {
	if role == entity.RoleModel {
		return llms.ChatMessageTypeAI
	}
	return llms.ChatMessageTypeHuman
}
