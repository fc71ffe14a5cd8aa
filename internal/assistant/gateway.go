package assistant

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"github.com/sashabaranov/go-openai"

	"github.com/jrnhq/jrn/internal/apperrors"
	"github.com/jrnhq/jrn/internal/config"
)

// CompletionGateway delivers an assembled message list to the model and
// returns the single best reply.
type CompletionGateway interface {
	Complete(ctx context.Context, messages []openai.ChatCompletionMessage) (string, error)
}

// Gateway calls an OpenAI-compatible chat-completion endpoint. One blocking
// call per request: no retries, no streaming, no timeout beyond the
// transport default.
type Gateway struct {
	client *openai.Client
	model  string
	log    zerolog.Logger
}

// NewGateway builds a Gateway for the configured provider.
func NewGateway(cfg config.AIConfig, log zerolog.Logger) *Gateway {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}
	return &Gateway{
		client: openai.NewClientWithConfig(clientConfig),
		model:  cfg.Model,
		log:    log,
	}
}

// Complete sends messages to the provider and extracts the first choice.
// Provider failures come back as UpstreamError with the body captured for
// logging; callers must not forward that detail to clients.
func (g *Gateway) Complete(ctx context.Context, messages []openai.ChatCompletionMessage) (string, error) {
	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    g.model,
		Messages: messages,
	})
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			g.log.Error().
				Int("status", apiErr.HTTPStatusCode).
				Str("provider_error", apiErr.Message).
				Msg("AI provider returned an error")
			return "", &apperrors.UpstreamError{Status: apiErr.HTTPStatusCode, Body: apiErr.Message}
		}
		return "", &apperrors.UpstreamError{Status: 0, Body: err.Error()}
	}

	if len(resp.Choices) == 0 {
		return "", &apperrors.UpstreamError{Status: 0, Body: "empty choices in completion response"}
	}
	return resp.Choices[0].Message.Content, nil
}
