package ai

import (
	"context"
	"errors"
	"net/http"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/Vovarama1992/tutor-ai-bridge/internal/logger"
)

// ChatClient talks to OpenAI-compatible chat-completions endpoints. The provider endpoint is used
// as the base URL, so one client serves every chat entry of the catalog.
type ChatClient struct {
	apiKey string
	log    *logger.Logger
}

func NewChatClient(apiKey string, log *logger.Logger) *ChatClient {
	return &ChatClient{
		apiKey: apiKey,
		log:    log.With("client", "chat"),
	}
}

func (c *ChatClient) Complete(ctx context.Context, req Request) (string, error) {
	cfg := openai.DefaultConfig(c.apiKey)
	if base := strings.TrimRight(strings.TrimSpace(req.Endpoint), "/"); base != "" {
		cfg.BaseURL = base
	}
	client := openai.NewClientWithConfig(cfg)

	msgs := make([]openai.ChatCompletionMessage, 0, len(req.Messages))
	for _, m := range req.Messages {
		if strings.TrimSpace(m.Text) == "" {
			continue
		}
		msgs = append(msgs, openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Text,
		})
	}
	if len(msgs) == 0 {
		return "", errors.New("ai: no messages")
	}

	resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       req.Model,
		Messages:    msgs,
		MaxTokens:   intParam(req.Parameters, "max_new_tokens", "max_tokens"),
		Temperature: float32(floatParam(req.Parameters, "temperature")),
	})
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) && apiErr.HTTPStatusCode == http.StatusServiceUnavailable {
			return "", &WarmingUpError{Model: req.Model}
		}
		var reqErr *openai.RequestError
		if errors.As(err, &reqErr) && reqErr.HTTPStatusCode == http.StatusServiceUnavailable {
			return "", &WarmingUpError{Model: req.Model}
		}
		return "", err
	}

	if len(resp.Choices) == 0 {
		c.log.Debug("empty choices", "model", req.Model)
		return "", ErrNoText
	}

	raw := resp.Choices[0].Message.Content
	c.log.Debug("chat raw response", "model", req.Model, "raw", logger.Short(raw))
	if strings.TrimSpace(raw) == "" {
		return "", ErrNoText
	}
	return raw, nil
}

func intParam(params map[string]any, keys ...string) int {
	for _, k := range keys {
		switch v := params[k].(type) {
		case int:
			return v
		case int64:
			return int(v)
		case float64:
			return int(v)
		}
	}
	return 0
}

func floatParam(params map[string]any, key string) float64 {
	switch v := params[key].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	}
	return 0
}
