package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vovarama1992/tutor-ai-bridge/internal/logger"
)

func TestChatClientComplete(t *testing.T) {
	t.Run("Should send messages to the provider base url", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v1/chat/completions", r.URL.Path)
			assert.Equal(t, "Bearer hf_test", r.Header.Get("Authorization"))

			var in struct {
				Model    string `json:"model"`
				Messages []struct {
					Role    string `json:"role"`
					Content string `json:"content"`
				} `json:"messages"`
				MaxTokens int `json:"max_tokens"`
			}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
			assert.Equal(t, "meta-llama/Llama-3.1-8B-Instruct", in.Model)
			require.Len(t, in.Messages, 2)
			assert.Equal(t, "system", in.Messages[0].Role)
			assert.Equal(t, "hi", in.Messages[1].Content)
			assert.Equal(t, 256, in.MaxTokens)

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"id":"c1","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":"hello!"},"finish_reason":"stop"}]}`))
		}))
		defer srv.Close()

		c := NewChatClient("hf_test", logger.NewNop())
		text, err := c.Complete(context.Background(), Request{
			Kind:     KindChat,
			Model:    "meta-llama/Llama-3.1-8B-Instruct",
			Endpoint: srv.URL + "/v1/",
			Messages: []Message{
				{Role: "system", Text: "be kind"},
				{Role: "user", Text: "hi"},
				{Role: "assistant", Text: "  "},
			},
			Parameters: map[string]any{"max_new_tokens": 256, "temperature": 0.7},
		})
		require.NoError(t, err)
		assert.Equal(t, "hello!", text)
	})

	t.Run("Should map 503 to warming up", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"error":{"message":"model is loading","type":"server_error"}}`))
		}))
		defer srv.Close()

		c := NewChatClient("hf_test", logger.NewNop())
		_, err := c.Complete(context.Background(), Request{
			Kind:     KindChat,
			Model:    "m",
			Endpoint: srv.URL,
			Messages: []Message{{Role: "user", Text: "hi"}},
		})
		require.Error(t, err)
		assert.True(t, IsWarmingUp(err))
	})

	t.Run("Should reject requests without messages", func(t *testing.T) {
		c := NewChatClient("hf_test", logger.NewNop())
		_, err := c.Complete(context.Background(), Request{Kind: KindChat, Endpoint: "http://127.0.0.1:1"})
		require.Error(t, err)
	})

	t.Run("Should fail on empty choices", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"id":"c1","object":"chat.completion","choices":[]}`))
		}))
		defer srv.Close()

		c := NewChatClient("hf_test", logger.NewNop())
		_, err := c.Complete(context.Background(), Request{
			Kind:     KindChat,
			Endpoint: srv.URL,
			Messages: []Message{{Role: "user", Text: "hi"}},
		})
		assert.ErrorIs(t, err, ErrNoText)
	})
}
