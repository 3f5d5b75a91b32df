package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vovarama1992/tutor-ai-bridge/internal/logger"
)

func newTestInferenceClient(retries int) *InferenceClient {
	c := NewInferenceClient("hf_test", retries, logger.NewNop())
	c.backoff = time.Millisecond
	return c
}

func TestInferenceClientComplete(t *testing.T) {
	t.Run("Should send inputs and parameters with bearer token", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/models/zephyr", r.URL.Path)
			assert.Equal(t, "Bearer hf_test", r.Header.Get("Authorization"))

			var in map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
			assert.Equal(t, "hello", in["inputs"])
			params, _ := in["parameters"].(map[string]any)
			assert.EqualValues(t, 64, params["max_new_tokens"])

			_, _ = w.Write([]byte(`[{"generated_text":"hi there"}]`))
		}))
		defer srv.Close()

		text, err := newTestInferenceClient(0).Complete(context.Background(), Request{
			Kind:       KindInference,
			Model:      "zephyr",
			Endpoint:   srv.URL + "/models/zephyr",
			Inputs:     "hello",
			Parameters: map[string]any{"max_new_tokens": 64},
		})
		require.NoError(t, err)
		assert.Equal(t, "hi there", text)
	})

	t.Run("Should report warming up models", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"error":"Model zephyr is currently loading","estimated_time":20.5}`))
		}))
		defer srv.Close()

		_, err := newTestInferenceClient(2).Complete(context.Background(), Request{Model: "zephyr", Endpoint: srv.URL})
		require.Error(t, err)
		assert.True(t, IsWarmingUp(err))
		var w *WarmingUpError
		require.True(t, errors.As(err, &w))
		assert.Equal(t, 20500*time.Millisecond, w.EstimatedTime)
	})

	t.Run("Should return HTTPError for non retryable status", func(t *testing.T) {
		var calls int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			atomic.AddInt32(&calls, 1)
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte("boom"))
		}))
		defer srv.Close()

		_, err := newTestInferenceClient(3).Complete(context.Background(), Request{Endpoint: srv.URL})
		var httpErr *HTTPError
		require.True(t, errors.As(err, &httpErr))
		assert.Equal(t, http.StatusInternalServerError, httpErr.StatusCode)
		assert.EqualValues(t, 1, atomic.LoadInt32(&calls))
	})

	t.Run("Should retry transient statuses", func(t *testing.T) {
		var calls int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			if atomic.AddInt32(&calls, 1) == 1 {
				w.WriteHeader(http.StatusBadGateway)
				return
			}
			_, _ = w.Write([]byte(`{"translation_text":"お腹が空きました"}`))
		}))
		defer srv.Close()

		text, err := newTestInferenceClient(1).Complete(context.Background(), Request{Endpoint: srv.URL})
		require.NoError(t, err)
		assert.Equal(t, "お腹が空きました", text)
		assert.EqualValues(t, 2, atomic.LoadInt32(&calls))
	})

	t.Run("Should treat non JSON bodies as text", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "text/plain")
			_, _ = w.Write([]byte("plain answer"))
		}))
		defer srv.Close()

		text, err := newTestInferenceClient(0).Complete(context.Background(), Request{Endpoint: srv.URL})
		require.NoError(t, err)
		assert.Equal(t, "plain answer", text)
	})

	t.Run("Should fail when no text is present", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`[{"score":0.9}]`))
		}))
		defer srv.Close()

		_, err := newTestInferenceClient(0).Complete(context.Background(), Request{Endpoint: srv.URL})
		assert.ErrorIs(t, err, ErrNoText)
	})
}

func TestClientDispatch(t *testing.T) {
	t.Run("Should fail for a kind without transport", func(t *testing.T) {
		_, err := NewClient(nil, nil).Complete(context.Background(), Request{Kind: KindChat})
		require.Error(t, err)
	})
}
