package logger

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newObserved() (*Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return &Logger{SugaredLogger: zap.New(core).Sugar()}, logs
}

func fieldsOf(t *testing.T, logs *observer.ObservedLogs, msg string) map[string]interface{} {
	t.Helper()
	entries := logs.FilterMessage(msg).All()
	require.Len(t, entries, 1)
	return entries[0].ContextMap()
}

func TestLoggerSanitize(t *testing.T) {
	t.Run("Should redact secret keys", func(t *testing.T) {
		log, logs := newObserved()
		log.Info("provider call",
			"api_key", "hf_123",
			"Authorization", "Bearer hf_123",
			"HUGGINGFACE_TOKEN", "hf_123",
			"model", "zephyr",
		)

		fields := fieldsOf(t, logs, "provider call")
		assert.Equal(t, "[REDACTED]", fields["api_key"])
		assert.Equal(t, "[REDACTED]", fields["Authorization"])
		assert.Equal(t, "[REDACTED]", fields["HUGGINGFACE_TOKEN"])
		assert.Equal(t, "zephyr", fields["model"])
	})

	t.Run("Should hash student ids", func(t *testing.T) {
		log, logs := newObserved()
		id := "6f1c2a4e-8b9d-4c3e-9f00-1a2b3c4d5e6f"
		log.Warn("context unavailable", "student_id", id, "empty_student_id", "")

		sum := sha256.Sum256([]byte(id))
		fields := fieldsOf(t, logs, "context unavailable")
		assert.Equal(t, "hash:"+hex.EncodeToString(sum[:])[:12], fields["student_id"])
		assert.Equal(t, "", fields["empty_student_id"])
	})

	t.Run("Should keep a dangling key", func(t *testing.T) {
		log, logs := newObserved()
		assert.NotPanics(t, func() {
			log.Info("odd", "model", "zephyr", "dangling")
		})

		fields := fieldsOf(t, logs, "odd")
		assert.Equal(t, "zephyr", fields["model"])
	})

	t.Run("Should sanitize fields bound with With", func(t *testing.T) {
		log, logs := newObserved()
		log.With("token", "abc", "student_id", "s1").Error("save failed", "category", "qa")

		fields := fieldsOf(t, logs, "save failed")
		assert.Equal(t, "[REDACTED]", fields["token"])
		assert.True(t, strings.HasPrefix(fields["student_id"].(string), "hash:"))
		assert.Equal(t, "qa", fields["category"])
	})
}

func TestShort(t *testing.T) {
	t.Run("Should leave short text alone", func(t *testing.T) {
		assert.Equal(t, "こんにちは", Short("こんにちは"))
	})

	t.Run("Should truncate long ascii text", func(t *testing.T) {
		got := Short(strings.Repeat("a", 400))
		assert.Equal(t, strings.Repeat("a", shortLimit)+"...", got)
	})

	t.Run("Should not split a rune", func(t *testing.T) {
		got := Short(strings.Repeat("あ", 100))
		assert.True(t, utf8.ValidString(got))
		assert.True(t, strings.HasSuffix(got, "..."))
		assert.Equal(t, strings.Repeat("あ", shortLimit/3)+"...", got)
	})
}
