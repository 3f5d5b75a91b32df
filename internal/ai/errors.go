package ai

import (
	"errors"
	"fmt"
	"time"

	"github.com/Vovarama1992/tutor-ai-bridge/internal/logger"
)

// ErrNoText means the provider answered but no text payload could be found in the body.
var ErrNoText = errors.New("ai: no text in provider response")

type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	if e == nil {
		return "upstream http error"
	}
	if e.Body == "" {
		return fmt.Sprintf("upstream http error: status=%d", e.StatusCode)
	}
	return fmt.Sprintf("upstream http error: status=%d body=%s", e.StatusCode, logger.Short(e.Body))
}

// WarmingUpError is returned while a hosted model is still being loaded.
type WarmingUpError struct {
	Model         string
	EstimatedTime time.Duration
}

func (e *WarmingUpError) Error() string {
	if e == nil {
		return "model warming up"
	}
	if e.EstimatedTime > 0 {
		return fmt.Sprintf("model %s warming up (eta %s)", e.Model, e.EstimatedTime)
	}
	return fmt.Sprintf("model %s warming up", e.Model)
}

func IsWarmingUp(err error) bool {
	var w *WarmingUpError
	return errors.As(err, &w)
}
