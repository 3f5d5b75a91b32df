package ai

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sethvargo/go-retry"
	"github.com/tidwall/gjson"

	"github.com/Vovarama1992/tutor-ai-bridge/internal/logger"
)

// InferenceClient talks to hosted text-generation endpoints that take {inputs, parameters}.
type InferenceClient struct {
	http    *resty.Client
	retries uint64
	backoff time.Duration
	log     *logger.Logger
}

func NewInferenceClient(apiKey string, retries int, log *logger.Logger) *InferenceClient {
	if retries < 0 {
		retries = 0
	}
	client := resty.New().
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
	if apiKey != "" {
		client.SetAuthToken(apiKey)
	}
	return &InferenceClient{
		http:    client,
		retries: uint64(retries),
		backoff: 250 * time.Millisecond,
		log:     log.With("client", "inference"),
	}
}

type inferenceRequest struct {
	Inputs     string         `json:"inputs"`
	Parameters map[string]any `json:"parameters,omitempty"`
	Options    map[string]any `json:"options"`
}

func (c *InferenceClient) Complete(ctx context.Context, req Request) (string, error) {
	body := inferenceRequest{
		Inputs:     req.Inputs,
		Parameters: req.Parameters,
		Options:    map[string]any{"wait_for_model": false},
	}

	var raw []byte
	backoff := retry.WithMaxRetries(c.retries, retry.NewExponential(c.backoff))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		resp, err := c.http.R().SetContext(ctx).SetBody(body).Post(req.Endpoint)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return retry.RetryableError(err)
		}

		status := resp.StatusCode()
		switch {
		case status >= 200 && status < 300:
			raw = resp.Body()
			return nil
		case status == http.StatusServiceUnavailable && isLoading(resp.Body()):
			return &WarmingUpError{Model: req.Model, EstimatedTime: estimatedTime(resp.Body())}
		case status == http.StatusTooManyRequests, status == http.StatusBadGateway, status == http.StatusGatewayTimeout:
			return retry.RetryableError(&HTTPError{StatusCode: status, Body: string(resp.Body())})
		default:
			return &HTTPError{StatusCode: status, Body: string(resp.Body())}
		}
	})
	if err != nil {
		return "", err
	}

	c.log.Debug("inference raw response", "model", req.Model, "raw", logger.Short(string(raw)))

	text, ok := ExtractText(raw)
	if !ok {
		return "", ErrNoText
	}
	return text, nil
}

func isLoading(body []byte) bool {
	if gjson.GetBytes(body, "estimated_time").Exists() {
		return true
	}
	msg := strings.ToLower(gjson.GetBytes(body, "error").String())
	if msg == "" {
		msg = strings.ToLower(string(body))
	}
	return strings.Contains(msg, "loading") || strings.Contains(msg, "warming")
}

func estimatedTime(body []byte) time.Duration {
	secs := gjson.GetBytes(body, "estimated_time").Float()
	if secs <= 0 {
		return 0
	}
	return time.Duration(secs * float64(time.Second))
}
