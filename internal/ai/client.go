package ai

import (
	"context"
	"errors"
)

// Client dispatches a Request to the transport matching its Kind.
type Client struct {
	inference Completer
	chat      Completer
}

func NewClient(inference Completer, chat Completer) *Client {
	return &Client{inference: inference, chat: chat}
}

func (c *Client) Complete(ctx context.Context, req Request) (string, error) {
	switch req.Kind {
	case KindInference:
		if c.inference != nil {
			return c.inference.Complete(ctx, req)
		}
	case KindChat:
		if c.chat != nil {
			return c.chat.Complete(ctx, req)
		}
	}
	return "", errors.New("ai: no transport for provider kind " + string(req.Kind))
}
