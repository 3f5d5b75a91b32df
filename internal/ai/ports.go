package ai

import "context"

// Kind selects the wire protocol of a provider.
type Kind string

const (
	// KindInference is a hosted text-generation endpoint taking {inputs, parameters}.
	KindInference Kind = "inference"
	// KindChat is an OpenAI-compatible chat-completions endpoint.
	KindChat Kind = "chat"
)

// Message: универсальный формат диалога для AI
type Message struct {
	Role string // "user" | "assistant" | "system"
	Text string
}

// Request is one call to one provider. Inference providers read Inputs, chat providers read Messages.
type Request struct {
	Kind       Kind
	Model      string
	Endpoint   string
	Inputs     string
	Messages   []Message
	Parameters map[string]any
}

// Completer: внешний интеллект, не знает ни про студентов, ни про БД
type Completer interface {
	Complete(ctx context.Context, req Request) (string, error)
}
