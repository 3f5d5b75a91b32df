package tutor

import (
	"context"

	"github.com/Vovarama1992/tutor-ai-bridge/internal/student"
)

type Category string

const (
	CategoryQA            Category = "qa"
	CategoryGrammar       Category = "grammar"
	CategoryTranslation   Category = "translation"
	CategorySummarization Category = "summarization"
	CategoryGeneral       Category = "general"
)

func Categories() []Category {
	return []Category{CategoryQA, CategoryGrammar, CategoryTranslation, CategorySummarization, CategoryGeneral}
}

func (c Category) Valid() bool {
	for _, k := range Categories() {
		if c == k {
			return true
		}
	}
	return false
}

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one message of the caller-supplied conversation.
type Turn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

type ChatRequest struct {
	StudentID string
	Message   string
	History   []Turn
}

// Reply is what the chat endpoint returns. ProviderUsed is empty when the text came from the
// fallback responder.
type Reply struct {
	Text         string
	Category     Category
	ProviderUsed string
}

// ContextSource: снимок учебного состояния студента
type ContextSource interface {
	GatherContext(ctx context.Context, studentID string) (student.Snapshot, error)
}

type StoredMessage struct {
	StudentID string
	Role      Role
	Text      string
	Category  Category
	Provider  string
}

// Repo: persistence
type Repo interface {
	SaveMessage(ctx context.Context, msg *StoredMessage) error
}

// Service: оркестрация, всегда отвечает
type Service interface {
	Reply(ctx context.Context, req ChatRequest) Reply
}
