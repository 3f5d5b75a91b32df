package tutor

import (
	"context"
	"strings"

	"github.com/Vovarama1992/tutor-ai-bridge/internal/logger"
	"github.com/Vovarama1992/tutor-ai-bridge/internal/student"
)

type service struct {
	repo     Repo
	contexts ContextSource
	router   *Router
	fallback *Fallback
	enabled  bool
	log      *logger.Logger
	metrics  *Metrics
}

// NewService wires the chat flow. With providersEnabled false every reply comes from the fallback.
func NewService(
	repo Repo,
	contexts ContextSource,
	router *Router,
	fallback *Fallback,
	providersEnabled bool,
	log *logger.Logger,
	metrics *Metrics,
) Service {
	if repo == nil {
		repo = NopRepo{}
	}
	if contexts == nil {
		contexts = student.UnavailableSource{}
	}
	if fallback == nil {
		fallback = NewFallback()
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &service{
		repo:     repo,
		contexts: contexts,
		router:   router,
		fallback: fallback,
		enabled:  providersEnabled && router != nil,
		log:      log,
		metrics:  metrics,
	}
}

func (s *service) Reply(ctx context.Context, req ChatRequest) Reply {
	text := strings.TrimSpace(req.Message)
	if text == "" {
		s.metrics.ObserveReply(CategoryQA, SourceEmpty)
		return Reply{Text: EmptyMessagePrompt, Category: CategoryQA}
	}

	log := s.log.With("student_id", req.StudentID)

	snap, err := s.contexts.GatherContext(ctx, req.StudentID)
	if err != nil {
		log.Warn("student context unavailable, using defaults", "error", err)
		snap = student.Default(req.StudentID)
	}

	cat := Classify(text)
	log.Debug("chat message", "category", cat, "text", logger.Short(text))

	var reply Reply
	if !s.enabled {
		log.Warn("completion providers disabled (HUGGINGFACE_API_KEY not set), answering from fallback")
		reply = Reply{Text: s.fallback.Respond(snap, text, cat), Category: cat}
	} else {
		res := s.router.Route(ctx, RouteInput{
			Category: cat,
			Message:  text,
			History:  req.History,
			Student:  snap,
		})
		reply = Reply{Text: res.Text, Category: res.Category, ProviderUsed: res.ProviderUsed}
	}

	source := SourceFallback
	if reply.ProviderUsed != "" {
		source = SourceProvider
	}
	s.metrics.ObserveReply(reply.Category, source)

	s.saveTranscript(ctx, log, req.StudentID, text, reply)
	return reply
}

// saveTranscript is best-effort; the reply is returned either way.
func (s *service) saveTranscript(ctx context.Context, log *logger.Logger, studentID, text string, reply Reply) {
	msgs := []*StoredMessage{
		{StudentID: studentID, Role: RoleUser, Text: text, Category: reply.Category},
		{StudentID: studentID, Role: RoleAssistant, Text: reply.Text, Category: reply.Category, Provider: reply.ProviderUsed},
	}
	for _, m := range msgs {
		if err := s.repo.SaveMessage(ctx, m); err != nil {
			log.Warn("save chat message failed", "role", m.Role, "error", err)
			return
		}
	}
}
