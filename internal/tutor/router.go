package tutor

import (
	"context"
	"errors"
	"time"

	"github.com/Vovarama1992/tutor-ai-bridge/internal/ai"
	"github.com/Vovarama1992/tutor-ai-bridge/internal/logger"
	"github.com/Vovarama1992/tutor-ai-bridge/internal/student"
)

// SkipReason says why a provider's attempt did not produce the reply.
type SkipReason string

const (
	SkipWarmingUp         SkipReason = "warming_up"
	SkipTransportError    SkipReason = "transport_error"
	SkipEmptyText         SkipReason = "empty_text"
	SkipEchoedInput       SkipReason = "echoed_input"
	SkipWrongScript       SkipReason = "wrong_script"
	SkipDirectionMismatch SkipReason = "direction_mismatch"
	SkipCanceled          SkipReason = "canceled"
)

const outcomeAccepted = "accepted"

type Attempt struct {
	Provider string
	Skip     SkipReason // empty when accepted
	Err      error
}

func (a Attempt) Accepted() bool { return a.Skip == "" }

func (a Attempt) outcome() string {
	if a.Accepted() {
		return outcomeAccepted
	}
	return string(a.Skip)
}

type RouteInput struct {
	Category Category // classified from Message when empty
	Message  string
	History  []Turn
	Student  student.Snapshot
}

// Result always carries non-empty Text. ProviderUsed is empty when the fallback answered.
type Result struct {
	Text         string
	Category     Category
	ProviderUsed string
	Attempts     []Attempt
}

type RouterOptions struct {
	Timeout      time.Duration
	HistoryLimit int
	Translation  TranslationRules
}

const defaultProviderTimeout = 25 * time.Second

// Router tries the catalog's providers for a category in order and stops at the first acceptable
// text.
type Router struct {
	catalog   *Catalog
	completer ai.Completer
	fallback  *Fallback
	prompts   PromptBuilder
	rules     TranslationRules
	timeout   time.Duration
	log       *logger.Logger
	metrics   *Metrics
}

func NewRouter(catalog *Catalog, completer ai.Completer, fallback *Fallback, opts RouterOptions, log *logger.Logger, metrics *Metrics) *Router {
	if opts.Timeout <= 0 {
		opts.Timeout = defaultProviderTimeout
	}
	if opts.Translation.ShortOutputRunes <= 0 {
		opts.Translation = DefaultTranslationRules()
	}
	if fallback == nil {
		fallback = NewFallback()
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &Router{
		catalog:   catalog,
		completer: completer,
		fallback:  fallback,
		prompts:   NewPromptBuilder(opts.HistoryLimit),
		rules:     opts.Translation,
		timeout:   opts.Timeout,
		log:       log,
		metrics:   metrics,
	}
}

// Route never fails: provider errors become skipped attempts, exhaustion becomes a fallback reply.
func (r *Router) Route(ctx context.Context, in RouteInput) (res Result) {
	cat := in.Category
	if cat == "" {
		cat = Classify(in.Message)
	}
	res = Result{Category: cat}

	defer func() {
		if p := recover(); p != nil {
			r.log.Error("router panic", "panic", p, "category", cat)
			res.Text = r.fallback.Respond(in.Student, in.Message, cat)
			res.ProviderUsed = ""
		}
	}()

	var tr TranslationRequest
	if cat == CategoryTranslation {
		tr = ParseTranslation(in.Message)
		if tr.Text == "" {
			r.log.Warn("nothing to translate", "message", logger.Short(in.Message))
			res.Text = r.fallback.Respond(in.Student, in.Message, cat)
			return res
		}
	}
	contextText := ContextText(in.Student, cat)

	for _, p := range r.catalog.ProvidersFor(cat) {
		if err := ctx.Err(); err != nil {
			res.Attempts = append(res.Attempts, Attempt{Provider: p.Identifier, Skip: SkipCanceled, Err: err})
			r.metrics.ObserveAttempt(p.Identifier, string(SkipCanceled))
			break
		}

		text, att := r.try(ctx, p, cat, contextText, in, tr)
		res.Attempts = append(res.Attempts, att)
		r.metrics.ObserveAttempt(p.Identifier, att.outcome())
		if att.Accepted() {
			r.log.Info("provider accepted", "provider", p.Identifier, "category", cat, "attempt", len(res.Attempts))
			res.Text = text
			res.ProviderUsed = p.Identifier
			return res
		}
	}

	r.log.Warn("providers exhausted, using fallback", "category", cat, "attempts", len(res.Attempts))
	res.Text = r.fallback.Respond(in.Student, in.Message, cat)
	return res
}

func (r *Router) try(ctx context.Context, p ProviderConfig, cat Category, contextText string, in RouteInput, tr TranslationRequest) (string, Attempt) {
	att := Attempt{Provider: p.Identifier}
	pinned := cat == CategoryTranslation && p.Direction != ""
	if pinned && p.Direction != tr.Direction {
		att.Skip = SkipDirectionMismatch
		return "", att
	}

	req := r.request(p, cat, contextText, in, tr)

	callCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	start := time.Now()
	raw, err := r.completer.Complete(callCtx, req)
	if err != nil {
		att.Err = err
		switch {
		case ai.IsWarmingUp(err):
			att.Skip = SkipWarmingUp
		case errors.Is(err, ai.ErrNoText):
			att.Skip = SkipEmptyText
		case ctx.Err() != nil:
			att.Skip = SkipCanceled
		default:
			att.Skip = SkipTransportError
		}
		r.log.Warn("provider skipped",
			"provider", p.Identifier,
			"reason", att.Skip,
			"error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return "", att
	}

	prompt := req.Inputs
	if pinned {
		prompt = ""
	}
	text := cleanOutput(raw, prompt, in.Message, cat)

	if cat == CategoryTranslation {
		att.Skip = r.rules.Check(text, tr)
	} else if text == "" {
		att.Skip = SkipEmptyText
	}
	if att.Skip != "" {
		r.log.Warn("provider output rejected",
			"provider", p.Identifier,
			"reason", att.Skip,
			"raw", logger.Short(raw),
		)
		return "", att
	}
	return text, att
}

func (r *Router) request(p ProviderConfig, cat Category, contextText string, in RouteInput, tr TranslationRequest) ai.Request {
	req := ai.Request{
		Kind:       p.Kind,
		Model:      p.Identifier,
		Endpoint:   p.Endpoint(),
		Parameters: p.Parameters,
	}
	switch {
	case cat == CategoryTranslation && p.Direction != "":
		// dedicated MT models get the bare span
		req.Inputs = tr.Text
		if p.Kind == ai.KindChat {
			req.Messages = []ai.Message{{Role: "user", Text: tr.Text}}
		}
	case p.Kind == ai.KindChat:
		req.Messages = r.prompts.Messages(cat, contextText, in.Message, in.History)
	default:
		req.Inputs = r.prompts.Build(cat, contextText, in.Message, in.History, p.Identifier)
	}
	return req
}
