package router

import (
	"context"
	"errors"
	"strings"
	"time"

	"support-assistant-be/internal/pkg/logger"
	"support-assistant-be/pkg/assistant/conversation"
	"support-assistant-be/pkg/assistant/generative"
	"support-assistant-be/pkg/assistant/identifier"
	"support-assistant-be/pkg/assistant/knowledge"
	"support-assistant-be/pkg/assistant/status"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "support-assistant-be/pkg/assistant/router"

// StatusLookup resolves an identifier to an application record
type StatusLookup interface {
	Lookup(identifier string) (*status.Record, bool)
}

// StatusRenderer turns a lookup result into reply text
type StatusRenderer interface {
	Render(identifier string, rec *status.Record) string
}

// DocumentAnswerer answers from an uploaded reference document. Answer never
// fails; problems are reported as reply text.
type DocumentAnswerer interface {
	HasDocument() bool
	Answer(ctx context.Context, question string, category conversation.Category, history []conversation.Message) string
}

// KnowledgeMatcher answers from the keyword tables
type KnowledgeMatcher interface {
	Match(message string, category conversation.Category) (knowledge.Match, bool)
}

// Dependencies are the read-only collaborators of a Router. Documents and
// Generative may be nil.
type Dependencies struct {
	Status     StatusLookup
	Responder  StatusRenderer
	Documents  DocumentAnswerer
	Generative generative.Backend
	Knowledge  KnowledgeMatcher
	Logger     logger.ILogger
}

// Request is a single message to resolve
type Request struct {
	Message  string
	History  []conversation.Message // oldest first
	Category conversation.Category
}

// Result is the reply and how it was produced
type Result struct {
	Reply      string
	Strategy   Strategy
	Identifier string              // set for StrategyStatusLookup
	Table      knowledge.TableName // set for StrategyKnowledgeBase
}

// Router decides which strategy answers a message. It holds no
// per-conversation state and is safe for concurrent use.
type Router struct {
	status     StatusLookup
	responder  StatusRenderer
	documents  DocumentAnswerer
	generative generative.Backend
	knowledge  KnowledgeMatcher
	logger     logger.ILogger
}

func NewRouter(deps Dependencies) *Router {
	if deps.Logger == nil {
		deps.Logger = logger.NewNopLogger()
	}
	return &Router{
		status:     deps.Status,
		responder:  deps.Responder,
		documents:  deps.Documents,
		generative: deps.Generative,
		knowledge:  deps.Knowledge,
		logger:     deps.Logger,
	}
}

// Resolve runs the resolution chain. Every step short-circuits on success:
//  1. an identifier in the message is looked up
//  2. a bare status question under Status Inquiries is answered with a
//     request for the ID, unless one was already asked for
//  3. with a category and a loaded document, the document answers
//  4. the generative backend, when available
//  5. the keyword tables, then the default message
func (r *Router) Resolve(ctx context.Context, req Request) *Result {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "router.Resolve")
	defer span.End()

	start := time.Now()
	result := r.resolve(ctx, req)

	span.SetAttributes(
		attribute.String("assistant.strategy", result.Strategy.String()),
		attribute.String("assistant.category", req.Category.String()),
		attribute.Int("assistant.history_length", len(req.History)),
	)

	r.logger.Info("Router", "Message resolved", map[string]interface{}{
		"strategy":    result.Strategy.String(),
		"category":    req.Category.String(),
		"table":       string(result.Table),
		"duration_ms": time.Since(start).Milliseconds(),
	})
	return result
}

func (r *Router) resolve(ctx context.Context, req Request) *Result {
	if strings.TrimSpace(req.Message) == "" {
		return &Result{Reply: DefaultMessage(""), Strategy: StrategyDefault}
	}

	// 1. Identifier takes priority over everything, including the category
	if id, ok := identifier.Extract(req.Message); ok {
		rec, _ := r.status.Lookup(id)
		return &Result{
			Reply:      r.responder.Render(id, rec),
			Strategy:   StrategyStatusLookup,
			Identifier: id,
		}
	}

	// 2. Ask for the ID once; later turns fall through
	if req.Category == conversation.CategoryStatusInquiries &&
		isStatusInquiry(req.Message) &&
		!conversation.BotSaidAny(req.History, idRequestPhrases) {
		return &Result{Reply: IdentifierPrompt, Strategy: StrategyIdentifierPrompt}
	}

	// 3. A loaded document is authoritative for categorized questions
	if !req.Category.IsNone() && r.documents != nil && r.documents.HasDocument() {
		return &Result{
			Reply:    r.documents.Answer(ctx, req.Message, req.Category, req.History),
			Strategy: StrategyDocument,
		}
	}

	// 4. Generative fallback; any failure continues to the keyword tables
	if r.generative != nil && r.generative.IsAvailable() {
		reply, err := r.generative.Complete(ctx, generative.Annotate(req.Message, req.Category), req.History)
		if err == nil {
			return &Result{Reply: reply, Strategy: StrategyGenerative}
		}
		r.logGenerativeFailure(ctx, req, err)
	}

	// 5. Keyword tables, then the default message
	if r.knowledge != nil {
		if m, ok := r.knowledge.Match(req.Message, req.Category); ok {
			return &Result{Reply: m.Response, Strategy: StrategyKnowledgeBase, Table: m.Table}
		}
	}

	r.logger.Warn("Router", "No keyword match found", map[string]interface{}{
		"category": req.Category.String(),
	})
	return &Result{Reply: DefaultMessage(req.Message), Strategy: StrategyDefault}
}

func (r *Router) logGenerativeFailure(ctx context.Context, req Request, err error) {
	reason := "backend_failure"
	switch {
	case errors.Is(err, generative.ErrEmptyCompletion):
		reason = "empty_completion"
	case errors.Is(err, context.DeadlineExceeded):
		reason = "timeout"
	case errors.Is(err, context.Canceled):
		reason = "cancelled"
	}

	span := trace.SpanFromContext(ctx)
	span.RecordError(err, trace.WithAttributes(attribute.String("assistant.fallback_reason", reason)))

	r.logger.Warn("Router", "Generative fallback failed, using knowledge base", map[string]interface{}{
		"category": req.Category.String(),
		"reason":   reason,
		"error":    err.Error(),
	})
}
