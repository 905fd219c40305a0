package generative

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"support-assistant-be/internal/pkg/logger"
	"support-assistant-be/pkg/assistant/conversation"
	"support-assistant-be/pkg/llm"
)

// HistoryLimit is the number of most recent messages sent as context
const HistoryLimit = 10

var (
	// ErrUnavailable means no backend is configured
	ErrUnavailable = errors.New("generative backend unavailable")
	// ErrBackendFailure covers transport errors, timeouts, non-success
	// responses and undecodable payloads
	ErrBackendFailure = errors.New("generative backend failure")
	// ErrEmptyCompletion means the backend answered without completion text
	ErrEmptyCompletion = errors.New("generative backend returned no completion")
)

// Backend produces a reply for a prompt given the preceding conversation
type Backend interface {
	IsAvailable() bool
	Complete(ctx context.Context, prompt string, history []conversation.Message) (string, error)
}

type Config struct {
	SystemPrompt string
	Timeout      time.Duration
	Model        string
	Temperature  float64
	MaxTokens    int
}

// Client adapts an llm.LLMProvider to Backend. A nil provider makes the
// client permanently unavailable.
type Client struct {
	provider llm.LLMProvider
	cfg      Config
	log      logger.ILogger
}

var _ Backend = (*Client)(nil)

func NewClient(provider llm.LLMProvider, cfg Config, log logger.ILogger) *Client {
	if cfg.SystemPrompt == "" {
		cfg.SystemPrompt = DefaultSystemPrompt("")
	}
	if log == nil {
		log = logger.NewNopLogger()
	}
	return &Client{provider: provider, cfg: cfg, log: log}
}

func (c *Client) IsAvailable() bool {
	return c != nil && c.provider != nil
}

// Complete sends the system prompt, the last HistoryLimit messages and the
// prompt. The call is bounded by the configured timeout.
func (c *Client) Complete(ctx context.Context, prompt string, history []conversation.Message) (string, error) {
	if !c.IsAvailable() {
		return "", ErrUnavailable
	}

	if c.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.Timeout)
		defer cancel()
	}

	messages := BuildMessages(c.cfg.SystemPrompt, prompt, history)

	var opts []llm.Option
	if c.cfg.Model != "" {
		opts = append(opts, llm.WithModel(c.cfg.Model))
	}
	if c.cfg.Temperature > 0 {
		opts = append(opts, llm.WithTemperature(c.cfg.Temperature))
	}
	if c.cfg.MaxTokens > 0 {
		opts = append(opts, llm.WithMaxTokens(c.cfg.MaxTokens))
	}

	start := time.Now()
	reply, err := c.provider.Chat(ctx, messages, opts...)
	details := map[string]interface{}{
		"messages":    len(messages),
		"duration_ms": time.Since(start).Milliseconds(),
	}

	if err != nil {
		details["error"] = err.Error()
		c.log.Warn("Generative", "Completion failed", details)
		if errors.Is(err, llm.ErrEmptyResponse) {
			return "", fmt.Errorf("%w: %w", ErrEmptyCompletion, err)
		}
		return "", fmt.Errorf("%w: %w", ErrBackendFailure, err)
	}

	reply = strings.TrimSpace(reply)
	if reply == "" {
		c.log.Warn("Generative", "Completion was blank", details)
		return "", ErrEmptyCompletion
	}

	details["reply_length"] = len(reply)
	c.log.Debug("Generative", "Completion received", details)
	return reply, nil
}

// BuildMessages assembles the chat payload: system prompt, trimmed history
// (user -> "user", bot -> "assistant") and the prompt as the final user turn.
func BuildMessages(systemPrompt, prompt string, history []conversation.Message) []llm.Message {
	recent := conversation.Last(history, HistoryLimit)

	messages := make([]llm.Message, 0, len(recent)+2)
	if systemPrompt != "" {
		messages = append(messages, llm.Message{Role: llm.RoleSystem, Content: systemPrompt})
	}
	for _, m := range recent {
		role := llm.RoleAssistant
		if m.IsFromUser {
			role = llm.RoleUser
		}
		messages = append(messages, llm.Message{Role: role, Content: m.Text})
	}
	return append(messages, llm.Message{Role: llm.RoleUser, Content: prompt})
}

// Annotate prefixes the message with the active category, if any
func Annotate(message string, category conversation.Category) string {
	if category.IsNone() {
		return message
	}
	return fmt.Sprintf("[Category: %s] %s", category, message)
}
