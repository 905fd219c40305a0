package document

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync/atomic"

	"support-assistant-be/internal/pkg/logger"
	"support-assistant-be/pkg/assistant/conversation"
	"support-assistant-be/pkg/assistant/generative"
	"support-assistant-be/pkg/utils"
)

const (
	NoDocumentMessage   = "No document has been loaded. Please upload a document first."
	UnavailableMessage  = "The AI service is not available right now, so I can't answer questions about the loaded document."
	AnswerFailedMessage = "I'm sorry, I couldn't find an answer in the document right now. Please try again in a moment."

	// Documents longer than this are cut into chunks and only the chunks
	// most relevant to the question are sent.
	maxContextRunes = 12000
	chunkSize       = 1500
	chunkOverlap    = 200
	maxChunks       = 6
)

// Store holds the currently loaded reference document. Content is replaced
// atomically, so concurrent readers always see a complete document.
type Store struct {
	content atomic.Pointer[string]
	backend generative.Backend
	log     logger.ILogger
}

func NewStore(backend generative.Backend, log logger.ILogger) *Store {
	return &Store{backend: backend, log: log}
}

// HasDocument reports whether non-blank content is loaded
func (s *Store) HasDocument() bool {
	return strings.TrimSpace(s.Content()) != ""
}

// Content returns the loaded text, or "" when nothing is loaded
func (s *Store) Content() string {
	if p := s.content.Load(); p != nil {
		return *p
	}
	return ""
}

// LoadText replaces the document with text
func (s *Store) LoadText(text string) {
	s.content.Store(&text)
	s.log.Info("DocumentStore", "Document content loaded from text", map[string]interface{}{
		"length": len([]rune(text)),
	})
}

// LoadFile replaces the document with the file's contents. The current
// document is kept when the file cannot be read.
func (s *Store) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		s.log.Warn("DocumentStore", "Document file could not be read", map[string]interface{}{
			"path":  path,
			"error": err.Error(),
		})
		return fmt.Errorf("load document %s: %w", path, err)
	}

	text := string(data)
	s.content.Store(&text)
	s.log.Info("DocumentStore", "Document loaded from file", map[string]interface{}{
		"path":   path,
		"length": len([]rune(text)),
	})
	return nil
}

// Answer responds to question using only the loaded document. Failures
// become apologetic text; the error itself is only logged.
func (s *Store) Answer(ctx context.Context, question string, category conversation.Category, history []conversation.Message) string {
	content := s.Content()
	if strings.TrimSpace(content) == "" {
		return NoDocumentMessage
	}
	if s.backend == nil || !s.backend.IsAvailable() {
		return UnavailableMessage
	}

	prompt := fmt.Sprintf(`You answer questions for a business based on the following document.

Document Content:
%s

Category: %s
Current Question: %s

Instructions:
- Answer the question based ONLY on the information in the document above
- Focus on the '%s' category
- If the information is not in the document, politely say so
- Be concise, friendly, and professional
- If asked about navigation, provide location details, directions, addresses
- If asked about services, explain what services are offered
- If asked about status, explain how to check status, track requests, or get updates`,
		selectContext(content, question), category, question, category)

	reply, err := s.backend.Complete(ctx, prompt, history)
	if err != nil {
		s.log.Error("DocumentStore", "Error answering question from document", map[string]interface{}{
			"category": category.String(),
			"error":    err.Error(),
		})
		return AnswerFailedMessage
	}
	return reply
}

// ExtractCategoryInformation summarizes what the document says about
// category. Without a backend the raw document is returned.
func (s *Store) ExtractCategoryInformation(ctx context.Context, category conversation.Category) string {
	content := s.Content()
	if strings.TrimSpace(content) == "" {
		return NoDocumentMessage
	}
	if s.backend == nil || !s.backend.IsAvailable() {
		return content
	}

	prompt := fmt.Sprintf(`Extract information from the document below.

Document Content:
%s

Category: %s

Extract and summarize all relevant information about '%s' from the document above.
Focus on:
- Navigation Guidance: locations, addresses, directions, how to find/visit
- Service Explanation: services offered, what they do, capabilities, offerings
- Status Inquiries: how to check status, request tracking, updates, processing times

Return a clear, concise summary of information related to this category. If no relevant information is found, say so.`,
		selectContext(content, string(category)), category, category)

	reply, err := s.backend.Complete(ctx, prompt, nil)
	if err != nil {
		s.log.Error("DocumentStore", "Error extracting category information", map[string]interface{}{
			"category": category.String(),
			"error":    err.Error(),
		})
		return AnswerFailedMessage
	}
	return reply
}

// selectContext returns the whole document when it is short enough, else
// the chunks that best match query, in relevance order.
func selectContext(content, query string) string {
	if len([]rune(content)) <= maxContextRunes {
		return content
	}
	chunks := utils.SplitText(content, chunkSize, chunkOverlap)
	return strings.Join(utils.RankChunks(chunks, query, maxChunks), "\n...\n")
}
