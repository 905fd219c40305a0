package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"support-assistant-be/internal/dto"
	"support-assistant-be/internal/pkg/logger"
	"support-assistant-be/internal/repository/contract"
	"support-assistant-be/pkg/assistant/conversation"
	"support-assistant-be/pkg/assistant/document"
	"support-assistant-be/pkg/assistant/generative"
	"support-assistant-be/pkg/assistant/identifier"
	"support-assistant-be/pkg/assistant/router"
	"support-assistant-be/pkg/assistant/stats"
	"support-assistant-be/pkg/assistant/status"
	"support-assistant-be/pkg/events"

	"github.com/google/uuid"
)

var (
	ErrSessionNotFound = errors.New("chat session not found")
	ErrNoIdentifier    = errors.New("no identifier found in input")
	ErrUnknownCategory = errors.New("unknown category")
	ErrEmptyDocument   = errors.New("document content is empty")
)

// IChatbotService defines the chatbot service interface
type IChatbotService interface {
	SendChat(ctx context.Context, request *dto.SendChatRequest) (*dto.SendChatResponse, error)
	GetChatHistory(ctx context.Context, sessionId string) (*dto.GetChatHistoryResponse, error)
	DeleteSession(ctx context.Context, sessionId string) error
	LookupStatus(ctx context.Context, input string) (*dto.StatusLookupResponse, error)
	LoadDocument(ctx context.Context, request *dto.LoadDocumentRequest) (*dto.LoadDocumentResponse, error)
	GetCategoryInformation(ctx context.Context, category string) (*dto.CategoryInformationResponse, error)
	GetStats(ctx context.Context) (*dto.StatsResponse, error)
}

// ChatbotDependencies groups the collaborators of the chatbot service
type ChatbotDependencies struct {
	Router        *router.Router
	Conversations contract.IConversationRepository
	Status        *status.Service
	Responder     *status.Responder
	Documents     *document.Store
	Generative    generative.Backend
	Publisher     IPublisherService
	Tracker       *stats.Tracker
	Logger        logger.ILogger
}

type chatbotService struct {
	router        *router.Router
	conversations contract.IConversationRepository
	status        *status.Service
	responder     *status.Responder
	documents     *document.Store
	generative    generative.Backend
	publisher     IPublisherService
	tracker       *stats.Tracker
	logger        logger.ILogger
}

func NewChatbotService(deps ChatbotDependencies) IChatbotService {
	return &chatbotService{
		router:        deps.Router,
		conversations: deps.Conversations,
		status:        deps.Status,
		responder:     deps.Responder,
		documents:     deps.Documents,
		generative:    deps.Generative,
		publisher:     deps.Publisher,
		tracker:       deps.Tracker,
		logger:        deps.Logger,
	}
}

// SendChat resolves one message. History comes from the request when the
// client sends it, otherwise from the stored conversation.
func (s *chatbotService) SendChat(ctx context.Context, request *dto.SendChatRequest) (*dto.SendChatResponse, error) {
	sessionId := request.SessionId
	if sessionId == "" {
		sessionId = uuid.NewString()
	}
	category := conversation.ParseCategory(request.Category)

	history := toMessages(request.History)
	if request.History == nil {
		stored, _, err := s.conversations.History(ctx, sessionId)
		if err != nil {
			s.logger.Warn("ChatbotService", "Failed to load conversation, continuing without history", map[string]interface{}{
				"session_id": sessionId,
				"error":      err.Error(),
			})
		}
		history = stored
	}

	start := time.Now()
	result := s.router.Resolve(ctx, router.Request{
		Message:  request.Message,
		History:  history,
		Category: category,
	})
	duration := time.Since(start)

	if err := s.conversations.Append(ctx, sessionId,
		conversation.UserMessage(request.Message),
		conversation.BotMessage(result.Reply),
	); err != nil {
		s.logger.Warn("ChatbotService", "Failed to store conversation", map[string]interface{}{
			"session_id": sessionId,
			"error":      err.Error(),
		})
	}

	s.publishResolution(ctx, sessionId, category, result, duration)

	return &dto.SendChatResponse{
		SessionId:  sessionId,
		Reply:      result.Reply,
		Strategy:   result.Strategy.String(),
		Category:   category.String(),
		Identifier: result.Identifier,
		Table:      string(result.Table),
		CreatedAt:  time.Now(),
	}, nil
}

func (s *chatbotService) publishResolution(ctx context.Context, sessionId string, category conversation.Category, result *router.Result, duration time.Duration) {
	if s.publisher == nil {
		return
	}

	payload, err := json.Marshal(events.Resolution{
		EventId:         uuid.NewString(),
		SessionId:       sessionId,
		Strategy:        result.Strategy.String(),
		Category:        category.String(),
		Table:           string(result.Table),
		IdentifierFound: result.Identifier != "",
		DurationMs:      duration.Milliseconds(),
		OccurredAt:      time.Now(),
	})
	if err != nil {
		return
	}

	// We log error but don't fail the request as stats are auxiliary
	if err := s.publisher.Publish(ctx, payload); err != nil {
		s.logger.Warn("ChatbotService", "Failed to publish resolution event", map[string]interface{}{
			"session_id": sessionId,
			"error":      err.Error(),
		})
	}
}

func (s *chatbotService) GetChatHistory(ctx context.Context, sessionId string) (*dto.GetChatHistoryResponse, error) {
	history, found, err := s.conversations.History(ctx, sessionId)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrSessionNotFound
	}

	return &dto.GetChatHistoryResponse{
		SessionId: sessionId,
		Messages:  toDTOs(history),
	}, nil
}

func (s *chatbotService) DeleteSession(ctx context.Context, sessionId string) error {
	_, found, err := s.conversations.History(ctx, sessionId)
	if err != nil {
		return err
	}
	if !found {
		return ErrSessionNotFound
	}
	return s.conversations.Delete(ctx, sessionId)
}

// LookupStatus extracts an identifier from input (digits in any supported
// script, optionally formatted) and renders its status.
func (s *chatbotService) LookupStatus(ctx context.Context, input string) (*dto.StatusLookupResponse, error) {
	id, ok := identifier.Extract(input)
	if !ok {
		return nil, ErrNoIdentifier
	}

	rec, found := s.status.Lookup(id)
	return &dto.StatusLookupResponse{
		Identifier: id,
		Found:      found,
		Record:     rec,
		Reply:      s.responder.Render(id, rec),
	}, nil
}

func (s *chatbotService) LoadDocument(ctx context.Context, request *dto.LoadDocumentRequest) (*dto.LoadDocumentResponse, error) {
	if strings.TrimSpace(request.Content) == "" {
		return nil, ErrEmptyDocument
	}
	s.documents.LoadText(request.Content)

	return &dto.LoadDocumentResponse{
		Loaded: s.documents.HasDocument(),
		Length: len([]rune(request.Content)),
	}, nil
}

func (s *chatbotService) GetCategoryInformation(ctx context.Context, category string) (*dto.CategoryInformationResponse, error) {
	parsed := conversation.ParseCategory(category)
	if parsed.IsNone() {
		return nil, ErrUnknownCategory
	}

	return &dto.CategoryInformationResponse{
		Category:    parsed.String(),
		Information: s.documents.ExtractCategoryInformation(ctx, parsed),
	}, nil
}

func (s *chatbotService) GetStats(ctx context.Context) (*dto.StatsResponse, error) {
	return &dto.StatsResponse{
		Snapshot:            s.tracker.Snapshot(),
		DocumentLoaded:      s.documents.HasDocument(),
		GenerativeAvailable: s.generative != nil && s.generative.IsAvailable(),
	}, nil
}

func toMessages(in []dto.ChatMessageDTO) []conversation.Message {
	if in == nil {
		return nil
	}
	out := make([]conversation.Message, len(in))
	for i, m := range in {
		out[i] = conversation.Message{IsFromUser: m.IsFromUser, Text: m.Text}
	}
	return out
}

func toDTOs(in []conversation.Message) []dto.ChatMessageDTO {
	out := make([]dto.ChatMessageDTO, len(in))
	for i, m := range in {
		out[i] = dto.ChatMessageDTO{IsFromUser: m.IsFromUser, Text: m.Text}
	}
	return out
}
