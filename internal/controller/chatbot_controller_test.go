package controller

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"support-assistant-be/internal/dto"
	"support-assistant-be/internal/pkg/serverutils"
	"support-assistant-be/internal/service"
	"support-assistant-be/pkg/assistant/stats"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSessionId = "3b241101-e2bb-4255-8caf-4136c566a962"

type fakeChatbotService struct {
	lastSend *dto.SendChatRequest
	err      error
}

func (f *fakeChatbotService) SendChat(ctx context.Context, request *dto.SendChatRequest) (*dto.SendChatResponse, error) {
	f.lastSend = request
	if f.err != nil {
		return nil, f.err
	}
	return &dto.SendChatResponse{SessionId: testSessionId, Reply: "hello", Strategy: "DEFAULT", Category: "none", CreatedAt: time.Now()}, nil
}

func (f *fakeChatbotService) GetChatHistory(ctx context.Context, sessionId string) (*dto.GetChatHistoryResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &dto.GetChatHistoryResponse{SessionId: sessionId, Messages: []dto.ChatMessageDTO{{IsFromUser: true, Text: "hi"}}}, nil
}

func (f *fakeChatbotService) DeleteSession(ctx context.Context, sessionId string) error {
	return f.err
}

func (f *fakeChatbotService) LookupStatus(ctx context.Context, input string) (*dto.StatusLookupResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &dto.StatusLookupResponse{Identifier: input, Found: true, Reply: "ok"}, nil
}

func (f *fakeChatbotService) LoadDocument(ctx context.Context, request *dto.LoadDocumentRequest) (*dto.LoadDocumentResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &dto.LoadDocumentResponse{Loaded: true, Length: len(request.Content)}, nil
}

func (f *fakeChatbotService) GetCategoryInformation(ctx context.Context, category string) (*dto.CategoryInformationResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &dto.CategoryInformationResponse{Category: category, Information: "info"}, nil
}

func (f *fakeChatbotService) GetStats(ctx context.Context) (*dto.StatsResponse, error) {
	return &dto.StatsResponse{Snapshot: stats.NewTracker().Snapshot()}, nil
}

func newTestApp(svc service.IChatbotService) *fiber.App {
	app := fiber.New()
	app.Use(serverutils.ErrorHandlerMiddleware())
	NewChatbotController(svc).RegisterRoutes(app.Group("/api"))
	return app
}

func doRequest(t *testing.T, app *fiber.App, method, path, body string) (int, serverutils.Response[json.RawMessage]) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var envelope serverutils.Response[json.RawMessage]
	require.NoError(t, json.Unmarshal(raw, &envelope), string(raw))
	return resp.StatusCode, envelope
}

func TestSendChat(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{"valid", `{"message":"hello","category":"Navigation Guidance"}`, fiber.StatusOK},
		{"empty message is allowed", `{"message":""}`, fiber.StatusOK},
		{"with history", `{"session_id":"` + testSessionId + `","message":"hi","history":[{"is_from_user":true,"text":"a"}]}`, fiber.StatusOK},
		{"malformed json", `{"message":`, fiber.StatusBadRequest},
		{"invalid session id", `{"session_id":"abc","message":"hi"}`, fiber.StatusBadRequest},
		{"message too long", `{"message":"` + strings.Repeat("a", 4001) + `"}`, fiber.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(&fakeChatbotService{})
			status, envelope := doRequest(t, app, "POST", "/api/chatbot/v1/send-chat", tt.body)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantStatus == fiber.StatusOK, envelope.Success)
		})
	}
}

func TestSendChatPassesRequestThrough(t *testing.T) {
	svc := &fakeChatbotService{}
	app := newTestApp(svc)

	status, envelope := doRequest(t, app, "POST", "/api/chatbot/v1/send-chat", `{"message":"where is it","category":"status"}`)
	require.Equal(t, fiber.StatusOK, status)
	require.NotNil(t, svc.lastSend)
	assert.Equal(t, "where is it", svc.lastSend.Message)
	assert.Equal(t, "status", svc.lastSend.Category)

	var res dto.SendChatResponse
	require.NoError(t, json.Unmarshal(envelope.Data, &res))
	assert.Equal(t, testSessionId, res.SessionId)
	assert.Equal(t, "hello", res.Reply)
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		method     string
		path       string
		body       string
		wantStatus int
	}{
		{"history not found", service.ErrSessionNotFound, "GET", "/api/chatbot/v1/sessions/" + testSessionId + "/history", "", fiber.StatusNotFound},
		{"delete not found", service.ErrSessionNotFound, "DELETE", "/api/chatbot/v1/sessions/" + testSessionId, "", fiber.StatusNotFound},
		{"history bad id", nil, "GET", "/api/chatbot/v1/sessions/not-a-uuid/history", "", fiber.StatusBadRequest},
		{"no identifier", service.ErrNoIdentifier, "GET", "/api/chatbot/v1/status/abc", "", fiber.StatusBadRequest},
		{"unknown category", service.ErrUnknownCategory, "GET", "/api/chatbot/v1/categories/weather", "", fiber.StatusBadRequest},
		{"empty document", service.ErrEmptyDocument, "POST", "/api/chatbot/v1/document", `{"content":"  "}`, fiber.StatusBadRequest},
		{"missing document content", nil, "POST", "/api/chatbot/v1/document", `{}`, fiber.StatusBadRequest},
		{"unexpected error", errors.New("redis: connection refused"), "POST", "/api/chatbot/v1/send-chat", `{"message":"hi"}`, fiber.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(&fakeChatbotService{err: tt.err})
			status, envelope := doRequest(t, app, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.wantStatus, status)
			assert.False(t, envelope.Success)
			assert.NotContains(t, envelope.Message, "redis")
		})
	}
}

func TestReadRoutes(t *testing.T) {
	app := newTestApp(&fakeChatbotService{})

	tests := []struct {
		method string
		path   string
		body   string
	}{
		{"GET", "/api/chatbot/v1/sessions/" + testSessionId + "/history", ""},
		{"DELETE", "/api/chatbot/v1/sessions/" + testSessionId, ""},
		{"GET", "/api/chatbot/v1/status/1234567890", ""},
		{"POST", "/api/chatbot/v1/document", `{"content":"Office hours are 8am to 2pm."}`},
		{"GET", "/api/chatbot/v1/categories/navigation", ""},
		{"GET", "/api/chatbot/v1/stats", ""},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			status, envelope := doRequest(t, app, tt.method, tt.path, tt.body)
			assert.Equal(t, fiber.StatusOK, status)
			assert.True(t, envelope.Success)
		})
	}
}
