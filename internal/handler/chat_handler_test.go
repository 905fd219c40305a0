package handler

import (
	"net/http/httptest"
	"testing"

	"support-assistant-be/internal/pkg/logger"
	"support-assistant-be/internal/pkg/serverutils"
	internalWS "support-assistant-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServeWsRejectsPlainRequests(t *testing.T) {
	hub := internalWS.NewHub(nil, nil, "test", logger.NewNopLogger())
	app := fiber.New()
	app.Use(serverutils.ErrorHandlerMiddleware())
	NewChatHandler(hub, logger.NewNopLogger()).RegisterRoutes(app)

	tests := []struct {
		path       string
		wantStatus int
	}{
		{"/ws/chat", fiber.StatusUpgradeRequired},
		{"/ws/chat?session_id=3b241101-e2bb-4255-8caf-4136c566a962", fiber.StatusUpgradeRequired},
		{"/ws/chat?session_id=nope", fiber.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest("GET", tt.path, nil))
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
		})
	}
}
