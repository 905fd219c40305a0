package handler

import (
	"support-assistant-be/internal/pkg/logger"
	internalWS "support-assistant-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

type ChatHandler struct {
	hub    *internalWS.Hub
	logger logger.ILogger
}

func NewChatHandler(hub *internalWS.Hub, log logger.ILogger) *ChatHandler {
	return &ChatHandler{
		hub:    hub,
		logger: log,
	}
}

func (h *ChatHandler) RegisterRoutes(r fiber.Router) {
	r.Get("/ws/chat", h.ServeWs)
}

// ServeWs upgrades the request to a chat socket. The session comes from the
// session_id query parameter; a missing one starts a new session.
func (h *ChatHandler) ServeWs(c *fiber.Ctx) error {
	sessionId := c.Query("session_id")
	if sessionId == "" {
		sessionId = uuid.NewString()
	} else if _, err := uuid.Parse(sessionId); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid session id")
	}

	if websocket.IsWebSocketUpgrade(c) {
		return websocket.New(func(c *websocket.Conn) {
			h.logger.Info("ChatHandler", "Starting WebSocket session", map[string]interface{}{"session_id": sessionId})
			internalWS.ServeWs(h.hub, c, sessionId)
			h.logger.Info("ChatHandler", "WebSocket session ended", map[string]interface{}{"session_id": sessionId})
		})(c)
	}
	return fiber.ErrUpgradeRequired
}
