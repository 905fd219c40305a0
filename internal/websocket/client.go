package websocket

import (
	"context"
	"encoding/json"
	"time"

	"support-assistant-be/internal/dto"
	"support-assistant-be/internal/pkg/serverutils"

	"github.com/gofiber/websocket/v2"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 16 * 1024
	resolveTimeout = 60 * time.Second
)

// inboundMessage is what the widget sends over the socket
type inboundMessage struct {
	Message  string `json:"message"`
	Category string `json:"category"`
}

type errorData struct {
	Message string `json:"message"`
}

// Client is a middleman between the websocket connection and the hub.
type Client struct {
	Hub *Hub

	Conn *websocket.Conn

	SessionId string

	// Buffered channel of outbound messages.
	Send chan []byte
}

// readPump resolves every inbound frame and hands the reply to the hub.
func (c *Client) readPump() {
	defer func() {
		c.Hub.Unregister(c)
		c.Conn.Close()
	}()
	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.Hub.logger.Warn("WSClient", "Unexpected close", map[string]interface{}{
					"session_id": c.SessionId,
					"error":      err.Error(),
				})
			}
			break
		}
		c.handle(raw)
	}
}

func (c *Client) handle(raw []byte) {
	var in inboundMessage
	if err := json.Unmarshal(raw, &in); err != nil {
		c.sendError("Invalid message format")
		return
	}

	req := &dto.SendChatRequest{
		SessionId: c.SessionId,
		Message:   in.Message,
		Category:  in.Category,
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		c.sendError(err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), resolveTimeout)
	defer cancel()

	res, err := c.Hub.chat.SendChat(ctx, req)
	if err != nil {
		c.Hub.logger.Error("WSClient", "Failed to resolve message", map[string]interface{}{
			"session_id": c.SessionId,
			"error":      err.Error(),
		})
		c.sendError("Internal server error")
		return
	}

	c.Hub.Deliver(ctx, c.SessionId, Frame{Type: "reply", Data: res})
}

// sendError answers only the connection that sent the bad frame
func (c *Client) sendError(message string) {
	data, _ := json.Marshal(Frame{Type: "error", Data: errorData{Message: message}})
	c.Hub.sendTo(c, data)
}

// writePump pumps messages from the hub to the websocket connection.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel.
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			// one JSON frame per websocket message
			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
