package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"support-assistant-be/internal/dto"
	"support-assistant-be/internal/pkg/logger"

	"github.com/redis/go-redis/v9"
)

// ClusterChannel carries replies between instances so every tab of a
// session sees them, whichever instance resolved the message.
const ClusterChannel = "chat_session_events"

// ChatSender resolves one chat message
type ChatSender interface {
	SendChat(ctx context.Context, request *dto.SendChatRequest) (*dto.SendChatResponse, error)
}

// Frame is the envelope of every outbound websocket message
type Frame struct {
	Type string      `json:"type"` // "reply" or "error"
	Data interface{} `json:"data"`
}

type clusterMessage struct {
	Origin    string          `json:"origin"`
	SessionId string          `json:"session_id"`
	Message   json.RawMessage `json:"message"`
}

type Hub struct {
	// Registered clients: SessionId -> connections (multiple tabs)
	clients map[string][]*Client

	register   chan *Client
	unregister chan *Client
	done       chan struct{}

	mu sync.RWMutex

	chat ChatSender

	// Redis connection for cross-instance delivery, may be nil
	rdb *redis.Client

	// identifies this instance on the cluster channel
	instanceId string

	logger logger.ILogger
}

func NewHub(chat ChatSender, rdb *redis.Client, instanceId string, log logger.ILogger) *Hub {
	return &Hub{
		clients:    make(map[string][]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		chat:       chat,
		rdb:        rdb,
		instanceId: instanceId,
		logger:     log,
	}
}

// Run serves register and unregister requests until ctx is cancelled
func (h *Hub) Run(ctx context.Context) {
	if h.rdb != nil {
		go h.subscribeToRedis(ctx)
	}

	for {
		select {
		case <-ctx.Done():
			close(h.done)
			h.closeAll()
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.SessionId] = append(h.clients[client.SessionId], client)
			h.mu.Unlock()
			h.logger.Info("Hub", "Client registered", map[string]interface{}{"session_id": client.SessionId})

		case client := <-h.unregister:
			h.remove(client)
		}
	}
}

func (h *Hub) remove(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients, ok := h.clients[client.SessionId]
	if !ok {
		return
	}
	for i, c := range clients {
		if c == client {
			h.clients[client.SessionId] = append(clients[:i], clients[i+1:]...)
			close(client.Send)
			break
		}
	}
	if len(h.clients[client.SessionId]) == 0 {
		delete(h.clients, client.SessionId)
		h.logger.Info("Hub", "Session has no more clients", map[string]interface{}{"session_id": client.SessionId})
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, clients := range h.clients {
		for _, c := range clients {
			close(c.Send)
		}
		delete(h.clients, id)
	}
}

func (h *Hub) Register(client *Client) bool {
	select {
	case h.register <- client:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// sendTo queues data for a single client if it is still registered
func (h *Hub) sendTo(client *Client, data []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, c := range h.clients[client.SessionId] {
		if c == client {
			select {
			case client.Send <- data:
			default:
			}
			return
		}
	}
}

// ClientCount returns the number of connections for sessionId
func (h *Hub) ClientCount(sessionId string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[sessionId])
}

// Deliver sends a frame to every local client of sessionId and publishes it
// for the other instances.
func (h *Hub) Deliver(ctx context.Context, sessionId string, frame Frame) {
	data, err := json.Marshal(frame)
	if err != nil {
		return
	}

	h.deliverLocal(sessionId, data)

	if h.rdb != nil {
		payload, _ := json.Marshal(clusterMessage{
			Origin:    h.instanceId,
			SessionId: sessionId,
			Message:   data,
		})
		if err := h.rdb.Publish(ctx, ClusterChannel, payload).Err(); err != nil {
			h.logger.Warn("Hub", "Failed to publish to cluster channel", map[string]interface{}{
				"session_id": sessionId,
				"error":      err.Error(),
			})
		}
	}
}

func (h *Hub) deliverLocal(sessionId string, data []byte) {
	var stale []*Client

	h.mu.RLock()
	for _, client := range h.clients[sessionId] {
		select {
		case client.Send <- data:
		default:
			stale = append(stale, client)
		}
	}
	h.mu.RUnlock()

	for _, client := range stale {
		h.logger.Warn("Hub", "Client send buffer full, dropping connection", map[string]interface{}{"session_id": sessionId})
		h.remove(client)
	}
}

func (h *Hub) subscribeToRedis(ctx context.Context) {
	pubsub := h.rdb.Subscribe(ctx, ClusterChannel)
	defer pubsub.Close()

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}

			var payload clusterMessage
			if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
				h.logger.Warn("Hub", "Cluster message parse error", map[string]interface{}{"error": err.Error()})
				continue
			}
			if payload.Origin == h.instanceId {
				continue
			}
			h.deliverLocal(payload.SessionId, payload.Message)
		}
	}
}
