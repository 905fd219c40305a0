package websocket

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"support-assistant-be/internal/dto"
	"support-assistant-be/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubChat struct{}

func (stubChat) SendChat(ctx context.Context, request *dto.SendChatRequest) (*dto.SendChatResponse, error) {
	return &dto.SendChatResponse{SessionId: request.SessionId, Reply: "echo: " + request.Message, Strategy: "DEFAULT"}, nil
}

func startHub(t *testing.T) (*Hub, context.CancelFunc) {
	t.Helper()
	hub := NewHub(stubChat{}, nil, "test", logger.NewNopLogger())
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)
	t.Cleanup(cancel)
	return hub, cancel
}

func newTestClient(hub *Hub, sessionId string, buffer int) *Client {
	return &Client{Hub: hub, SessionId: sessionId, Send: make(chan []byte, buffer)}
}

func receiveFrame(t *testing.T, c *Client) Frame {
	t.Helper()
	select {
	case data := <-c.Send:
		var f Frame
		require.NoError(t, json.Unmarshal(data, &f))
		return f
	case <-time.After(time.Second):
		t.Fatal("no frame received")
		return Frame{}
	}
}

func TestHubDeliversToEverySessionClient(t *testing.T) {
	hub, _ := startHub(t)

	tabA := newTestClient(hub, "s-1", 4)
	tabB := newTestClient(hub, "s-1", 4)
	other := newTestClient(hub, "s-2", 4)
	for _, c := range []*Client{tabA, tabB, other} {
		require.True(t, hub.Register(c))
	}
	require.Eventually(t, func() bool { return hub.ClientCount("s-1") == 2 && hub.ClientCount("s-2") == 1 }, time.Second, 5*time.Millisecond)

	hub.Deliver(context.Background(), "s-1", Frame{Type: "reply", Data: map[string]string{"reply": "hi"}})

	assert.Equal(t, "reply", receiveFrame(t, tabA).Type)
	assert.Equal(t, "reply", receiveFrame(t, tabB).Type)
	assert.Len(t, other.Send, 0)
}

func TestHubUnregisterClosesSend(t *testing.T) {
	hub, _ := startHub(t)

	c := newTestClient(hub, "s-1", 1)
	require.True(t, hub.Register(c))
	require.Eventually(t, func() bool { return hub.ClientCount("s-1") == 1 }, time.Second, 5*time.Millisecond)

	hub.Unregister(c)
	require.Eventually(t, func() bool { return hub.ClientCount("s-1") == 0 }, time.Second, 5*time.Millisecond)

	_, open := <-c.Send
	assert.False(t, open)

	// delivering to a session without clients is a no-op
	hub.Deliver(context.Background(), "s-1", Frame{Type: "reply"})
}

func TestHubDropsSlowClient(t *testing.T) {
	hub, _ := startHub(t)

	slow := newTestClient(hub, "s-1", 1)
	require.True(t, hub.Register(slow))
	require.Eventually(t, func() bool { return hub.ClientCount("s-1") == 1 }, time.Second, 5*time.Millisecond)

	hub.Deliver(context.Background(), "s-1", Frame{Type: "reply"})
	hub.Deliver(context.Background(), "s-1", Frame{Type: "reply"})

	assert.Equal(t, 0, hub.ClientCount("s-1"))
}

func TestHubStopsOnCancel(t *testing.T) {
	hub, cancel := startHub(t)

	c := newTestClient(hub, "s-1", 1)
	require.True(t, hub.Register(c))
	require.Eventually(t, func() bool { return hub.ClientCount("s-1") == 1 }, time.Second, 5*time.Millisecond)

	cancel()
	require.Eventually(t, func() bool { return hub.ClientCount("s-1") == 0 }, time.Second, 5*time.Millisecond)
	assert.False(t, hub.Register(newTestClient(hub, "s-1", 1)))

	// unregistering after shutdown must not block
	hub.Unregister(c)
}

func TestClientHandleResolvesAndReplies(t *testing.T) {
	hub, _ := startHub(t)

	c := newTestClient(hub, "3b241101-e2bb-4255-8caf-4136c566a962", 4)
	require.True(t, hub.Register(c))
	require.Eventually(t, func() bool { return hub.ClientCount(c.SessionId) == 1 }, time.Second, 5*time.Millisecond)

	c.handle([]byte(`{"message":"hello","category":"navigation"}`))
	frame := receiveFrame(t, c)
	assert.Equal(t, "reply", frame.Type)
	data, _ := json.Marshal(frame.Data)
	var res dto.SendChatResponse
	require.NoError(t, json.Unmarshal(data, &res))
	assert.Equal(t, "echo: hello", res.Reply)
	assert.Equal(t, c.SessionId, res.SessionId)

	c.handle([]byte(`not json`))
	assert.Equal(t, "error", receiveFrame(t, c).Type)
}
