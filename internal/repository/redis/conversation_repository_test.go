package redis

import (
	"context"
	"os"
	"testing"
	"time"

	"support-assistant-be/pkg/assistant/conversation"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Runs against a real server when TEST_REDIS_URL is set
func newTestClient(t *testing.T) *goredis.Client {
	t.Helper()
	url := os.Getenv("TEST_REDIS_URL")
	if url == "" {
		t.Skip("TEST_REDIS_URL not set")
	}
	opt, err := goredis.ParseURL(url)
	require.NoError(t, err)

	rdb := goredis.NewClient(opt)
	t.Cleanup(func() { _ = rdb.Close() })
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		t.Skipf("redis not reachable: %v", err)
	}
	return rdb
}

func TestConversationRepository(t *testing.T) {
	rdb := newTestClient(t)
	repo := NewConversationRepository(rdb, time.Minute, 3)
	ctx := context.Background()
	session := uuid.NewString()
	t.Cleanup(func() { _ = repo.Delete(ctx, session) })

	_, found, err := repo.History(ctx, session)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, repo.Append(ctx, session,
		conversation.UserMessage("1"),
		conversation.BotMessage("2"),
	))
	require.NoError(t, repo.Append(ctx, session,
		conversation.UserMessage("3"),
		conversation.BotMessage("4"),
	))

	history, found, err := repo.History(ctx, session)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []conversation.Message{
		conversation.BotMessage("2"),
		conversation.UserMessage("3"),
		conversation.BotMessage("4"),
	}, history)

	ttl, err := rdb.TTL(ctx, key(session)).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))

	require.NoError(t, repo.Delete(ctx, session))
	_, found, err = repo.History(ctx, session)
	require.NoError(t, err)
	assert.False(t, found)
}
