package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"support-assistant-be/internal/repository/contract"
	"support-assistant-be/pkg/assistant/conversation"

	goredis "github.com/redis/go-redis/v9"
)

const keyPrefix = "chat:conversation:"

// ConversationRepository stores each session as a Redis list of JSON
// messages, trimmed to the newest maxMessages and expiring after ttl.
type ConversationRepository struct {
	rdb         *goredis.Client
	ttl         time.Duration
	maxMessages int
}

var _ contract.IConversationRepository = (*ConversationRepository)(nil)

func NewConversationRepository(rdb *goredis.Client, ttl time.Duration, maxMessages int) *ConversationRepository {
	return &ConversationRepository{rdb: rdb, ttl: ttl, maxMessages: maxMessages}
}

func key(sessionId string) string {
	return keyPrefix + sessionId
}

func (r *ConversationRepository) Append(ctx context.Context, sessionId string, messages ...conversation.Message) error {
	if len(messages) == 0 {
		return nil
	}

	values := make([]interface{}, 0, len(messages))
	for _, m := range messages {
		data, err := json.Marshal(m)
		if err != nil {
			return fmt.Errorf("marshal message: %w", err)
		}
		values = append(values, data)
	}

	k := key(sessionId)
	pipe := r.rdb.TxPipeline()
	pipe.RPush(ctx, k, values...)
	if r.maxMessages > 0 {
		pipe.LTrim(ctx, k, int64(-r.maxMessages), -1)
	}
	if r.ttl > 0 {
		pipe.Expire(ctx, k, r.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("append conversation %s: %w", sessionId, err)
	}
	return nil
}

func (r *ConversationRepository) History(ctx context.Context, sessionId string) ([]conversation.Message, bool, error) {
	raw, err := r.rdb.LRange(ctx, key(sessionId), 0, -1).Result()
	if err != nil {
		return nil, false, fmt.Errorf("load conversation %s: %w", sessionId, err)
	}
	if len(raw) == 0 {
		return nil, false, nil
	}

	messages := make([]conversation.Message, 0, len(raw))
	for _, item := range raw {
		var m conversation.Message
		if err := json.Unmarshal([]byte(item), &m); err != nil {
			// skip entries written by an incompatible version
			continue
		}
		messages = append(messages, m)
	}
	return messages, true, nil
}

func (r *ConversationRepository) Delete(ctx context.Context, sessionId string) error {
	if err := r.rdb.Del(ctx, key(sessionId)).Err(); err != nil {
		return fmt.Errorf("delete conversation %s: %w", sessionId, err)
	}
	return nil
}
