package memory

import (
	"context"
	"sync"
	"time"

	"support-assistant-be/internal/repository/contract"
	"support-assistant-be/pkg/assistant/conversation"

	"github.com/patrickmn/go-cache"
)

type ConversationRepository struct {
	cache       *cache.Cache
	maxMessages int
	// serializes read-modify-write on a session
	mu sync.Mutex
}

var _ contract.IConversationRepository = (*ConversationRepository)(nil)

func NewConversationRepository(ttl time.Duration, maxMessages int) *ConversationRepository {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	// purge expired sessions every 10 minutes
	return &ConversationRepository{
		cache:       cache.New(ttl, 10*time.Minute),
		maxMessages: maxMessages,
	}
}

func (r *ConversationRepository) Append(ctx context.Context, sessionId string, messages ...conversation.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var history []conversation.Message
	if x, found := r.cache.Get(sessionId); found {
		history = x.([]conversation.Message)
	}

	updated := make([]conversation.Message, 0, len(history)+len(messages))
	updated = append(updated, history...)
	updated = append(updated, messages...)
	if r.maxMessages > 0 && len(updated) > r.maxMessages {
		updated = updated[len(updated)-r.maxMessages:]
	}

	r.cache.Set(sessionId, updated, cache.DefaultExpiration)
	return nil
}

func (r *ConversationRepository) History(ctx context.Context, sessionId string) ([]conversation.Message, bool, error) {
	if x, found := r.cache.Get(sessionId); found {
		history := x.([]conversation.Message)
		out := make([]conversation.Message, len(history))
		copy(out, history)
		return out, true, nil
	}
	return nil, false, nil
}

func (r *ConversationRepository) Delete(ctx context.Context, sessionId string) error {
	r.cache.Delete(sessionId)
	return nil
}
