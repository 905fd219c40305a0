package contract

import (
	"context"

	"support-assistant-be/pkg/assistant/conversation"
)

// IConversationRepository keeps recent messages per chat session. Stores
// keep at most a configured number of messages and expire idle sessions.
type IConversationRepository interface {
	Append(ctx context.Context, sessionId string, messages ...conversation.Message) error
	// History returns messages oldest first; found is false for unknown or
	// expired sessions
	History(ctx context.Context, sessionId string) (messages []conversation.Message, found bool, err error)
	Delete(ctx context.Context, sessionId string) error
}
