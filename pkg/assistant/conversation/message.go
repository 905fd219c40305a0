package conversation

import (
	"strings"
)

// Message is a single chat turn. A conversation is a chronological slice of
// messages, most recent last.
type Message struct {
	IsFromUser bool   `json:"is_from_user"`
	Text       string `json:"text"`
}

// UserMessage builds a message sent by the user
func UserMessage(text string) Message {
	return Message{IsFromUser: true, Text: text}
}

// BotMessage builds a message sent by the assistant
func BotMessage(text string) Message {
	return Message{IsFromUser: false, Text: text}
}

// Last returns at most the n most recent messages. The returned slice shares
// the backing array with history and must not be modified.
func Last(history []Message, n int) []Message {
	if n <= 0 {
		return nil
	}
	if len(history) <= n {
		return history
	}
	return history[len(history)-n:]
}

// BotSaidAny reports whether any assistant message in history contains one of
// the phrases (case-insensitive).
func BotSaidAny(history []Message, phrases []string) bool {
	for _, msg := range history {
		if msg.IsFromUser {
			continue
		}
		lower := strings.ToLower(msg.Text)
		for _, phrase := range phrases {
			if strings.Contains(lower, strings.ToLower(phrase)) {
				return true
			}
		}
	}
	return false
}
