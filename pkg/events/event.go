package events

import (
	"context"
	"time"
)

// EventTypeChatResolved is emitted once per resolved chat message
const EventTypeChatResolved = "chat.resolved"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "chat.resolved").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// Publisher sends events to an external bus
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// BaseEvent helps embed common logic if needed,
// strictly creating valid implementations is preferred though.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// Resolution describes how a single chat message was answered
type Resolution struct {
	EventId         string    `json:"event_id"`
	SessionId       string    `json:"session_id"`
	Strategy        string    `json:"strategy"`
	Category        string    `json:"category"`
	Table           string    `json:"table,omitempty"`
	IdentifierFound bool      `json:"identifier_found"`
	DurationMs      int64     `json:"duration_ms"`
	OccurredAt      time.Time `json:"occurred_at"`
}

// NewResolutionEvent wraps r as a chat.resolved event
func NewResolutionEvent(r Resolution) BaseEvent {
	return BaseEvent{
		Type: EventTypeChatResolved,
		Data: map[string]interface{}{
			"event_id":         r.EventId,
			"session_id":       r.SessionId,
			"strategy":         r.Strategy,
			"category":         r.Category,
			"table":            r.Table,
			"identifier_found": r.IdentifierFound,
			"duration_ms":      r.DurationMs,
			"occurred_at":      r.OccurredAt.Format(time.RFC3339Nano),
		},
		OccurredAt: r.OccurredAt,
	}
}
