package service

import (
	"context"
	"encoding/json"
	"time"

	"support-assistant-be/internal/pkg/logger"
	"support-assistant-be/pkg/assistant/stats"
	"support-assistant-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService feeds resolution events from the in-process bus into the
// stats tracker and forwards them to the external bus when one is connected.
type consumerService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	tracker   *stats.Tracker
	forwarder events.Publisher
	logger    logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	tracker *stats.Tracker,
	forwarder events.Publisher, // may be nil
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:    pubSub,
		topicName: topicName,
		tracker:   tracker,
		forwarder: forwarder,
		logger:    log,
	}
}

// Consume subscribes and processes messages in the background until ctx is
// cancelled.
func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload events.Resolution
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("Consumer", "Failed to unmarshal message", map[string]interface{}{
			"message_id": msg.UUID,
			"error":      err.Error(),
		})
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	cs.tracker.Record(stats.Entry{
		Strategy:        payload.Strategy,
		Category:        payload.Category,
		Table:           payload.Table,
		IdentifierFound: payload.IdentifierFound,
		Duration:        time.Duration(payload.DurationMs) * time.Millisecond,
		At:              payload.OccurredAt,
	})

	if cs.forwarder != nil {
		fctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		err := cs.forwarder.Publish(fctx, events.NewResolutionEvent(payload))
		cancel()
		if err != nil {
			// stats are already recorded, so the message is still acked
			cs.logger.Warn("Consumer", "Failed to forward resolution event", map[string]interface{}{
				"event_id": payload.EventId,
				"error":    err.Error(),
			})
		}
	}

	msg.Ack()
}
