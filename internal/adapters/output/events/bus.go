package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"counsel-interview/internal/domain"
	"counsel-interview/internal/ports/output"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/sirupsen/logrus"
)

var _ output.EventPublisher = (*Bus)(nil)

const outputChannelBuffer = 64

// Handler consumes one interview event
type Handler func(ctx context.Context, event domain.InterviewEvent) error

// Bus struct - In-process pub/sub for interview lifecycle events.
// Each event type is its own topic.
type Bus struct {
	pubsub *gochannel.GoChannel
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewBus func
func NewBus(logger watermill.LoggerAdapter) *Bus {
	if logger == nil {
		logger = NewLogrusAdapter(nil)
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Bus{
		pubsub: gochannel.NewGoChannel(gochannel.Config{OutputChannelBuffer: outputChannelBuffer}, logger),
		ctx:    ctx,
		cancel: cancel,
	}
}

// Publish implements output.EventPublisher. Events without subscribers are dropped.
func (b *Bus) Publish(ctx context.Context, event domain.InterviewEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode %s event: %w", event.Type, err)
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set("participant_id", event.ParticipantID)
	if err := b.pubsub.Publish(string(event.Type), msg); err != nil {
		return fmt.Errorf("failed to publish %s event: %w", event.Type, err)
	}
	logrus.Debugf("Published %s: participant=%s, message=%s", event.Type, event.ParticipantID, msg.UUID)
	return nil
}

// Subscribe runs handler for every event of the given type until Close.
// Handler errors are logged and the message is acked anyway; there is no redelivery.
func (b *Bus) Subscribe(eventType domain.InterviewEventType, handler Handler) error {
	messages, err := b.pubsub.Subscribe(b.ctx, string(eventType))
	if err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", eventType, err)
	}

	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		for msg := range messages {
			b.dispatch(eventType, msg, handler)
		}
	}()
	return nil
}

func (b *Bus) dispatch(eventType domain.InterviewEventType, msg *message.Message, handler Handler) {
	defer msg.Ack()

	var event domain.InterviewEvent
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		logrus.Errorf("Dropping malformed %s message %s: %v", eventType, msg.UUID, err)
		return
	}
	if err := handler(b.ctx, event); err != nil {
		logrus.Errorf("Handler for %s failed: participant=%s, error=%v", eventType, event.ParticipantID, err)
	}
}

// Close stops subscribers and waits for in-flight handlers
func (b *Bus) Close() error {
	b.cancel()
	err := b.pubsub.Close()
	b.wg.Wait()
	return err
}
