package output

import (
	"context"

	"counsel-interview/internal/domain"
)

// EventPublisher interface - Output port
// Broadcasts interview lifecycle events
type EventPublisher interface {
	Publish(ctx context.Context, event domain.InterviewEvent) error
}
