package output

import (
	"context"

	"counsel-interview/internal/domain"
)

// LineClient interface - Output port
// Defines what the application needs from LINE messaging platform
type LineClient interface {
	// ReplyMessage sends reply messages to LINE user via reply token
	ReplyMessage(ctx context.Context, request domain.LineReplyMessageRequest) (*domain.LineMessageResponse, error)

	// PushMessage sends push messages to LINE user directly
	PushMessage(ctx context.Context, request domain.LinePushMessageRequest) (*domain.LineMessageResponse, error)
}
