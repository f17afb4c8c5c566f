package line

import (
	"context"
	"fmt"

	"counsel-interview/internal/domain"
	"counsel-interview/internal/ports/output"

	"github.com/line/line-bot-sdk-go/v8/linebot/messaging_api"
	"github.com/sirupsen/logrus"
)

var _ output.LineClient = (*LineClientAdapter)(nil)

// LineClientAdapter struct - Output adapter for LINE messaging platform
type LineClientAdapter struct {
	client *messaging_api.MessagingApiAPI
}

// NewLineClientAdapter func - Creates new LINE client adapter.
// endpoint overrides the LINE API base URL when set.
func NewLineClientAdapter(channelToken, endpoint string) (*LineClientAdapter, error) {
	var options []messaging_api.MessagingApiAPIOption
	if endpoint != "" {
		options = append(options, messaging_api.WithEndpoint(endpoint))
	}

	client, err := messaging_api.NewMessagingApiAPI(channelToken, options...)
	if err != nil {
		return nil, fmt.Errorf("failed to create LINE messaging API client: %w", err)
	}

	return &LineClientAdapter{
		client: client,
	}, nil
}

// ReplyMessage - Sends reply messages to LINE user via reply token
func (a *LineClientAdapter) ReplyMessage(ctx context.Context, request domain.LineReplyMessageRequest) (*domain.LineMessageResponse, error) {
	messages, err := a.convertMessages(request.Messages)
	if err != nil {
		return nil, err
	}

	req := &messaging_api.ReplyMessageRequest{
		ReplyToken: request.ReplyToken,
		Messages:   messages,
	}
	if _, err := a.client.WithContext(ctx).ReplyMessage(req); err != nil {
		return nil, fmt.Errorf("failed to send reply message: %w", err)
	}

	logrus.Infof("Sent reply message with token: %s", request.ReplyToken)
	return &domain.LineMessageResponse{
		Status:  "success",
		Message: "Reply message sent successfully",
	}, nil
}

// PushMessage - Sends push messages to LINE user directly
func (a *LineClientAdapter) PushMessage(ctx context.Context, request domain.LinePushMessageRequest) (*domain.LineMessageResponse, error) {
	messages, err := a.convertMessages(request.Messages)
	if err != nil {
		return nil, err
	}

	req := &messaging_api.PushMessageRequest{
		To:       request.To,
		Messages: messages,
	}
	if _, err := a.client.WithContext(ctx).PushMessage(req, ""); err != nil {
		return nil, fmt.Errorf("failed to send push message: %w", err)
	}

	logrus.Infof("Sent push message to: %s", request.To)
	return &domain.LineMessageResponse{
		Status:  "success",
		Message: "Push message sent successfully",
	}, nil
}

// convertMessages - Only text messages are sent by the interview bot
func (a *LineClientAdapter) convertMessages(outgoing []domain.LineOutgoingMessage) ([]messaging_api.MessageInterface, error) {
	messages := make([]messaging_api.MessageInterface, 0, len(outgoing))
	for _, msg := range outgoing {
		if msg.Type != domain.LineMessageTypeText {
			logrus.Errorf("Skipping unsupported outgoing message type: %s", msg.Type)
			continue
		}
		messages = append(messages, &messaging_api.TextMessage{Text: msg.Text})
	}
	if len(messages) == 0 {
		return nil, fmt.Errorf("no valid messages to send")
	}
	return messages, nil
}
