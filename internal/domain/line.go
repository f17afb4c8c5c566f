package domain

import "time"

// LineEventType represents the type of webhook event from LINE
type LineEventType string

const (
	// LineEventTypeMessage - Message event
	LineEventTypeMessage LineEventType = "message"
	// LineEventTypeFollow - Follow event
	LineEventTypeFollow LineEventType = "follow"
	// LineEventTypeUnfollow - Unfollow event
	LineEventTypeUnfollow LineEventType = "unfollow"
	// LineEventTypePostback - Postback event
	LineEventTypePostback LineEventType = "postback"
)

// LineMessageType represents the type of message
type LineMessageType string

const (
	// LineMessageTypeText - Text message
	LineMessageTypeText LineMessageType = "text"
	// LineMessageTypeSticker - Sticker message
	LineMessageTypeSticker LineMessageType = "sticker"
	// LineMessageTypeOther - Any media the interview cannot consume
	LineMessageTypeOther LineMessageType = "other"
)

// LineParticipantPrefix namespaces LINE users among interview participants
const LineParticipantPrefix = "line:"

// LineParticipantID maps a LINE user id to an interview participant id
func LineParticipantID(userID string) string {
	return LineParticipantPrefix + userID
}

// LineWebhookEvent represents a LINE webhook event addressed to the interview bot
type LineWebhookEvent struct {
	ID         string
	Type       LineEventType
	Timestamp  time.Time
	UserID     string
	ReplyToken string
	Message    *LineMessage
}

// LineMessage represents a message from LINE
type LineMessage struct {
	ID   string
	Type LineMessageType
	Text string
}
