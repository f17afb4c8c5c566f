package domain

import "time"

// InterviewEventType names a lifecycle event of an interview session
type InterviewEventType string

const (
	// InterviewEventCompleted - Closing evidence found, session marked analysis-ready
	InterviewEventCompleted InterviewEventType = "interview.completed"
	// InterviewEventAnalyzed - Analysis report stored on the session
	InterviewEventAnalyzed InterviewEventType = "interview.analyzed"
)

// InterviewEvent is published after a session changes lifecycle state
type InterviewEvent struct {
	Type          InterviewEventType `json:"type"`
	ParticipantID string             `json:"participant_id"`
	SessionID     string             `json:"session_id"`
	MessageCount  int                `json:"message_count"`
	OccurredAt    time.Time          `json:"occurred_at"`
}
