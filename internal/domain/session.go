package domain

import (
	"time"

	"github.com/google/uuid"
)

// SessionStatus represents the lifecycle state of an interview session
type SessionStatus string

const (
	// SessionStatusActive - Interview in progress
	SessionStatusActive SessionStatus = "active"
	// SessionStatusCompleted - Closing evidence found in agent output
	SessionStatusCompleted SessionStatus = "completed"
	// SessionStatusPaused - Set only by an explicit external action
	SessionStatusPaused SessionStatus = "paused"
)

// IsValid reports whether the status is one of the known values
func (s SessionStatus) IsValid() bool {
	switch s {
	case SessionStatusActive, SessionStatusCompleted, SessionStatusPaused:
		return true
	}
	return false
}

// Sender identifies who authored a turn
type Sender string

const (
	// SenderParticipant - The human being interviewed
	SenderParticipant Sender = "user"
	// SenderAgent - The generation backend
	SenderAgent Sender = "bot"
)

// Turn is one message in a session transcript. Turns are immutable once appended.
type Turn struct {
	Sender    Sender    `json:"sender"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// InterviewSession is the durable record of one interview per participant.
// Messages is append-only and is the only source of truth for progress.
type InterviewSession struct {
	SessionID           string        `json:"session_id"`
	ParticipantID       string        `json:"participant_id"`
	Status              SessionStatus `json:"status"`
	Messages            []Turn        `json:"messages"`
	CreatedAt           time.Time     `json:"created_at"`
	UpdatedAt           time.Time     `json:"updated_at"`
	AnalysisReady       bool          `json:"analysis_ready"`
	AnalysisReport      *string       `json:"analysis_report,omitempty"`
	AnalysisCompletedAt *time.Time    `json:"analysis_completed_at,omitempty"`

	// Version is bumped by the repository on every successful update
	Version int64 `json:"version"`
}

// NewInterviewSession creates an empty active session with a fresh session ID
func NewInterviewSession(participantID string, now time.Time) *InterviewSession {
	return &InterviewSession{
		SessionID:     uuid.NewString(),
		ParticipantID: participantID,
		Status:        SessionStatusActive,
		Messages:      make([]Turn, 0),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// AppendTurns adds turns to the end of the transcript and refreshes UpdatedAt
func (s *InterviewSession) AppendTurns(now time.Time, turns ...Turn) {
	s.Messages = append(s.Messages, turns...)
	s.UpdatedAt = now
}

// SetStatus changes the status. AnalysisReady only ever moves from false to true;
// passing false never clears it.
func (s *InterviewSession) SetStatus(status SessionStatus, analysisReady *bool, now time.Time) {
	s.Status = status
	if analysisReady != nil && *analysisReady {
		s.AnalysisReady = true
	}
	s.UpdatedAt = now
}

// SetAnalysisReport stores the latest report, overwriting any previous run
func (s *InterviewSession) SetAnalysisReport(report string, now time.Time) {
	s.AnalysisReport = &report
	completedAt := now
	s.AnalysisCompletedAt = &completedAt
}

// HasReport reports whether an analysis report has been stored
func (s *InterviewSession) HasReport() bool {
	return s.AnalysisReport != nil
}

// GetHistory returns a copy of the transcript
func (s *InterviewSession) GetHistory() []Turn {
	if len(s.Messages) == 0 {
		return []Turn{}
	}

	history := make([]Turn, len(s.Messages))
	copy(history, s.Messages)
	return history
}

// Clone returns a deep copy so callers can mutate without touching stored state
func (s *InterviewSession) Clone() *InterviewSession {
	if s == nil {
		return nil
	}
	clone := *s
	clone.Messages = s.GetHistory()
	if s.AnalysisReport != nil {
		report := *s.AnalysisReport
		clone.AnalysisReport = &report
	}
	if s.AnalysisCompletedAt != nil {
		completedAt := *s.AnalysisCompletedAt
		clone.AnalysisCompletedAt = &completedAt
	}
	return &clone
}
