package output

import (
	"context"

	"counsel-interview/internal/domain"
)

// InterviewSessionRepository interface - Output port
// Durable storage of one interview session record per participant.
// Implementations must be safe for concurrent use and must never hand out
// a pointer to their internal state.
type InterviewSessionRepository interface {
	// GetSession loads the session for a participant.
	// Returns domain.ErrSessionNotFound if no record exists and
	// domain.ErrCorruptSession if the stored record cannot be decoded.
	GetSession(ctx context.Context, participantID string) (*domain.InterviewSession, error)

	// CreateSession stores a new session.
	// Returns domain.ErrSessionExists if the participant already has one.
	CreateSession(ctx context.Context, session *domain.InterviewSession) error

	// UpdateSession writes the session only if the stored record still has the
	// same SessionID and Version. On success session.Version is incremented.
	// Returns domain.ErrVersionConflict when the stored record moved on, and
	// domain.ErrSessionNotFound when there is no record.
	UpdateSession(ctx context.Context, session *domain.InterviewSession) error

	// ReplaceSession writes the session unconditionally, discarding any stored record.
	ReplaceSession(ctx context.Context, session *domain.InterviewSession) error

	// DeleteSession removes the participant's record. Deleting a missing record is not an error.
	DeleteSession(ctx context.Context, participantID string) error
}

// SessionInspector interface - Output port
// Gives operators the raw stored payload, including records that fail to decode.
type SessionInspector interface {
	GetRawSession(ctx context.Context, participantID string) ([]byte, error)
}
