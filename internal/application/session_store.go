package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"counsel-interview/internal/domain"
	"counsel-interview/internal/ports/output"

	"github.com/sirupsen/logrus"
)

// DefaultStoreMaxAttempts bounds the read-modify-write retries on version conflicts
const DefaultStoreMaxAttempts = 8

// SessionStore struct - Session record operations with per-participant serialization.
// Every read-modify-write runs under an in-process lock for the participant and is
// retried when the repository reports a version conflict from another process.
type SessionStore struct {
	repo        output.InterviewSessionRepository
	locks       *keyedMutex
	maxAttempts int
	now         func() time.Time
}

// NewSessionStore func - maxAttempts <= 0 uses DefaultStoreMaxAttempts
func NewSessionStore(repo output.InterviewSessionRepository, maxAttempts int) *SessionStore {
	if maxAttempts <= 0 {
		maxAttempts = DefaultStoreMaxAttempts
	}
	return &SessionStore{
		repo:        repo,
		locks:       newKeyedMutex(),
		maxAttempts: maxAttempts,
		now:         time.Now,
	}
}

// Get returns the participant's session or domain.ErrSessionNotFound
func (s *SessionStore) Get(ctx context.Context, participantID string) (*domain.InterviewSession, error) {
	return s.repo.GetSession(ctx, participantID)
}

// GetOrCreate returns the participant's session, creating an empty one when absent
func (s *SessionStore) GetOrCreate(ctx context.Context, participantID string) (*domain.InterviewSession, error) {
	unlock := s.locks.Lock(participantID)
	defer unlock()

	session, err := s.repo.GetSession(ctx, participantID)
	if err == nil {
		return session, nil
	}
	if !errors.Is(err, domain.ErrSessionNotFound) {
		return nil, err
	}

	session = domain.NewInterviewSession(participantID, s.now())
	err = s.repo.CreateSession(ctx, session)
	if errors.Is(err, domain.ErrSessionExists) {
		// another process created it first
		return s.repo.GetSession(ctx, participantID)
	}
	if err != nil {
		return nil, err
	}

	logrus.Infof("Created interview session: participant=%s, session=%s", participantID, session.SessionID)
	return session, nil
}

// GetMessages returns the ordered transcript or domain.ErrSessionNotFound
func (s *SessionStore) GetMessages(ctx context.Context, participantID string) ([]domain.Turn, error) {
	session, err := s.repo.GetSession(ctx, participantID)
	if err != nil {
		return nil, err
	}
	return session.GetHistory(), nil
}

// AppendTurn appends one turn. It returns false without error when no session exists.
func (s *SessionStore) AppendTurn(ctx context.Context, participantID string, sender domain.Sender, text string) (bool, error) {
	now := s.now()
	_, err := s.Update(ctx, participantID, "", func(session *domain.InterviewSession) error {
		session.AppendTurns(now, domain.Turn{Sender: sender, Text: text, Timestamp: now})
		return nil
	})
	return existed(err)
}

// AppendTurns appends turns to the session identified by sessionID in a single write.
// If the participant's session was reset since sessionID was read, nothing is written
// and domain.ErrSessionNotFound is returned.
func (s *SessionStore) AppendTurns(ctx context.Context, participantID, sessionID string, turns ...domain.Turn) (*domain.InterviewSession, error) {
	now := s.now()
	return s.Update(ctx, participantID, sessionID, func(session *domain.InterviewSession) error {
		session.AppendTurns(now, turns...)
		return nil
	})
}

// SetStatus changes the status. It returns false without error when no session exists.
func (s *SessionStore) SetStatus(ctx context.Context, participantID string, status domain.SessionStatus, analysisReady *bool) (bool, error) {
	_, err := s.UpdateStatus(ctx, participantID, "", status, analysisReady)
	return existed(err)
}

// UpdateStatus changes the status and returns the stored session.
// An empty sessionID applies to whichever session is current.
func (s *SessionStore) UpdateStatus(ctx context.Context, participantID, sessionID string, status domain.SessionStatus, analysisReady *bool) (*domain.InterviewSession, error) {
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: unknown session status %q", domain.ErrValidation, status)
	}
	now := s.now()
	return s.Update(ctx, participantID, sessionID, func(session *domain.InterviewSession) error {
		session.SetStatus(status, analysisReady, now)
		return nil
	})
}

// SaveReport stores the analysis report on the session identified by sessionID
func (s *SessionStore) SaveReport(ctx context.Context, participantID, sessionID, report string) (*domain.InterviewSession, error) {
	now := s.now()
	return s.Update(ctx, participantID, sessionID, func(session *domain.InterviewSession) error {
		session.SetAnalysisReport(report, now)
		return nil
	})
}

// Reset discards the participant's session and stores a new empty one
func (s *SessionStore) Reset(ctx context.Context, participantID string) (*domain.InterviewSession, error) {
	unlock := s.locks.Lock(participantID)
	defer unlock()

	session := domain.NewInterviewSession(participantID, s.now())
	if err := s.repo.ReplaceSession(ctx, session); err != nil {
		return nil, err
	}

	logrus.Infof("Reset interview session: participant=%s, session=%s", participantID, session.SessionID)
	return session, nil
}

// Update runs fn against a fresh copy of the stored session and writes it back,
// retrying on version conflicts. A non-empty sessionID pins the write to that session.
// fn may run more than once and must not keep side effects between runs.
func (s *SessionStore) Update(ctx context.Context, participantID, sessionID string, fn func(*domain.InterviewSession) error) (*domain.InterviewSession, error) {
	unlock := s.locks.Lock(participantID)
	defer unlock()

	for attempt := 1; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		session, err := s.repo.GetSession(ctx, participantID)
		if err != nil {
			return nil, err
		}
		if sessionID != "" && session.SessionID != sessionID {
			return nil, fmt.Errorf("%w: session %s was reset", domain.ErrSessionNotFound, sessionID)
		}

		if err := fn(session); err != nil {
			return nil, err
		}

		err = s.repo.UpdateSession(ctx, session)
		if err == nil {
			return session, nil
		}
		if !errors.Is(err, domain.ErrVersionConflict) || attempt >= s.maxAttempts {
			return nil, err
		}
		logrus.Warnf("Session version conflict, retrying: participant=%s, attempt=%d", participantID, attempt)
	}
}

// existed maps the "no session yet" case to (false, nil)
func existed(err error) (bool, error) {
	if errors.Is(err, domain.ErrSessionNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
