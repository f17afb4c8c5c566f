package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"counsel-interview/internal/domain"
	"counsel-interview/internal/ports/output"
)

// Compile-time checks
var (
	_ output.InterviewSessionRepository = (*SessionRepository)(nil)
	_ output.SessionInspector           = (*SessionRepository)(nil)
)

// SessionRepository struct - Output adapter for in-memory session storage.
// Records are kept as encoded JSON so callers never share state with the store
// and a process-local store behaves like the durable ones.
type SessionRepository struct {
	mu      sync.RWMutex
	records map[string][]byte
}

// NewSessionRepository creates an empty in-memory repository
func NewSessionRepository() *SessionRepository {
	return &SessionRepository{
		records: make(map[string][]byte),
	}
}

// GetSession retrieves a session by participant ID
func (r *SessionRepository) GetSession(ctx context.Context, participantID string) (*domain.InterviewSession, error) {
	r.mu.RLock()
	raw, ok := r.records[participantID]
	r.mu.RUnlock()
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return decode(participantID, raw)
}

// CreateSession stores a new session unless one exists
func (r *SessionRepository) CreateSession(ctx context.Context, session *domain.InterviewSession) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.records[session.ParticipantID]; ok {
		return domain.ErrSessionExists
	}
	r.records[session.ParticipantID] = raw
	return nil
}

// UpdateSession writes the session if the stored SessionID and Version still match
func (r *SessionRepository) UpdateSession(ctx context.Context, session *domain.InterviewSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	raw, ok := r.records[session.ParticipantID]
	if !ok {
		return domain.ErrSessionNotFound
	}
	stored, err := decode(session.ParticipantID, raw)
	if err != nil {
		return err
	}
	if stored.SessionID != session.SessionID || stored.Version != session.Version {
		return domain.ErrVersionConflict
	}

	next := session.Clone()
	next.Version++
	encoded, err := json.Marshal(next)
	if err != nil {
		return err
	}
	r.records[session.ParticipantID] = encoded
	session.Version = next.Version
	return nil
}

// ReplaceSession overwrites whatever is stored
func (r *SessionRepository) ReplaceSession(ctx context.Context, session *domain.InterviewSession) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return err
	}

	r.mu.Lock()
	r.records[session.ParticipantID] = raw
	r.mu.Unlock()
	return nil
}

// DeleteSession removes a session. Deleting a missing session is not an error.
func (r *SessionRepository) DeleteSession(ctx context.Context, participantID string) error {
	r.mu.Lock()
	delete(r.records, participantID)
	r.mu.Unlock()
	return nil
}

// GetRawSession returns the stored payload
func (r *SessionRepository) GetRawSession(ctx context.Context, participantID string) ([]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	raw, ok := r.records[participantID]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return append([]byte(nil), raw...), nil
}

// PutRawSession stores a raw payload as is
func (r *SessionRepository) PutRawSession(participantID string, raw []byte) {
	r.mu.Lock()
	r.records[participantID] = append([]byte(nil), raw...)
	r.mu.Unlock()
}

func decode(participantID string, raw []byte) (*domain.InterviewSession, error) {
	var session domain.InterviewSession
	if err := json.Unmarshal(raw, &session); err != nil {
		return nil, fmt.Errorf("%w: participant %s: %v", domain.ErrCorruptSession, participantID, err)
	}
	if session.Messages == nil {
		session.Messages = make([]domain.Turn, 0)
	}
	return &session, nil
}
