package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"counsel-interview/configs"
	"counsel-interview/internal/domain"
	"counsel-interview/internal/ports/output"

	goredis "github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// Compile-time checks
var (
	_ output.InterviewSessionRepository = (*SessionRepository)(nil)
	_ output.SessionInspector           = (*SessionRepository)(nil)
)

const defaultKeyPrefix = "interview:session:"

// SessionRepository struct - Output adapter storing one JSON value per participant.
// Updates use WATCH/MULTI so a concurrent writer aborts the transaction.
type SessionRepository struct {
	client    goredis.UniversalClient
	keyPrefix string
}

// NewClient func - Connects and pings the configured Redis server
func NewClient(ctx context.Context, config configs.Redis) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     config.Addr,
		Password: config.Password,
		DB:       config.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", config.Addr, err)
	}
	logrus.WithField("addr", config.Addr).Info("Connected to redis")
	return client, nil
}

// NewSessionRepository func - keyPrefix defaults to "interview:session:"
func NewSessionRepository(client goredis.UniversalClient, keyPrefix string) *SessionRepository {
	if keyPrefix == "" {
		keyPrefix = defaultKeyPrefix
	}
	return &SessionRepository{
		client:    client,
		keyPrefix: keyPrefix,
	}
}

func (r *SessionRepository) key(participantID string) string {
	return r.keyPrefix + participantID
}

// GetSession func
func (r *SessionRepository) GetSession(ctx context.Context, participantID string) (*domain.InterviewSession, error) {
	raw, err := r.client.Get(ctx, r.key(participantID)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, domain.ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	return decode(participantID, raw)
}

// CreateSession func - SETNX so only the first create wins
func (r *SessionRepository) CreateSession(ctx context.Context, session *domain.InterviewSession) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return err
	}
	ok, err := r.client.SetNX(ctx, r.key(session.ParticipantID), raw, 0).Result()
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrSessionExists
	}
	return nil
}

// UpdateSession func - Compare-and-swap on session id and version inside a WATCH transaction
func (r *SessionRepository) UpdateSession(ctx context.Context, session *domain.InterviewSession) error {
	key := r.key(session.ParticipantID)
	next := session.Clone()
	next.Version++
	encoded, err := json.Marshal(next)
	if err != nil {
		return err
	}

	err = r.client.Watch(ctx, func(tx *goredis.Tx) error {
		raw, err := tx.Get(ctx, key).Bytes()
		if errors.Is(err, goredis.Nil) {
			return domain.ErrSessionNotFound
		}
		if err != nil {
			return err
		}
		stored, err := decode(session.ParticipantID, raw)
		if err != nil {
			return err
		}
		if stored.SessionID != session.SessionID || stored.Version != session.Version {
			return domain.ErrVersionConflict
		}

		_, err = tx.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
			pipe.Set(ctx, key, encoded, 0)
			return nil
		})
		return err
	}, key)
	if errors.Is(err, goredis.TxFailedErr) {
		return domain.ErrVersionConflict
	}
	if err != nil {
		return err
	}

	session.Version = next.Version
	return nil
}

// ReplaceSession func
func (r *SessionRepository) ReplaceSession(ctx context.Context, session *domain.InterviewSession) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, r.key(session.ParticipantID), raw, 0).Err()
}

// DeleteSession func
func (r *SessionRepository) DeleteSession(ctx context.Context, participantID string) error {
	return r.client.Del(ctx, r.key(participantID)).Err()
}

// GetRawSession func
func (r *SessionRepository) GetRawSession(ctx context.Context, participantID string) ([]byte, error) {
	raw, err := r.client.Get(ctx, r.key(participantID)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, domain.ErrSessionNotFound
	}
	return raw, err
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
