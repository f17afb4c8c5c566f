package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"counsel-interview/internal/domain"
	"counsel-interview/internal/ports/output"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Compile-time checks
var (
	_ output.InterviewSessionRepository = (*SessionRepository)(nil)
	_ output.SessionInspector           = (*SessionRepository)(nil)
)

// SessionRecord struct - One row per participant; the session itself is a JSON payload
type SessionRecord struct {
	ParticipantID string    `gorm:"type:varchar(191);primaryKey"`
	SessionID     string    `gorm:"type:varchar(64);not null"`
	Version       int64     `gorm:"not null;default:0"`
	Status        string    `gorm:"type:varchar(16);not null"`
	Payload       string    `gorm:"type:TEXT;not null"`
	CreatedAt     time.Time `gorm:"type:timestamp"`
	UpdatedAt     time.Time `gorm:"type:timestamp"`
}

// TableName func
func (r *SessionRecord) TableName() string {
	return "interview_sessions"
}

// SessionRepository struct - Secondary/Driven adapter for SQL session storage (PostgreSQL or SQLite)
type SessionRepository struct {
	dbGorm *gorm.DB
}

// NewSessionRepository func - Migrates the session table and returns the repository
func NewSessionRepository(dbGorm *gorm.DB) *SessionRepository {
	logrus.Info("Migrate database ... interview_sessions")
	domain.MigrateDatabase(dbGorm, &SessionRecord{})
	return &SessionRepository{
		dbGorm: dbGorm,
	}
}

// GetSession func - Loads and decodes the participant's session
func (p *SessionRepository) GetSession(ctx context.Context, participantID string) (*domain.InterviewSession, error) {
	var record SessionRecord
	err := p.dbGorm.WithContext(ctx).Where("participant_id = ?", participantID).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrSessionNotFound
	}
	if err != nil {
		logrus.Errorln(err)
		return nil, err
	}
	return decodeRecord(&record)
}

// CreateSession func - Inserts a new session unless the participant already has one
func (p *SessionRepository) CreateSession(ctx context.Context, session *domain.InterviewSession) error {
	record, err := encodeRecord(session)
	if err != nil {
		return err
	}

	tx := p.dbGorm.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(record)
	if tx.Error != nil {
		logrus.Errorln(tx.Error)
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return domain.ErrSessionExists
	}
	return nil
}

// UpdateSession func - Compare-and-swap on (participant_id, session_id, version)
func (p *SessionRepository) UpdateSession(ctx context.Context, session *domain.InterviewSession) error {
	next := session.Clone()
	next.Version++
	record, err := encodeRecord(next)
	if err != nil {
		return err
	}

	tx := p.dbGorm.WithContext(ctx).
		Model(&SessionRecord{}).
		Where("participant_id = ? AND session_id = ? AND version = ?", session.ParticipantID, session.SessionID, session.Version).
		Updates(map[string]interface{}{
			"version":    record.Version,
			"status":     record.Status,
			"payload":    record.Payload,
			"updated_at": record.UpdatedAt,
		})
	if tx.Error != nil {
		logrus.Errorln(tx.Error)
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		var count int64
		if err := p.dbGorm.WithContext(ctx).Model(&SessionRecord{}).Where("participant_id = ?", session.ParticipantID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return domain.ErrSessionNotFound
		}
		return domain.ErrVersionConflict
	}

	session.Version = next.Version
	return nil
}

// ReplaceSession func - Upserts the session, discarding any stored record
func (p *SessionRepository) ReplaceSession(ctx context.Context, session *domain.InterviewSession) error {
	record, err := encodeRecord(session)
	if err != nil {
		return err
	}

	err = p.dbGorm.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "participant_id"}},
		UpdateAll: true,
	}).Create(record).Error
	if err != nil {
		logrus.Errorln(err)
	}
	return err
}

// DeleteSession func - Removes the participant's row
func (p *SessionRepository) DeleteSession(ctx context.Context, participantID string) error {
	err := p.dbGorm.WithContext(ctx).Where("participant_id = ?", participantID).Delete(&SessionRecord{}).Error
	if err != nil {
		logrus.Errorln(err)
	}
	return err
}

// GetRawSession func - Returns the stored payload without decoding it
func (p *SessionRepository) GetRawSession(ctx context.Context, participantID string) ([]byte, error) {
	var record SessionRecord
	err := p.dbGorm.WithContext(ctx).Select("payload").Where("participant_id = ?", participantID).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	return []byte(record.Payload), nil
}

func encodeRecord(session *domain.InterviewSession) (*SessionRecord, error) {
	payload, err := json.Marshal(session)
	if err != nil {
		return nil, err
	}
	return &SessionRecord{
		ParticipantID: session.ParticipantID,
		SessionID:     session.SessionID,
		Version:       session.Version,
		Status:        string(session.Status),
		Payload:       string(payload),
		CreatedAt:     session.CreatedAt,
		UpdatedAt:     session.UpdatedAt,
	}, nil
}

// decodeRecord trusts the row's key columns over the payload copy
func decodeRecord(record *SessionRecord) (*domain.InterviewSession, error) {
	var session domain.InterviewSession
	if err := json.Unmarshal([]byte(record.Payload), &session); err != nil {
		return nil, fmt.Errorf("%w: participant %s: %v", domain.ErrCorruptSession, record.ParticipantID, err)
	}
	session.ParticipantID = record.ParticipantID
	session.SessionID = record.SessionID
	session.Version = record.Version
	if session.Messages == nil {
		session.Messages = make([]domain.Turn, 0)
	}
	return &session, nil
}
