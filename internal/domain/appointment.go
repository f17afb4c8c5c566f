package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// AppointmentStatus type
type AppointmentStatus string

const (
	// AppointmentStatusPending const
	AppointmentStatusPending AppointmentStatus = "PENDING"
	// AppointmentStatusAccepted const
	AppointmentStatusAccepted AppointmentStatus = "ACCEPTED"
	// AppointmentStatusRejected const
	AppointmentStatusRejected AppointmentStatus = "REJECTED"
	// AppointmentStatusCancelled const
	AppointmentStatusCancelled AppointmentStatus = "CANCELLED"
)

// IsValid reports whether the status is one of the known values
func (s AppointmentStatus) IsValid() bool {
	switch s {
	case AppointmentStatusPending, AppointmentStatusAccepted, AppointmentStatusRejected, AppointmentStatusCancelled:
		return true
	}
	return false
}

// Appointment struct - A counseling booking between a participant and a counselor
type Appointment struct {
	ID            *uuid.UUID         `gorm:"type:uuid;primary_key;"`
	ParticipantID *string            `gorm:"type:varchar(128);not null;index"`
	CounselorID   *string            `gorm:"type:varchar(128);not null;index"`
	StartsAt      *time.Time         `gorm:"type:timestamp;not null;"`
	Note          *string            `gorm:"type:TEXT"`
	Response      *string            `gorm:"type:TEXT"`
	Status        *AppointmentStatus `gorm:"type:varchar(9);not null;"`
	CreatedAt     *time.Time         `gorm:"type:timestamp"`
	UpdatedAt     *time.Time         `gorm:"type:timestamp"`
	DeletedAt     *gorm.DeletedAt    `gorm:"type:timestamp"`
}

// TableName func
func (a *Appointment) TableName() string {
	return "appointments"
}

// BeforeCreate hook - generates UUID before creating
func (a *Appointment) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID != nil {
		return nil
	}
	id, err := uuid.NewRandom() // v4
	if err != nil {
		return err
	}
	logrus.WithField("appointment_id", id.String()).Debug("BeforeCreate")
	a.ID = &id
	return nil
}

// MigrateDatabase func - Auto-migrate the given models plus appointments
func MigrateDatabase(db *gorm.DB, models ...interface{}) {
	if db == nil {
		panic("An error when connect database")
	}

	models = append([]interface{}{&Appointment{}}, models...)
	if err := db.AutoMigrate(models...); err != nil {
		panic(err)
	}
}
