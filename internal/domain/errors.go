package domain

import "errors"

// Interview error taxonomy

var (
	// ErrValidation indicates a missing or empty required field
	ErrValidation = errors.New("validation error")

	// ErrSessionNotFound indicates no interview session exists for the participant
	ErrSessionNotFound = errors.New("interview session not found")

	// ErrInsufficientEvidence indicates the transcript is too short to analyze
	ErrInsufficientEvidence = errors.New("insufficient evidence for analysis")

	// ErrSessionPaused indicates a turn was submitted to a paused session
	ErrSessionPaused = errors.New("interview session is paused")

	// ErrBackend indicates the generation backend failed or returned no usable content
	ErrBackend = errors.New("generation backend error")
)

// Persistence error types

var (
	// ErrSessionExists indicates a create raced with another create for the same participant
	ErrSessionExists = errors.New("interview session already exists")

	// ErrVersionConflict indicates the stored record changed since it was read
	ErrVersionConflict = errors.New("interview session version conflict")

	// ErrCorruptSession indicates the stored record could not be decoded.
	// It is never repaired implicitly; see `interviewctl session repair`.
	ErrCorruptSession = errors.New("interview session record is corrupt")

	// ErrAppointmentNotFound indicates the appointment does not exist
	ErrAppointmentNotFound = errors.New("appointment not found")

	// ErrAppointmentForbidden indicates a counselor responded to an appointment assigned to someone else
	ErrAppointmentForbidden = errors.New("appointment is assigned to another counselor")
)

// Generation backend error types

var (
	// ErrBackendUnavailable indicates the generation service is unreachable or rate limited
	ErrBackendUnavailable = errors.New("generation service unavailable")

	// ErrBackendTimeout indicates a request to the generation service timed out
	ErrBackendTimeout = errors.New("generation request timeout")

	// ErrInvalidRequest indicates an invalid request was made (4xx client errors)
	ErrInvalidRequest = errors.New("invalid request")
)
