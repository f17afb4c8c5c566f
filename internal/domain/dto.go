package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DTOs (Data Transfer Objects) - Domain layer request/response structures

type (
	// ChatTurnResult struct - Outcome of one participant turn
	ChatTurnResult struct {
		AgentReply           string
		SessionID            string
		IsComplete           bool
		ParticipantTurnCount int
		MessageCount         int
		MinMessages          int
		CanAnalyze           bool
		AnalysisReady        bool
	}

	// SessionView struct - Session plus its derived flags
	SessionView struct {
		Session              *InterviewSession
		Messages             []Turn
		Progress             Progress
		IsComplete           bool
		ParticipantTurnCount int
		MessageCount         int
		MinMessages          int
		CanAnalyze           bool
	}

	// SessionStatusView struct - Status check result; Session fields are zero when SessionExists is false
	SessionStatusView struct {
		SessionExists        bool
		Status               SessionStatus
		IsComplete           bool
		ParticipantTurnCount int
		MessageCount         int
		MinMessages          int
		CanAnalyze           bool
		AnalysisReady        bool
		HasReport            bool
		NextStep             string
	}

	// AnalysisRequest struct - Analysis input
	AnalysisRequest struct {
		ParticipantID string
		// SessionID pins the analysis to one session; empty means current
		SessionID  string
		ClientInfo map[string]interface{}
	}

	// AnalysisResult struct - Analysis output
	AnalysisResult struct {
		Report       string
		MessageCount int
		SessionID    string
		Timestamp    time.Time
	}

	// InsufficientEvidenceError carries the counts behind ErrInsufficientEvidence
	InsufficientEvidenceError struct {
		MessageCount  int
		MinMessages   int
		SessionStatus SessionStatus
	}
)

// Next steps reported by a status check
const (
	NextStepStartInterview    = "start_interview"
	NextStepContinueInterview = "continue_interview"
	NextStepGenerateReport    = "generate_report"
)

func (e *InsufficientEvidenceError) Error() string {
	return ErrInsufficientEvidence.Error()
}

// Unwrap lets errors.Is match ErrInsufficientEvidence
func (e *InsufficientEvidenceError) Unwrap() error {
	return ErrInsufficientEvidence
}

type (
	// AppointmentRequest struct - Domain request DTO
	AppointmentRequest struct {
		ID            *uuid.UUID         `json:"id"`
		ParticipantID *string            `json:"participant_id"`
		CounselorID   *string            `json:"counselor_id"`
		StartsAt      *string            `json:"starts_at"`
		Note          *string            `json:"note"`
		Response      *string            `json:"response"`
		Status        *AppointmentStatus `json:"status"`
	}

	// QueryAppointmentRequest struct - Domain query request DTO
	QueryAppointmentRequest struct {
		ID            *uuid.UUID
		ParticipantID *string
		CounselorID   *string
		Status        *string
		Day           *string

		Limit      *int
		Page       *int
		OrderBy    *string
		Asc        *bool
		Pagination *Pagination
		SortMethod *SortMethod
	}

	// Pagination struct
	Pagination struct {
		Limit  int
		Offset int
	}

	// SortMethod struct
	SortMethod struct {
		Asc     bool
		OrderBy string
	}

	// AppointmentResponse struct - Domain response DTO
	AppointmentResponse struct {
		ID            *uuid.UUID         `json:"id,omitempty"`
		ParticipantID *string            `json:"participant_id,omitempty"`
		CounselorID   *string            `json:"counselor_id,omitempty"`
		StartsAt      *string            `json:"starts_at,omitempty"`
		Note          *string            `json:"note,omitempty"`
		Response      *string            `json:"response,omitempty"`
		Status        *AppointmentStatus `json:"status,omitempty"`
		CreatedAt     *time.Time         `json:"created_at,omitempty"`
		UpdatedAt     *time.Time         `json:"updated_at,omitempty"`
		DeletedAt     *gorm.DeletedAt    `json:"deleted_at,omitempty"`
	}

	// AppointmentListResponse struct - Domain list response DTO
	AppointmentListResponse struct {
		Appointments []AppointmentResponse
		CurrentPage  *int
		PerPage      *int
		TotalItem    *int64
	}

	// LineWebhookRequest struct - Domain LINE webhook request DTO
	LineWebhookRequest struct {
		Events []LineWebhookEvent
	}

	// LineReplyMessageRequest struct - Domain LINE reply message request DTO
	LineReplyMessageRequest struct {
		ReplyToken string
		Messages   []LineOutgoingMessage
	}

	// LinePushMessageRequest struct - Domain LINE push message request DTO
	LinePushMessageRequest struct {
		To       string
		Messages []LineOutgoingMessage
	}

	// LineOutgoingMessage struct - Domain LINE outgoing message DTO
	LineOutgoingMessage struct {
		Type LineMessageType
		Text string
	}

	// LineMessageResponse struct - Domain LINE API response DTO
	LineMessageResponse struct {
		Status  string
		Message string
	}
)
