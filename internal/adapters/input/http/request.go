package http

import "github.com/google/uuid"

type (
	// ChatRequest struct - One participant turn
	ChatRequest struct {
		ParticipantID string `json:"participant_id" validate:"required,notblank,max=191"`
		Message       string `json:"message" validate:"required,notblank"`
	}

	// ParticipantRequest struct - Body carrying only the participant id
	ParticipantRequest struct {
		ParticipantID string `json:"participant_id" validate:"required,notblank,max=191"`
	}

	// AnalyzeRequest struct - Analysis trigger with optional basic participant information
	AnalyzeRequest struct {
		ParticipantID string                 `json:"participant_id" validate:"required,notblank,max=191"`
		ClientInfo    map[string]interface{} `json:"client_info" validate:"omitempty"`
	}

	// CounselorReportRequest struct - Counselor tool input; transcript_content wins over participant_id
	CounselorReportRequest struct {
		ParticipantID            string                 `json:"participant_id" validate:"omitempty,max=191"`
		ClientInfo               map[string]interface{} `json:"client_info" validate:"omitempty"`
		TranscriptContent        string                 `json:"transcript_content" validate:"required_without=ParticipantID"`
		ConceptualizationContent string                 `json:"conceptualization_content"`
		AssessmentContent        string                 `json:"assessment_content"`
	}

	// SessionStatusRequest struct - Explicit pause or resume
	SessionStatusRequest struct {
		Status string `json:"status" validate:"required,oneof=active paused"`
	}
)

type (
	// AppointmentRequest struct - HTTP request DTO
	AppointmentRequest struct {
		ID            *uuid.UUID         `json:"id" validate:"omitempty" form:"id" query:"id"`
		ParticipantID *string            `json:"participant_id" validate:"omitempty,max=128" form:"participant_id" query:"participant_id"`
		CounselorID   *string            `json:"counselor_id" validate:"omitempty,max=128" form:"counselor_id" query:"counselor_id"`
		StartsAt      *string            `json:"starts_at" validate:"omitempty" form:"starts_at" query:"starts_at"`
		Note          *string            `json:"note" validate:"omitempty,max=2000" form:"note" query:"note"`
		Response      *string            `json:"response" validate:"omitempty,max=2000" form:"response" query:"response"`
		Status        *AppointmentStatus `json:"status" validate:"omitempty,oneof=PENDING ACCEPTED REJECTED CANCELLED" form:"status" query:"status"`
	}

	// QueryAppointmentRequest struct - HTTP query request DTO
	QueryAppointmentRequest struct {
		ID            *uuid.UUID `json:"id" form:"id" query:"id"`
		ParticipantID *string    `json:"participant_id" form:"participant_id" query:"participant_id"`
		CounselorID   *string    `json:"counselor_id" form:"counselor_id" query:"counselor_id"`
		Status        *string    `json:"status" validate:"omitempty,oneof=PENDING ACCEPTED REJECTED CANCELLED" form:"status" query:"status"`
		Day           *string    `json:"day" validate:"omitempty,datetime=2006-01-02" form:"day" query:"day"`

		Limit   *int    `json:"limit,omitempty" validate:"omitempty,gte=1" form:"limit" query:"limit"`
		Page    *int    `json:"page,omitempty" validate:"omitempty,gte=1" form:"page" query:"page"`
		OrderBy *string `json:"order_by,omitempty" form:"order_by" query:"order_by"`
		Asc     *bool   `json:"asc,omitempty" form:"asc" query:"asc"`
	}
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
