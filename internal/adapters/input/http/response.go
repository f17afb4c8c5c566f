package http

import (
	"net/http"
	"time"

	"counsel-interview/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	// Success response
	Success = Status{Code: http.StatusOK, Message: []string{"Success"}}
	// BadRequest response
	BadRequest = Status{Code: http.StatusBadRequest, Message: []string{"Sorry, Not responding because of incorrect syntax"}}
	// NotFound response
	NotFound = Status{Code: http.StatusNotFound, Message: []string{"Sorry, Data not found"}}
	// Forbidden response
	Forbidden = Status{Code: http.StatusForbidden, Message: []string{"Sorry, Permission denied"}}
	// ConFlict response
	ConFlict = Status{Code: http.StatusConflict, Message: []string{"Sorry, Data is conflict"}}
	// Unprocessable response
	Unprocessable = Status{Code: http.StatusUnprocessableEntity, Message: []string{"Sorry, Not enough conversation to analyze"}}
	// InternalServerError response
	InternalServerError = Status{Code: http.StatusInternalServerError, Message: []string{"Internal Server Error"}}
	// BadGateway response
	BadGateway = Status{Code: http.StatusBadGateway, Message: []string{"Sorry, The generation service is unavailable"}}
)

// ResponseBody struct - Generic HTTP response wrapper
type ResponseBody struct {
	Status Status      `json:"status,omitempty"`
	Data   interface{} `json:"data,omitempty"`

	CurrentPage *int   `json:"current_page,omitempty"`
	PerPage     *int   `json:"per_page,omitempty"`
	TotalItem   *int64 `json:"total_item,omitempty"`
}

// Status struct
type Status struct {
	Code    int      `json:"code,omitempty"`
	Message []string `json:"message,omitempty"`
}

// withMessage returns a copy of the status carrying the given messages
func (s Status) withMessage(messages ...string) Status {
	s.Message = messages
	return s
}

type (
	// ChatResponse struct - Agent reply and gating flags for one turn
	ChatResponse struct {
		AgentReply           string `json:"agent_reply"`
		SessionID            string `json:"session_id"`
		IsComplete           bool   `json:"is_complete"`
		ParticipantTurnCount int    `json:"participant_turn_count"`
		CanAnalyze           bool   `json:"can_analyze"`
		AnalysisReady        bool   `json:"analysis_ready"`
	}

	// SessionResponse struct - Session with derived progress
	SessionResponse struct {
		Session              *domain.InterviewSession `json:"session"`
		Messages             []domain.Turn            `json:"messages"`
		CompletedTopics      []int                    `json:"completed_topics"`
		NextTopicID          int                      `json:"next_topic_id"`
		IsComplete           bool                     `json:"is_complete"`
		ParticipantTurnCount int                      `json:"participant_turn_count"`
		CanAnalyze           bool                     `json:"can_analyze"`
	}

	// StatusResponse struct - Progress report without creating a session
	StatusResponse struct {
		SessionExists        bool                 `json:"session_exists"`
		Status               domain.SessionStatus `json:"status,omitempty"`
		IsComplete           bool                 `json:"is_complete"`
		ParticipantTurnCount int                  `json:"participant_turn_count"`
		MessageCount         int                  `json:"message_count"`
		MinMessages          int                  `json:"min_messages"`
		CanAnalyze           bool                 `json:"can_analyze"`
		AnalysisReady        bool                 `json:"analysis_ready"`
		HasReport            bool                 `json:"has_report"`
		NextStep             string               `json:"next_step"`
	}

	// AnalysisResponse struct - Stored analysis report
	AnalysisResponse struct {
		Report       string    `json:"report"`
		MessageCount int       `json:"message_count"`
		SessionID    string    `json:"session_id"`
		Timestamp    time.Time `json:"timestamp"`
	}

	// CounselorReportResponse struct - Output of one counselor tool
	CounselorReportResponse struct {
		Kind      domain.CounselorReportKind `json:"kind"`
		Content   string                     `json:"content"`
		Timestamp time.Time                  `json:"timestamp"`
	}

	// InsufficientEvidenceResponse struct - Counts behind a refused analysis
	InsufficientEvidenceResponse struct {
		MessageCount  int                  `json:"message_count"`
		MinMessages   int                  `json:"min_messages"`
		SessionStatus domain.SessionStatus `json:"session_status,omitempty"`
	}
)

type (
	// AppointmentResponse struct - HTTP response DTO for a single appointment
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
)

func toAppointmentResponse(a *domain.AppointmentResponse) AppointmentResponse {
	return AppointmentResponse{
		ID:            a.ID,
		ParticipantID: a.ParticipantID,
		CounselorID:   a.CounselorID,
		StartsAt:      a.StartsAt,
		Note:          a.Note,
		Response:      a.Response,
		Status:        (*AppointmentStatus)(a.Status),
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
		DeletedAt:     a.DeletedAt,
	}
}
