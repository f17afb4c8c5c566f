package input

import (
	"context"

	"counsel-interview/internal/domain"
)

// InterviewService interface - Input port (use case)
// Defines what callers can do with a participant's structured interview
type InterviewService interface {
	// Chat submits one participant utterance and returns the agent reply
	Chat(ctx context.Context, participantID, message string) (*domain.ChatTurnResult, error)

	// GetSession returns the session, creating it when absent
	GetSession(ctx context.Context, participantID string) (*domain.SessionView, error)

	// ResetSession discards the transcript and starts a new session
	ResetSession(ctx context.Context, participantID string) (*domain.InterviewSession, error)

	// CheckStatus reports progress without creating a session
	CheckStatus(ctx context.Context, participantID string) (*domain.SessionStatusView, error)

	// SetSessionStatus pauses or resumes a session
	SetSessionStatus(ctx context.Context, participantID string, status domain.SessionStatus) (*domain.InterviewSession, error)
}

// ReportService interface - Input port (use case)
// Runs the analysis transform over a finished transcript
type ReportService interface {
	CanAnalyze(ctx context.Context, participantID string) (bool, error)
	Analyze(ctx context.Context, request domain.AnalysisRequest) (*domain.AnalysisResult, error)
}

// CounselorService interface - Input port (use case)
// Runs the counselor AI tools: conceptualization, assessment and supervision
type CounselorService interface {
	Generate(ctx context.Context, request domain.CounselorReportRequest) (*domain.CounselorReportResult, error)
}
