package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"counsel-interview/internal/domain"
	"counsel-interview/internal/ports/output"

	"github.com/sirupsen/logrus"
)

// ReportService struct - The analysis gate over a participant's transcript
type ReportService struct {
	store       *SessionStore
	generator   output.TextGenerator
	publisher   output.EventPublisher
	prompts     *PromptBuilder
	minMessages int
	now         func() time.Time
}

// NewReportService func - publisher may be nil
func NewReportService(store *SessionStore, generator output.TextGenerator, publisher output.EventPublisher, set *domain.PromptSet, minMessages int) *ReportService {
	if minMessages <= 0 {
		minMessages = DefaultMinMessages
	}
	if publisher == nil {
		publisher = noopPublisher{}
	}
	return &ReportService{
		store:       store,
		generator:   generator,
		publisher:   publisher,
		prompts:     NewPromptBuilder(set),
		minMessages: minMessages,
		now:         time.Now,
	}
}

// CanAnalyze func - The session exists and holds at least the minimum number of messages
func (s *ReportService) CanAnalyze(ctx context.Context, participantID string) (bool, error) {
	participantID, err := requireParticipant(participantID)
	if err != nil {
		return false, err
	}

	session, err := s.store.Get(ctx, participantID)
	if errors.Is(err, domain.ErrSessionNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return len(session.Messages) >= s.minMessages, nil
}

// Analyze func - Use case: run the analysis template over the whole transcript and store the report.
// Re-running overwrites the previous report.
func (s *ReportService) Analyze(ctx context.Context, request domain.AnalysisRequest) (*domain.AnalysisResult, error) {
	participantID, err := requireParticipant(request.ParticipantID)
	if err != nil {
		return nil, err
	}

	session, err := s.store.Get(ctx, participantID)
	if err != nil {
		return nil, err
	}
	if request.SessionID != "" && request.SessionID != session.SessionID {
		return nil, fmt.Errorf("%w: session %s was replaced by %s", domain.ErrSessionNotFound, request.SessionID, session.SessionID)
	}

	messageCount := len(session.Messages)
	if messageCount < s.minMessages {
		return nil, &domain.InsufficientEvidenceError{
			MessageCount:  messageCount,
			MinMessages:   s.minMessages,
			SessionStatus: session.Status,
		}
	}

	genRequest, err := s.prompts.AnalysisRequest(session, request.ClientInfo)
	if err != nil {
		return nil, err
	}

	logrus.Infof("Running analysis: participant=%s, messages=%d", participantID, messageCount)
	response, err := s.generator.Generate(ctx, genRequest)
	if err != nil {
		logrus.Errorf("Analysis generation failed: participant=%s, error=%v", participantID, err)
		return nil, fmt.Errorf("%w: %w", domain.ErrBackend, err)
	}
	if strings.TrimSpace(response.Content) == "" {
		return nil, fmt.Errorf("%w: empty analysis from backend", domain.ErrBackend)
	}

	saved, err := s.store.SaveReport(ctx, participantID, session.SessionID, response.Content)
	if err != nil {
		return nil, err
	}

	timestamp := s.now()
	if saved.AnalysisCompletedAt != nil {
		timestamp = *saved.AnalysisCompletedAt
	}
	logrus.Infof("Analysis stored: participant=%s, session=%s", participantID, saved.SessionID)

	event := domain.InterviewEvent{
		Type:          domain.InterviewEventAnalyzed,
		ParticipantID: participantID,
		SessionID:     saved.SessionID,
		MessageCount:  messageCount,
		OccurredAt:    timestamp,
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		logrus.Errorf("Failed to publish %s: participant=%s, error=%v", event.Type, participantID, err)
	}

	return &domain.AnalysisResult{
		Report:       response.Content,
		MessageCount: messageCount,
		SessionID:    saved.SessionID,
		Timestamp:    timestamp,
	}, nil
}
