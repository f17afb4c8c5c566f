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

// DefaultMinMessages is the transcript length required before analysis can run
const DefaultMinMessages = 5

// InterviewService struct - The per-turn conversation orchestrator
type InterviewService struct {
	store     *SessionStore
	generator output.TextGenerator
	publisher output.EventPublisher
	prompts   *PromptBuilder
	topics    domain.TopicList
	matcher   domain.TopicMatcher
	detector  domain.CompletionDetector

	minMessages int
	now         func() time.Time
}

// InterviewOption func - Overrides a default strategy of the orchestrator
type InterviewOption func(*InterviewService)

// WithTopicMatcher replaces the substring topic matcher
func WithTopicMatcher(matcher domain.TopicMatcher) InterviewOption {
	return func(s *InterviewService) {
		s.matcher = matcher
	}
}

// WithCompletionDetector replaces the closing phrase detector
func WithCompletionDetector(detector domain.CompletionDetector) InterviewOption {
	return func(s *InterviewService) {
		s.detector = detector
	}
}

// NewInterviewService func - Creates the orchestrator. publisher may be nil.
func NewInterviewService(
	store *SessionStore,
	generator output.TextGenerator,
	publisher output.EventPublisher,
	set *domain.PromptSet,
	minMessages int,
	opts ...InterviewOption,
) *InterviewService {
	if minMessages <= 0 {
		minMessages = DefaultMinMessages
	}
	if publisher == nil {
		publisher = noopPublisher{}
	}

	s := &InterviewService{
		store:       store,
		generator:   generator,
		publisher:   publisher,
		prompts:     NewPromptBuilder(set),
		topics:      set.Topics,
		matcher:     domain.NewSubstringTopicMatcher(set.TopicPrefixRunes, set.TopicMarker),
		detector:    domain.NewPhraseCompletionDetector(set.ClosingPhrases),
		minMessages: minMessages,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Chat func - Use case: one participant turn.
// Both turns are stored together only after the backend produced a reply.
func (s *InterviewService) Chat(ctx context.Context, participantID, message string) (*domain.ChatTurnResult, error) {
	participantID, err := requireParticipant(participantID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(message) == "" {
		return nil, fmt.Errorf("%w: message is required", domain.ErrValidation)
	}

	session, err := s.store.GetOrCreate(ctx, participantID)
	if err != nil {
		return nil, err
	}
	if session.Status == domain.SessionStatusPaused {
		return nil, domain.ErrSessionPaused
	}

	history := session.GetHistory()
	progress := domain.InferProgress(history, s.topics, s.matcher)
	logrus.Infof("Interview progress: participant=%s, completed=%v, next=%d",
		participantID, progress.CompletedTopics, progress.NextTopicID)

	request := s.prompts.ChatRequest(history, progress, message)
	response, err := s.generator.Generate(ctx, request)
	if err != nil {
		logrus.Errorf("Generation failed: participant=%s, error=%v", participantID, err)
		return nil, fmt.Errorf("%w: %w", domain.ErrBackend, err)
	}
	reply := response.Content
	if strings.TrimSpace(reply) == "" {
		return nil, fmt.Errorf("%w: empty response from backend", domain.ErrBackend)
	}

	now := s.now()
	ready := true
	var (
		completion   domain.Completion
		transitioned bool
	)
	updated, err := s.store.Update(ctx, participantID, session.SessionID, func(current *domain.InterviewSession) error {
		if current.Status == domain.SessionStatusPaused {
			return domain.ErrSessionPaused
		}
		current.AppendTurns(now,
			domain.Turn{Sender: domain.SenderParticipant, Text: message, Timestamp: now},
			domain.Turn{Sender: domain.SenderAgent, Text: reply, Timestamp: now},
		)

		completion = s.detector.Detect(current.Messages)
		transitioned = false
		if completion.IsComplete {
			// AnalysisReady never clears, so completion is announced once per session
			transitioned = !current.AnalysisReady
			current.SetStatus(domain.SessionStatusCompleted, &ready, now)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logrus.Infof("Interview turn stored: participant=%s, messages=%d, complete=%v",
		participantID, len(updated.Messages), completion.IsComplete)

	if transitioned {
		logrus.Infof("Interview completed: participant=%s, session=%s", participantID, updated.SessionID)
		s.publish(ctx, domain.InterviewEventCompleted, updated)
	}

	return &domain.ChatTurnResult{
		AgentReply:           reply,
		SessionID:            updated.SessionID,
		IsComplete:           completion.IsComplete,
		ParticipantTurnCount: completion.ParticipantTurnCount,
		MessageCount:         len(session.Messages),
		MinMessages:          s.minMessages,
		CanAnalyze:           len(updated.Messages) >= s.minMessages,
		AnalysisReady:        updated.AnalysisReady,
	}, nil
}

// GetSession func - Use case: load the session with its derived flags, creating it when absent
func (s *InterviewService) GetSession(ctx context.Context, participantID string) (*domain.SessionView, error) {
	participantID, err := requireParticipant(participantID)
	if err != nil {
		return nil, err
	}

	session, err := s.store.GetOrCreate(ctx, participantID)
	if err != nil {
		return nil, err
	}

	completion := s.detector.Detect(session.Messages)
	return &domain.SessionView{
		Session:              session,
		Messages:             session.GetHistory(),
		Progress:             domain.InferProgress(session.Messages, s.topics, s.matcher),
		IsComplete:           completion.IsComplete,
		ParticipantTurnCount: completion.ParticipantTurnCount,
		MessageCount:         len(session.Messages),
		MinMessages:          s.minMessages,
		CanAnalyze:           len(session.Messages) >= s.minMessages,
	}, nil
}

// ResetSession func - Use case: discard the transcript and start over
func (s *InterviewService) ResetSession(ctx context.Context, participantID string) (*domain.InterviewSession, error) {
	participantID, err := requireParticipant(participantID)
	if err != nil {
		return nil, err
	}
	return s.store.Reset(ctx, participantID)
}

// CheckStatus func - Use case: report progress without creating a session
func (s *InterviewService) CheckStatus(ctx context.Context, participantID string) (*domain.SessionStatusView, error) {
	participantID, err := requireParticipant(participantID)
	if err != nil {
		return nil, err
	}

	session, err := s.store.Get(ctx, participantID)
	if errors.Is(err, domain.ErrSessionNotFound) {
		return &domain.SessionStatusView{
			SessionExists: false,
			MinMessages:   s.minMessages,
			NextStep:      domain.NextStepStartInterview,
		}, nil
	}
	if err != nil {
		return nil, err
	}

	completion := s.detector.Detect(session.Messages)
	nextStep := domain.NextStepContinueInterview
	if completion.IsComplete {
		nextStep = domain.NextStepGenerateReport
	}

	return &domain.SessionStatusView{
		SessionExists:        true,
		Status:               session.Status,
		IsComplete:           completion.IsComplete,
		ParticipantTurnCount: completion.ParticipantTurnCount,
		MessageCount:         len(session.Messages),
		MinMessages:          s.minMessages,
		CanAnalyze:           len(session.Messages) >= s.minMessages,
		AnalysisReady:        session.AnalysisReady,
		HasReport:            session.HasReport(),
		NextStep:             nextStep,
	}, nil
}

// SetSessionStatus func - Use case: explicit pause or resume
func (s *InterviewService) SetSessionStatus(ctx context.Context, participantID string, status domain.SessionStatus) (*domain.InterviewSession, error) {
	participantID, err := requireParticipant(participantID)
	if err != nil {
		return nil, err
	}
	if status != domain.SessionStatusActive && status != domain.SessionStatusPaused {
		return nil, fmt.Errorf("%w: status must be %q or %q", domain.ErrValidation, domain.SessionStatusActive, domain.SessionStatusPaused)
	}

	now := s.now()
	session, err := s.store.Update(ctx, participantID, "", func(current *domain.InterviewSession) error {
		next := status
		// resuming a finished interview restores Completed
		if next == domain.SessionStatusActive && s.detector.Detect(current.Messages).IsComplete {
			next = domain.SessionStatusCompleted
		}
		current.SetStatus(next, nil, now)
		return nil
	})
	if err != nil {
		return nil, err
	}
	logrus.Infof("Interview status changed: participant=%s, status=%s", participantID, session.Status)
	return session, nil
}

func (s *InterviewService) publish(ctx context.Context, eventType domain.InterviewEventType, session *domain.InterviewSession) {
	event := domain.InterviewEvent{
		Type:          eventType,
		ParticipantID: session.ParticipantID,
		SessionID:     session.SessionID,
		MessageCount:  len(session.Messages),
		OccurredAt:    s.now(),
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		logrus.Errorf("Failed to publish %s: participant=%s, error=%v", eventType, session.ParticipantID, err)
	}
}

func requireParticipant(participantID string) (string, error) {
	participantID = strings.TrimSpace(participantID)
	if participantID == "" {
		return "", fmt.Errorf("%w: participant id is required", domain.ErrValidation)
	}
	return participantID, nil
}

type noopPublisher struct{}

func (noopPublisher) Publish(context.Context, domain.InterviewEvent) error {
	return nil
}
