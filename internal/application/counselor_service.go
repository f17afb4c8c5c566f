package application

import (
	"context"
	"fmt"
	"strings"
	"time"

	"counsel-interview/internal/domain"
	"counsel-interview/internal/ports/output"

	"github.com/sirupsen/logrus"
)

// CounselorService struct - AI tools that help a counselor work a case
type CounselorService struct {
	store     *SessionStore
	generator output.TextGenerator
	prompts   *PromptBuilder
	now       func() time.Time
}

// NewCounselorService func
func NewCounselorService(store *SessionStore, generator output.TextGenerator, set *domain.PromptSet) *CounselorService {
	return &CounselorService{
		store:     store,
		generator: generator,
		prompts:   NewPromptBuilder(set),
		now:       time.Now,
	}
}

// Generate func - Use case: run one counselor tool over a transcript and client info.
// Nothing is stored; the caller keeps the output.
func (s *CounselorService) Generate(ctx context.Context, request domain.CounselorReportRequest) (*domain.CounselorReportResult, error) {
	if !request.Kind.IsValid() {
		return nil, fmt.Errorf("%w: unknown counselor tool %q", domain.ErrValidation, request.Kind)
	}

	transcript, err := s.transcript(ctx, request)
	if err != nil {
		return nil, err
	}

	genRequest, err := s.prompts.CounselorRequest(request, transcript)
	if err != nil {
		return nil, err
	}

	logrus.Infof("Running counselor tool: kind=%s, participant=%s", request.Kind, request.ParticipantID)
	response, err := s.generator.Generate(ctx, genRequest)
	if err != nil {
		logrus.Errorf("Counselor tool failed: kind=%s, error=%v", request.Kind, err)
		return nil, fmt.Errorf("%w: %w", domain.ErrBackend, err)
	}
	if strings.TrimSpace(response.Content) == "" {
		return nil, fmt.Errorf("%w: empty %s from backend", domain.ErrBackend, request.Kind)
	}

	return &domain.CounselorReportResult{
		Kind:      request.Kind,
		Content:   response.Content,
		Timestamp: s.now(),
	}, nil
}

// transcript prefers the text supplied by the counselor over the stored interview
func (s *CounselorService) transcript(ctx context.Context, request domain.CounselorReportRequest) (string, error) {
	if text := strings.TrimSpace(request.Transcript); text != "" {
		return text, nil
	}

	participantID := strings.TrimSpace(request.ParticipantID)
	if participantID == "" {
		return "", fmt.Errorf("%w: transcript or participant id is required", domain.ErrValidation)
	}

	session, err := s.store.Get(ctx, participantID)
	if err != nil {
		return "", err
	}
	if len(session.Messages) == 0 {
		return "", fmt.Errorf("%w: interview of %s has no messages", domain.ErrValidation, participantID)
	}
	return s.prompts.SessionTranscript(session), nil
}
