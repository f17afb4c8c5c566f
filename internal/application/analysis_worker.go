package application

import (
	"context"
	"errors"

	"counsel-interview/internal/domain"
	"counsel-interview/internal/ports/input"

	"github.com/sirupsen/logrus"
)

// AnalysisWorker struct - Runs the analysis when an interview completes
type AnalysisWorker struct {
	reports input.ReportService
}

// NewAnalysisWorker func
func NewAnalysisWorker(reports input.ReportService) *AnalysisWorker {
	return &AnalysisWorker{reports: reports}
}

// HandleEvent reacts to interview.completed events; other events are ignored.
// Sessions that were reset or are still too short are skipped without error.
func (w *AnalysisWorker) HandleEvent(ctx context.Context, event domain.InterviewEvent) error {
	if event.Type != domain.InterviewEventCompleted {
		return nil
	}

	_, err := w.reports.Analyze(ctx, domain.AnalysisRequest{
		ParticipantID: event.ParticipantID,
		SessionID:     event.SessionID,
	})
	switch {
	case errors.Is(err, domain.ErrSessionNotFound), errors.Is(err, domain.ErrInsufficientEvidence):
		logrus.Infof("Skipping automatic analysis: participant=%s, reason=%v", event.ParticipantID, err)
		return nil
	case err != nil:
		return err
	}
	return nil
}
