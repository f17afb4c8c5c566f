package application

import (
	"context"
	"testing"

	"counsel-interview/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalysisWorkerAnalyzesCompletedInterview(t *testing.T) {
	generator := replyWith("report")
	repo, store, _, reports := newReportFixture(t, generator)
	seeded := seedSession(t, repo, "dave", "a", "b", "c", "d", "e", "f")
	worker := NewAnalysisWorker(reports)

	err := worker.HandleEvent(context.Background(), domain.InterviewEvent{
		Type:          domain.InterviewEventCompleted,
		ParticipantID: "dave",
		SessionID:     seeded.SessionID,
	})
	require.NoError(t, err)

	session, err := store.Get(context.Background(), "dave")
	require.NoError(t, err)
	assert.True(t, session.HasReport())
}

func TestAnalysisWorkerSkipsReplacedSession(t *testing.T) {
	generator := replyWith("report")
	repo, store, _, reports := newReportFixture(t, generator)
	seeded := seedSession(t, repo, "dave", "a", "b", "c", "d", "e", "f")
	fresh, err := store.Reset(context.Background(), "dave")
	require.NoError(t, err)
	_, err = store.AppendTurns(context.Background(), "dave", fresh.SessionID, seeded.Messages...)
	require.NoError(t, err)

	err = NewAnalysisWorker(reports).HandleEvent(context.Background(), domain.InterviewEvent{
		Type:          domain.InterviewEventCompleted,
		ParticipantID: "dave",
		SessionID:     seeded.SessionID,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, generator.CallCount())

	session, err := store.Get(context.Background(), "dave")
	require.NoError(t, err)
	assert.False(t, session.HasReport())
}

func TestAnalysisWorkerIgnoresOtherEvents(t *testing.T) {
	generator := replyWith("report")
	repo, _, _, reports := newReportFixture(t, generator)
	seedSession(t, repo, "dave", "a", "b", "c", "d", "e")

	err := NewAnalysisWorker(reports).HandleEvent(context.Background(), domain.InterviewEvent{
		Type:          domain.InterviewEventAnalyzed,
		ParticipantID: "dave",
	})
	require.NoError(t, err)
	assert.Equal(t, 0, generator.CallCount())
}

func TestAnalysisWorkerSkipsShortOrMissingSessions(t *testing.T) {
	generator := replyWith("report")
	repo, _, _, reports := newReportFixture(t, generator)
	seedSession(t, repo, "short", "a", "b")
	worker := NewAnalysisWorker(reports)

	for _, pid := range []string{"short", "missing"} {
		err := worker.HandleEvent(context.Background(), domain.InterviewEvent{
			Type:          domain.InterviewEventCompleted,
			ParticipantID: pid,
		})
		assert.NoError(t, err, pid)
	}
	assert.Equal(t, 0, generator.CallCount())
}

func TestAnalysisWorkerReturnsBackendErrors(t *testing.T) {
	generator := &MockTextGenerator{
		GenerateFunc: func(ctx context.Context, request domain.GenerationRequest) (*domain.GenerationResponse, error) {
			return nil, domain.ErrBackendUnavailable
		},
	}
	repo, _, _, reports := newReportFixture(t, generator)
	seedSession(t, repo, "dave", "a", "b", "c", "d", "e")

	err := NewAnalysisWorker(reports).HandleEvent(context.Background(), domain.InterviewEvent{
		Type:          domain.InterviewEventCompleted,
		ParticipantID: "dave",
	})
	assert.ErrorIs(t, err, domain.ErrBackend)
}
