package application

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"counsel-interview/internal/adapters/output/memory"
	"counsel-interview/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// conflictingRepository injects version conflicts into the first N updates
type conflictingRepository struct {
	*memory.SessionRepository
	mu        sync.Mutex
	conflicts int
	updates   int
}

func (r *conflictingRepository) UpdateSession(ctx context.Context, session *domain.InterviewSession) error {
	r.mu.Lock()
	r.updates++
	inject := r.conflicts > 0
	if inject {
		r.conflicts--
	}
	r.mu.Unlock()
	if inject {
		return domain.ErrVersionConflict
	}
	return r.SessionRepository.UpdateSession(ctx, session)
}

func TestSessionStoreGetOrCreateIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := NewSessionStore(memory.NewSessionRepository(), 0)

	first, err := store.GetOrCreate(ctx, "alice")
	require.NoError(t, err)
	second, err := store.GetOrCreate(ctx, "alice")
	require.NoError(t, err)

	assert.Equal(t, first.SessionID, second.SessionID)
	assert.Equal(t, domain.SessionStatusActive, second.Status)
	assert.Empty(t, second.Messages)
}

func TestSessionStoreAppendTurnWithoutSession(t *testing.T) {
	ctx := context.Background()
	store := NewSessionStore(memory.NewSessionRepository(), 0)

	ok, err := store.AppendTurn(ctx, "ghost", domain.SenderParticipant, "hello")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = store.SetStatus(ctx, "ghost", domain.SessionStatusPaused, nil)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSessionStoreAppendTurnAndGetMessages(t *testing.T) {
	ctx := context.Background()
	store := NewSessionStore(memory.NewSessionRepository(), 0)
	_, err := store.GetOrCreate(ctx, "alice")
	require.NoError(t, err)

	ok, err := store.AppendTurn(ctx, "alice", domain.SenderParticipant, "one")
	require.NoError(t, err)
	require.True(t, ok)
	ok, err = store.AppendTurn(ctx, "alice", domain.SenderAgent, "two")
	require.NoError(t, err)
	require.True(t, ok)

	messages, err := store.GetMessages(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, "one", messages[0].Text)
	assert.Equal(t, domain.SenderAgent, messages[1].Sender)
}

func TestSessionStoreSetStatusKeepsAnalysisReady(t *testing.T) {
	ctx := context.Background()
	store := NewSessionStore(memory.NewSessionRepository(), 0)
	_, err := store.GetOrCreate(ctx, "alice")
	require.NoError(t, err)

	ready, notReady := true, false
	ok, err := store.SetStatus(ctx, "alice", domain.SessionStatusCompleted, &ready)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = store.SetStatus(ctx, "alice", domain.SessionStatusActive, &notReady)
	require.NoError(t, err)
	require.True(t, ok)

	session, err := store.Get(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, session.AnalysisReady)
	assert.Equal(t, domain.SessionStatusActive, session.Status)
}

func TestSessionStoreSetStatusRejectsUnknownStatus(t *testing.T) {
	ctx := context.Background()
	store := NewSessionStore(memory.NewSessionRepository(), 0)
	_, _ = store.GetOrCreate(ctx, "alice")

	_, err := store.SetStatus(ctx, "alice", domain.SessionStatus("archived"), nil)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestSessionStoreResetStartsFreshSession(t *testing.T) {
	ctx := context.Background()
	store := NewSessionStore(memory.NewSessionRepository(), 0)
	before, err := store.GetOrCreate(ctx, "alice")
	require.NoError(t, err)
	_, err = store.AppendTurn(ctx, "alice", domain.SenderParticipant, "hello")
	require.NoError(t, err)

	after, err := store.Reset(ctx, "alice")
	require.NoError(t, err)

	assert.NotEqual(t, before.SessionID, after.SessionID)
	assert.Empty(t, after.Messages)

	stored, err := store.Get(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, after.SessionID, stored.SessionID)
	assert.Empty(t, stored.Messages)
}

func TestSessionStoreAppendTurnsRejectsResetSession(t *testing.T) {
	ctx := context.Background()
	store := NewSessionStore(memory.NewSessionRepository(), 0)
	old, err := store.GetOrCreate(ctx, "alice")
	require.NoError(t, err)

	_, err = store.Reset(ctx, "alice")
	require.NoError(t, err)

	_, err = store.AppendTurns(ctx, "alice", old.SessionID,
		domain.Turn{Sender: domain.SenderParticipant, Text: "late"},
		domain.Turn{Sender: domain.SenderAgent, Text: "reply"},
	)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	messages, err := store.GetMessages(ctx, "alice")
	require.NoError(t, err)
	assert.Empty(t, messages)
}

func TestSessionStoreRetriesOnVersionConflict(t *testing.T) {
	ctx := context.Background()
	repo := &conflictingRepository{SessionRepository: memory.NewSessionRepository(), conflicts: 3}
	store := NewSessionStore(repo, 5)
	_, err := store.GetOrCreate(ctx, "alice")
	require.NoError(t, err)

	ok, err := store.AppendTurn(ctx, "alice", domain.SenderParticipant, "hello")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 4, repo.updates)

	messages, err := store.GetMessages(ctx, "alice")
	require.NoError(t, err)
	assert.Len(t, messages, 1)
}

func TestSessionStoreGivesUpAfterMaxAttempts(t *testing.T) {
	ctx := context.Background()
	repo := &conflictingRepository{SessionRepository: memory.NewSessionRepository(), conflicts: 10}
	store := NewSessionStore(repo, 3)
	_, err := store.GetOrCreate(ctx, "alice")
	require.NoError(t, err)

	_, err = store.AppendTurn(ctx, "alice", domain.SenderParticipant, "hello")
	assert.ErrorIs(t, err, domain.ErrVersionConflict)
	assert.Equal(t, 3, repo.updates)
}

func TestSessionStoreCorruptRecordIsNotRepaired(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewSessionRepository()
	repo.PutRawSession("alice", []byte("garbage"))
	store := NewSessionStore(repo, 0)

	_, err := store.GetOrCreate(ctx, "alice")
	assert.ErrorIs(t, err, domain.ErrCorruptSession)

	raw, err := repo.GetRawSession(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "garbage", string(raw))
}

// TestSessionStoreConcurrentAppendsAreNotLost runs many writers against one participant
func TestSessionStoreConcurrentAppendsAreNotLost(t *testing.T) {
	ctx := context.Background()
	store := NewSessionStore(memory.NewSessionRepository(), 0)
	_, err := store.GetOrCreate(ctx, "alice")
	require.NoError(t, err)

	const writers = 40
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := store.AppendTurn(ctx, "alice", domain.SenderParticipant, fmt.Sprintf("m%d", i))
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	messages, err := store.GetMessages(ctx, "alice")
	require.NoError(t, err)
	assert.Len(t, messages, writers)
	assert.Equal(t, 0, store.locks.size())
}

// TestSessionStoreConcurrentStoresShareRepository covers two processes sharing one durable store
func TestSessionStoreConcurrentStoresShareRepository(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewSessionRepository()
	a := NewSessionStore(repo, 100)
	b := NewSessionStore(repo, 100)
	_, err := a.GetOrCreate(ctx, "alice")
	require.NoError(t, err)

	const perStore = 20
	var wg sync.WaitGroup
	for i := 0; i < perStore; i++ {
		for _, store := range []*SessionStore{a, b} {
			wg.Add(1)
			go func(store *SessionStore, i int) {
				defer wg.Done()
				_, err := store.AppendTurn(ctx, "alice", domain.SenderParticipant, fmt.Sprintf("m%d", i))
				assert.NoError(t, err)
			}(store, i)
		}
	}
	wg.Wait()

	messages, err := a.GetMessages(ctx, "alice")
	require.NoError(t, err)
	assert.Len(t, messages, 2*perStore)
}

// TestUnserializedReadModifyWriteLosesAppend documents the hazard the store prevents:
// two writers that read the same record and write it back whole keep only one append.
func TestUnserializedReadModifyWriteLosesAppend(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewSessionRepository()
	require.NoError(t, repo.CreateSession(ctx, domain.NewInterviewSession("alice", fixedNow)))

	first, err := repo.GetSession(ctx, "alice")
	require.NoError(t, err)
	second, err := repo.GetSession(ctx, "alice")
	require.NoError(t, err)

	first.AppendTurns(fixedNow, domain.Turn{Sender: domain.SenderParticipant, Text: "first"})
	second.AppendTurns(fixedNow, domain.Turn{Sender: domain.SenderParticipant, Text: "second"})
	require.NoError(t, repo.ReplaceSession(ctx, first))
	require.NoError(t, repo.ReplaceSession(ctx, second))

	stored, err := repo.GetSession(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, stored.Messages, 1)
	assert.Equal(t, "second", stored.Messages[0].Text)

	// the same interleaving through versioned updates rejects the stale writer
	require.NoError(t, repo.CreateSession(ctx, domain.NewInterviewSession("bob", fixedNow)))
	first, _ = repo.GetSession(ctx, "bob")
	second, _ = repo.GetSession(ctx, "bob")
	first.AppendTurns(fixedNow, domain.Turn{Sender: domain.SenderParticipant, Text: "first"})
	second.AppendTurns(fixedNow, domain.Turn{Sender: domain.SenderParticipant, Text: "second"})
	require.NoError(t, repo.UpdateSession(ctx, first))
	assert.True(t, errors.Is(repo.UpdateSession(ctx, second), domain.ErrVersionConflict))
}

func TestKeyedMutexReleasesEntries(t *testing.T) {
	locks := newKeyedMutex()

	unlockA := locks.Lock("a")
	unlockB := locks.Lock("b")
	assert.Equal(t, 2, locks.size())

	unlockA()
	unlockB()
	assert.Equal(t, 0, locks.size())
}
