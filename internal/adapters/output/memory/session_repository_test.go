package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"counsel-interview/internal/domain"
)

var testNow = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

// TestGetSessionMissing tests that a missing record is reported as not found
func TestGetSessionMissing(t *testing.T) {
	repo := NewSessionRepository()

	_, err := repo.GetSession(context.Background(), "nobody")
	if !errors.Is(err, domain.ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound, got %v", err)
	}
}

// TestCreateSessionRejectsDuplicate tests that one participant has one session
func TestCreateSessionRejectsDuplicate(t *testing.T) {
	ctx := context.Background()
	repo := NewSessionRepository()

	if err := repo.CreateSession(ctx, domain.NewInterviewSession("alice", testNow)); err != nil {
		t.Fatalf("expected first create to succeed, got %v", err)
	}
	err := repo.CreateSession(ctx, domain.NewInterviewSession("alice", testNow))
	if !errors.Is(err, domain.ErrSessionExists) {
		t.Errorf("expected ErrSessionExists, got %v", err)
	}
}

// TestGetSessionReturnsIndependentCopies tests that callers never share stored state
func TestGetSessionReturnsIndependentCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewSessionRepository()
	_ = repo.CreateSession(ctx, domain.NewInterviewSession("alice", testNow))

	first, _ := repo.GetSession(ctx, "alice")
	first.AppendTurns(testNow, domain.Turn{Sender: domain.SenderParticipant, Text: "hi"})

	second, _ := repo.GetSession(ctx, "alice")
	if len(second.Messages) != 0 {
		t.Errorf("expected stored session to be untouched, got %d messages", len(second.Messages))
	}
}

// TestUpdateSessionBumpsVersion tests the compare-and-swap happy path
func TestUpdateSessionBumpsVersion(t *testing.T) {
	ctx := context.Background()
	repo := NewSessionRepository()
	_ = repo.CreateSession(ctx, domain.NewInterviewSession("alice", testNow))

	session, _ := repo.GetSession(ctx, "alice")
	session.AppendTurns(testNow, domain.Turn{Sender: domain.SenderParticipant, Text: "hi"})
	if err := repo.UpdateSession(ctx, session); err != nil {
		t.Fatalf("expected update to succeed, got %v", err)
	}
	if session.Version != 1 {
		t.Errorf("expected caller version 1, got %d", session.Version)
	}

	stored, _ := repo.GetSession(ctx, "alice")
	if stored.Version != 1 || len(stored.Messages) != 1 {
		t.Errorf("expected version 1 with 1 message, got version %d with %d messages", stored.Version, len(stored.Messages))
	}
}

// TestUpdateSessionStaleVersion tests that a stale writer is rejected
func TestUpdateSessionStaleVersion(t *testing.T) {
	ctx := context.Background()
	repo := NewSessionRepository()
	_ = repo.CreateSession(ctx, domain.NewInterviewSession("alice", testNow))

	a, _ := repo.GetSession(ctx, "alice")
	b, _ := repo.GetSession(ctx, "alice")

	a.AppendTurns(testNow, domain.Turn{Sender: domain.SenderParticipant, Text: "a"})
	if err := repo.UpdateSession(ctx, a); err != nil {
		t.Fatalf("expected first writer to succeed, got %v", err)
	}

	b.AppendTurns(testNow, domain.Turn{Sender: domain.SenderParticipant, Text: "b"})
	if err := repo.UpdateSession(ctx, b); !errors.Is(err, domain.ErrVersionConflict) {
		t.Errorf("expected ErrVersionConflict, got %v", err)
	}
}

// TestUpdateSessionAfterReplace tests that a writer holding a replaced session is rejected
func TestUpdateSessionAfterReplace(t *testing.T) {
	ctx := context.Background()
	repo := NewSessionRepository()
	_ = repo.CreateSession(ctx, domain.NewInterviewSession("alice", testNow))

	stale, _ := repo.GetSession(ctx, "alice")
	_ = repo.ReplaceSession(ctx, domain.NewInterviewSession("alice", testNow))

	stale.AppendTurns(testNow, domain.Turn{Sender: domain.SenderParticipant, Text: "late"})
	if err := repo.UpdateSession(ctx, stale); !errors.Is(err, domain.ErrVersionConflict) {
		t.Errorf("expected ErrVersionConflict, got %v", err)
	}
}

// TestGetSessionCorruptRecord tests that undecodable records surface as corrupt
func TestGetSessionCorruptRecord(t *testing.T) {
	ctx := context.Background()
	repo := NewSessionRepository()
	repo.PutRawSession("alice", []byte("{not json"))

	_, err := repo.GetSession(ctx, "alice")
	if !errors.Is(err, domain.ErrCorruptSession) {
		t.Errorf("expected ErrCorruptSession, got %v", err)
	}

	raw, err := repo.GetRawSession(ctx, "alice")
	if err != nil || string(raw) != "{not json" {
		t.Errorf("expected raw payload to be readable, got %q (%v)", raw, err)
	}
}

// TestDeleteSessionIdempotent tests that deleting twice is fine
func TestDeleteSessionIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := NewSessionRepository()
	_ = repo.CreateSession(ctx, domain.NewInterviewSession("alice", testNow))

	if err := repo.DeleteSession(ctx, "alice"); err != nil {
		t.Errorf("expected no error, got %v", err)
	}
	if err := repo.DeleteSession(ctx, "alice"); err != nil {
		t.Errorf("expected no error on second delete, got %v", err)
	}
	if _, err := repo.GetSession(ctx, "alice"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound after delete, got %v", err)
	}
}

// TestConcurrentAccess tests thread-safety under concurrent access
func TestConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	repo := NewSessionRepository()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := []string{"a", "b", "c"}[i%3]
			_ = repo.CreateSession(ctx, domain.NewInterviewSession(id, testNow))
			if s, err := repo.GetSession(ctx, id); err == nil {
				_ = repo.UpdateSession(ctx, s)
			}
		}(i)
	}
	wg.Wait()

	for _, id := range []string{"a", "b", "c"} {
		if _, err := repo.GetSession(ctx, id); err != nil {
			t.Errorf("expected session %s to exist, got %v", id, err)
		}
	}
}
