package application

import (
	"context"
	"sync"
	"testing"
	"time"

	"counsel-interview/internal/adapters/output/memory"
	"counsel-interview/internal/domain"
	"counsel-interview/pkg/promptset"
)

// MockTextGenerator implements output.TextGenerator for testing
type MockTextGenerator struct {
	GenerateFunc func(ctx context.Context, request domain.GenerationRequest) (*domain.GenerationResponse, error)

	mu       sync.Mutex
	Requests []domain.GenerationRequest
}

func (m *MockTextGenerator) Generate(ctx context.Context, request domain.GenerationRequest) (*domain.GenerationResponse, error) {
	m.mu.Lock()
	m.Requests = append(m.Requests, request)
	m.mu.Unlock()
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, request)
	}
	return &domain.GenerationResponse{Content: "AI response"}, nil
}

// LastRequest returns the most recent request
func (m *MockTextGenerator) LastRequest() *domain.GenerationRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Requests) == 0 {
		return nil
	}
	req := m.Requests[len(m.Requests)-1]
	return &req
}

// CallCount returns how many requests were made
func (m *MockTextGenerator) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Requests)
}

// replyWith returns a generator that always answers with text
func replyWith(text string) *MockTextGenerator {
	return &MockTextGenerator{
		GenerateFunc: func(ctx context.Context, request domain.GenerationRequest) (*domain.GenerationResponse, error) {
			return &domain.GenerationResponse{Content: text}, nil
		},
	}
}

// MockEventPublisher implements output.EventPublisher for testing
type MockEventPublisher struct {
	PublishFunc func(ctx context.Context, event domain.InterviewEvent) error

	mu     sync.Mutex
	Events []domain.InterviewEvent
}

func (m *MockEventPublisher) Publish(ctx context.Context, event domain.InterviewEvent) error {
	m.mu.Lock()
	m.Events = append(m.Events, event)
	m.mu.Unlock()
	if m.PublishFunc != nil {
		return m.PublishFunc(ctx, event)
	}
	return nil
}

// EventsOfType returns the captured events of one type
func (m *MockEventPublisher) EventsOfType(eventType domain.InterviewEventType) []domain.InterviewEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.InterviewEvent
	for _, e := range m.Events {
		if e.Type == eventType {
			out = append(out, e)
		}
	}
	return out
}

// MockLineClient implements output.LineClient for testing
type MockLineClient struct {
	ReplyMessageFunc func(ctx context.Context, request domain.LineReplyMessageRequest) (*domain.LineMessageResponse, error)
	PushMessageFunc  func(ctx context.Context, request domain.LinePushMessageRequest) (*domain.LineMessageResponse, error)

	// Captured values for assertions
	LastReplyRequest *domain.LineReplyMessageRequest
	LastPushRequest  *domain.LinePushMessageRequest

	// Track all push requests for multi-message testing
	PushRequests []domain.LinePushMessageRequest
}

func (m *MockLineClient) ReplyMessage(ctx context.Context, request domain.LineReplyMessageRequest) (*domain.LineMessageResponse, error) {
	m.LastReplyRequest = &request
	if m.ReplyMessageFunc != nil {
		return m.ReplyMessageFunc(ctx, request)
	}
	return &domain.LineMessageResponse{Status: "ok"}, nil
}

func (m *MockLineClient) PushMessage(ctx context.Context, request domain.LinePushMessageRequest) (*domain.LineMessageResponse, error) {
	m.LastPushRequest = &request
	m.PushRequests = append(m.PushRequests, request)
	if m.PushMessageFunc != nil {
		return m.PushMessageFunc(ctx, request)
	}
	return &domain.LineMessageResponse{Status: "ok"}, nil
}

var fixedNow = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

func testPromptSet(t *testing.T) *domain.PromptSet {
	t.Helper()
	set, err := promptset.Default()
	if err != nil {
		t.Fatalf("failed to load default prompt set: %v", err)
	}
	return set
}

// seedSession stores a session with the given turns, alternating participant and agent
func seedSession(t *testing.T, repo *memory.SessionRepository, participantID string, texts ...string) *domain.InterviewSession {
	t.Helper()
	session := domain.NewInterviewSession(participantID, fixedNow)
	for i, text := range texts {
		sender := domain.SenderParticipant
		if i%2 == 1 {
			sender = domain.SenderAgent
		}
		session.AppendTurns(fixedNow, domain.Turn{Sender: sender, Text: text, Timestamp: fixedNow})
	}
	if err := repo.CreateSession(context.Background(), session); err != nil {
		t.Fatalf("failed to seed session: %v", err)
	}
	return session
}
