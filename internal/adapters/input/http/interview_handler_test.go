package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"counsel-interview/internal/adapters/output/memory"
	"counsel-interview/internal/application"
	"counsel-interview/internal/domain"
	"counsel-interview/pkg/promptset"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGenerator struct {
	mu    sync.Mutex
	reply string
	err   error
	calls int
	last  domain.GenerationRequest
}

func (g *stubGenerator) Generate(ctx context.Context, request domain.GenerationRequest) (*domain.GenerationResponse, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls++
	g.last = request
	if g.err != nil {
		return nil, g.err
	}
	return &domain.GenerationResponse{Content: g.reply}, nil
}

type decodedBody struct {
	Status Status          `json:"status"`
	Data   json.RawMessage `json:"data"`
}

type interviewAPI struct {
	app       *fiber.App
	repo      *memory.SessionRepository
	generator *stubGenerator
}

func newInterviewAPI(t *testing.T) *interviewAPI {
	t.Helper()
	set, err := promptset.Default()
	require.NoError(t, err)

	repo := memory.NewSessionRepository()
	store := application.NewSessionStore(repo, 0)
	generator := &stubGenerator{reply: "您好，我们开始吧。"}
	interview := application.NewInterviewService(store, generator, nil, set, 0)
	reports := application.NewReportService(store, generator, nil, set, 0)

	app := fiber.New()
	NewInterviewHandler(interview, reports).Register(app.Group("/v1/api/interview"))
	return &interviewAPI{app: app, repo: repo, generator: generator}
}

func (a *interviewAPI) do(t *testing.T, method, path string, body interface{}) (int, decodedBody) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded decodedBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp.StatusCode, decoded
}

func (a *interviewAPI) chat(t *testing.T, participantID, message string) (int, decodedBody) {
	return a.do(t, http.MethodPost, "/v1/api/interview/chat", ChatRequest{ParticipantID: participantID, Message: message})
}

func TestChatEndpointReturnsReply(t *testing.T) {
	api := newInterviewAPI(t)

	code, body := api.chat(t, "alice", "hi")
	require.Equal(t, http.StatusOK, code)

	var data ChatResponse
	require.NoError(t, json.Unmarshal(body.Data, &data))
	assert.Equal(t, "您好，我们开始吧。", data.AgentReply)
	assert.NotEmpty(t, data.SessionID)
	assert.False(t, data.IsComplete)
	assert.Equal(t, 1, data.ParticipantTurnCount)
	assert.False(t, data.CanAnalyze)

	session, err := api.repo.GetSession(context.Background(), "alice")
	require.NoError(t, err)
	assert.Len(t, session.Messages, 2)
}

func TestChatEndpointValidation(t *testing.T) {
	api := newInterviewAPI(t)

	code, _ := api.do(t, http.MethodPost, "/v1/api/interview/chat", map[string]string{"participant_id": "alice"})
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = api.chat(t, "alice", "   ")
	assert.Equal(t, http.StatusBadRequest, code, "blank message is rejected")
	assert.Equal(t, 0, api.generator.calls)
}

func TestChatEndpointBackendFailure(t *testing.T) {
	api := newInterviewAPI(t)
	api.generator.err = domain.ErrBackendUnavailable

	code, body := api.chat(t, "alice", "hi")
	assert.Equal(t, http.StatusBadGateway, code)
	assert.Equal(t, http.StatusBadGateway, body.Status.Code)

	session, err := api.repo.GetSession(context.Background(), "alice")
	require.NoError(t, err)
	assert.Empty(t, session.Messages)
}

func TestChatEndpointPausedSession(t *testing.T) {
	api := newInterviewAPI(t)
	code, _ := api.chat(t, "alice", "hi")
	require.Equal(t, http.StatusOK, code)

	code, _ = api.do(t, http.MethodPut, "/v1/api/interview/session/alice/status", SessionStatusRequest{Status: "paused"})
	require.Equal(t, http.StatusOK, code)

	code, _ = api.chat(t, "alice", "still there?")
	assert.Equal(t, http.StatusConflict, code)

	code, _ = api.do(t, http.MethodPut, "/v1/api/interview/session/alice/status", SessionStatusRequest{Status: "active"})
	require.Equal(t, http.StatusOK, code)
	code, _ = api.chat(t, "alice", "back")
	assert.Equal(t, http.StatusOK, code)
}

func TestSetSessionStatusEndpoint(t *testing.T) {
	api := newInterviewAPI(t)

	code, _ := api.do(t, http.MethodPut, "/v1/api/interview/session/alice/status", SessionStatusRequest{Status: "completed"})
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = api.do(t, http.MethodPut, "/v1/api/interview/session/nobody/status", SessionStatusRequest{Status: "paused"})
	assert.Equal(t, http.StatusNotFound, code)
}

func TestGetSessionEndpointCreatesSession(t *testing.T) {
	api := newInterviewAPI(t)

	code, body := api.do(t, http.MethodGet, "/v1/api/interview/session/bob", nil)
	require.Equal(t, http.StatusOK, code)

	var data SessionResponse
	require.NoError(t, json.Unmarshal(body.Data, &data))
	require.NotNil(t, data.Session)
	assert.Equal(t, "bob", data.Session.ParticipantID)
	assert.Empty(t, data.Messages)
	assert.Empty(t, data.CompletedTopics)
	assert.Equal(t, 1, data.NextTopicID)
}

func TestResetSessionEndpoint(t *testing.T) {
	api := newInterviewAPI(t)
	code, body := api.chat(t, "alice", "hi")
	require.Equal(t, http.StatusOK, code)
	var first ChatResponse
	require.NoError(t, json.Unmarshal(body.Data, &first))

	code, body = api.do(t, http.MethodPost, "/v1/api/interview/session/alice/reset", nil)
	require.Equal(t, http.StatusOK, code)

	var session domain.InterviewSession
	require.NoError(t, json.Unmarshal(body.Data, &session))
	assert.NotEqual(t, first.SessionID, session.SessionID)
	assert.Empty(t, session.Messages)
}

func TestCheckStatusEndpoint(t *testing.T) {
	api := newInterviewAPI(t)

	code, body := api.do(t, http.MethodPost, "/v1/api/interview/status", ParticipantRequest{ParticipantID: "carol"})
	require.Equal(t, http.StatusOK, code)
	var status StatusResponse
	require.NoError(t, json.Unmarshal(body.Data, &status))
	assert.False(t, status.SessionExists)
	assert.Equal(t, domain.NextStepStartInterview, status.NextStep)

	_, err := api.repo.GetSession(context.Background(), "carol")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound, "status check must not create a session")

	api.chat(t, "carol", "hi")
	code, body = api.do(t, http.MethodPost, "/v1/api/interview/status", ParticipantRequest{ParticipantID: "carol"})
	require.Equal(t, http.StatusOK, code)
	require.NoError(t, json.Unmarshal(body.Data, &status))
	assert.True(t, status.SessionExists)
	assert.Equal(t, domain.SessionStatusActive, status.Status)
	assert.Equal(t, domain.NextStepContinueInterview, status.NextStep)
}

func TestAnalyzeEndpoint(t *testing.T) {
	api := newInterviewAPI(t)

	code, _ := api.do(t, http.MethodPost, "/v1/api/interview/analyze", AnalyzeRequest{ParticipantID: "nobody"})
	assert.Equal(t, http.StatusNotFound, code)

	api.chat(t, "alice", "one")
	api.chat(t, "alice", "two")
	code, body := api.do(t, http.MethodPost, "/v1/api/interview/analyze", AnalyzeRequest{ParticipantID: "alice"})
	require.Equal(t, http.StatusUnprocessableEntity, code)
	var insufficient InsufficientEvidenceResponse
	require.NoError(t, json.Unmarshal(body.Data, &insufficient))
	assert.Equal(t, 4, insufficient.MessageCount)
	assert.Equal(t, 5, insufficient.MinMessages)
	assert.Equal(t, domain.SessionStatusActive, insufficient.SessionStatus)

	api.chat(t, "alice", "three")
	api.generator.reply = "分析报告"
	code, body = api.do(t, http.MethodPost, "/v1/api/interview/analyze", AnalyzeRequest{
		ParticipantID: "alice",
		ClientInfo:    map[string]interface{}{"age": 30},
	})
	require.Equal(t, http.StatusOK, code)
	var result AnalysisResponse
	require.NoError(t, json.Unmarshal(body.Data, &result))
	assert.Equal(t, "分析报告", result.Report)
	assert.Equal(t, 6, result.MessageCount)
	assert.False(t, result.Timestamp.IsZero())
}

func TestCorruptSessionReturnsOperatorHint(t *testing.T) {
	api := newInterviewAPI(t)
	api.repo.PutRawSession("alice", []byte("{not json"))

	code, body := api.chat(t, "alice", "hi")
	require.Equal(t, http.StatusInternalServerError, code)
	require.Len(t, body.Status.Message, 2)
	assert.Contains(t, body.Status.Message[1], "interviewctl session repair")
}

func TestErrorResponseMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"validation", domain.ErrValidation, http.StatusBadRequest},
		{"insufficient sentinel", domain.ErrInsufficientEvidence, http.StatusUnprocessableEntity},
		{"session not found", domain.ErrSessionNotFound, http.StatusNotFound},
		{"appointment not found", domain.ErrAppointmentNotFound, http.StatusNotFound},
		{"paused", domain.ErrSessionPaused, http.StatusConflict},
		{"backend", domain.ErrBackend, http.StatusBadGateway},
		{"corrupt", domain.ErrCorruptSession, http.StatusInternalServerError},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error { return errorResponse(c, tt.err) })

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
			require.NoError(t, err)
			defer resp.Body.Close()
			assert.Equal(t, tt.code, resp.StatusCode)
		})
	}
}
