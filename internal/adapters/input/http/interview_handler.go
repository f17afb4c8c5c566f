package http

import (
	"counsel-interview/internal/domain"
	"counsel-interview/internal/ports/input"
	"counsel-interview/pkg/validator"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// InterviewHandler struct - Primary/Driving adapter for the structured interview
type InterviewHandler struct {
	interview input.InterviewService
	reports   input.ReportService
	validator validator.Validator
}

// NewInterviewHandler func - Creates new interview handler
func NewInterviewHandler(interview input.InterviewService, reports input.ReportService) *InterviewHandler {
	return &InterviewHandler{
		interview: interview,
		reports:   reports,
		validator: validator.New(),
	}
}

// Register mounts the interview routes on the given router
func (h *InterviewHandler) Register(router fiber.Router) {
	router.Post("/chat", h.Chat)
	router.Get("/session/:participant_id", h.GetSession)
	router.Post("/session/:participant_id/reset", h.ResetSession)
	router.Put("/session/:participant_id/status", h.SetSessionStatus)
	router.Post("/status", h.CheckStatus)
	router.Post("/analyze", h.Analyze)
}

// Chat func
// @Summary Interview turn
// @Description Submits one participant utterance and returns the agent reply
// @Tags Interview
// @Accept application/json
// @Produce json
// @Success 200 {object} ResponseBody
// @Failure 400 {object} ResponseBody
// @Failure 409 {object} ResponseBody
// @Failure 502 {object} ResponseBody
// @Router /v1/api/interview/chat [post]
// @param Chat body ChatRequest true "Chat"
func (h *InterviewHandler) Chat(c *fiber.Ctx) error {
	var request ChatRequest
	if ok, err := h.parse(c, &request); !ok {
		return err
	}

	result, err := h.interview.Chat(c.UserContext(), request.ParticipantID, request.Message)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(ResponseBody{Status: Success, Data: ChatResponse{
		AgentReply:           result.AgentReply,
		SessionID:            result.SessionID,
		IsComplete:           result.IsComplete,
		ParticipantTurnCount: result.ParticipantTurnCount,
		CanAnalyze:           result.CanAnalyze,
		AnalysisReady:        result.AnalysisReady,
	}})
}

// GetSession func
// @Summary Get session
// @Description Returns the session with derived progress, creating it when absent
// @Tags Interview
// @Produce json
// @Success 200 {object} ResponseBody
// @Router /v1/api/interview/session/{participant_id} [get]
// @param participant_id path string true "participant id"
func (h *InterviewHandler) GetSession(c *fiber.Ctx) error {
	view, err := h.interview.GetSession(c.UserContext(), c.Params("participant_id"))
	if err != nil {
		return errorResponse(c, err)
	}

	completed := view.Progress.CompletedTopics
	if completed == nil {
		completed = []int{}
	}
	return c.Status(fiber.StatusOK).JSON(ResponseBody{Status: Success, Data: SessionResponse{
		Session:              view.Session,
		Messages:             view.Messages,
		CompletedTopics:      completed,
		NextTopicID:          view.Progress.NextTopicID,
		IsComplete:           view.IsComplete,
		ParticipantTurnCount: view.ParticipantTurnCount,
		CanAnalyze:           view.CanAnalyze,
	}})
}

// ResetSession func
// @Summary Reset session
// @Description Discards the transcript and starts a new session
// @Tags Interview
// @Produce json
// @Success 200 {object} ResponseBody
// @Router /v1/api/interview/session/{participant_id}/reset [post]
// @param participant_id path string true "participant id"
func (h *InterviewHandler) ResetSession(c *fiber.Ctx) error {
	session, err := h.interview.ResetSession(c.UserContext(), c.Params("participant_id"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(ResponseBody{Status: Success, Data: session})
}

// SetSessionStatus func
// @Summary Pause or resume
// @Tags Interview
// @Accept application/json
// @Produce json
// @Success 200 {object} ResponseBody
// @Failure 404 {object} ResponseBody
// @Router /v1/api/interview/session/{participant_id}/status [put]
// @param participant_id path string true "participant id"
// @param SetSessionStatus body SessionStatusRequest true "SetSessionStatus"
func (h *InterviewHandler) SetSessionStatus(c *fiber.Ctx) error {
	var request SessionStatusRequest
	if ok, err := h.parse(c, &request); !ok {
		return err
	}

	session, err := h.interview.SetSessionStatus(c.UserContext(), c.Params("participant_id"), domain.SessionStatus(request.Status))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(ResponseBody{Status: Success, Data: session})
}

// CheckStatus func
// @Summary Check status
// @Description Reports progress without creating a session
// @Tags Interview
// @Accept application/json
// @Produce json
// @Success 200 {object} ResponseBody
// @Router /v1/api/interview/status [post]
// @param CheckStatus body ParticipantRequest true "CheckStatus"
func (h *InterviewHandler) CheckStatus(c *fiber.Ctx) error {
	var request ParticipantRequest
	if ok, err := h.parse(c, &request); !ok {
		return err
	}

	status, err := h.interview.CheckStatus(c.UserContext(), request.ParticipantID)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(ResponseBody{Status: Success, Data: StatusResponse{
		SessionExists:        status.SessionExists,
		Status:               status.Status,
		IsComplete:           status.IsComplete,
		ParticipantTurnCount: status.ParticipantTurnCount,
		MessageCount:         status.MessageCount,
		MinMessages:          status.MinMessages,
		CanAnalyze:           status.CanAnalyze,
		AnalysisReady:        status.AnalysisReady,
		HasReport:            status.HasReport,
		NextStep:             status.NextStep,
	}})
}

// Analyze func
// @Summary Analyze transcript
// @Description Runs the analysis over the whole transcript and stores the report
// @Tags Interview
// @Accept application/json
// @Produce json
// @Success 200 {object} ResponseBody
// @Failure 404 {object} ResponseBody
// @Failure 422 {object} ResponseBody
// @Failure 502 {object} ResponseBody
// @Router /v1/api/interview/analyze [post]
// @param Analyze body AnalyzeRequest true "Analyze"
func (h *InterviewHandler) Analyze(c *fiber.Ctx) error {
	var request AnalyzeRequest
	if ok, err := h.parse(c, &request); !ok {
		return err
	}

	result, err := h.reports.Analyze(c.UserContext(), domain.AnalysisRequest{
		ParticipantID: request.ParticipantID,
		ClientInfo:    request.ClientInfo,
	})
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(ResponseBody{Status: Success, Data: AnalysisResponse{
		Report:       result.Report,
		MessageCount: result.MessageCount,
		SessionID:    result.SessionID,
		Timestamp:    result.Timestamp,
	}})
}

func (h *InterviewHandler) parse(c *fiber.Ctx, out interface{}) (bool, error) {
	return parseBody(c, h.validator, out)
}

// parseBody decodes and validates the body. When ok is false the 400 response has been written.
func parseBody(c *fiber.Ctx, v validator.Validator, out interface{}) (bool, error) {
	if err := c.BodyParser(out); err != nil {
		logrus.Errorln(err)
		return false, c.Status(fiber.StatusBadRequest).JSON(ResponseBody{Status: BadRequest})
	}
	if err := v.ValidateStruct(out); err != nil {
		return false, c.Status(fiber.StatusBadRequest).JSON(ResponseBody{Status: BadRequest.withMessage(err.Error())})
	}
	return true, nil
}
