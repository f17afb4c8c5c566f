package http

import (
	"counsel-interview/internal/domain"
	"counsel-interview/internal/ports/input"
	"counsel-interview/pkg/validator"

	"github.com/gofiber/fiber/v2"
)

// CounselorHandler struct - Primary/Driving adapter for the counselor AI tools
type CounselorHandler struct {
	srv       input.CounselorService
	validator validator.Validator
}

// NewCounselorHandler func
func NewCounselorHandler(srv input.CounselorService) *CounselorHandler {
	return &CounselorHandler{
		srv:       srv,
		validator: validator.New(),
	}
}

// Register mounts the counselor tool routes on the given router
func (h *CounselorHandler) Register(router fiber.Router) {
	router.Post("/conceptualization", h.Conceptualization)
	router.Post("/assessment", h.Assessment)
	router.Post("/supervision", h.Supervision)
}

// Conceptualization func
// @Summary Case conceptualization
// @Description Drafts a case conceptualization and treatment plan from a transcript
// @Tags Counselor
// @Accept application/json
// @Produce json
// @Success 200 {object} ResponseBody
// @Failure 400 {object} ResponseBody
// @Failure 502 {object} ResponseBody
// @Router /v1/api/ai/conceptualization [post]
// @param Conceptualization body CounselorReportRequest true "Conceptualization"
func (h *CounselorHandler) Conceptualization(c *fiber.Ctx) error {
	return h.generate(c, domain.CounselorReportConceptualization)
}

// Assessment func
// @Summary Client assessment
// @Description Assesses the client's functioning from a transcript
// @Tags Counselor
// @Accept application/json
// @Produce json
// @Success 200 {object} ResponseBody
// @Failure 400 {object} ResponseBody
// @Failure 502 {object} ResponseBody
// @Router /v1/api/ai/assessment [post]
// @param Assessment body CounselorReportRequest true "Assessment"
func (h *CounselorHandler) Assessment(c *fiber.Ctx) error {
	return h.generate(c, domain.CounselorReportAssessment)
}

// Supervision func
// @Summary Clinical supervision
// @Description Reviews the counselor's work using the transcript and earlier tool outputs
// @Tags Counselor
// @Accept application/json
// @Produce json
// @Success 200 {object} ResponseBody
// @Failure 400 {object} ResponseBody
// @Failure 502 {object} ResponseBody
// @Router /v1/api/ai/supervision [post]
// @param Supervision body CounselorReportRequest true "Supervision"
func (h *CounselorHandler) Supervision(c *fiber.Ctx) error {
	return h.generate(c, domain.CounselorReportSupervision)
}

func (h *CounselorHandler) generate(c *fiber.Ctx, kind domain.CounselorReportKind) error {
	var request CounselorReportRequest
	if ok, err := parseBody(c, h.validator, &request); !ok {
		return err
	}

	result, err := h.srv.Generate(c.UserContext(), domain.CounselorReportRequest{
		Kind:              kind,
		ParticipantID:     request.ParticipantID,
		Transcript:        request.TranscriptContent,
		ClientInfo:        request.ClientInfo,
		Conceptualization: request.ConceptualizationContent,
		Assessment:        request.AssessmentContent,
	})
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(ResponseBody{Status: Success, Data: CounselorReportResponse{
		Kind:      result.Kind,
		Content:   result.Content,
		Timestamp: result.Timestamp,
	}})
}
