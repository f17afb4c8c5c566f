package http

import (
	"counsel-interview/internal/domain"
	"counsel-interview/internal/ports/input"
	database "counsel-interview/pkg/database_driver/gorm"
	"counsel-interview/pkg/validator"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// HTTPHandler struct - Primary/Driving adapter for health and appointment routes
type HTTPHandler struct {
	srv       input.AppointmentService
	db        *database.DB
	validator validator.Validator
}

// New func - Creates new HTTP handler. db may be nil when no SQL store is configured.
func New(srv input.AppointmentService, db *database.DB) *HTTPHandler {
	return &HTTPHandler{
		srv:       srv,
		db:        db,
		validator: validator.New(),
	}
}

// HealthCheck func
// @Summary Health check
// @Description Pings the SQL database when one is configured
// @Tags Health
// @Produce json
// @Success 200 {object} ResponseBody
// @Router /health [get]
func (hdl *HTTPHandler) HealthCheck(c *fiber.Ctx) error {
	if hdl.db == nil {
		return c.Status(fiber.StatusOK).JSON(ResponseBody{Status: Success, Data: fiber.Map{"database": "not configured"}})
	}
	if err := database.Ping(hdl.db); err != nil {
		logrus.Errorln(err)
		return c.Status(fiber.StatusInternalServerError).JSON(ResponseBody{Status: InternalServerError})
	}
	return c.Status(fiber.StatusOK).JSON(ResponseBody{Status: Success, Data: fiber.Map{"database": hdl.db.Dialect}})
}

// CreateAppointment func
// @Summary Create appointment
// @Description Books a counseling appointment; it starts as PENDING
// @Tags Appointment
// @Accept application/json
// @Produce json
// @Success 200 {object} ResponseBody
// @Router /v1/api/appointment [post]
// @param CreateAppointment body AppointmentRequest true "CreateAppointment"
func (hdl *HTTPHandler) CreateAppointment(c *fiber.Ctx) error {
	var request AppointmentRequest
	if err := c.BodyParser(&request); err != nil {
		logrus.Errorln(err)
		return c.Status(fiber.StatusBadRequest).JSON(ResponseBody{Status: BadRequest})
	}
	if err := hdl.validator.ValidateStruct(request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ResponseBody{Status: BadRequest.withMessage(err.Error())})
	}

	response, err := hdl.srv.CreateAppointment(c.UserContext(), toDomainAppointment(request))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(ResponseBody{Status: Success, Data: toAppointmentResponse(response)})
}

// UpdateAppointment func
// @Summary Update appointment
// @Description Reschedules, responds to or cancels an appointment
// @Tags Appointment
// @Accept application/json
// @Produce json
// @Success 200 {object} ResponseBody
// @Router /v1/api/appointment [put]
// @param UpdateAppointment body AppointmentRequest true "UpdateAppointment"
func (hdl *HTTPHandler) UpdateAppointment(c *fiber.Ctx) error {
	var request AppointmentRequest
	if err := c.BodyParser(&request); err != nil {
		logrus.Errorln(err)
		return c.Status(fiber.StatusBadRequest).JSON(ResponseBody{Status: BadRequest})
	}
	if err := hdl.validator.ValidateStruct(request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ResponseBody{Status: BadRequest.withMessage(err.Error())})
	}
	if request.ID == nil {
		return c.Status(fiber.StatusBadRequest).JSON(ResponseBody{Status: BadRequest.withMessage("id is required")})
	}

	response, err := hdl.srv.UpdateAppointment(c.UserContext(), toDomainAppointment(request))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(ResponseBody{Status: Success, Data: toAppointmentResponse(response)})
}

// DeleteAppointment func
// @Summary Delete appointment
// @Tags Appointment
// @Produce json
// @Success 200 {object} ResponseBody
// @Router /v1/api/appointment/{id} [delete]
// @param id path string true "uuid"
func (hdl *HTTPHandler) DeleteAppointment(c *fiber.Ctx) error {
	uid, err := uuid.Parse(c.Params("id"))
	if err != nil {
		logrus.Errorln(err)
		return c.Status(fiber.StatusBadRequest).JSON(ResponseBody{Status: BadRequest})
	}

	response, err := hdl.srv.DeleteAppointment(c.UserContext(), domain.AppointmentRequest{ID: &uid})
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(ResponseBody{Status: Success, Data: toAppointmentResponse(response)})
}

// GetAppointment func
// @Summary List appointments
// @Tags Appointment
// @Produce json
// @Success 200 {object} ResponseBody
// @Router /v1/api/appointment [get]
// @param id query string false "uuid"
// @param participant_id query string false "participant_id"
// @param counselor_id query string false "counselor_id"
// @param status query string false "status"
// @param day query string false "YYYY-MM-DD"
// @param page query int false "page"
// @param limit query int false "limit"
// @param order_by query string false "order_by"
// @param asc query bool false "asc"
func (hdl *HTTPHandler) GetAppointment(c *fiber.Ctx) error {
	condition := QueryAppointmentRequest{}
	if err := c.QueryParser(&condition); err != nil {
		logrus.Errorln(err)
		return c.Status(fiber.StatusBadRequest).JSON(ResponseBody{Status: BadRequest})
	}
	if err := hdl.validator.ValidateStruct(condition); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ResponseBody{Status: BadRequest.withMessage(err.Error())})
	}

	if id := c.Params("id"); id != "" {
		uid, err := uuid.Parse(id)
		if err != nil {
			logrus.Errorln(err)
			return c.Status(fiber.StatusBadRequest).JSON(ResponseBody{Status: BadRequest})
		}
		condition.ID = &uid
	}

	result, err := hdl.srv.GetAppointment(c.UserContext(), domain.QueryAppointmentRequest{
		ID:            condition.ID,
		ParticipantID: condition.ParticipantID,
		CounselorID:   condition.CounselorID,
		Status:        condition.Status,
		Day:           condition.Day,
		Limit:         condition.Limit,
		Page:          condition.Page,
		OrderBy:       condition.OrderBy,
		Asc:           condition.Asc,
	})
	if err != nil {
		return errorResponse(c, err)
	}

	data := make([]AppointmentResponse, 0, len(result.Appointments))
	for i := range result.Appointments {
		data = append(data, toAppointmentResponse(&result.Appointments[i]))
	}

	return c.Status(fiber.StatusOK).JSON(ResponseBody{
		Status:      Success,
		Data:        data,
		CurrentPage: result.CurrentPage,
		PerPage:     result.PerPage,
		TotalItem:   result.TotalItem,
	})
}

func toDomainAppointment(request AppointmentRequest) domain.AppointmentRequest {
	return domain.AppointmentRequest{
		ID:            request.ID,
		ParticipantID: request.ParticipantID,
		CounselorID:   request.CounselorID,
		StartsAt:      request.StartsAt,
		Note:          request.Note,
		Response:      request.Response,
		Status:        (*domain.AppointmentStatus)(request.Status),
	}
}
