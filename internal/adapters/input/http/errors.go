package http

import (
	"errors"

	"counsel-interview/internal/domain"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

const corruptSessionHint = "Stored session record is corrupt; inspect it with `interviewctl session inspect` and repair with `interviewctl session repair`"

// errorResponse maps use case errors to HTTP status codes
func errorResponse(c *fiber.Ctx, err error) error {
	var insufficient *domain.InsufficientEvidenceError

	switch {
	case errors.Is(err, domain.ErrValidation):
		return c.Status(fiber.StatusBadRequest).JSON(ResponseBody{Status: BadRequest.withMessage(err.Error())})
	case errors.As(err, &insufficient):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(ResponseBody{
			Status: Unprocessable,
			Data: InsufficientEvidenceResponse{
				MessageCount:  insufficient.MessageCount,
				MinMessages:   insufficient.MinMessages,
				SessionStatus: insufficient.SessionStatus,
			},
		})
	case errors.Is(err, domain.ErrInsufficientEvidence):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(ResponseBody{Status: Unprocessable})
	case errors.Is(err, domain.ErrSessionNotFound), errors.Is(err, domain.ErrAppointmentNotFound):
		return c.Status(fiber.StatusNotFound).JSON(ResponseBody{Status: NotFound.withMessage(err.Error())})
	case errors.Is(err, domain.ErrAppointmentForbidden):
		return c.Status(fiber.StatusForbidden).JSON(ResponseBody{Status: Forbidden.withMessage(err.Error())})
	case errors.Is(err, domain.ErrSessionPaused):
		return c.Status(fiber.StatusConflict).JSON(ResponseBody{Status: ConFlict.withMessage(err.Error())})
	case errors.Is(err, domain.ErrBackend):
		logrus.Errorln(err)
		return c.Status(fiber.StatusBadGateway).JSON(ResponseBody{Status: BadGateway.withMessage(err.Error())})
	case errors.Is(err, domain.ErrCorruptSession):
		logrus.Errorln(err)
		return c.Status(fiber.StatusInternalServerError).JSON(ResponseBody{
			Status: InternalServerError.withMessage(err.Error(), corruptSessionHint),
		})
	default:
		logrus.Errorln(err)
		return c.Status(fiber.StatusInternalServerError).JSON(ResponseBody{Status: InternalServerError})
	}
}
