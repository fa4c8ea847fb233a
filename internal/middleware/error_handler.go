package middleware

import (
	"errors"

	"realty-backend/internal/financing"
	"realty-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// ErrorHandler is the global error handler. Returns the standard error format.
// Calculator errors that escape a handler keep their 400 status.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"
	details := map[string]interface{}{}

	var fe *fiber.Error
	var ve *financing.ValidationError
	var ue *financing.UnsupportedTypeError
	switch {
	case errors.As(err, &fe):
		code = fe.Code
		message = fe.Message
	case errors.As(err, &ve):
		code = fiber.StatusBadRequest
		message = ve.Message
		details["field"] = ve.Field
	case errors.As(err, &ue):
		code = fiber.StatusBadRequest
		message = ue.Error()
	default:
		log.Error().Err(err).Str("trace_id", GetTraceID(c)).Str("path", c.Path()).Msg("unhandled error")
	}

	return response.Error(c, message, code, details)
}
