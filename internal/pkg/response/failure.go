package response

import (
	"errors"

	"realty-backend/internal/financing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// Failure renders err in the error envelope. Calculator errors are 400s,
// errors matching a key of codes (errors.Is) get its status, anything else is
// logged and hidden behind a 500.
func Failure(c *fiber.Ctx, err error, codes map[error]int) error {
	var ve *financing.ValidationError
	if errors.As(err, &ve) {
		return ValidationFailed(c, ve.Field, ve.Message)
	}
	var ue *financing.UnsupportedTypeError
	if errors.As(err, &ue) {
		return Error(c, ue.Error(), fiber.StatusBadRequest, nil)
	}
	for target, code := range codes {
		if errors.Is(err, target) {
			return Error(c, target.Error(), code, nil)
		}
	}
	log.Error().Err(err).Str("path", c.Path()).Str("method", c.Method()).Msg("request failed")
	return Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
}
