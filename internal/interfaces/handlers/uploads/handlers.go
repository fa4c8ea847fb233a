package uploads

import (
	"errors"

	propsvc "realty-backend/internal/application/properties"
	uploadsvc "realty-backend/internal/application/uploads"
	"realty-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Handlers bundles upload handlers with the service.
type Handlers struct {
	Service *uploadsvc.Service
}

var errorCodes = map[error]int{
	uploadsvc.ErrPropertyIDRequired: fiber.StatusBadRequest,
	uploadsvc.ErrFileRequired:       fiber.StatusBadRequest,
	uploadsvc.ErrNotImage:           fiber.StatusBadRequest,
	uploadsvc.ErrFileTooLarge:       fiber.StatusRequestEntityTooLarge,
	propsvc.ErrPropertyNotFound:     fiber.StatusNotFound,
}

// UploadPropertyImage POST /api/v1/uploads/property-image
// Header property-id, multipart field "file". Responds with { filePath }.
func (h *Handlers) UploadPropertyImage(c *fiber.Ctx) error {
	propertyID, err := uuid.Parse(c.Get("property-id"))
	if err != nil {
		return response.Error(c, uploadsvc.ErrPropertyIDRequired.Error(), fiber.StatusBadRequest, nil)
	}
	fh, err := c.FormFile("file")
	if err != nil {
		return response.Error(c, uploadsvc.ErrFileRequired.Error(), fiber.StatusBadRequest, nil)
	}

	filePath, err := h.Service.UploadPropertyImage(c.Context(), propertyID, fh)
	if err != nil {
		if isClientError(err) {
			return response.Failure(c, err, errorCodes)
		}
		log.Error().Err(err).Str("property_id", propertyID.String()).Msg("upload: failed to store property image")
		return response.Error(c, "Failed to upload and save image", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Image uploaded successfully", fiber.Map{"filePath": filePath}, nil)
}

func isClientError(err error) bool {
	for target := range errorCodes {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
