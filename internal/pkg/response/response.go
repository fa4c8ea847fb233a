// Package response renders the JSON envelope shared by every realty API
// route: properties, cash-flow streams, financing and uploads.
package response

import (
	"github.com/gofiber/fiber/v2"
)

// SuccessBody wraps a property view, a financing result or a listing.
// Metadata carries paging for list routes and is an empty object otherwise.
type SuccessBody struct {
	Status   string      `json:"status"`
	Message  string      `json:"message"`
	Data     interface{} `json:"data"`
	Metadata interface{} `json:"metadata,omitempty"`
}

type ErrorBody struct {
	Status string      `json:"status"`
	Error  ErrorDetail `json:"error"`
}

// ErrorDetail echoes the HTTP status. Details holds the rejected parameter
// under "field" for financing validation failures.
type ErrorDetail struct {
	Message    string      `json:"message"`
	StatusCode int         `json:"statusCode"`
	Details    interface{} `json:"details,omitempty"`
}

const (
	statusSuccess = "success"
	statusError   = "error"
)

func orEmpty(v interface{}) interface{} {
	if v == nil {
		return map[string]interface{}{}
	}
	return v
}

func send(c *fiber.Ctx, code int, message string, data, metadata interface{}) error {
	return c.Status(code).JSON(SuccessBody{
		Status:   statusSuccess,
		Message:  message,
		Data:     data,
		Metadata: orEmpty(metadata),
	})
}

// Success answers 200 with data, e.g. an aggregated property or a
// calculation result.
func Success(c *fiber.Ctx, message string, data interface{}, metadata interface{}) error {
	return send(c, fiber.StatusOK, message, data, metadata)
}

// SuccessCreated answers 201 for a new property, stream or upload.
func SuccessCreated(c *fiber.Ctx, message string, data interface{}, metadata interface{}) error {
	return send(c, fiber.StatusCreated, message, data, metadata)
}

// Error answers statusCode with message. The fiber ErrorHandler funnels
// recovered panics and unmatched errors through here as 500s.
func Error(c *fiber.Ctx, message string, statusCode int, details interface{}) error {
	return c.Status(statusCode).JSON(ErrorBody{
		Status: statusError,
		Error: ErrorDetail{
			Message:    message,
			StatusCode: statusCode,
			Details:    orEmpty(details),
		},
	})
}

// ValidationFailed answers 400 naming the parameter a calculator rejected,
// so the dashboard form can mark it.
func ValidationFailed(c *fiber.Ctx, field, message string) error {
	return Error(c, message, fiber.StatusBadRequest, fiber.Map{"field": field})
}
