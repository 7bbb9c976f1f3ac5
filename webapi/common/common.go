// Package common holds the response envelope and error translation shared by
// every handler package.
package common

import (
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/tripmena/backend/pkg/domain"
	cartsvc "github.com/tripmena/backend/pkg/service/cart"
)

// Response defines the standard API response structure for success cases.
type Response struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// ProblemDetails follows RFC 9457 Problem Details for HTTP APIs.
type ProblemDetails struct {
	Type     string `json:"type,omitempty"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail,omitempty"`
	Instance string `json:"instance,omitempty"`
	Errors   any    `json:"errors,omitempty"`
}

// SuccessResponseJSON writes the standard success envelope.
func SuccessResponseJSON(c *fiber.Ctx, status int, message string, data any) error {
	return c.Status(status).JSON(Response{
		Status:  status,
		Message: message,
		Data:    data,
	})
}

// ErrorResponseJSON returns a response following RFC 9457 Problem Details.
func ErrorResponseJSON(c *fiber.Ctx, status int, title string, detail any) error {
	pd := ProblemDetails{
		Type:   "about:blank",
		Title:  title,
		Status: status,
	}
	if detail != nil {
		if s, ok := detail.(string); ok {
			pd.Detail = s
		} else {
			pd.Errors = detail
		}
	}
	pd.Instance = c.OriginalURL()
	body, err := json.Marshal(pd)
	if err != nil {
		return err
	}
	// Send raw so fiber's JSON helper does not overwrite the media type.
	c.Set(fiber.HeaderContentType, "application/problem+json")
	return c.Status(status).Send(body)
}

// ProblemJSON maps a service error to its status code and writes the problem
// response.
func ProblemJSON(c *fiber.Ctx, title string, err error) error {
	return ErrorResponseJSON(c, ErrorToStatusCode(err), title, err.Error())
}

// ErrorToStatusCode maps domain errors to appropriate HTTP status codes.
func ErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, domain.ErrCartNotFound),
		errors.Is(err, domain.ErrItemNotFound),
		errors.Is(err, domain.ErrBookingNotFound),
		errors.Is(err, domain.ErrActivityNotFound),
		errors.Is(err, domain.ErrDealNotFound),
		errors.Is(err, domain.ErrPackageNotFound),
		errors.Is(err, domain.ErrComboNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrUnknownCurrency):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrInvalidDate),
		errors.Is(err, domain.ErrInvalidContactInfo),
		errors.Is(err, cartsvc.ErrInvalidPax):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrCartEmpty),
		errors.Is(err, domain.ErrPaymentIncomplete):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrPaymentProvider):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}
