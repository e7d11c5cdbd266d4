package api

import (
	"errors"

	"github.com/alexanderramin/clientdesk/internal/domain"
	"github.com/gofiber/fiber/v2"
)

var kindStatus = map[domain.ErrorKind]int{
	domain.KindNotFound:        fiber.StatusNotFound,
	domain.KindValidation:      fiber.StatusBadRequest,
	domain.KindConflict:        fiber.StatusConflict,
	domain.KindExternalTimeout: fiber.StatusGatewayTimeout,
	domain.KindExternalService: fiber.StatusBadGateway,
	domain.KindIO:              fiber.StatusInternalServerError,
}

// errorHandler renders every failure as {error, kind, retryable}.
func errorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		kind := domain.KindIO
		switch fe.Code {
		case fiber.StatusNotFound, fiber.StatusMethodNotAllowed:
			kind = domain.KindNotFound
		case fiber.StatusBadRequest, fiber.StatusUnprocessableEntity:
			kind = domain.KindValidation
		}
		return c.Status(fe.Code).JSON(fiber.Map{
			"error":     fe.Message,
			"kind":      kind,
			"retryable": false,
		})
	}

	kind := domain.KindOf(err)
	status, ok := kindStatus[kind]
	if !ok {
		kind = domain.KindIO
		status = fiber.StatusInternalServerError
	}
	return c.Status(status).JSON(fiber.Map{
		"error":     err.Error(),
		"kind":      kind,
		"retryable": domain.IsRetryable(err),
	})
}

// ok writes the success envelope with a single named payload.
func ok(c *fiber.Ctx, status int, key string, value any) error {
	return c.Status(status).JSON(fiber.Map{"success": true, key: value})
}
