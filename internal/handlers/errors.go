package handlers

import (
	"jaba/internal/services"

	"github.com/gofiber/fiber/v2"
)

// respondDomainError maps a service failure to an HTTP response. Domain
// errors carry their machine-checkable code; anything else is a 500.
func respondDomainError(c *fiber.Ctx, message string, err error) error {
	if domainErr, ok := services.AsDomainError(err); ok {
		status := fiber.StatusInternalServerError
		switch domainErr.Kind {
		case services.KindValidation:
			status = fiber.StatusBadRequest
		case services.KindConflict:
			status = fiber.StatusConflict
		case services.KindNotFound:
			status = fiber.StatusNotFound
		case services.KindForbidden:
			status = fiber.StatusForbidden
		}
		return c.Status(status).JSON(fiber.Map{
			"message": message,
			"code":    domainErr.Code,
			"error":   domainErr.Message,
		})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": message,
		"error":   err.Error(),
	})
}

// callerPrincipal returns the principal stored by the auth middleware.
func callerPrincipal(c *fiber.Ctx) string {
	principal, _ := c.Locals("principal").(string)
	return principal
}
