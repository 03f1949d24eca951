package handlers

import (
	"errors"
	"fmt"
	"log"

	"inventario/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// respondError maps service errors to HTTP responses: 404 for unresolved ids,
// 401 for auth failures and ownership mismatches, 400 with the offending
// field for conflicts, and a generic 500 for everything else (no detail
// leaked).
func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrProductNotFound),
		errors.Is(err, services.ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": err.Error(),
		})
	case errors.Is(err, services.ErrOwnerNotFound),
		errors.Is(err, services.ErrNotOwner),
		errors.Is(err, services.ErrInvalidCredentials):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": err.Error(),
		})
	case errors.Is(err, services.ErrUserNameTaken):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": err.Error(),
			"errors":  fiber.Map{"userName": err.Error()},
		})
	case errors.Is(err, services.ErrDuplicateSerial):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": err.Error(),
			"errors":  fiber.Map{"serialNumber": err.Error()},
		})
	case errors.Is(err, services.ErrWeakPassword):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": err.Error(),
			"errors":  fiber.Map{"password": err.Error()},
		})
	default:
		log.Printf("Unhandled error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Internal server error",
		})
	}
}

// validationErrors turns validator failures into a field -> message map.
func validationErrors(err error) map[string]string {
	errorMessages := make(map[string]string)
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		for _, e := range validationErrs {
			errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		}
	}
	return errorMessages
}
