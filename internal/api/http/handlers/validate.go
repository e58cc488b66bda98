package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	apperrors "github.com/matchday-travel/lead-service/pkg/util"
)

var validate = validator.New()

// parseBody decodes and validates a JSON request body. Validation
// failures are reported per field.
func parseBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := validate.Struct(out); err != nil {
		fieldErrors, ok := err.(validator.ValidationErrors)
		if !ok {
			return apperrors.NewValidationError("invalid payload", nil)
		}
		details := map[string]any{}
		for _, fe := range fieldErrors {
			details[fe.Field()] = fe.Tag()
		}
		return apperrors.NewValidationError("validation failed", details)
	}
	return nil
}

// respond wraps response data in the success envelope.
func respond(c *fiber.Ctx, status int, data any) error {
	return c.Status(status).JSON(fiber.Map{"success": true, "data": data})
}
