package serverutils

import (
	"errors"

	"knagent-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware turns errors returned by later handlers into the JSON envelope.
// Unexpected errors are logged before the generic 500 is returned.
func ErrorHandlerMiddleware(log logger.ILogger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var validationErr *ValidationError
		if errors.As(err, &validationErr) {
			return ctx.Status(fiber.StatusUnprocessableEntity).JSON(BaseResponse[any]{
				Success: false,
				Code:    fiber.StatusUnprocessableEntity,
				Message: "Validation failed",
				Errors:  validationErr.Fields,
			})
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ErrorResponse(ctx, fiberErr.Code, fiberErr.Message)
		}

		log.Error("HTTP", "Unhandled request error", map[string]interface{}{
			"method": ctx.Method(),
			"path":   ctx.Path(),
			"error":  err.Error(),
		})
		return ErrorResponse(ctx, fiber.StatusInternalServerError, "Internal server error")
	}
}
