package serverutils

import "github.com/gofiber/fiber/v2"

// BaseResponse is the JSON envelope every endpoint returns.
type BaseResponse[T any] struct {
	Success bool   `json:"success"`
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    T      `json:"data,omitempty"`
	Errors  any    `json:"errors,omitempty"`
}

func SuccessResponse(ctx *fiber.Ctx, message string, data any) error {
	return ctx.Status(fiber.StatusOK).JSON(BaseResponse[any]{
		Success: true,
		Code:    fiber.StatusOK,
		Message: message,
		Data:    data,
	})
}

func ErrorResponse(ctx *fiber.Ctx, status int, message string) error {
	return ctx.Status(status).JSON(BaseResponse[any]{
		Success: false,
		Code:    status,
		Message: message,
	})
}
