package controller

import (
	"errors"

	"knagent-be/internal/dto"
	"knagent-be/internal/entity"
	"knagent-be/internal/pkg/serverutils"
	"knagent-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAuthController interface {
	RegisterRoutes(r fiber.Router)
	Signup(ctx *fiber.Ctx) error
	Token(ctx *fiber.Ctx) error
}

type authController struct {
	service service.IAuthService
}

func NewAuthController(service service.IAuthService) IAuthController {
	return &authController{service: service}
}

func (c *authController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/auth")
	h.Post("/signup", c.Signup)
	h.Post("/token", c.Token)
}

func (c *authController) Signup(ctx *fiber.Ctx) error {
	var req dto.SignupRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusUnprocessableEntity, "Invalid request body")
	}
	if err := serverutils.ValidateStruct(req); err != nil {
		return err
	}

	res, err := c.service.Signup(ctx.UserContext(), &req)
	if err != nil {
		if errors.Is(err, service.ErrDomainNotAllowed) ||
			errors.Is(err, service.ErrEmailRegistered) ||
			errors.Is(err, entity.ErrInvalidRole) {
			return serverutils.ErrorResponse(ctx, fiber.StatusBadRequest, err.Error())
		}
		return err
	}
	return serverutils.SuccessResponse(ctx, "Account created", res)
}

// Token accepts the OAuth2 password grant form or a JSON body.
func (c *authController) Token(ctx *fiber.Ctx) error {
	var req dto.TokenRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusUnprocessableEntity, "Invalid request body")
	}
	if err := serverutils.ValidateStruct(req); err != nil {
		return err
	}

	res, err := c.service.Token(ctx.UserContext(), &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			ctx.Set(fiber.HeaderWWWAuthenticate, "Bearer")
			return serverutils.ErrorResponse(ctx, fiber.StatusUnauthorized, "Incorrect username or password")
		}
		return err
	}
	return serverutils.SuccessResponse(ctx, "Login successful", res)
}
