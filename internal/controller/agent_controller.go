package controller

import (
	"errors"

	"knagent-be/internal/dto"
	"knagent-be/internal/pkg/serverutils"
	"knagent-be/internal/service"
	"knagent-be/pkg/agent"

	"github.com/gofiber/fiber/v2"
)

type IAgentController interface {
	RegisterRoutes(r fiber.Router)
	Query(ctx *fiber.Ctx) error
	Sessions(ctx *fiber.Ctx) error
	History(ctx *fiber.Ctx) error
}

type agentController struct {
	service   service.IAgentService
	jwtSecret string
	limiter   fiber.Handler
}

// NewAgentController rate limits only the query route; limiter may be nil.
func NewAgentController(service service.IAgentService, jwtSecret string, limiter fiber.Handler) IAgentController {
	return &agentController{
		service:   service,
		jwtSecret: jwtSecret,
		limiter:   limiter,
	}
}

func (c *agentController) RegisterRoutes(r fiber.Router) {
	auth := serverutils.JwtMiddleware(c.jwtSecret)

	query := []fiber.Handler{auth, c.Query}
	if c.limiter != nil {
		query = append([]fiber.Handler{c.limiter}, query...)
	}
	r.Post("/query", query...)
	r.Get("/sessions", auth, c.Sessions)
	r.Get("/history/:session_id", auth, c.History)
}

func (c *agentController) Query(ctx *fiber.Ctx) error {
	userID, role, _ := serverutils.CurrentUser(ctx)

	var req dto.QueryRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusUnprocessableEntity, "Invalid request body")
	}
	if err := serverutils.ValidateStruct(req); err != nil {
		return err
	}

	res, err := c.service.Ask(ctx.UserContext(), agent.Identity{UserID: userID, Role: role}, &req)
	if err != nil {
		if errors.Is(err, service.ErrEmptyQuestion) {
			return &serverutils.ValidationError{Fields: map[string]string{"question": "required"}}
		}
		return err
	}
	return serverutils.SuccessResponse(ctx, "Query answered", res)
}

func (c *agentController) Sessions(ctx *fiber.Ctx) error {
	userID, _, _ := serverutils.CurrentUser(ctx)

	res, err := c.service.ListSessions(ctx.UserContext(), userID)
	if err != nil {
		return err
	}
	return serverutils.SuccessResponse(ctx, "Sessions retrieved", res)
}

func (c *agentController) History(ctx *fiber.Ctx) error {
	userID, _, _ := serverutils.CurrentUser(ctx)

	res, err := c.service.History(ctx.UserContext(), userID, ctx.Params("session_id"))
	if err != nil {
		return err
	}
	return serverutils.SuccessResponse(ctx, "History retrieved", res)
}
