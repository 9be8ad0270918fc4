package controller

import (
	"gitscout-be/internal/pkg/serverutils"
	"gitscout-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IMatchController interface {
	RegisterRoutes(r fiber.Router)
	Run(ctx *fiber.Ctx) error
	RunAll(ctx *fiber.Ctx) error
}

type matchController struct {
	matcherService service.IMatcherService
}

func NewMatchController(matcherService service.IMatcherService) IMatchController {
	return &matchController{
		matcherService: matcherService,
	}
}

func (c *matchController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/match/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("project/:projectId", c.Run)
	h.Post("all", c.RunAll)
}

func (c *matchController) Run(ctx *fiber.Ctx) error {
	projectId, err := uuid.Parse(ctx.Params("projectId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid project id")
	}

	res, err := c.matcherService.Match(ctx.Context(), projectId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success run match", res))
}

func (c *matchController) RunAll(ctx *fiber.Ctx) error {
	res, err := c.matcherService.MatchAll(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success run match for all projects", res))
}
