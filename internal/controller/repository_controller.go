package controller

import (
	"gitscout-be/internal/pkg/serverutils"
	"gitscout-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IRepositoryController interface {
	RegisterRoutes(r fiber.Router)
	Show(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Similar(ctx *fiber.Ctx) error
}

type repositoryController struct {
	repoService service.IRepoService
}

func NewRepositoryController(repoService service.IRepoService) IRepositoryController {
	return &repositoryController{
		repoService: repoService,
	}
}

func (c *repositoryController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/repository/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("", c.List)
	h.Get(":id", c.Show)
	h.Get(":id/similar", c.Similar)
}

func (c *repositoryController) Show(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid repository id")
	}

	res, err := c.repoService.Show(ctx.Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show repository", res))
}

func (c *repositoryController) List(ctx *fiber.Ctx) error {
	language := ctx.Query("language")
	minStars := ctx.QueryInt("min_stars")
	limit := ctx.QueryInt("limit", 50)

	res, err := c.repoService.List(ctx.Context(), language, minStars, limit)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list repositories", res))
}

func (c *repositoryController) Similar(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid repository id")
	}
	limit := ctx.QueryInt("limit", 10)

	res, err := c.repoService.Similar(ctx.Context(), id, limit)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list similar repositories", res))
}
