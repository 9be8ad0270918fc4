package controller

import (
	"gitscout-be/internal/dto"
	"gitscout-be/internal/pkg/serverutils"
	"gitscout-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ITrendingController interface {
	RegisterRoutes(r fiber.Router)
	Collect(ctx *fiber.Ctx) error
	Latest(ctx *fiber.Ctx) error
}

type trendingController struct {
	trendingService service.ITrendingService
}

func NewTrendingController(trendingService service.ITrendingService) ITrendingController {
	return &trendingController{
		trendingService: trendingService,
	}
}

func (c *trendingController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/trending/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("collect", c.Collect)
	h.Get("latest", c.Latest)
}

func (c *trendingController) Collect(ctx *fiber.Ctx) error {
	var req dto.CollectTrendingRequest
	// Body is optional: an empty collect means daily, all languages.
	if len(ctx.Body()) > 0 {
		if err := ctx.BodyParser(&req); err != nil {
			return err
		}
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.trendingService.Collect(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success collect trending", res))
}

func (c *trendingController) Latest(ctx *fiber.Ctx) error {
	res, err := c.trendingService.LatestSnapshot(ctx.Context(), ctx.Query("language"))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show latest trending snapshot", res))
}
