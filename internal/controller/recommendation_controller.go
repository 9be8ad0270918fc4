package controller

import (
	"gitscout-be/internal/dto"
	"gitscout-be/internal/pkg/serverutils"
	"gitscout-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IRecommendationController interface {
	RegisterRoutes(r fiber.Router)
	ListByProject(ctx *fiber.Ctx) error
	UpdateStatus(ctx *fiber.Ctx) error
	CreateFeedback(ctx *fiber.Ctx) error
}

type recommendationController struct {
	recommendationService service.IRecommendationService
}

func NewRecommendationController(recommendationService service.IRecommendationService) IRecommendationController {
	return &recommendationController{
		recommendationService: recommendationService,
	}
}

func (c *recommendationController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/recommendation/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("project/:projectId", c.ListByProject)
	h.Put(":id/status", c.UpdateStatus)
	h.Post(":id/feedback", c.CreateFeedback)
}

func (c *recommendationController) ListByProject(ctx *fiber.Ctx) error {
	projectId, err := uuid.Parse(ctx.Params("projectId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid project id")
	}

	req := dto.ListRecommendationsRequest{
		ProjectId: projectId,
		Status:    ctx.Query("status"),
		MinScore:  ctx.QueryFloat("min_score"),
		Limit:     ctx.QueryInt("limit"),
	}

	res, err := c.recommendationService.List(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list recommendations", res))
}

func (c *recommendationController) UpdateStatus(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid recommendation id")
	}

	var req dto.UpdateRecommendationStatusRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.Id = id

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.recommendationService.UpdateStatus(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update recommendation status", res))
}

func (c *recommendationController) CreateFeedback(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid recommendation id")
	}

	var req dto.CreateFeedbackRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.RecommendationId = id

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.recommendationService.CreateFeedback(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success create feedback", res))
}
