package service

import (
	"context"
	"log"
	"time"

	"gitscout-be/internal/dto"
	"gitscout-be/internal/entity"
	"gitscout-be/internal/repository/specification"
	"gitscout-be/internal/repository/unitofwork"
	"gitscout-be/pkg/events"
	pkgNats "gitscout-be/pkg/nats"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type IRecommendationService interface {
	List(ctx context.Context, req *dto.ListRecommendationsRequest) ([]*dto.RecommendationResponse, error)
	UpdateStatus(ctx context.Context, req *dto.UpdateRecommendationStatusRequest) (*dto.UpdateRecommendationStatusResponse, error)
	CreateFeedback(ctx context.Context, req *dto.CreateFeedbackRequest) (*dto.CreateFeedbackResponse, error)
}

type recommendationService struct {
	uowFactory     unitofwork.RepositoryFactory
	eventPublisher *pkgNats.Publisher
}

func NewRecommendationService(
	uowFactory unitofwork.RepositoryFactory,
	eventPublisher *pkgNats.Publisher,
) IRecommendationService {
	return &recommendationService{
		uowFactory:     uowFactory,
		eventPublisher: eventPublisher,
	}
}

func (s *recommendationService) List(ctx context.Context, req *dto.ListRecommendationsRequest) ([]*dto.RecommendationResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	project, err := uow.ProjectRepository().FindOne(ctx, specification.ByID{ID: req.ProjectId})
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, ErrNotFound
	}

	specs := []specification.Specification{
		specification.ByProjectID{ProjectID: req.ProjectId},
		specification.OrderBy{Field: "score", Desc: true},
	}
	if req.Status != "" {
		status := entity.RecommendationStatus(req.Status)
		if !status.Valid() {
			return nil, ErrInvalidStatus
		}
		specs = append(specs, specification.ByStatus{Status: req.Status})
	}
	if req.MinScore > 0 {
		specs = append(specs, specification.MinScore{Score: req.MinScore})
	}
	if req.Limit > 0 {
		specs = append(specs, specification.Pagination{Limit: req.Limit})
	}

	recs, err := uow.RecommendationRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return []*dto.RecommendationResponse{}, nil
	}

	repoIds := make([]uuid.UUID, 0, len(recs))
	for _, rec := range recs {
		repoIds = append(repoIds, rec.RepositoryId)
	}
	repos, err := uow.RepoRepository().FindAll(ctx, specification.ByIDs{IDs: repoIds})
	if err != nil {
		return nil, err
	}
	repoById := make(map[uuid.UUID]*entity.Repository, len(repos))
	for _, r := range repos {
		repoById[r.Id] = r
	}

	res := make([]*dto.RecommendationResponse, 0, len(recs))
	for _, rec := range recs {
		repo, ok := repoById[rec.RepositoryId]
		if !ok {
			// Repo rows are never deleted in practice; skip defensively.
			continue
		}
		res = append(res, recommendationToResponse(rec, repo))
	}
	return res, nil
}

func (s *recommendationService) UpdateStatus(ctx context.Context, req *dto.UpdateRecommendationStatusRequest) (*dto.UpdateRecommendationStatusResponse, error) {
	status := entity.RecommendationStatus(req.Status)
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	err := uow.RecommendationRepository().UpdateStatus(ctx, req.Id, status, time.Now())
	if err == gorm.ErrRecordNotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &dto.UpdateRecommendationStatusResponse{Id: req.Id, Status: req.Status}, nil
}

func (s *recommendationService) CreateFeedback(ctx context.Context, req *dto.CreateFeedbackRequest) (*dto.CreateFeedbackResponse, error) {
	feedbackType := entity.FeedbackType(req.Type)
	if !feedbackType.Valid() {
		return nil, ErrInvalidFeedback
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	rec, err := uow.RecommendationRepository().FindOne(ctx, specification.ByID{ID: req.RecommendationId})
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, ErrNotFound
	}

	feedback := entity.Feedback{
		Id:               uuid.New(),
		RecommendationId: rec.Id,
		Type:             feedbackType,
		Note:             req.Note,
		CreatedAt:        time.Now(),
	}
	if err := uow.FeedbackRepository().Create(ctx, &feedback); err != nil {
		return nil, err
	}

	if s.eventPublisher != nil {
		evt := events.NewFeedbackReceived(rec.Id.String(), string(feedbackType))
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			log.Printf("[WARN] Failed to publish feedback event: %v", err)
		}
	}

	return &dto.CreateFeedbackResponse{Id: feedback.Id}, nil
}

func recommendationToResponse(rec *entity.Recommendation, repo *entity.Repository) *dto.RecommendationResponse {
	reasons := make([]dto.ReasonDTO, 0, len(rec.Reasons))
	for _, r := range rec.Reasons {
		reasons = append(reasons, dto.ReasonDTO{Component: string(r.Component), Text: r.Text})
	}

	return &dto.RecommendationResponse{
		Id:                  rec.Id,
		ProjectId:           rec.ProjectId,
		Repository:          *repositoryToResponse(repo),
		Score:               rec.Score,
		EmbeddingSimilarity: rec.EmbeddingSimilarity,
		StackOverlap:        rec.StackOverlap,
		Reasons:             reasons,
		Status:              string(rec.Status),
		DismissedAt:         rec.DismissedAt,
		CreatedAt:           rec.CreatedAt,
		UpdatedAt:           rec.UpdatedAt,
	}
}

func repositoryToResponse(r *entity.Repository) *dto.ShowRepositoryResponse {
	res := &dto.ShowRepositoryResponse{
		Id:          r.Id,
		FullName:    r.FullName,
		Url:         r.Url,
		Description: r.Description,
		Language:    r.Language,
		Topics:      r.Topics,
		License:     r.License,
		Stars:       r.Stars,
		Forks:       r.Forks,
		OpenIssues:  r.OpenIssues,
		StarsWeek:   r.StarsWeek,
		IsArchived:  r.IsArchived,
		IsActive:    r.IsActive,
		FirstSeenAt: r.FirstSeenAt,
		UpdatedAt:   r.UpdatedAt,
	}
	if r.Analysis != nil {
		res.Analysis = &dto.RepoAnalysisDTO{
			HealthScore:        r.Analysis.HealthScore,
			ActivityScore:      r.Analysis.ActivityScore,
			CommunityScore:     r.Analysis.CommunityScore,
			DocumentationScore: r.Analysis.DocumentationScore,
			OverallScore:       r.Analysis.OverallScore,
			Summary:            r.Analysis.Summary,
			AnalyzedAt:         r.Analysis.AnalyzedAt,
		}
	}
	return res
}
