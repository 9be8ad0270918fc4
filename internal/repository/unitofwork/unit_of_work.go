package unitofwork

import (
	"context"

	"gitscout-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	ProjectRepository() contract.ProjectRepository
	RepoRepository() contract.RepoRepository
	RecommendationRepository() contract.RecommendationRepository
	FeedbackRepository() contract.FeedbackRepository
	TrendingRepository() contract.TrendingRepository
}
