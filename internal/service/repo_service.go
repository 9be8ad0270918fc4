package service

import (
	"context"

	"gitscout-be/internal/dto"
	"gitscout-be/internal/repository/specification"
	"gitscout-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IRepoService interface {
	Show(ctx context.Context, id uuid.UUID) (*dto.ShowRepositoryResponse, error)
	List(ctx context.Context, language string, minStars int, limit int) ([]*dto.ShowRepositoryResponse, error)
	Similar(ctx context.Context, id uuid.UUID, limit int) ([]*dto.SimilarRepositoryResponse, error)
}

type repoService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewRepoService(uowFactory unitofwork.RepositoryFactory) IRepoService {
	return &repoService{uowFactory: uowFactory}
}

func (s *repoService) Show(ctx context.Context, id uuid.UUID) (*dto.ShowRepositoryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	repo, err := uow.RepoRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if repo == nil {
		return nil, ErrNotFound
	}

	return repositoryToResponse(repo), nil
}

func (s *repoService) List(ctx context.Context, language string, minStars int, limit int) ([]*dto.ShowRepositoryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{
		specification.OrderBy{Field: "stars", Desc: true},
	}
	if language != "" {
		specs = append(specs, specification.ByLanguage{Language: language})
	}
	if minStars > 0 {
		specs = append(specs, specification.MinStars{Stars: minStars})
	}
	if limit > 0 {
		specs = append(specs, specification.Pagination{Limit: limit})
	}

	repos, err := uow.RepoRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.ShowRepositoryResponse, 0, len(repos))
	for _, r := range repos {
		res = append(res, repositoryToResponse(r))
	}
	return res, nil
}

// Similar runs a stored-vector neighbor query. The anchor repo must already
// be embedded.
func (s *repoService) Similar(ctx context.Context, id uuid.UUID, limit int) ([]*dto.SimilarRepositoryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	repo, err := uow.RepoRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if repo == nil {
		return nil, ErrNotFound
	}
	if repo.Embedding == nil {
		return []*dto.SimilarRepositoryResponse{}, nil
	}

	if limit <= 0 {
		limit = 10
	}
	// Fetch one extra: the anchor itself comes back at similarity 1.
	scored, err := uow.RepoRepository().SearchSimilarWithScore(ctx, repo.Embedding, limit+1, 0)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.SimilarRepositoryResponse, 0, limit)
	for _, sr := range scored {
		if sr.Repo.Id == repo.Id {
			continue
		}
		res = append(res, &dto.SimilarRepositoryResponse{
			Repository: *repositoryToResponse(sr.Repo),
			Similarity: sr.Similarity,
		})
		if len(res) == limit {
			break
		}
	}
	return res, nil
}
