package contract

import (
	"context"

	"github.com/google/uuid"

	"gitscout-be/internal/entity"
	"gitscout-be/internal/repository/specification"
)

// ScoredRepo wraps a repository with its raw cosine similarity to a query
// vector, as computed by pgvector (1 - cosine distance, range [-1,1]).
type ScoredRepo struct {
	Repo       *entity.Repository
	Similarity float64
}

type RepoRepository interface {
	// Upsert inserts or refreshes by full_name; counters are overwritten,
	// the stored embedding and analysis columns are left alone.
	Upsert(ctx context.Context, repo *entity.Repository) error
	Update(ctx context.Context, repo *entity.Repository) error
	UpdateEmbedding(ctx context.Context, id uuid.UUID, embedding []float32) error
	UpdateAnalysis(ctx context.Context, id uuid.UUID, analysis *entity.RepoAnalysis) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Repository, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Repository, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// SearchSimilarWithScore runs a pgvector cosine-distance query ordered by
	// similarity descending.
	SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int, minStars int) ([]*ScoredRepo, error)
}
