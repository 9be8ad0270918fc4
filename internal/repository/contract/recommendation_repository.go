package contract

import (
	"context"
	"time"

	"github.com/google/uuid"

	"gitscout-be/internal/entity"
	"gitscout-be/internal/repository/specification"
)

type RecommendationRepository interface {
	// Upsert is the atomic insert-or-update on the (project, repository)
	// pair. Score, components and reasons are overwritten on conflict;
	// status and dismissed_at are never part of the update assignment, so a
	// dismissal survives every re-match. Safe under concurrent invocation.
	Upsert(ctx context.Context, rec *entity.Recommendation) error
	// UpdateStatus is the explicit user-driven transition, separate from
	// scoring. Sets dismissed_at when the new status is dismissed.
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.RecommendationStatus, at time.Time) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Recommendation, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Recommendation, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}

type FeedbackRepository interface {
	// Create appends one feedback row. Rows are never mutated afterwards.
	Create(ctx context.Context, feedback *entity.Feedback) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Feedback, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
