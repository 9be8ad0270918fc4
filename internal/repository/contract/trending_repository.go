package contract

import (
	"context"

	"github.com/google/uuid"

	"gitscout-be/internal/entity"
)

type TrendingRepository interface {
	CreateSnapshot(ctx context.Context, snapshot *entity.TrendingSnapshot) error
	CreateEntries(ctx context.Context, entries []*entity.TrendingEntry) error
	LatestSnapshot(ctx context.Context, language string) (*entity.TrendingSnapshot, error)
	EntriesBySnapshot(ctx context.Context, snapshotId uuid.UUID) ([]*entity.TrendingEntry, error)
}
