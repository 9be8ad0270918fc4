package implementation

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"gitscout-be/internal/entity"
	"gitscout-be/internal/mapper"
	"gitscout-be/internal/model"
	"gitscout-be/internal/repository/contract"
)

type TrendingRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.TrendingMapper
}

func NewTrendingRepository(db *gorm.DB) contract.TrendingRepository {
	return &TrendingRepositoryImpl{
		db:     db,
		mapper: mapper.NewTrendingMapper(),
	}
}

func (r *TrendingRepositoryImpl) CreateSnapshot(ctx context.Context, snapshot *entity.TrendingSnapshot) error {
	m := r.mapper.SnapshotToModel(snapshot)
	if m.Id == uuid.Nil {
		m.Id = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*snapshot = *r.mapper.SnapshotToEntity(m)
	return nil
}

func (r *TrendingRepositoryImpl) CreateEntries(ctx context.Context, entries []*entity.TrendingEntry) error {
	if len(entries) == 0 {
		return nil
	}
	models := make([]*model.TrendingEntry, len(entries))
	for i, e := range entries {
		models[i] = r.mapper.EntryToModel(e)
		if models[i].Id == uuid.Nil {
			models[i].Id = uuid.New()
		}
	}
	return r.db.WithContext(ctx).Create(models).Error
}

func (r *TrendingRepositoryImpl) LatestSnapshot(ctx context.Context, language string) (*entity.TrendingSnapshot, error) {
	var m model.TrendingSnapshot
	query := r.db.WithContext(ctx).Order("collected_at DESC")
	if language != "" {
		query = query.Where("language = ?", language)
	}
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.SnapshotToEntity(&m), nil
}

func (r *TrendingRepositoryImpl) EntriesBySnapshot(ctx context.Context, snapshotId uuid.UUID) ([]*entity.TrendingEntry, error) {
	var models []*model.TrendingEntry
	err := r.db.WithContext(ctx).
		Where("snapshot_id = ?", snapshotId).
		Order("rank ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	entries := make([]*entity.TrendingEntry, len(models))
	for i, m := range models {
		entries[i] = r.mapper.EntryToEntity(m)
	}
	return entries, nil
}
