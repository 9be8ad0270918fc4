package implementation

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"gitscout-be/internal/entity"
	"gitscout-be/internal/mapper"
	"gitscout-be/internal/model"
	"gitscout-be/internal/repository/contract"
	"gitscout-be/internal/repository/specification"
)

type RecommendationRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.RecommendationMapper
}

func NewRecommendationRepository(db *gorm.DB) contract.RecommendationRepository {
	return &RecommendationRepositoryImpl{
		db:     db,
		mapper: mapper.NewRecommendationMapper(),
	}
}

func (r *RecommendationRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

// Upsert relies on the composite unique index over (project_id,
// repository_id). Status and dismissed_at are intentionally absent from the
// conflict assignment: scoring runs refresh score/components/reasons and
// nothing else, so a dismissed row stays dismissed. Because the conflict is
// resolved inside one statement this is also safe under concurrent matchers
// retrying the same pair.
func (r *RecommendationRepositoryImpl) Upsert(ctx context.Context, rec *entity.Recommendation) error {
	m := r.mapper.ToModel(rec)
	if m.Id == uuid.Nil {
		m.Id = uuid.New()
	}
	if m.Status == "" {
		m.Status = string(entity.StatusNew)
	}

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "project_id"}, {Name: "repository_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"score",
			"embedding_similarity",
			"stack_overlap",
			"reasons",
			"updated_at",
		}),
	}).Create(m).Error
	if err != nil {
		return err
	}

	var existing model.Recommendation
	if err := r.db.WithContext(ctx).
		Where("project_id = ? AND repository_id = ?", m.ProjectId, m.RepositoryId).
		First(&existing).Error; err != nil {
		return err
	}

	*rec = *r.mapper.ToEntity(&existing)
	return nil
}

func (r *RecommendationRepositoryImpl) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.RecommendationStatus, at time.Time) error {
	updates := map[string]interface{}{
		"status":     string(status),
		"updated_at": at,
	}
	if status == entity.StatusDismissed {
		updates["dismissed_at"] = at
	} else {
		updates["dismissed_at"] = nil
	}

	result := r.db.WithContext(ctx).
		Model(&model.Recommendation{}).
		Where("id = ?", id).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *RecommendationRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Recommendation, error) {
	var m model.Recommendation
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *RecommendationRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Recommendation, error) {
	var models []*model.Recommendation
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *RecommendationRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	err := query.Model(&model.Recommendation{}).Count(&count).Error
	return count, err
}
