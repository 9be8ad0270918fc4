package implementation

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"gitscout-be/internal/entity"
	"gitscout-be/internal/mapper"
	"gitscout-be/internal/model"
	"gitscout-be/internal/repository/contract"
	"gitscout-be/internal/repository/specification"
)

type RepoRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.RepositoryMapper
}

func NewRepoRepository(db *gorm.DB) contract.RepoRepository {
	return &RepoRepositoryImpl{
		db:     db,
		mapper: mapper.NewRepositoryMapper(),
	}
}

func (r *RepoRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

// Upsert refreshes observable counters on re-observation keyed by full_name.
// The embedding and analyzer columns are deliberately missing from the
// assignment list: those belong to the embedding worker and the analyzer
// intake, a scrape must not wipe them.
func (r *RepoRepositoryImpl) Upsert(ctx context.Context, repo *entity.Repository) error {
	m := r.mapper.ToModel(repo)

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "full_name"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"url",
			"description",
			"language",
			"topics",
			"license",
			"stars",
			"forks",
			"open_issues",
			"stars_week",
			"is_archived",
			"is_active",
			"updated_at",
		}),
	}).Create(m).Error
	if err != nil {
		return err
	}

	// On conflict the in-memory model keeps the id it was created with, not
	// the existing row's. Re-read by the natural key to hand back the
	// canonical row.
	var existing model.Repository
	if err := r.db.WithContext(ctx).Where("full_name = ?", m.FullName).First(&existing).Error; err != nil {
		return err
	}

	*repo = *r.mapper.ToEntity(&existing)
	return nil
}

func (r *RepoRepositoryImpl) Update(ctx context.Context, repo *entity.Repository) error {
	m := r.mapper.ToModel(repo)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*repo = *r.mapper.ToEntity(m)
	return nil
}

func (r *RepoRepositoryImpl) UpdateEmbedding(ctx context.Context, id uuid.UUID, embedding []float32) error {
	return r.db.WithContext(ctx).
		Model(&model.Repository{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"embedding":  pgvector.NewVector(embedding),
			"updated_at": time.Now(),
		}).Error
}

func (r *RepoRepositoryImpl) UpdateAnalysis(ctx context.Context, id uuid.UUID, analysis *entity.RepoAnalysis) error {
	return r.db.WithContext(ctx).
		Model(&model.Repository{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"health_score":        analysis.HealthScore,
			"activity_score":      analysis.ActivityScore,
			"community_score":     analysis.CommunityScore,
			"documentation_score": analysis.DocumentationScore,
			"overall_score":       analysis.OverallScore,
			"summary":             analysis.Summary,
			"analyzed_at":         time.Now(),
		}).Error
}

func (r *RepoRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Repository, error) {
	var m model.Repository
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *RepoRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Repository, error) {
	var models []*model.Repository
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *RepoRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	err := query.Model(&model.Repository{}).Count(&count).Error
	return count, err
}

// SearchSimilarWithScore orders the pool by pgvector cosine distance to the
// query vector. Cosine distance is 1 - cosine_similarity, so the selected
// similarity lands in [-1,1]; rescaling to [0,1] is the scorer's job.
func (r *RepoRepositoryImpl) SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int, minStars int) ([]*contract.ScoredRepo, error) {
	if limit <= 0 {
		limit = 10
	}

	type result struct {
		model.Repository
		Similarity float64
	}
	var results []result

	queryVector := pgvector.NewVector(embedding)

	err := r.db.WithContext(ctx).
		Table("gs_repositories").
		Select("gs_repositories.*, 1 - (embedding <=> ?) as similarity", queryVector).
		Where("embedding IS NOT NULL").
		Where("stars >= ?", minStars).
		Where("is_active = true AND is_archived = false").
		Order("similarity DESC").
		Limit(limit).
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	scored := make([]*contract.ScoredRepo, len(results))
	for i, res := range results {
		scored[i] = &contract.ScoredRepo{
			Repo:       r.mapper.ToEntity(&res.Repository),
			Similarity: res.Similarity,
		}
	}
	return scored, nil
}
