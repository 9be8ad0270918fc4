package mapper

import (
	"time"

	"github.com/pgvector/pgvector-go"

	"gitscout-be/internal/entity"
	"gitscout-be/internal/model"
)

type RepositoryMapper struct{}

func NewRepositoryMapper() *RepositoryMapper {
	return &RepositoryMapper{}
}

func (m *RepositoryMapper) ToEntity(r *model.Repository) *entity.Repository {
	if r == nil {
		return nil
	}

	var embedding []float32
	if r.Embedding != nil {
		embedding = r.Embedding.Slice()
	}

	var updatedAt *time.Time
	if !r.UpdatedAt.IsZero() {
		t := r.UpdatedAt
		updatedAt = &t
	}

	// Analysis exists only when the analyzer has reported an overall score.
	var analysis *entity.RepoAnalysis
	if r.OverallScore != nil {
		analysis = &entity.RepoAnalysis{
			HealthScore:        derefInt(r.HealthScore),
			ActivityScore:      derefInt(r.ActivityScore),
			CommunityScore:     derefInt(r.CommunityScore),
			DocumentationScore: derefInt(r.DocumentationScore),
			OverallScore:       *r.OverallScore,
			Summary:            r.Summary,
			AnalyzedAt:         r.AnalyzedAt,
		}
	}

	return &entity.Repository{
		Id:          r.Id,
		FullName:    r.FullName,
		Owner:       r.Owner,
		Name:        r.Name,
		Url:         r.Url,
		Description: r.Description,
		Language:    r.Language,
		Topics:      fromJSONStrings(r.Topics),
		License:     r.License,
		Stars:       r.Stars,
		Forks:       r.Forks,
		OpenIssues:  r.OpenIssues,
		StarsWeek:   r.StarsWeek,
		IsArchived:  r.IsArchived,
		IsActive:    r.IsActive,
		Embedding:   embedding,
		Analysis:    analysis,
		FirstSeenAt: r.FirstSeenAt,
		UpdatedAt:   updatedAt,
	}
}

func (m *RepositoryMapper) ToModel(r *entity.Repository) *model.Repository {
	if r == nil {
		return nil
	}

	var embedding *pgvector.Vector
	if len(r.Embedding) > 0 {
		v := pgvector.NewVector(r.Embedding)
		embedding = &v
	}

	var updatedAt time.Time
	if r.UpdatedAt != nil {
		updatedAt = *r.UpdatedAt
	}

	out := &model.Repository{
		Id:          r.Id,
		FullName:    r.FullName,
		Owner:       r.Owner,
		Name:        r.Name,
		Url:         r.Url,
		Description: r.Description,
		Language:    r.Language,
		Topics:      toJSONStrings(r.Topics),
		License:     r.License,
		Stars:       r.Stars,
		Forks:       r.Forks,
		OpenIssues:  r.OpenIssues,
		StarsWeek:   r.StarsWeek,
		IsArchived:  r.IsArchived,
		IsActive:    r.IsActive,
		Embedding:   embedding,
		FirstSeenAt: r.FirstSeenAt,
		UpdatedAt:   updatedAt,
	}

	if a := r.Analysis; a != nil {
		out.HealthScore = intPtr(a.HealthScore)
		out.ActivityScore = intPtr(a.ActivityScore)
		out.CommunityScore = intPtr(a.CommunityScore)
		out.DocumentationScore = intPtr(a.DocumentationScore)
		out.OverallScore = intPtr(a.OverallScore)
		out.Summary = a.Summary
		out.AnalyzedAt = a.AnalyzedAt
	}

	return out
}

func (m *RepositoryMapper) ToEntities(repos []*model.Repository) []*entity.Repository {
	entities := make([]*entity.Repository, len(repos))
	for i, r := range repos {
		entities[i] = m.ToEntity(r)
	}
	return entities
}

func derefInt(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

func intPtr(v int) *int {
	return &v
}
