package mapper

import (
	"time"

	"gitscout-be/internal/entity"
	"gitscout-be/internal/model"
)

type RecommendationMapper struct{}

func NewRecommendationMapper() *RecommendationMapper {
	return &RecommendationMapper{}
}

func (m *RecommendationMapper) ToEntity(r *model.Recommendation) *entity.Recommendation {
	if r == nil {
		return nil
	}

	var updatedAt *time.Time
	if !r.UpdatedAt.IsZero() {
		t := r.UpdatedAt
		updatedAt = &t
	}

	return &entity.Recommendation{
		Id:                  r.Id,
		ProjectId:           r.ProjectId,
		RepositoryId:        r.RepositoryId,
		Score:               r.Score,
		EmbeddingSimilarity: r.EmbeddingSimilarity,
		StackOverlap:        r.StackOverlap,
		Reasons:             fromJSONReasons(r.Reasons),
		Status:              entity.RecommendationStatus(r.Status),
		DismissedAt:         r.DismissedAt,
		CreatedAt:           r.CreatedAt,
		UpdatedAt:           updatedAt,
	}
}

func (m *RecommendationMapper) ToModel(r *entity.Recommendation) *model.Recommendation {
	if r == nil {
		return nil
	}

	var updatedAt time.Time
	if r.UpdatedAt != nil {
		updatedAt = *r.UpdatedAt
	}

	return &model.Recommendation{
		Id:                  r.Id,
		ProjectId:           r.ProjectId,
		RepositoryId:        r.RepositoryId,
		Score:               r.Score,
		EmbeddingSimilarity: r.EmbeddingSimilarity,
		StackOverlap:        r.StackOverlap,
		Reasons:             toJSONReasons(r.Reasons),
		Status:              string(r.Status),
		DismissedAt:         r.DismissedAt,
		CreatedAt:           r.CreatedAt,
		UpdatedAt:           updatedAt,
	}
}

func (m *RecommendationMapper) ToEntities(recs []*model.Recommendation) []*entity.Recommendation {
	entities := make([]*entity.Recommendation, len(recs))
	for i, r := range recs {
		entities[i] = m.ToEntity(r)
	}
	return entities
}

type FeedbackMapper struct{}

func NewFeedbackMapper() *FeedbackMapper {
	return &FeedbackMapper{}
}

func (m *FeedbackMapper) ToEntity(f *model.Feedback) *entity.Feedback {
	if f == nil {
		return nil
	}
	return &entity.Feedback{
		Id:               f.Id,
		RecommendationId: f.RecommendationId,
		Type:             entity.FeedbackType(f.Type),
		Note:             f.Note,
		CreatedAt:        f.CreatedAt,
	}
}

func (m *FeedbackMapper) ToModel(f *entity.Feedback) *model.Feedback {
	if f == nil {
		return nil
	}
	return &model.Feedback{
		Id:               f.Id,
		RecommendationId: f.RecommendationId,
		Type:             string(f.Type),
		Note:             f.Note,
		CreatedAt:        f.CreatedAt,
	}
}
