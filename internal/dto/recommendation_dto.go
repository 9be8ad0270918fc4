package dto

import (
	"time"

	"github.com/google/uuid"
)

type ReasonDTO struct {
	Component string `json:"component"`
	Text      string `json:"text"`
}

type RecommendationResponse struct {
	Id                  uuid.UUID              `json:"id"`
	ProjectId           uuid.UUID              `json:"project_id"`
	Repository          ShowRepositoryResponse `json:"repository"`
	Score               float64                `json:"score"`
	EmbeddingSimilarity float64                `json:"embedding_similarity"`
	StackOverlap        float64                `json:"stack_overlap"`
	Reasons             []ReasonDTO            `json:"reasons"`
	Status              string                 `json:"status"`
	DismissedAt         *time.Time             `json:"dismissed_at,omitempty"`
	CreatedAt           time.Time              `json:"created_at"`
	UpdatedAt           *time.Time             `json:"updated_at"`
}

type ListRecommendationsRequest struct {
	ProjectId uuid.UUID
	Status    string  `query:"status"`
	MinScore  float64 `query:"min_score"`
	Limit     int     `query:"limit"`
}

type UpdateRecommendationStatusRequest struct {
	Id     uuid.UUID
	Status string `json:"status" validate:"required,oneof=new viewed dismissed bookmarked"`
}

type UpdateRecommendationStatusResponse struct {
	Id     uuid.UUID `json:"id"`
	Status string    `json:"status"`
}

type CreateFeedbackRequest struct {
	RecommendationId uuid.UUID
	Type             string `json:"type" validate:"required,oneof=positive negative other"`
	Note             string `json:"note" validate:"max=2000"`
}

type CreateFeedbackResponse struct {
	Id uuid.UUID `json:"id"`
}
