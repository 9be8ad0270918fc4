package dto

import (
	"github.com/google/uuid"
)

type RunMatchRequest struct {
	ProjectId uuid.UUID
}

// MatchedRecommendation is the stored row as the scoring run left it.
// Status reflects the persisted value, so a previously dismissed pair
// comes back dismissed even though its score was refreshed.
type MatchedRecommendation struct {
	Id                  uuid.UUID   `json:"id"`
	RepositoryId        uuid.UUID   `json:"repository_id"`
	FullName            string      `json:"full_name"`
	Score               float64     `json:"score"`
	EmbeddingSimilarity float64     `json:"embedding_similarity"`
	StackOverlap        float64     `json:"stack_overlap"`
	Reasons             []ReasonDTO `json:"reasons"`
	Status              string      `json:"status"`
}

type RunMatchResponse struct {
	ProjectId       uuid.UUID               `json:"project_id"`
	Candidates      int                     `json:"candidates"`
	Stored          int                     `json:"stored"`
	Recommendations []MatchedRecommendation `json:"recommendations"`
}

type MatchFailure struct {
	ProjectId uuid.UUID `json:"project_id"`
	Error     string    `json:"error"`
}

type RunMatchAllResponse struct {
	Projects []RunMatchResponse `json:"projects"`
	Failures []MatchFailure     `json:"failures"`
	Failed   int                `json:"failed"`
}
