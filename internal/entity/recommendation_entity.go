package entity

import (
	"time"

	"github.com/google/uuid"

	"gitscout-be/pkg/matching"
)

// RecommendationStatus is user-controlled lifecycle state. Re-matching never
// touches it.
type RecommendationStatus string

const (
	StatusNew        RecommendationStatus = "new"
	StatusViewed     RecommendationStatus = "viewed"
	StatusDismissed  RecommendationStatus = "dismissed"
	StatusBookmarked RecommendationStatus = "bookmarked"
)

func (s RecommendationStatus) Valid() bool {
	switch s {
	case StatusNew, StatusViewed, StatusDismissed, StatusBookmarked:
		return true
	}
	return false
}

// Recommendation is the single row per (project, repository) pair.
type Recommendation struct {
	Id                  uuid.UUID
	ProjectId           uuid.UUID
	RepositoryId        uuid.UUID
	Score               float64
	EmbeddingSimilarity float64
	StackOverlap        float64
	Reasons             []matching.Reason
	Status              RecommendationStatus
	DismissedAt         *time.Time
	CreatedAt           time.Time
	UpdatedAt           *time.Time
}

type FeedbackType string

const (
	FeedbackPositive FeedbackType = "positive"
	FeedbackNegative FeedbackType = "negative"
	FeedbackOther    FeedbackType = "other"
)

func (t FeedbackType) Valid() bool {
	switch t {
	case FeedbackPositive, FeedbackNegative, FeedbackOther:
		return true
	}
	return false
}

// Feedback rows are append-only.
type Feedback struct {
	Id               uuid.UUID
	RecommendationId uuid.UUID
	Type             FeedbackType
	Note             string
	CreatedAt        time.Time
}
