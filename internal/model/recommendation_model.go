package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Recommendation holds at most one row per (project, repository) pair; the
// composite unique index backs the store's atomic upsert.
type Recommendation struct {
	Id                  uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProjectId           uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_gs_reco_pair;index"`
	RepositoryId        uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_gs_reco_pair"`
	Score               float64        `gorm:"not null;index"`
	EmbeddingSimilarity float64        `gorm:"default:0"`
	StackOverlap        float64        `gorm:"default:0"`
	Reasons             datatypes.JSON `gorm:"type:jsonb"`
	Status              string         `gorm:"default:new;index"`
	DismissedAt         *time.Time     ``
	CreatedAt           time.Time      `gorm:"autoCreateTime"`
	UpdatedAt           time.Time      `gorm:"autoUpdateTime"`
}

func (Recommendation) TableName() string {
	return "gs_recommendations"
}

type Feedback struct {
	Id               uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RecommendationId uuid.UUID `gorm:"type:uuid;not null;index"`
	Type             string    `gorm:"not null"`
	Note             string    `gorm:"type:text"`
	CreatedAt        time.Time `gorm:"autoCreateTime"`
}

func (Feedback) TableName() string {
	return "gs_feedback"
}
