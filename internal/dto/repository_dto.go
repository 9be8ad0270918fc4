package dto

import (
	"time"

	"github.com/google/uuid"
)

type ShowRepositoryResponse struct {
	Id          uuid.UUID        `json:"id"`
	FullName    string           `json:"full_name"`
	Url         string           `json:"url"`
	Description string           `json:"description"`
	Language    string           `json:"language"`
	Topics      []string         `json:"topics"`
	License     string           `json:"license,omitempty"`
	Stars       int              `json:"stars"`
	Forks       int              `json:"forks"`
	OpenIssues  int              `json:"open_issues"`
	StarsWeek   int              `json:"stars_week"`
	IsArchived  bool             `json:"is_archived"`
	IsActive    bool             `json:"is_active"`
	Analysis    *RepoAnalysisDTO `json:"analysis,omitempty"`
	FirstSeenAt time.Time        `json:"first_seen_at"`
	UpdatedAt   *time.Time       `json:"updated_at"`
}

type RepoAnalysisDTO struct {
	HealthScore        int        `json:"health_score"`
	ActivityScore      int        `json:"activity_score"`
	CommunityScore     int        `json:"community_score"`
	DocumentationScore int        `json:"documentation_score"`
	OverallScore       int        `json:"overall_score"`
	Summary            string     `json:"summary,omitempty"`
	AnalyzedAt         *time.Time `json:"analyzed_at,omitempty"`
}

type SimilarRepositoryResponse struct {
	Repository ShowRepositoryResponse `json:"repository"`
	Similarity float64                `json:"similarity"`
}
