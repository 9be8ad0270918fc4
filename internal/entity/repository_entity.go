package entity

import (
	"time"

	"github.com/google/uuid"
)

// Repository is an observed external repository. Counters refresh on every
// re-observation; the embedding is recomputed only when stale.
type Repository struct {
	Id          uuid.UUID
	FullName    string // owner/name, globally unique
	Owner       string
	Name        string
	Url         string
	Description string
	Language    string
	Topics      []string
	License     string
	Stars       int
	Forks       int
	OpenIssues  int
	StarsWeek   int // stars gained over the last 7 days
	IsArchived  bool
	IsActive    bool
	Embedding   []float32 // nil until embedded
	Analysis    *RepoAnalysis
	FirstSeenAt time.Time
	UpdatedAt   *time.Time
}

// RepoAnalysis carries the external analyzer's quality sub-scores, each an
// integer in [0,100]. Absent entirely when the repo was never analyzed.
type RepoAnalysis struct {
	HealthScore        int
	ActivityScore      int
	CommunityScore     int
	DocumentationScore int
	OverallScore       int
	Summary            string
	AnalyzedAt         *time.Time
}
