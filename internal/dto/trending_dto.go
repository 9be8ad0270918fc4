package dto

import (
	"time"

	"github.com/google/uuid"
)

type CollectTrendingRequest struct {
	Language string `json:"language"`
	Since    string `json:"since" validate:"omitempty,oneof=daily weekly monthly"`
}

type CollectTrendingResponse struct {
	SnapshotId uuid.UUID `json:"snapshot_id"`
	RepoCount  int       `json:"repo_count"`
	NewRepos   int       `json:"new_repos"`
}

type TrendingSnapshotResponse struct {
	Id          uuid.UUID               `json:"id"`
	Language    string                  `json:"language"`
	Since       string                  `json:"since"`
	RepoCount   int                     `json:"repo_count"`
	CollectedAt time.Time               `json:"collected_at"`
	Entries     []TrendingEntryResponse `json:"entries,omitempty"`
}

type TrendingEntryResponse struct {
	RepositoryId uuid.UUID `json:"repository_id"`
	FullName     string    `json:"full_name"`
	Rank         int       `json:"rank"`
	Stars        int       `json:"stars"`
	StarsToday   int       `json:"stars_today"`
	Forks        int       `json:"forks"`
}
