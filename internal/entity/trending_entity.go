package entity

import (
	"time"

	"github.com/google/uuid"
)

// TrendingSnapshot records one scrape run of the trending page.
type TrendingSnapshot struct {
	Id          uuid.UUID
	Language    string
	Since       string // daily, weekly, monthly
	RepoCount   int
	CollectedAt time.Time
	Entries     []*TrendingEntry
}

// TrendingEntry pins one repository's position inside a snapshot.
type TrendingEntry struct {
	Id           uuid.UUID
	SnapshotId   uuid.UUID
	RepositoryId uuid.UUID
	Rank         int
	Stars        int
	StarsToday   int
	Forks        int
	IsActive     bool
	CreatedAt    time.Time
}
