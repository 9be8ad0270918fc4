package model

import (
	"time"

	"github.com/google/uuid"
)

type TrendingSnapshot struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Language    string    `gorm:"index"`
	Since       string    `gorm:"default:daily"`
	RepoCount   int       `gorm:"default:0"`
	CollectedAt time.Time `gorm:"index"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
}

func (TrendingSnapshot) TableName() string {
	return "gs_trending_snapshots"
}

type TrendingEntry struct {
	Id           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SnapshotId   uuid.UUID `gorm:"type:uuid;not null;index"`
	RepositoryId uuid.UUID `gorm:"type:uuid;not null;index"`
	Rank         int       `gorm:"not null"`
	Stars        int       `gorm:"default:0"`
	StarsToday   int       `gorm:"default:0"`
	Forks        int       `gorm:"default:0"`
	IsActive     bool      `gorm:"default:true"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
}

func (TrendingEntry) TableName() string {
	return "gs_trending_entries"
}
