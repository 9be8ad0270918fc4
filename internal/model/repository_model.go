package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
)

type Repository struct {
	Id          uuid.UUID        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	FullName    string           `gorm:"uniqueIndex;not null"`
	Owner       string           `gorm:"not null"`
	Name        string           `gorm:"not null"`
	Url         string           ``
	Description string           `gorm:"type:text"`
	Language    string           `gorm:"index"`
	Topics      datatypes.JSON   `gorm:"type:jsonb"`
	License     string           ``
	Stars       int              `gorm:"default:0;index"`
	Forks       int              `gorm:"default:0"`
	OpenIssues  int              `gorm:"default:0"`
	StarsWeek   int              `gorm:"default:0"`
	IsArchived  bool             `gorm:"default:false"`
	IsActive    bool             `gorm:"default:true"`
	Embedding   *pgvector.Vector `gorm:"type:vector(768)"`

	// Analyzer sub-scores, all null until the external analyzer reports.
	HealthScore        *int       ``
	ActivityScore      *int       ``
	CommunityScore     *int       ``
	DocumentationScore *int       ``
	OverallScore       *int       ``
	Summary            string     `gorm:"type:text"`
	AnalyzedAt         *time.Time ``

	FirstSeenAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

func (Repository) TableName() string {
	return "gs_repositories"
}
