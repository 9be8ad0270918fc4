package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
)

type Project struct {
	Id          uuid.UUID        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name        string           `gorm:"not null;index"`
	Description string           `gorm:"type:text"`
	TechStack   datatypes.JSON   `gorm:"type:jsonb"`
	Tags        datatypes.JSON   `gorm:"type:jsonb"`
	Goals       string           `gorm:"type:text"`
	Embedding   *pgvector.Vector `gorm:"type:vector(768)"` // text-embedding-004 dimension
	IsActive    bool             `gorm:"default:true"`
	CreatedAt   time.Time        `gorm:"autoCreateTime"`
	UpdatedAt   time.Time        `gorm:"autoUpdateTime"`
}

func (Project) TableName() string {
	return "gs_projects"
}
