package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByProjectID struct {
	ProjectID uuid.UUID
}

func (s ByProjectID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("project_id = ?", s.ProjectID)
}

type ByRepositoryID struct {
	RepositoryID uuid.UUID
}

func (s ByRepositoryID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("repository_id = ?", s.RepositoryID)
}

type ByStatus struct {
	Status string
}

func (s ByStatus) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", s.Status)
}

type MinScore struct {
	Score float64
}

func (s MinScore) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("score >= ?", s.Score)
}

// ActiveProjects limits project queries to profiles still flagged active.
type ActiveProjects struct{}

func (s ActiveProjects) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("is_active = true")
}

type ByEmail struct {
	Email string
}

func (s ByEmail) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("email = ?", s.Email)
}
