package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateProjectRequest struct {
	Name        string   `json:"name" validate:"required,min=2"`
	Description string   `json:"description"`
	TechStack   []string `json:"tech_stack"`
	Tags        []string `json:"tags"`
	Goals       string   `json:"goals"`
}

type CreateProjectResponse struct {
	Id uuid.UUID `json:"id"`
}

type UpdateProjectRequest struct {
	Id          uuid.UUID
	Name        string   `json:"name" validate:"required,min=2"`
	Description string   `json:"description"`
	TechStack   []string `json:"tech_stack"`
	Tags        []string `json:"tags"`
	Goals       string   `json:"goals"`
	IsActive    *bool    `json:"is_active"`
}

type UpdateProjectResponse struct {
	Id uuid.UUID `json:"id"`
}

type ShowProjectResponse struct {
	Id           uuid.UUID  `json:"id"`
	Name         string     `json:"name"`
	Description  string     `json:"description"`
	TechStack    []string   `json:"tech_stack"`
	Tags         []string   `json:"tags"`
	Goals        string     `json:"goals"`
	HasEmbedding bool       `json:"has_embedding"`
	IsActive     bool       `json:"is_active"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at"`
}
