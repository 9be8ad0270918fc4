package entity

import (
	"time"

	"github.com/google/uuid"
)

type Project struct {
	Id          uuid.UUID
	Name        string
	Description string
	TechStack   []string
	Tags        []string
	Goals       string
	Embedding   []float32 // nil until the embedding worker has processed it
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}
