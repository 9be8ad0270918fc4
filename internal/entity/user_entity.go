package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is a dashboard account. Auth is deliberately minimal: email + bcrypt
// hash, role for future admin surfaces.
type User struct {
	Id           uuid.UUID
	Email        string
	FullName     string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
	UpdatedAt    *time.Time
}
