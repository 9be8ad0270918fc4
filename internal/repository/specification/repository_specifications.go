package specification

import "gorm.io/gorm"

type ByFullName struct {
	FullName string
}

func (s ByFullName) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("full_name = ?", s.FullName)
}

type ByLanguage struct {
	Language string
}

func (s ByLanguage) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("language = ?", s.Language)
}

type MinStars struct {
	Stars int
}

func (s MinStars) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("stars >= ?", s.Stars)
}

// ActiveRepos excludes archived repos and ones the trending source marked
// stale.
type ActiveRepos struct{}

func (s ActiveRepos) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("is_active = true AND is_archived = false")
}

// WithoutEmbedding selects rows whose vector is still missing; the embedding
// worker drains this set.
type WithoutEmbedding struct{}

func (s WithoutEmbedding) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("embedding IS NULL")
}
