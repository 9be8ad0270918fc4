package mapper

import (
	"gitscout-be/internal/entity"
	"gitscout-be/internal/model"
)

type TrendingMapper struct{}

func NewTrendingMapper() *TrendingMapper {
	return &TrendingMapper{}
}

func (m *TrendingMapper) SnapshotToEntity(s *model.TrendingSnapshot) *entity.TrendingSnapshot {
	if s == nil {
		return nil
	}
	return &entity.TrendingSnapshot{
		Id:          s.Id,
		Language:    s.Language,
		Since:       s.Since,
		RepoCount:   s.RepoCount,
		CollectedAt: s.CollectedAt,
	}
}

func (m *TrendingMapper) SnapshotToModel(s *entity.TrendingSnapshot) *model.TrendingSnapshot {
	if s == nil {
		return nil
	}
	return &model.TrendingSnapshot{
		Id:          s.Id,
		Language:    s.Language,
		Since:       s.Since,
		RepoCount:   s.RepoCount,
		CollectedAt: s.CollectedAt,
	}
}

func (m *TrendingMapper) EntryToEntity(e *model.TrendingEntry) *entity.TrendingEntry {
	if e == nil {
		return nil
	}
	return &entity.TrendingEntry{
		Id:           e.Id,
		SnapshotId:   e.SnapshotId,
		RepositoryId: e.RepositoryId,
		Rank:         e.Rank,
		Stars:        e.Stars,
		StarsToday:   e.StarsToday,
		Forks:        e.Forks,
		IsActive:     e.IsActive,
		CreatedAt:    e.CreatedAt,
	}
}

func (m *TrendingMapper) EntryToModel(e *entity.TrendingEntry) *model.TrendingEntry {
	if e == nil {
		return nil
	}
	return &model.TrendingEntry{
		Id:           e.Id,
		SnapshotId:   e.SnapshotId,
		RepositoryId: e.RepositoryId,
		Rank:         e.Rank,
		Stars:        e.Stars,
		StarsToday:   e.StarsToday,
		Forks:        e.Forks,
		IsActive:     e.IsActive,
		CreatedAt:    e.CreatedAt,
	}
}
