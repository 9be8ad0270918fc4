package service

import (
	"context"
	"testing"
	"time"

	"gitscout-be/internal/config"
	"gitscout-be/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testMatchConfig() config.MatchConfig {
	return config.MatchConfig{
		EmbeddingWeight: 0.5,
		StackWeight:     0.3,
		QualityWeight:   0.2,
		MinStars:        100,
		CandidateCap:    100,
		MatchWorkers:    2,
		NotifyThreshold: 0.7,
	}
}

func seedProject(uow *fakeUnitOfWork, name string, stack []string) *entity.Project {
	p := &entity.Project{
		Id:        uuid.New(),
		Name:      name,
		TechStack: stack,
		IsActive:  true,
		CreatedAt: time.Now(),
	}
	uow.projects.byId[p.Id] = p
	return p
}

func seedRepo(uow *fakeUnitOfWork, fullName, language string, stars int) *entity.Repository {
	r := &entity.Repository{
		Id:          uuid.New(),
		FullName:    fullName,
		Language:    language,
		Stars:       stars,
		IsActive:    true,
		FirstSeenAt: time.Now(),
	}
	uow.repos.repos = append(uow.repos.repos, r)
	return r
}

func TestMatchStoresRankedRecommendations(t *testing.T) {
	uow := newFakeUnitOfWork()
	project := seedProject(uow, "scout", []string{"go", "postgres"})
	seedRepo(uow, "gofiber/fiber", "Go", 30000)
	seedRepo(uow, "rails/rails", "Ruby", 50000)
	seedRepo(uow, "tiny/tool", "Go", 10) // below star floor

	svc := NewMatcherService(&fakeFactory{uow: uow}, testMatchConfig(), nil, nil, nil, "")

	res, err := svc.Match(context.Background(), project.Id)
	require.NoError(t, err)

	assert.Equal(t, project.Id, res.ProjectId)
	assert.Equal(t, 2, res.Candidates)
	assert.Equal(t, 2, res.Stored)

	require.Len(t, res.Recommendations, 2)
	assert.GreaterOrEqual(t, res.Recommendations[0].Score, res.Recommendations[1].Score)
	for _, rec := range res.Recommendations {
		assert.NotEqual(t, uuid.Nil, rec.Id)
		assert.NotEmpty(t, rec.FullName)
		assert.Equal(t, string(entity.StatusNew), rec.Status)
	}

	require.Len(t, uow.recs.recs, 2)

	for _, rec := range uow.recs.recs {
		assert.GreaterOrEqual(t, rec.Score, 0.0)
		assert.LessOrEqual(t, rec.Score, 1.0)
		assert.Equal(t, entity.StatusNew, rec.Status)
	}
}

func TestMatchUnknownProject(t *testing.T) {
	uow := newFakeUnitOfWork()
	svc := NewMatcherService(&fakeFactory{uow: uow}, testMatchConfig(), nil, nil, nil, "")

	_, err := svc.Match(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMatchInactiveProject(t *testing.T) {
	uow := newFakeUnitOfWork()
	project := seedProject(uow, "paused", []string{"go"})
	project.IsActive = false

	svc := NewMatcherService(&fakeFactory{uow: uow}, testMatchConfig(), nil, nil, nil, "")

	_, err := svc.Match(context.Background(), project.Id)
	assert.ErrorIs(t, err, ErrProjectInactive)
}

func TestRematchPreservesDismissedStatus(t *testing.T) {
	uow := newFakeUnitOfWork()
	project := seedProject(uow, "scout", []string{"go"})
	seedRepo(uow, "gofiber/fiber", "Go", 30000)

	svc := NewMatcherService(&fakeFactory{uow: uow}, testMatchConfig(), nil, nil, nil, "")

	_, err := svc.Match(context.Background(), project.Id)
	require.NoError(t, err)
	require.Len(t, uow.recs.recs, 1)

	rec := uow.recs.recs[0]
	dismissedAt := time.Now()
	require.NoError(t, uow.recs.UpdateStatus(context.Background(), rec.Id, entity.StatusDismissed, dismissedAt))

	res, err := svc.Match(context.Background(), project.Id)
	require.NoError(t, err)

	require.Len(t, uow.recs.recs, 1)
	assert.Equal(t, entity.StatusDismissed, uow.recs.recs[0].Status)
	assert.NotNil(t, uow.recs.recs[0].DismissedAt)

	// The run's own response reports the stored row, dismissal included.
	require.Len(t, res.Recommendations, 1)
	assert.Equal(t, rec.Id, res.Recommendations[0].Id)
	assert.Equal(t, string(entity.StatusDismissed), res.Recommendations[0].Status)
}

func TestMatchAllIsolatesFailures(t *testing.T) {
	uow := newFakeUnitOfWork()
	good := seedProject(uow, "good", []string{"go"})
	bad := seedProject(uow, "bad", []string{"go"})
	inactive := seedProject(uow, "inactive", []string{"go"})
	inactive.IsActive = false
	seedRepo(uow, "gofiber/fiber", "Go", 30000)

	uow.recs.failProjectId = bad.Id

	svc := NewMatcherService(&fakeFactory{uow: uow}, testMatchConfig(), nil, nil, nil, "")

	res, err := svc.MatchAll(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, res.Failed)
	require.Len(t, res.Projects, 1)
	assert.Equal(t, good.Id, res.Projects[0].ProjectId)
	require.Len(t, res.Projects[0].Recommendations, 1)

	// The failing project is identified by id together with the cause.
	require.Len(t, res.Failures, 1)
	assert.Equal(t, bad.Id, res.Failures[0].ProjectId)
	assert.Contains(t, res.Failures[0].Error, "storage unavailable")
}

func TestMatchDeterministicAcrossRuns(t *testing.T) {
	uow := newFakeUnitOfWork()
	project := seedProject(uow, "scout", []string{"go", "redis"})
	seedRepo(uow, "gofiber/fiber", "Go", 30000)
	seedRepo(uow, "redis/go-redis", "Go", 18000)

	svc := NewMatcherService(&fakeFactory{uow: uow}, testMatchConfig(), nil, nil, nil, "")

	_, err := svc.Match(context.Background(), project.Id)
	require.NoError(t, err)
	first := map[uuid.UUID]float64{}
	for _, rec := range uow.recs.recs {
		first[rec.RepositoryId] = rec.Score
	}

	_, err = svc.Match(context.Background(), project.Id)
	require.NoError(t, err)
	for _, rec := range uow.recs.recs {
		assert.Equal(t, first[rec.RepositoryId], rec.Score)
	}
}
