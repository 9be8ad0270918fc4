package integration

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"gitscout-be/internal/entity"
	"gitscout-be/internal/repository/specification"
	"gitscout-be/internal/repository/unitofwork"
	"gitscout-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
)

func TestGormConnection(t *testing.T) {
	// Load .env from root
	err := godotenv.Load("../../.env")
	if err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}
	if err := database.Migrate(gormDB); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}

	// Verify Wiring
	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	uow := uowFactory.NewUnitOfWork(context.Background())

	assert.NotNil(t, uow.ProjectRepository())
	assert.NotNil(t, uow.RepoRepository())

	// Basic Ping
	sqlDB, _ := gormDB.DB()
	err = sqlDB.Ping()
	assert.NoError(t, err)
	t.Log("Successfully connected to DB and initialized UnitOfWork Factory")

	ctx := context.Background()

	t.Run("Check Repository Upsert Identity", func(t *testing.T) {
		fullName := "integration/sample-" + uuid.New().String()
		repo := &entity.Repository{
			Id:          uuid.New(),
			FullName:    fullName,
			Owner:       "integration",
			Name:        "sample",
			Url:         "https://github.com/" + fullName,
			Language:    "Go",
			Stars:       120,
			IsActive:    true,
			FirstSeenAt: time.Now(),
		}
		assert.NoError(t, uow.RepoRepository().Upsert(ctx, repo))
		firstId := repo.Id

		// A second observation must keep the original identity.
		repo2 := &entity.Repository{
			Id:          uuid.New(),
			FullName:    fullName,
			Owner:       "integration",
			Name:        "sample",
			Url:         "https://github.com/" + fullName,
			Language:    "Go",
			Stars:       150,
			IsActive:    true,
			FirstSeenAt: time.Now(),
		}
		assert.NoError(t, uow.RepoRepository().Upsert(ctx, repo2))
		assert.Equal(t, firstId, repo2.Id)
		assert.Equal(t, 150, repo2.Stars)
	})

	t.Run("Check Recommendation Upsert Preserves Status", func(t *testing.T) {
		project := &entity.Project{
			Id:        uuid.New(),
			Name:      "Integration Project " + uuid.New().String(),
			TechStack: []string{"go"},
			IsActive:  true,
			CreatedAt: time.Now(),
		}
		assert.NoError(t, uow.ProjectRepository().Create(ctx, project))

		fullName := "integration/rec-" + uuid.New().String()
		repo := &entity.Repository{
			Id:          uuid.New(),
			FullName:    fullName,
			Owner:       "integration",
			Name:        "rec",
			Url:         "https://github.com/" + fullName,
			Stars:       500,
			IsActive:    true,
			FirstSeenAt: time.Now(),
		}
		assert.NoError(t, uow.RepoRepository().Upsert(ctx, repo))

		rec := &entity.Recommendation{
			Id:           uuid.New(),
			ProjectId:    project.Id,
			RepositoryId: repo.Id,
			Score:        0.8,
			Status:       entity.StatusNew,
			CreatedAt:    time.Now(),
		}
		assert.NoError(t, uow.RecommendationRepository().Upsert(ctx, rec))

		assert.NoError(t, uow.RecommendationRepository().UpdateStatus(ctx, rec.Id, entity.StatusDismissed, time.Now()))

		// Re-scoring the same pair must refresh the score but leave the
		// user's dismissal in place.
		rematch := &entity.Recommendation{
			Id:           uuid.New(),
			ProjectId:    project.Id,
			RepositoryId: repo.Id,
			Score:        0.9,
			Status:       entity.StatusNew,
			CreatedAt:    time.Now(),
		}
		assert.NoError(t, uow.RecommendationRepository().Upsert(ctx, rematch))

		stored, err := uow.RecommendationRepository().FindOne(ctx, specification.ByID{ID: rec.Id})
		assert.NoError(t, err)
		if assert.NotNil(t, stored) {
			assert.Equal(t, entity.StatusDismissed, stored.Status)
			assert.NotNil(t, stored.DismissedAt)
			assert.InDelta(t, 0.9, stored.Score, 1e-9)
		}

		// Cleanup
		assert.NoError(t, uow.ProjectRepository().Delete(ctx, project.Id))
	})

	t.Run("Check Transaction Rollback", func(t *testing.T) {
		err := uow.Begin(ctx)
		assert.NoError(t, err)

		project := &entity.Project{
			Id:        uuid.New(),
			Name:      "Rollback Project " + uuid.New().String(),
			TechStack: []string{"go"},
			IsActive:  true,
			CreatedAt: time.Now(),
		}
		assert.NoError(t, uow.ProjectRepository().Create(ctx, project))
		assert.NoError(t, uow.Rollback())

		fresh := uowFactory.NewUnitOfWork(ctx)
		found, err := fresh.ProjectRepository().FindOne(ctx, specification.ByID{ID: project.Id})
		assert.NoError(t, err)
		assert.Nil(t, found)
	})
}
