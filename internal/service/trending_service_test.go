package service

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"gitscout-be/internal/dto"
	"gitscout-be/pkg/githubapi"
	"gitscout-be/pkg/trending"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const trendingPage = `<!DOCTYPE html>
<html><body>
<article class="Box-row">
  <h2><a href="/gofiber/fiber">gofiber / fiber</a></h2>
  <p>Express inspired web framework</p>
  <span itemprop="programmingLanguage">Go</span>
  <a href="/gofiber/fiber/stargazers">34,000</a>
  <a href="/gofiber/fiber/forks">1,700</a>
  <span class="d-inline-block float-sm-right">120 stars today</span>
</article>
<article class="Box-row">
  <h2><a href="/unknown/ghost">unknown / ghost</a></h2>
  <a href="/unknown/ghost/stargazers">500</a>
</article>
</body></html>`

func newCollectFixture(t *testing.T) (*trending.Scraper, *githubapi.Client, func()) {
	t.Helper()

	pageSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(trendingPage))
	}))

	pushed := time.Now().UTC().Add(-24 * time.Hour).Format(time.RFC3339)
	apiSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/repos/gofiber/fiber" {
			fmt.Fprintf(w, `{
				"id": 1,
				"full_name": "gofiber/fiber",
				"description": "Express inspired web framework written in Go",
				"language": "Go",
				"stargazers_count": 34100,
				"forks_count": 1710,
				"open_issues_count": 50,
				"topics": ["go", "web-framework"],
				"license": {"spdx_id": "MIT"},
				"pushed_at": %q
			}`, pushed)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))

	scraper := trending.NewScraper()
	scraper.BaseURL = pageSrv.URL
	client := githubapi.NewClient("")
	client.BaseURL = apiSrv.URL

	return scraper, client, func() {
		pageSrv.Close()
		apiSrv.Close()
	}
}

func TestCollectTrending(t *testing.T) {
	scraper, client, teardown := newCollectFixture(t)
	defer teardown()

	uow := newFakeUnitOfWork()
	pub := &fakePublisher{}
	svc := NewTrendingService(&fakeFactory{uow: uow}, scraper, client, pub, nil, nil)

	res, err := svc.Collect(context.Background(), &dto.CollectTrendingRequest{})
	require.NoError(t, err)

	assert.Equal(t, 2, res.RepoCount)
	assert.Equal(t, 2, res.NewRepos)

	require.Len(t, uow.repos.repos, 2)
	fiber, err := uow.repos.FindOne(context.Background(), fullNameSpec("gofiber/fiber"))
	require.NoError(t, err)
	require.NotNil(t, fiber)

	// API enrichment wins over scraped values.
	assert.Equal(t, 34100, fiber.Stars)
	assert.Equal(t, []string{"go", "web-framework"}, fiber.Topics)
	assert.Equal(t, "MIT", fiber.License)
	assert.True(t, fiber.IsActive)
	assert.Equal(t, 120, fiber.StarsWeek)

	// Heuristic analysis recorded for the enriched repo only.
	require.Contains(t, uow.repos.analysis, fiber.Id)

	ghost, err := uow.repos.FindOne(context.Background(), fullNameSpec("unknown/ghost"))
	require.NoError(t, err)
	require.NotNil(t, ghost)
	assert.Equal(t, 500, ghost.Stars)
	assert.NotContains(t, uow.repos.analysis, ghost.Id)

	// Both repos lack embeddings, so both are queued.
	assert.Len(t, pub.payloads, 2)

	require.Len(t, uow.trending.snapshots, 1)
	require.Len(t, uow.trending.entries, 2)
	assert.Equal(t, 1, uow.trending.entries[0].Rank)
}

func TestCollectTrendingSecondRunKeepsIdentity(t *testing.T) {
	scraper, client, teardown := newCollectFixture(t)
	defer teardown()

	uow := newFakeUnitOfWork()
	svc := NewTrendingService(&fakeFactory{uow: uow}, scraper, client, &fakePublisher{}, nil, nil)

	first, err := svc.Collect(context.Background(), &dto.CollectTrendingRequest{})
	require.NoError(t, err)
	assert.Equal(t, 2, first.NewRepos)

	fiberBefore, _ := uow.repos.FindOne(context.Background(), fullNameSpec("gofiber/fiber"))

	second, err := svc.Collect(context.Background(), &dto.CollectTrendingRequest{})
	require.NoError(t, err)
	assert.Equal(t, 0, second.NewRepos)

	fiberAfter, _ := uow.repos.FindOne(context.Background(), fullNameSpec("gofiber/fiber"))
	assert.Equal(t, fiberBefore.Id, fiberAfter.Id)
	assert.Len(t, uow.repos.repos, 2)
	assert.Len(t, uow.trending.snapshots, 2)
}

func TestLatestSnapshot(t *testing.T) {
	scraper, client, teardown := newCollectFixture(t)
	defer teardown()

	uow := newFakeUnitOfWork()
	svc := NewTrendingService(&fakeFactory{uow: uow}, scraper, client, &fakePublisher{}, nil, nil)

	_, err := svc.LatestSnapshot(context.Background(), "")
	assert.ErrorIs(t, err, ErrNotFound)

	collected, err := svc.Collect(context.Background(), &dto.CollectTrendingRequest{Language: "go"})
	require.NoError(t, err)

	snap, err := svc.LatestSnapshot(context.Background(), "go")
	require.NoError(t, err)
	assert.Equal(t, collected.SnapshotId, snap.Id)
	require.Len(t, snap.Entries, 2)
	assert.Equal(t, "gofiber/fiber", snap.Entries[0].FullName)
}
