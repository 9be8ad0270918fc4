package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"gitscout-be/internal/dto"
	"gitscout-be/internal/entity"
	"gitscout-be/internal/repository/specification"
	"gitscout-be/internal/repository/unitofwork"
	"gitscout-be/pkg/events"
	"gitscout-be/pkg/githubapi"
	pkgNats "gitscout-be/pkg/nats"
	"gitscout-be/pkg/notifier"
	"gitscout-be/pkg/trending"

	"github.com/google/uuid"
)

type ITrendingService interface {
	Collect(ctx context.Context, req *dto.CollectTrendingRequest) (*dto.CollectTrendingResponse, error)
	LatestSnapshot(ctx context.Context, language string) (*dto.TrendingSnapshotResponse, error)
}

type trendingService struct {
	uowFactory       unitofwork.RepositoryFactory
	scraper          *trending.Scraper
	github           *githubapi.Client
	publisherService IPublisherService
	eventPublisher   *pkgNats.Publisher
	slack            *notifier.SlackNotifier
}

func NewTrendingService(
	uowFactory unitofwork.RepositoryFactory,
	scraper *trending.Scraper,
	github *githubapi.Client,
	publisherService IPublisherService,
	eventPublisher *pkgNats.Publisher,
	slack *notifier.SlackNotifier,
) ITrendingService {
	return &trendingService{
		uowFactory:       uowFactory,
		scraper:          scraper,
		github:           github,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
		slack:            slack,
	}
}

// Collect runs one scrape-enrich-persist pass: trending page entries are
// enriched through the API, upserted into the repo pool, and pinned into a
// snapshot. New repos are queued for embedding.
func (s *trendingService) Collect(ctx context.Context, req *dto.CollectTrendingRequest) (*dto.CollectTrendingResponse, error) {
	since := req.Since
	if since == "" {
		since = trending.SinceDaily
	}

	entries, err := s.scraper.Fetch(ctx, req.Language, since)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, ErrNothingToCollect
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	snapshot := entity.TrendingSnapshot{
		Id:          uuid.New(),
		Language:    req.Language,
		Since:       since,
		RepoCount:   len(entries),
		CollectedAt: time.Now(),
	}
	if err := uow.TrendingRepository().CreateSnapshot(ctx, &snapshot); err != nil {
		return nil, err
	}

	newRepos := 0
	snapshotEntries := make([]*entity.TrendingEntry, 0, len(entries))

	for _, e := range entries {
		existing, err := uow.RepoRepository().FindOne(ctx, specification.ByFullName{FullName: e.FullName})
		if err != nil {
			return nil, err
		}

		repo, analysis := s.buildRepo(ctx, e, existing)
		if err := uow.RepoRepository().Upsert(ctx, repo); err != nil {
			return nil, err
		}
		if analysis != nil {
			// Analysis columns sit outside the upsert assignment, refresh
			// them explicitly.
			if err := uow.RepoRepository().UpdateAnalysis(ctx, repo.Id, analysis); err != nil {
				return nil, err
			}
		}

		if existing == nil {
			newRepos++
			s.onRepoDiscovered(ctx, repo)
		}

		if repo.Embedding == nil {
			if err := s.publishEmbed(ctx, repo.Id); err != nil {
				log.Printf("[WARN] Failed to queue embedding for %s: %v", repo.FullName, err)
			}
		}

		snapshotEntries = append(snapshotEntries, &entity.TrendingEntry{
			Id:           uuid.New(),
			SnapshotId:   snapshot.Id,
			RepositoryId: repo.Id,
			Rank:         e.Rank,
			Stars:        repo.Stars,
			StarsToday:   e.StarsToday,
			Forks:        repo.Forks,
			IsActive:     repo.IsActive,
			CreatedAt:    snapshot.CollectedAt,
		})
	}

	if err := uow.TrendingRepository().CreateEntries(ctx, snapshotEntries); err != nil {
		return nil, err
	}

	if s.slack != nil {
		if err := s.slack.NotifyTrendingSummary(ctx, len(entries), req.Language); err != nil {
			log.Printf("[WARN] Slack trending summary failed: %v", err)
		}
	}

	return &dto.CollectTrendingResponse{
		SnapshotId: snapshot.Id,
		RepoCount:  len(entries),
		NewRepos:   newRepos,
	}, nil
}

func (s *trendingService) LatestSnapshot(ctx context.Context, language string) (*dto.TrendingSnapshotResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	snapshot, err := uow.TrendingRepository().LatestSnapshot(ctx, language)
	if err != nil {
		return nil, err
	}
	if snapshot == nil {
		return nil, ErrNotFound
	}

	snapshotEntries, err := uow.TrendingRepository().EntriesBySnapshot(ctx, snapshot.Id)
	if err != nil {
		return nil, err
	}

	repoIds := make([]uuid.UUID, 0, len(snapshotEntries))
	for _, e := range snapshotEntries {
		repoIds = append(repoIds, e.RepositoryId)
	}
	nameById := make(map[uuid.UUID]string, len(repoIds))
	if len(repoIds) > 0 {
		repos, err := uow.RepoRepository().FindAll(ctx, specification.ByIDs{IDs: repoIds})
		if err != nil {
			return nil, err
		}
		for _, r := range repos {
			nameById[r.Id] = r.FullName
		}
	}

	res := &dto.TrendingSnapshotResponse{
		Id:          snapshot.Id,
		Language:    snapshot.Language,
		Since:       snapshot.Since,
		RepoCount:   snapshot.RepoCount,
		CollectedAt: snapshot.CollectedAt,
	}
	for _, e := range snapshotEntries {
		res.Entries = append(res.Entries, dto.TrendingEntryResponse{
			RepositoryId: e.RepositoryId,
			FullName:     nameById[e.RepositoryId],
			Rank:         e.Rank,
			Stars:        e.Stars,
			StarsToday:   e.StarsToday,
			Forks:        e.Forks,
		})
	}
	return res, nil
}

// buildRepo merges the scraped row with API enrichment. When the API call
// fails the scraped values still produce a usable row and no analysis is
// reported.
func (s *trendingService) buildRepo(ctx context.Context, e trending.Entry, existing *entity.Repository) (*entity.Repository, *entity.RepoAnalysis) {
	repo := &entity.Repository{
		Id:          uuid.New(),
		FullName:    e.FullName,
		Owner:       e.Owner,
		Name:        e.Name,
		Url:         e.Url,
		Description: e.Description,
		Language:    e.Language,
		Stars:       e.Stars,
		Forks:       e.Forks,
		StarsWeek:   e.StarsToday,
		IsActive:    true,
		FirstSeenAt: time.Now(),
	}
	if existing != nil {
		repo.Id = existing.Id
		repo.Embedding = existing.Embedding
		repo.FirstSeenAt = existing.FirstSeenAt
	}

	details, err := s.github.GetRepo(ctx, e.FullName)
	if err != nil {
		log.Printf("[WARN] GitHub enrichment failed for %s: %v", e.FullName, err)
		return repo, nil
	}
	if details == nil {
		return repo, nil
	}

	if details.Description != "" {
		repo.Description = details.Description
	}
	if details.Language != "" {
		repo.Language = details.Language
	}
	repo.Stars = details.Stars
	repo.Forks = details.Forks
	repo.OpenIssues = details.OpenIssues
	repo.Topics = details.Topics
	repo.License = details.LicenseId()
	repo.IsArchived = details.Archived
	repo.IsActive = details.IsActive && !details.Archived

	// No analyzer in the loop: heuristic sub-scores fill the gap until a
	// richer analysis lands.
	scores := githubapi.BasicScores(details)
	now := time.Now()
	analysis := &entity.RepoAnalysis{
		HealthScore:        scores.Health,
		ActivityScore:      scores.Activity,
		CommunityScore:     scores.Community,
		DocumentationScore: scores.Documentation,
		OverallScore:       scores.Overall,
		AnalyzedAt:         &now,
	}

	return repo, analysis
}

func (s *trendingService) onRepoDiscovered(ctx context.Context, repo *entity.Repository) {
	if s.eventPublisher == nil {
		return
	}
	evt := events.NewRepoDiscovered(repo.Id.String(), repo.FullName, repo.Language, repo.Stars)
	if err := s.eventPublisher.Publish(ctx, evt); err != nil {
		log.Printf("[WARN] Failed to publish repo discovered event: %v", err)
	}
}

func (s *trendingService) publishEmbed(ctx context.Context, repoId uuid.UUID) error {
	payload, err := json.Marshal(dto.PublishEmbedMessage{RepositoryId: repoId})
	if err != nil {
		return err
	}
	return s.publisherService.Publish(ctx, payload)
}
