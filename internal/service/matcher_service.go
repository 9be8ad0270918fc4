package service

import (
	"context"
	"log"
	"sync"
	"time"

	"gitscout-be/internal/config"
	"gitscout-be/internal/dto"
	"gitscout-be/internal/entity"
	"gitscout-be/internal/pkg/mailer"
	"gitscout-be/internal/repository/specification"
	"gitscout-be/internal/repository/unitofwork"
	"gitscout-be/pkg/events"
	"gitscout-be/pkg/matching"
	pkgNats "gitscout-be/pkg/nats"
	"gitscout-be/pkg/notifier"

	"github.com/cenkalti/backoff/v5"
	"github.com/google/uuid"
)

type IMatcherService interface {
	Match(ctx context.Context, projectId uuid.UUID) (*dto.RunMatchResponse, error)
	MatchAll(ctx context.Context) (*dto.RunMatchAllResponse, error)
}

type matcherService struct {
	uowFactory     unitofwork.RepositoryFactory
	scorer         *matching.Scorer
	filterCfg      matching.FilterConfig
	resultCap      int
	workers        int
	notifyAt       float64
	eventPublisher *pkgNats.Publisher
	slack          *notifier.SlackNotifier
	emailService   mailer.IEmailService
	digestTo       string
}

func NewMatcherService(
	uowFactory unitofwork.RepositoryFactory,
	matchCfg config.MatchConfig,
	eventPublisher *pkgNats.Publisher,
	slack *notifier.SlackNotifier,
	emailService mailer.IEmailService,
	digestTo string,
) IMatcherService {
	workers := matchCfg.MatchWorkers
	if workers <= 0 {
		workers = 4
	}
	return &matcherService{
		uowFactory: uowFactory,
		scorer: matching.NewScorer(matching.Weights{
			Embedding: matchCfg.EmbeddingWeight,
			Stack:     matchCfg.StackWeight,
			Quality:   matchCfg.QualityWeight,
		}),
		filterCfg: matching.FilterConfig{
			MinStars:     matchCfg.MinStars,
			CandidateCap: matchCfg.CandidateCap,
		},
		resultCap:      matchCfg.ResultCap,
		workers:        workers,
		notifyAt:       matchCfg.NotifyThreshold,
		eventPublisher: eventPublisher,
		slack:          slack,
		emailService:   emailService,
		digestTo:       digestTo,
	}
}

func (s *matcherService) Match(ctx context.Context, projectId uuid.UUID) (*dto.RunMatchResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	project, err := uow.ProjectRepository().FindOne(ctx, specification.ByID{ID: projectId})
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, ErrNotFound
	}
	if !project.IsActive {
		return nil, ErrProjectInactive
	}

	pool, err := s.loadPool(ctx)
	if err != nil {
		return nil, err
	}

	return s.matchOne(ctx, project, pool)
}

func (s *matcherService) MatchAll(ctx context.Context) (*dto.RunMatchAllResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	projects, err := uow.ProjectRepository().FindAll(ctx, specification.ActiveProjects{})
	if err != nil {
		return nil, err
	}

	// One snapshot for the whole run: every project scores against the
	// same pool.
	pool, err := s.loadPool(ctx)
	if err != nil {
		return nil, err
	}

	var (
		mu       sync.Mutex
		results  []dto.RunMatchResponse
		failures []dto.MatchFailure
	)
	sem := make(chan struct{}, s.workers)
	var wg sync.WaitGroup

	for _, p := range projects {
		wg.Add(1)
		go func(project *entity.Project) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			res, err := s.matchOne(ctx, project, pool)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				// One bad project never aborts the batch; the caller gets
				// the identity and cause of every failure.
				log.Printf("[ERROR] Match failed for project %s: %v", project.Id, err)
				failures = append(failures, dto.MatchFailure{
					ProjectId: project.Id,
					Error:     err.Error(),
				})
				return
			}
			results = append(results, *res)
		}(p)
	}
	wg.Wait()

	return &dto.RunMatchAllResponse{
		Projects: results,
		Failures: failures,
		Failed:   len(failures),
	}, nil
}

// matchOne scores a single project against the shared pool snapshot and
// persists the ranked results.
func (s *matcherService) matchOne(ctx context.Context, project *entity.Project, pool []matching.RepoSignal) (*dto.RunMatchResponse, error) {
	profile := matching.ProjectProfile{
		ID:        project.Id,
		Name:      project.Name,
		TechStack: project.TechStack,
		Tags:      project.Tags,
		Embedding: project.Embedding,
	}

	candidates := matching.FilterCandidates(profile, pool, s.filterCfg)

	scored := make([]matching.ScoredCandidate, 0, len(candidates))
	for _, repo := range candidates {
		scored = append(scored, s.scorer.Score(profile, repo))
	}
	ranked := matching.Rank(scored, s.resultCap)

	uow := s.uowFactory.NewUnitOfWork(ctx)
	stored := 0
	matched := make([]dto.MatchedRecommendation, 0, len(ranked))
	var notices []notifier.RecommendationNotice

	for _, cand := range ranked {
		rec := entity.Recommendation{
			Id:                  uuid.New(),
			ProjectId:           project.Id,
			RepositoryId:        cand.Repo.ID,
			Score:               cand.Score,
			EmbeddingSimilarity: cand.Components.EmbeddingSimilarity,
			StackOverlap:        cand.Components.StackOverlap,
			Reasons:             cand.Reasons,
			Status:              entity.StatusNew,
			CreatedAt:           time.Now(),
		}

		if err := s.upsertWithRetry(ctx, uow, &rec); err != nil {
			return nil, err
		}
		stored++

		// The upsert hands back the canonical row, so id and status are
		// the stored ones, not the values this run proposed.
		matched = append(matched, matchedToResponse(&rec, cand.Repo.FullName))

		if cand.Score >= s.notifyAt {
			notices = append(notices, notifier.RecommendationNotice{
				FullName:    cand.Repo.FullName,
				ProjectName: project.Name,
				Score:       cand.Score,
				Stars:       cand.Repo.Stars,
				Reason:      firstReasonText(cand.Reasons),
			})
			s.publishRecommendationEvent(ctx, project.Id, cand)
		}
	}

	if s.slack != nil && len(notices) > 0 {
		if err := s.slack.NotifyRecommendations(ctx, notices, s.notifyAt); err != nil {
			log.Printf("[WARN] Slack notification failed for project %s: %v", project.Id, err)
		}
	}

	if s.emailService != nil && s.digestTo != "" && len(notices) > 0 {
		items := make([]mailer.DigestItem, 0, len(notices))
		for _, n := range notices {
			items = append(items, mailer.DigestItem{
				FullName:    n.FullName,
				ProjectName: n.ProjectName,
				Score:       n.Score,
				Reason:      n.Reason,
			})
		}
		if err := s.emailService.SendRecommendationDigest(s.digestTo, items); err != nil {
			log.Printf("[WARN] Digest email failed for project %s: %v", project.Id, err)
		}
	}

	if s.eventPublisher != nil {
		evt := events.NewMatchRunCompleted(project.Id.String(), len(candidates), stored)
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			log.Printf("[WARN] Failed to publish match run event: %v", err)
		}
	}

	return &dto.RunMatchResponse{
		ProjectId:       project.Id,
		Candidates:      len(candidates),
		Stored:          stored,
		Recommendations: matched,
	}, nil
}

func matchedToResponse(rec *entity.Recommendation, fullName string) dto.MatchedRecommendation {
	reasons := make([]dto.ReasonDTO, 0, len(rec.Reasons))
	for _, r := range rec.Reasons {
		reasons = append(reasons, dto.ReasonDTO{Component: string(r.Component), Text: r.Text})
	}
	return dto.MatchedRecommendation{
		Id:                  rec.Id,
		RepositoryId:        rec.RepositoryId,
		FullName:            fullName,
		Score:               rec.Score,
		EmbeddingSimilarity: rec.EmbeddingSimilarity,
		StackOverlap:        rec.StackOverlap,
		Reasons:             reasons,
		Status:              string(rec.Status),
	}
}

// loadPool reads the repository table once and converts it into scorer inputs.
func (s *matcherService) loadPool(ctx context.Context) ([]matching.RepoSignal, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	repos, err := uow.RepoRepository().FindAll(ctx)
	if err != nil {
		return nil, err
	}

	pool := make([]matching.RepoSignal, 0, len(repos))
	for _, r := range repos {
		signal := matching.RepoSignal{
			ID:        r.Id,
			FullName:  r.FullName,
			Language:  r.Language,
			Topics:    r.Topics,
			Stars:     r.Stars,
			Forks:     r.Forks,
			StarsWeek: r.StarsWeek,
			Inactive:  !r.IsActive,
			Embedding: r.Embedding,
		}
		if r.Analysis != nil {
			overall := r.Analysis.OverallScore
			signal.OverallScore = &overall
		}
		pool = append(pool, signal)
	}
	return pool, nil
}

// upsertWithRetry retries transient storage failures a few times before
// giving up on the run.
func (s *matcherService) upsertWithRetry(ctx context.Context, uow unitofwork.UnitOfWork, rec *entity.Recommendation) error {
	operation := func() (struct{}, error) {
		return struct{}{}, uow.RecommendationRepository().Upsert(ctx, rec)
	}

	_, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxTries(3),
	)
	return err
}

func (s *matcherService) publishRecommendationEvent(ctx context.Context, projectId uuid.UUID, cand matching.ScoredCandidate) {
	if s.eventPublisher == nil {
		return
	}
	evt := events.NewRecommendationCreated(
		projectId.String(),
		cand.Repo.ID.String(),
		cand.Repo.FullName,
		cand.Score,
	)
	if err := s.eventPublisher.Publish(ctx, evt); err != nil {
		log.Printf("[WARN] Failed to publish recommendation event: %v", err)
	}
}

func firstReasonText(reasons []matching.Reason) string {
	if len(reasons) == 0 {
		return ""
	}
	return reasons[0].Text
}
