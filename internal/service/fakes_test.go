package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"gitscout-be/internal/entity"
	"gitscout-be/internal/repository/contract"
	"gitscout-be/internal/repository/specification"
	"gitscout-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// In-memory repositories that interpret the specification structs the
// services actually pass, mirroring the SQL each spec would produce.

type fakeFactory struct {
	uow *fakeUnitOfWork
}

func (f *fakeFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return f.uow
}

type fakeUnitOfWork struct {
	users    *fakeUserRepo
	projects *fakeProjectRepo
	repos    *fakeRepoRepo
	recs     *fakeRecommendationRepo
	feedback *fakeFeedbackRepo
	trending *fakeTrendingRepo
}

func newFakeUnitOfWork() *fakeUnitOfWork {
	return &fakeUnitOfWork{
		users:    &fakeUserRepo{byEmail: map[string]*entity.User{}},
		projects: &fakeProjectRepo{byId: map[uuid.UUID]*entity.Project{}},
		repos:    &fakeRepoRepo{},
		recs:     &fakeRecommendationRepo{},
		feedback: &fakeFeedbackRepo{},
		trending: &fakeTrendingRepo{},
	}
}

func (f *fakeUnitOfWork) Begin(ctx context.Context) error { return nil }
func (f *fakeUnitOfWork) Commit() error                   { return nil }
func (f *fakeUnitOfWork) Rollback() error                 { return nil }

func (f *fakeUnitOfWork) UserRepository() contract.UserRepository       { return f.users }
func (f *fakeUnitOfWork) ProjectRepository() contract.ProjectRepository { return f.projects }
func (f *fakeUnitOfWork) RepoRepository() contract.RepoRepository       { return f.repos }
func (f *fakeUnitOfWork) RecommendationRepository() contract.RecommendationRepository {
	return f.recs
}
func (f *fakeUnitOfWork) FeedbackRepository() contract.FeedbackRepository { return f.feedback }
func (f *fakeUnitOfWork) TrendingRepository() contract.TrendingRepository { return f.trending }

// --- users ---

type fakeUserRepo struct {
	byEmail map[string]*entity.User
}

func (f *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	f.byEmail[user.Email] = user
	return nil
}

func (f *fakeUserRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	for _, s := range specs {
		if byEmail, ok := s.(specification.ByEmail); ok {
			return f.byEmail[byEmail.Email], nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(f.byEmail)), nil
}

// --- projects ---

type fakeProjectRepo struct {
	byId map[uuid.UUID]*entity.Project
}

func (f *fakeProjectRepo) Create(ctx context.Context, project *entity.Project) error {
	f.byId[project.Id] = project
	return nil
}

func (f *fakeProjectRepo) Update(ctx context.Context, project *entity.Project) error {
	f.byId[project.Id] = project
	return nil
}

func (f *fakeProjectRepo) UpdateEmbedding(ctx context.Context, id uuid.UUID, embedding []float32) error {
	if p, ok := f.byId[id]; ok {
		p.Embedding = embedding
	}
	return nil
}

func (f *fakeProjectRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(f.byId, id)
	return nil
}

func (f *fakeProjectRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Project, error) {
	for _, s := range specs {
		if byId, ok := s.(specification.ByID); ok {
			return f.byId[byId.ID], nil
		}
	}
	return nil, nil
}

func (f *fakeProjectRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Project, error) {
	activeOnly := false
	for _, s := range specs {
		if _, ok := s.(specification.ActiveProjects); ok {
			activeOnly = true
		}
	}
	var out []*entity.Project
	for _, p := range f.byId {
		if activeOnly && !p.IsActive {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeProjectRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(f.byId)), nil
}

// --- repositories ---

type fakeRepoRepo struct {
	repos    []*entity.Repository
	similar  []*contract.ScoredRepo
	analysis map[uuid.UUID]*entity.RepoAnalysis
}

func (f *fakeRepoRepo) Upsert(ctx context.Context, repo *entity.Repository) error {
	for _, existing := range f.repos {
		if existing.FullName == repo.FullName {
			repo.Id = existing.Id
			repo.Embedding = existing.Embedding
			*existing = *repo
			return nil
		}
	}
	clone := *repo
	f.repos = append(f.repos, &clone)
	return nil
}

func (f *fakeRepoRepo) Update(ctx context.Context, repo *entity.Repository) error {
	for i, existing := range f.repos {
		if existing.Id == repo.Id {
			f.repos[i] = repo
		}
	}
	return nil
}

func (f *fakeRepoRepo) UpdateEmbedding(ctx context.Context, id uuid.UUID, embedding []float32) error {
	for _, r := range f.repos {
		if r.Id == id {
			r.Embedding = embedding
		}
	}
	return nil
}

func (f *fakeRepoRepo) UpdateAnalysis(ctx context.Context, id uuid.UUID, analysis *entity.RepoAnalysis) error {
	if f.analysis == nil {
		f.analysis = map[uuid.UUID]*entity.RepoAnalysis{}
	}
	f.analysis[id] = analysis
	return nil
}

func (f *fakeRepoRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Repository, error) {
	for _, s := range specs {
		switch spec := s.(type) {
		case specification.ByID:
			for _, r := range f.repos {
				if r.Id == spec.ID {
					return r, nil
				}
			}
			return nil, nil
		case specification.ByFullName:
			for _, r := range f.repos {
				if r.FullName == spec.FullName {
					return r, nil
				}
			}
			return nil, nil
		}
	}
	return nil, nil
}

func (f *fakeRepoRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Repository, error) {
	var ids map[uuid.UUID]struct{}
	for _, s := range specs {
		if byIds, ok := s.(specification.ByIDs); ok {
			ids = map[uuid.UUID]struct{}{}
			for _, id := range byIds.IDs {
				ids[id] = struct{}{}
			}
		}
	}
	var out []*entity.Repository
	for _, r := range f.repos {
		if ids != nil {
			if _, ok := ids[r.Id]; !ok {
				continue
			}
		}
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeRepoRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(f.repos)), nil
}

func (f *fakeRepoRepo) SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int, minStars int) ([]*contract.ScoredRepo, error) {
	if limit > 0 && len(f.similar) > limit {
		return f.similar[:limit], nil
	}
	return f.similar, nil
}

// --- recommendations ---

type fakeRecommendationRepo struct {
	recs          []*entity.Recommendation
	failProjectId uuid.UUID
}

func (f *fakeRecommendationRepo) Upsert(ctx context.Context, rec *entity.Recommendation) error {
	if f.failProjectId != uuid.Nil && rec.ProjectId == f.failProjectId {
		return fmt.Errorf("storage unavailable")
	}
	for _, existing := range f.recs {
		if existing.ProjectId == rec.ProjectId && existing.RepositoryId == rec.RepositoryId {
			// Same assignment set as the SQL upsert: scores and reasons
			// refresh, status and dismissed_at stay put.
			existing.Score = rec.Score
			existing.EmbeddingSimilarity = rec.EmbeddingSimilarity
			existing.StackOverlap = rec.StackOverlap
			existing.Reasons = rec.Reasons
			now := time.Now()
			existing.UpdatedAt = &now
			*rec = *existing
			return nil
		}
	}
	clone := *rec
	f.recs = append(f.recs, &clone)
	return nil
}

func (f *fakeRecommendationRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.RecommendationStatus, at time.Time) error {
	for _, rec := range f.recs {
		if rec.Id == id {
			rec.Status = status
			if status == entity.StatusDismissed {
				rec.DismissedAt = &at
			} else {
				rec.DismissedAt = nil
			}
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeRecommendationRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Recommendation, error) {
	for _, s := range specs {
		if byId, ok := s.(specification.ByID); ok {
			for _, rec := range f.recs {
				if rec.Id == byId.ID {
					return rec, nil
				}
			}
		}
	}
	return nil, nil
}

func (f *fakeRecommendationRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Recommendation, error) {
	projectId := uuid.Nil
	status := ""
	minScore := 0.0
	limit := 0
	for _, s := range specs {
		switch spec := s.(type) {
		case specification.ByProjectID:
			projectId = spec.ProjectID
		case specification.ByStatus:
			status = spec.Status
		case specification.MinScore:
			minScore = spec.Score
		case specification.Pagination:
			limit = spec.Limit
		}
	}

	var out []*entity.Recommendation
	for _, rec := range f.recs {
		if projectId != uuid.Nil && rec.ProjectId != projectId {
			continue
		}
		if status != "" && string(rec.Status) != status {
			continue
		}
		if rec.Score < minScore {
			continue
		}
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeRecommendationRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(f.recs)), nil
}

// --- feedback ---

type fakeFeedbackRepo struct {
	rows []*entity.Feedback
}

func (f *fakeFeedbackRepo) Create(ctx context.Context, feedback *entity.Feedback) error {
	f.rows = append(f.rows, feedback)
	return nil
}

func (f *fakeFeedbackRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Feedback, error) {
	return f.rows, nil
}

func (f *fakeFeedbackRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(f.rows)), nil
}

// --- trending ---

type fakeTrendingRepo struct {
	snapshots []*entity.TrendingSnapshot
	entries   []*entity.TrendingEntry
}

func (f *fakeTrendingRepo) CreateSnapshot(ctx context.Context, snapshot *entity.TrendingSnapshot) error {
	f.snapshots = append(f.snapshots, snapshot)
	return nil
}

func (f *fakeTrendingRepo) CreateEntries(ctx context.Context, entries []*entity.TrendingEntry) error {
	f.entries = append(f.entries, entries...)
	return nil
}

func (f *fakeTrendingRepo) LatestSnapshot(ctx context.Context, language string) (*entity.TrendingSnapshot, error) {
	for i := len(f.snapshots) - 1; i >= 0; i-- {
		if language == "" || f.snapshots[i].Language == language {
			return f.snapshots[i], nil
		}
	}
	return nil, nil
}

func (f *fakeTrendingRepo) EntriesBySnapshot(ctx context.Context, snapshotId uuid.UUID) ([]*entity.TrendingEntry, error) {
	var out []*entity.TrendingEntry
	for _, e := range f.entries {
		if e.SnapshotId == snapshotId {
			out = append(out, e)
		}
	}
	return out, nil
}

func fullNameSpec(fullName string) specification.Specification {
	return specification.ByFullName{FullName: fullName}
}

// --- publisher ---

type fakePublisher struct {
	payloads [][]byte
}

func (f *fakePublisher) Publish(ctx context.Context, payload []byte) error {
	f.payloads = append(f.payloads, payload)
	return nil
}
