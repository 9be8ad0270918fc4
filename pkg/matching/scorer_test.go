package matching

import (
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func hasReason(reasons []Reason, component ReasonComponent) bool {
	for _, r := range reasons {
		if r.Component == component {
			return true
		}
	}
	return false
}

func TestScoreWithinBounds(t *testing.T) {
	scorer := NewScorer(DefaultWeights())
	project := ProjectProfile{
		ID:        uuid.New(),
		TechStack: []string{"python", "fastapi"},
		Embedding: []float32{1, 0, 0},
	}

	repos := []RepoSignal{
		{ID: uuid.New(), FullName: "a/a", Language: "python", Topics: []string{"fastapi"}, Stars: 5000, Embedding: []float32{1, 0, 0}},
		{ID: uuid.New(), FullName: "b/b", Stars: 0},
		{ID: uuid.New(), FullName: "c/c", Stars: 900000, StarsWeek: 50000, OverallScore: intPtr(100), Embedding: []float32{1, 0, 0}},
		{ID: uuid.New(), FullName: "d/d", Embedding: []float32{-1, 0, 0}},
	}

	for _, repo := range repos {
		got := scorer.Score(project, repo)
		assert.GreaterOrEqual(t, got.Score, 0.0, repo.FullName)
		assert.LessOrEqual(t, got.Score, 1.0, repo.FullName)
		for _, c := range []float64{got.Components.EmbeddingSimilarity, got.Components.StackOverlap, got.Components.Quality} {
			assert.GreaterOrEqual(t, c, 0.0, repo.FullName)
			assert.LessOrEqual(t, c, 1.0, repo.FullName)
		}
	}
}

func TestScoreReferenceScenario(t *testing.T) {
	// project tags={python,fastapi}, repo language=python topics={fastapi,api}
	// with similarity 0.9 and quality 0.8 → 0.5*0.9 + 0.3*(2/3) + 0.2*0.8 = 0.81.
	overlap, _ := StackOverlap(nil, []string{"python", "fastapi"}, "python", []string{"fastapi", "api"})
	w := DefaultWeights()
	got := w.Embedding*0.9 + w.Stack*overlap + w.Quality*0.8

	assert.InDelta(t, 0.81, got, 1e-9)
}

func TestScoreMissingEmbeddingFlagged(t *testing.T) {
	scorer := NewScorer(DefaultWeights())
	project := ProjectProfile{ID: uuid.New(), Tags: []string{"go"}, Embedding: []float32{1, 0}}
	repo := RepoSignal{ID: uuid.New(), FullName: "x/y", Language: "go", Stars: 500}

	got := scorer.Score(project, repo)
	assert.Zero(t, got.Components.EmbeddingSimilarity, "missing embedding scores 0")
	assert.True(t, hasReason(got.Reasons, ReasonSemantic), "missing embedding must be flagged in reasons")
}

func TestScoreQualityOnlyRepoStillScores(t *testing.T) {
	// No embedding, zero tag overlap, huge stars: quality alone must yield a
	// non-zero score rather than a failure.
	scorer := NewScorer(DefaultWeights())
	project := ProjectProfile{ID: uuid.New(), Tags: []string{"python"}}
	repo := RepoSignal{ID: uuid.New(), FullName: "big/repo", Language: "rust", Stars: 250000}

	got := scorer.Score(project, repo)
	assert.Greater(t, got.Score, 0.0, "quality component alone must score")
	assert.Zero(t, got.Components.StackOverlap)
	assert.Zero(t, got.Components.EmbeddingSimilarity)
}

func TestScoreDeterministic(t *testing.T) {
	scorer := NewScorer(DefaultWeights())
	project := ProjectProfile{ID: uuid.New(), Tags: []string{"go", "cli"}, Embedding: []float32{0.3, 0.7, 0.1}}
	repo := RepoSignal{
		ID: uuid.New(), FullName: "o/r", Language: "go", Topics: []string{"cli", "tooling"},
		Stars: 4200, StarsWeek: 310, OverallScore: intPtr(82), Embedding: []float32{0.25, 0.71, 0.2},
	}

	first := scorer.Score(project, repo)
	second := scorer.Score(project, repo)
	assert.Equal(t, first.Score, second.Score)
	assert.Equal(t, first.Components, second.Components)
}

func TestScoreIdenticalEmbeddings(t *testing.T) {
	scorer := NewScorer(DefaultWeights())
	vec := []float32{0.5, 0.5, 0.5}
	project := ProjectProfile{ID: uuid.New(), Embedding: vec}
	repo := RepoSignal{ID: uuid.New(), FullName: "m/n", Embedding: vec, Stars: 150}

	got := scorer.Score(project, repo)
	assert.InDelta(t, 1.0, got.Components.EmbeddingSimilarity, 1e-9)
	assert.True(t, hasReason(got.Reasons, ReasonSemantic), "high similarity should produce a semantic reason")
}

func TestTrendingReason(t *testing.T) {
	scorer := NewScorer(DefaultWeights())
	got := scorer.Score(ProjectProfile{ID: uuid.New()}, RepoSignal{ID: uuid.New(), FullName: "t/t", Stars: 2000, StarsWeek: 500})
	assert.True(t, hasReason(got.Reasons, ReasonTrending), "expected trending reason for 500 stars/week")
}

func TestQualityScoreMonotone(t *testing.T) {
	base := QualityScore(1000, 50, intPtr(60))

	assert.GreaterOrEqual(t, QualityScore(5000, 50, intPtr(60)), base, "more stars")
	assert.GreaterOrEqual(t, QualityScore(1000, 400, intPtr(60)), base, "more weekly growth")
	assert.GreaterOrEqual(t, QualityScore(1000, 50, intPtr(90)), base, "better analyzer score")
}

func TestQualityScoreBounds(t *testing.T) {
	cases := []struct {
		stars, week int
		overall     *int
	}{
		{0, 0, nil},
		{math.MaxInt32, math.MaxInt32, intPtr(100)},
		{-5, -5, intPtr(0)},
		{100, 0, nil},
	}
	for _, c := range cases {
		got := QualityScore(c.stars, c.week, c.overall)
		assert.GreaterOrEqual(t, got, 0.0, "QualityScore(%d,%d)", c.stars, c.week)
		assert.LessOrEqual(t, got, 1.0, "QualityScore(%d,%d)", c.stars, c.week)
	}
}

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name   string
		a, b   []float32
		want   float64
		wantOk bool
	}{
		{name: "identical", a: []float32{1, 0}, b: []float32{1, 0}, want: 1, wantOk: true},
		{name: "opposite", a: []float32{1, 0}, b: []float32{-1, 0}, want: -1, wantOk: true},
		{name: "orthogonal", a: []float32{1, 0}, b: []float32{0, 1}, want: 0, wantOk: true},
		{name: "nil side", a: nil, b: []float32{1}, wantOk: false},
		{name: "dimension mismatch", a: []float32{1, 0}, b: []float32{1}, wantOk: false},
		{name: "zero vector", a: []float32{0, 0}, b: []float32{1, 0}, wantOk: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := CosineSimilarity(tt.a, tt.b)
			require.Equal(t, tt.wantOk, ok)
			if ok {
				assert.InDelta(t, tt.want, got, 1e-9)
			}
		})
	}
}

func TestRescaleCosine(t *testing.T) {
	assert.Equal(t, 0.0, RescaleCosine(-1))
	assert.Equal(t, 1.0, RescaleCosine(1))
	assert.Equal(t, 0.5, RescaleCosine(0))
}
