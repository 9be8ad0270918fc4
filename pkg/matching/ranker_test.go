package matching

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRankOrdering(t *testing.T) {
	candidates := []ScoredCandidate{
		{Repo: RepoSignal{ID: uuid.New(), FullName: "c/c", Stars: 10}, Score: 0.5},
		{Repo: RepoSignal{ID: uuid.New(), FullName: "a/a", Stars: 10}, Score: 0.9},
		{Repo: RepoSignal{ID: uuid.New(), FullName: "b/b", Stars: 10}, Score: 0.7},
	}

	got := Rank(candidates, 0)
	require.Len(t, got, 3)
	assert.Equal(t, "a/a", got[0].Repo.FullName)
	assert.Equal(t, "b/b", got[1].Repo.FullName)
	assert.Equal(t, "c/c", got[2].Repo.FullName)
}

func TestRankTieBreaks(t *testing.T) {
	// Tie on score 0.70: higher stars first; tie on stars too: name ascending.
	candidates := []ScoredCandidate{
		{Repo: RepoSignal{ID: uuid.New(), FullName: "zeta/tool", Stars: 100}, Score: 0.70},
		{Repo: RepoSignal{ID: uuid.New(), FullName: "alpha/tool", Stars: 100}, Score: 0.70},
		{Repo: RepoSignal{ID: uuid.New(), FullName: "mid/tool", Stars: 900}, Score: 0.70},
	}

	got := Rank(candidates, 0)
	want := []string{"mid/tool", "alpha/tool", "zeta/tool"}
	for i, name := range want {
		assert.Equal(t, name, got[i].Repo.FullName, "position %d", i)
	}
}

func TestRankDeduplicates(t *testing.T) {
	id := uuid.New()
	candidates := []ScoredCandidate{
		{Repo: RepoSignal{ID: id, FullName: "dup/repo", Stars: 50}, Score: 0.8},
		{Repo: RepoSignal{ID: id, FullName: "dup/repo", Stars: 50}, Score: 0.6},
		{Repo: RepoSignal{ID: uuid.New(), FullName: "other/repo", Stars: 10}, Score: 0.4},
	}

	got := Rank(candidates, 0)
	require.Len(t, got, 2)
	// First occurrence wins.
	assert.Equal(t, 0.8, got[0].Score)
}

func TestRankTruncates(t *testing.T) {
	candidates := []ScoredCandidate{
		{Repo: RepoSignal{ID: uuid.New(), FullName: "a/a"}, Score: 0.9},
		{Repo: RepoSignal{ID: uuid.New(), FullName: "b/b"}, Score: 0.8},
		{Repo: RepoSignal{ID: uuid.New(), FullName: "c/c"}, Score: 0.7},
	}

	assert.Len(t, Rank(candidates, 2), 2)
	assert.Len(t, Rank(candidates, 0), 3, "0 means unlimited")
}
