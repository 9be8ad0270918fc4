package embedding

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRepoSummary(t *testing.T) {
	got := RepoSummary(
		"fastapi/fastapi",
		"FastAPI framework, high performance",
		"Python",
		[]string{"python", "api", "async"},
		"",
	)

	assert.Equal(t,
		"Repository: fastapi/fastapi\n"+
			"Description: FastAPI framework, high performance\n"+
			"Language: Python\n"+
			"Topics: python, api, async",
		got,
	)
}

func TestRepoSummarySkipsEmptyFields(t *testing.T) {
	got := RepoSummary("acme/tool", "", "", nil, "")
	assert.Equal(t, "Repository: acme/tool", got)
}

func TestProjectSummary(t *testing.T) {
	got := ProjectSummary(
		"gitscout",
		"repo discovery engine",
		[]string{"Go", "Postgres"},
		[]string{"recommendations"},
		"find useful dependencies",
		"",
	)

	assert.Equal(t,
		"Project: gitscout\n"+
			"Description: repo discovery engine\n"+
			"Tech Stack: Go, Postgres\n"+
			"Tags: recommendations\n"+
			"Goals: find useful dependencies",
		got,
	)
}

func TestProjectSummaryTruncatesLongDetails(t *testing.T) {
	excerpt := strings.Repeat("x", 5000)
	got := ProjectSummary("p", "", nil, nil, "", excerpt)

	lines := strings.Split(got, "\n")
	last := lines[len(lines)-1]
	assert.Equal(t, len("Details: ")+maxProjectDetailLen, len(last))
}

func TestNormalizeVector(t *testing.T) {
	got := normalizeVector([]float32{3, 4})
	assert.InDelta(t, 0.6, float64(got[0]), 1e-6)
	assert.InDelta(t, 0.8, float64(got[1]), 1e-6)

	zero := normalizeVector([]float32{0, 0})
	assert.Equal(t, []float32{0, 0}, zero)
}
