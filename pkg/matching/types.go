package matching

import "github.com/google/uuid"

// ReasonComponent tags which scorer produced a reason entry.
type ReasonComponent string

const (
	ReasonSemantic ReasonComponent = "semantic"
	ReasonStack    ReasonComponent = "stack"
	ReasonQuality  ReasonComponent = "quality"
	ReasonTrending ReasonComponent = "trending"
)

// Reason is a display-only explanation. It never feeds back into scoring.
type Reason struct {
	Component ReasonComponent `json:"component"`
	Text      string          `json:"text"`
}

// ProjectProfile is the read-side view of a project the matcher needs.
type ProjectProfile struct {
	ID        uuid.UUID
	Name      string
	TechStack []string
	Tags      []string
	Embedding []float32 // nil when the project has not been embedded yet
}

// RepoSignal is one repository from the pool snapshot, with every field the
// filter and scorer consume. Optional inputs are pointers so "absent" never
// collapses into "zero".
type RepoSignal struct {
	ID           uuid.UUID
	FullName     string
	Language     string
	Topics       []string
	Stars        int
	Forks        int
	StarsWeek    int // stars gained over the last 7 days
	Inactive     bool
	Embedding    []float32 // nil when not embedded
	OverallScore *int      // analyzer 0-100, nil when never analyzed
}

// Components holds the clamped per-component scores of one candidate.
type Components struct {
	EmbeddingSimilarity float64
	StackOverlap        float64
	Quality             float64
}

// ScoredCandidate is the scorer output for one (project, repository) pair.
type ScoredCandidate struct {
	Repo       RepoSignal
	Score      float64
	Components Components
	Reasons    []Reason
}
