package matching

import (
	"fmt"
	"strings"
)

// Weights is the aggregation blend. It is plain configuration: construct a
// Scorer with it, never mutate a shared default.
type Weights struct {
	Embedding float64
	Stack     float64
	Quality   float64
}

// DefaultWeights mirrors the reference deployment blend.
func DefaultWeights() Weights {
	return Weights{Embedding: 0.5, Stack: 0.3, Quality: 0.2}
}

// Reason noise thresholds. A component below its threshold stays silent so
// the reason list only carries signals worth showing.
const (
	semanticReasonThreshold = 0.7
	qualityReasonThreshold  = 0.75
	trendingReasonStars     = 100
	maxSharedTermsInReason  = 5
)

type Scorer struct {
	weights Weights
}

func NewScorer(weights Weights) *Scorer {
	return &Scorer{weights: weights}
}

// Score computes the three component scores for one candidate and aggregates
// them. Every component is clamped to [0,1] before weighting and the final
// score is clamped again, so the result always lands in [0,1].
func (s *Scorer) Score(project ProjectProfile, repo RepoSignal) ScoredCandidate {
	var components Components
	var reasons []Reason

	// Embedding similarity: (cos+1)/2 rescale. A missing vector on either
	// side zeroes the component and is flagged, never conflated with a true
	// low similarity.
	cos, ok := CosineSimilarity(project.Embedding, repo.Embedding)
	if ok {
		components.EmbeddingSimilarity = RescaleCosine(cos)
		if components.EmbeddingSimilarity >= semanticReasonThreshold {
			reasons = append(reasons, Reason{
				Component: ReasonSemantic,
				Text:      "semantically similar to your project description",
			})
		}
	} else {
		reasons = append(reasons, Reason{
			Component: ReasonSemantic,
			Text:      "semantic similarity unavailable (no embedding)",
		})
	}

	overlap, shared := StackOverlap(project.TechStack, project.Tags, repo.Language, repo.Topics)
	components.StackOverlap = clamp01(overlap)
	if len(shared) > 0 {
		reasons = append(reasons, Reason{
			Component: ReasonStack,
			Text:      stackReasonText(shared),
		})
	}

	components.Quality = QualityScore(repo.Stars, repo.StarsWeek, repo.OverallScore)
	if components.Quality >= qualityReasonThreshold {
		reasons = append(reasons, Reason{
			Component: ReasonQuality,
			Text:      "high community health score",
		})
	}

	if repo.StarsWeek > trendingReasonStars {
		reasons = append(reasons, Reason{
			Component: ReasonTrending,
			Text:      fmt.Sprintf("trending: +%d stars this week", repo.StarsWeek),
		})
	}

	score := clamp01(
		s.weights.Embedding*components.EmbeddingSimilarity +
			s.weights.Stack*components.StackOverlap +
			s.weights.Quality*components.Quality,
	)

	return ScoredCandidate{
		Repo:       repo,
		Score:      score,
		Components: components,
		Reasons:    reasons,
	}
}

func stackReasonText(shared []string) string {
	shown := shared
	if len(shown) > maxSharedTermsInReason {
		shown = shown[:maxSharedTermsInReason]
	}
	if len(shared) == 1 {
		return fmt.Sprintf("shares 1 technology: %s", shown[0])
	}
	return fmt.Sprintf("shares %d technologies: %s", len(shared), strings.Join(shown, ", "))
}
