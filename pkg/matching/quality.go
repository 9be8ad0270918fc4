package matching

import "math"

// Quality sub-blend. Each input saturates independently so that a single
// huge signal cannot push the blend past 1. Monotone in every input.
const (
	// log10 star scale saturates at 100k stars.
	starSaturationExp = 5.0
	// weekly growth saturates at 1000 stars/week.
	growthSaturationExp = 3.0

	starWeight   = 0.5
	healthWeight = 0.3
	growthWeight = 0.2

	// Used when the external analyzer has not scored the repo yet.
	defaultHealth = 0.5
)

// QualityScore normalizes repository popularity and health signals into [0,1].
// overall is the analyzer's 0-100 overall score, nil when unavailable.
func QualityScore(stars, starsWeek int, overall *int) float64 {
	starScore := saturatingLog(stars, starSaturationExp)
	growthScore := saturatingLog(starsWeek, growthSaturationExp)

	health := defaultHealth
	if overall != nil {
		health = clamp01(float64(*overall) / 100)
	}

	return clamp01(starWeight*starScore + healthWeight*health + growthWeight*growthScore)
}

func saturatingLog(n int, saturationExp float64) float64 {
	if n <= 0 {
		return 0
	}
	return clamp01(math.Log10(1+float64(n)) / saturationExp)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
