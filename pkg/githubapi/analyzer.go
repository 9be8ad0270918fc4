package githubapi

// Scores are heuristic quality sub-scores in [0,100], computed from API
// metadata alone. They stand in when no external analyzer output exists.
type Scores struct {
	Health        int
	Activity      int
	Community     int
	Documentation int
	Overall       int
}

// BasicScores derives quality sub-scores from repo metadata. Archived repos
// always score zero on activity regardless of push recency.
func BasicScores(d *RepoDetails) Scores {
	activity := 100
	if d.DaysSincePush != nil {
		switch days := *d.DaysSincePush; {
		case days > 365:
			activity = 10
		case days > 180:
			activity = 30
		case days > 90:
			activity = 50
		case days > 30:
			activity = 70
		}
	}
	if d.Archived {
		activity = 0
	}

	community := d.Stars/100 + d.Forks*2
	if community > 100 {
		community = 100
	}

	health := (activity + community) / 2

	doc := 50
	if len(d.Description) > 50 {
		doc = 70
	}
	if d.HasWiki {
		doc += 15
	}
	if doc > 100 {
		doc = 100
	}

	overall := (health*3 + activity*2 + community*2 + doc) / 8

	return Scores{
		Health:        health,
		Activity:      activity,
		Community:     community,
		Documentation: doc,
		Overall:       overall,
	}
}
