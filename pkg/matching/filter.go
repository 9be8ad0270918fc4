package matching

import "sort"

// FilterConfig bounds stage-1 candidate selection.
type FilterConfig struct {
	MinStars     int // quality floor, repos below are discarded
	CandidateCap int // K, at most this many survivors
}

func DefaultFilterConfig() FilterConfig {
	return FilterConfig{MinStars: 100, CandidateCap: 100}
}

// FilterCandidates is the cheap stage-1 prune: drop repos below the star
// floor or marked inactive by the trending source, rank the rest by a cheap
// compatibility score (stack overlap blended with a star quality proxy) and
// keep the top K. Pure over its inputs.
//
// A project with no tags degrades to a star-rank filter; that is expected,
// not an error.
func FilterCandidates(project ProjectProfile, pool []RepoSignal, cfg FilterConfig) []RepoSignal {
	type ranked struct {
		repo  RepoSignal
		score float64
	}

	survivors := make([]ranked, 0, len(pool))
	for _, repo := range pool {
		if repo.Stars < cfg.MinStars || repo.Inactive {
			continue
		}
		overlap, _ := StackOverlap(project.TechStack, project.Tags, repo.Language, repo.Topics)
		cheap := 0.5*overlap + 0.5*saturatingLog(repo.Stars, starSaturationExp)
		survivors = append(survivors, ranked{repo: repo, score: cheap})
	}

	sort.SliceStable(survivors, func(i, j int) bool {
		if survivors[i].score != survivors[j].score {
			return survivors[i].score > survivors[j].score
		}
		if survivors[i].repo.Stars != survivors[j].repo.Stars {
			return survivors[i].repo.Stars > survivors[j].repo.Stars
		}
		return survivors[i].repo.FullName < survivors[j].repo.FullName
	})

	if cfg.CandidateCap > 0 && len(survivors) > cfg.CandidateCap {
		survivors = survivors[:cfg.CandidateCap]
	}

	out := make([]RepoSignal, len(survivors))
	for i, s := range survivors {
		out[i] = s.repo
	}
	return out
}
