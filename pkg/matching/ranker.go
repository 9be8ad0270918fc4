package matching

import "sort"

// Rank orders scored candidates for presentation: aggregate score descending,
// star count descending on ties, full name ascending when stars tie too, so
// the ordering is fully deterministic. Duplicates by repository id are
// collapsed (first occurrence wins). limit <= 0 means unlimited.
func Rank(candidates []ScoredCandidate, limit int) []ScoredCandidate {
	deduped := make([]ScoredCandidate, 0, len(candidates))
	seen := make(map[string]struct{}, len(candidates))
	for _, c := range candidates {
		key := c.Repo.ID.String()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		deduped = append(deduped, c)
	}

	sort.SliceStable(deduped, func(i, j int) bool {
		if deduped[i].Score != deduped[j].Score {
			return deduped[i].Score > deduped[j].Score
		}
		if deduped[i].Repo.Stars != deduped[j].Repo.Stars {
			return deduped[i].Repo.Stars > deduped[j].Repo.Stars
		}
		return deduped[i].Repo.FullName < deduped[j].Repo.FullName
	})

	if limit > 0 && len(deduped) > limit {
		deduped = deduped[:limit]
	}
	return deduped
}
