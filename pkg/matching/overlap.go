package matching

import (
	"sort"
	"strings"
)

// StackOverlap computes the Jaccard similarity between a project's combined
// tech-stack/tag terms and a repository's language/topic terms. Terms are
// lowercased and trimmed before comparison, so ordering and casing of either
// side never change the result. Returns the score plus the sorted shared
// terms for the reason text.
//
// Score is |A ∩ B| / |A ∪ B|, 0 when either side is empty, 1 only when both
// sides are non-empty and identical.
func StackOverlap(projectStack, projectTags []string, repoLanguage string, repoTopics []string) (float64, []string) {
	projectTerms := normalizeTerms(append(append([]string{}, projectStack...), projectTags...))
	repoTerms := normalizeTerms(repoTopics)
	if lang := normalizeTerm(repoLanguage); lang != "" {
		repoTerms[lang] = struct{}{}
	}

	if len(projectTerms) == 0 || len(repoTerms) == 0 {
		return 0, nil
	}

	var shared []string
	union := len(repoTerms)
	for term := range projectTerms {
		if _, ok := repoTerms[term]; ok {
			shared = append(shared, term)
		} else {
			union++
		}
	}
	sort.Strings(shared)

	return float64(len(shared)) / float64(union), shared
}

func normalizeTerm(term string) string {
	return strings.ToLower(strings.TrimSpace(term))
}

func normalizeTerms(terms []string) map[string]struct{} {
	set := make(map[string]struct{}, len(terms))
	for _, t := range terms {
		if n := normalizeTerm(t); n != "" {
			set[n] = struct{}{}
		}
	}
	return set
}
