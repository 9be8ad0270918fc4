package embedding

import (
	"fmt"
	"strings"
)

const maxProjectDetailLen = 1000

// Task types understood by text-embedding-004. Repositories are embedded as
// documents, projects as queries, so the two sides live in the same space
// while keeping the asymmetric retrieval framing.
const (
	TaskTypeDocument = "RETRIEVAL_DOCUMENT"
	TaskTypeQuery    = "RETRIEVAL_QUERY"
)

// RepoSummary builds the canonical text a repository embedding is computed
// from. Field order is fixed so re-embedding the same repo yields the same
// input text.
func RepoSummary(fullName, description, language string, topics []string, readmeSummary string) string {
	parts := []string{fmt.Sprintf("Repository: %s", fullName)}
	if description != "" {
		parts = append(parts, fmt.Sprintf("Description: %s", description))
	}
	if language != "" {
		parts = append(parts, fmt.Sprintf("Language: %s", language))
	}
	if len(topics) > 0 {
		parts = append(parts, fmt.Sprintf("Topics: %s", strings.Join(topics, ", ")))
	}
	if readmeSummary != "" {
		parts = append(parts, fmt.Sprintf("Summary: %s", readmeSummary))
	}
	return strings.Join(parts, "\n")
}

// ProjectSummary builds the canonical text a project embedding is computed from.
func ProjectSummary(name, description string, techStack, tags []string, goals, readmeExcerpt string) string {
	parts := []string{fmt.Sprintf("Project: %s", name)}
	if description != "" {
		parts = append(parts, fmt.Sprintf("Description: %s", description))
	}
	if len(techStack) > 0 {
		parts = append(parts, fmt.Sprintf("Tech Stack: %s", strings.Join(techStack, ", ")))
	}
	if len(tags) > 0 {
		parts = append(parts, fmt.Sprintf("Tags: %s", strings.Join(tags, ", ")))
	}
	if goals != "" {
		parts = append(parts, fmt.Sprintf("Goals: %s", goals))
	}
	if readmeExcerpt != "" {
		if len(readmeExcerpt) > maxProjectDetailLen {
			readmeExcerpt = readmeExcerpt[:maxProjectDetailLen]
		}
		parts = append(parts, fmt.Sprintf("Details: %s", readmeExcerpt))
	}
	return strings.Join(parts, "\n")
}
