package events

import "time"

// Event type codes carried on the bus. Subjects are derived from these,
// so renaming one changes the wire subject too.
const (
	TypeRecommendationCreated = "RECOMMENDATION_CREATED"
	TypeRepoDiscovered        = "REPO_DISCOVERED"
	TypeMatchRunCompleted     = "MATCH_RUN_COMPLETED"
	TypeFeedbackReceived      = "FEEDBACK_RECEIVED"
)

// NewRecommendationCreated is emitted once per stored recommendation whose
// score cleared the notification threshold.
func NewRecommendationCreated(projectId, repositoryId, fullName string, score float64) Event {
	return BaseEvent{
		Type: TypeRecommendationCreated,
		Data: map[string]interface{}{
			"project_id":    projectId,
			"repository_id": repositoryId,
			"full_name":     fullName,
			"score":         score,
		},
		OccurredAt: time.Now(),
	}
}

// NewRepoDiscovered is emitted when the trending pipeline sees a repository
// for the first time.
func NewRepoDiscovered(repositoryId, fullName, language string, stars int) Event {
	return BaseEvent{
		Type: TypeRepoDiscovered,
		Data: map[string]interface{}{
			"repository_id": repositoryId,
			"full_name":     fullName,
			"language":      language,
			"stars":         stars,
		},
		OccurredAt: time.Now(),
	}
}

// NewMatchRunCompleted summarizes a full scoring pass for one project.
func NewMatchRunCompleted(projectId string, candidates, stored int) Event {
	return BaseEvent{
		Type: TypeMatchRunCompleted,
		Data: map[string]interface{}{
			"project_id": projectId,
			"candidates": candidates,
			"stored":     stored,
		},
		OccurredAt: time.Now(),
	}
}

// NewFeedbackReceived is emitted when a user records feedback on a recommendation.
func NewFeedbackReceived(recommendationId, feedbackType string) Event {
	return BaseEvent{
		Type: TypeFeedbackReceived,
		Data: map[string]interface{}{
			"recommendation_id": recommendationId,
			"feedback_type":     feedbackType,
		},
		OccurredAt: time.Now(),
	}
}
