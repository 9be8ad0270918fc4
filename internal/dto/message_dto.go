package dto

import "github.com/google/uuid"

// PublishEmbedMessage asks the embedding worker to (re)compute one vector.
// Exactly one of the two ids is set.
type PublishEmbedMessage struct {
	ProjectId    uuid.UUID `json:"project_id,omitempty"`
	RepositoryId uuid.UUID `json:"repository_id,omitempty"`
}
