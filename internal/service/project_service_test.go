package service

import (
	"context"
	"encoding/json"
	"testing"

	"gitscout-be/internal/dto"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateProjectQueuesEmbedding(t *testing.T) {
	uow := newFakeUnitOfWork()
	pub := &fakePublisher{}
	svc := NewProjectService(&fakeFactory{uow: uow}, pub)

	res, err := svc.Create(context.Background(), &dto.CreateProjectRequest{
		Name:      "scout",
		TechStack: []string{"Go", "Postgres"},
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, res.Id)

	require.Len(t, pub.payloads, 1)
	var msg dto.PublishEmbedMessage
	require.NoError(t, json.Unmarshal(pub.payloads[0], &msg))
	assert.Equal(t, res.Id, msg.ProjectId)
	assert.Equal(t, uuid.Nil, msg.RepositoryId)
}

func TestUpdateProjectReembedsOnlyOnProfileChange(t *testing.T) {
	uow := newFakeUnitOfWork()
	pub := &fakePublisher{}
	svc := NewProjectService(&fakeFactory{uow: uow}, pub)

	created, err := svc.Create(context.Background(), &dto.CreateProjectRequest{
		Name:      "scout",
		TechStack: []string{"Go"},
	})
	require.NoError(t, err)
	require.Len(t, pub.payloads, 1)

	// Toggling activity alone does not touch the profile.
	active := false
	_, err = svc.Update(context.Background(), &dto.UpdateProjectRequest{
		Id:        created.Id,
		Name:      "scout",
		TechStack: []string{"Go"},
		IsActive:  &active,
	})
	require.NoError(t, err)
	assert.Len(t, pub.payloads, 1)

	_, err = svc.Update(context.Background(), &dto.UpdateProjectRequest{
		Id:        created.Id,
		Name:      "scout",
		TechStack: []string{"Go", "NATS"},
	})
	require.NoError(t, err)
	assert.Len(t, pub.payloads, 2)
}

func TestShowProjectNotFound(t *testing.T) {
	uow := newFakeUnitOfWork()
	svc := NewProjectService(&fakeFactory{uow: uow}, &fakePublisher{})

	_, err := svc.Show(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteProject(t *testing.T) {
	uow := newFakeUnitOfWork()
	svc := NewProjectService(&fakeFactory{uow: uow}, &fakePublisher{})

	created, err := svc.Create(context.Background(), &dto.CreateProjectRequest{Name: "scout"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), created.Id))
	assert.ErrorIs(t, svc.Delete(context.Background(), created.Id), ErrNotFound)
}
