package service

import (
	"context"
	"encoding/json"
	"log"

	"gitscout-be/internal/dto"
	"gitscout-be/internal/repository/specification"
	"gitscout-be/internal/repository/unitofwork"
	"gitscout-be/pkg/embedding"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub            *gochannel.GoChannel
	topicName         string
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.EmbeddingProvider
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.EmbeddingProvider,
) IConsumerService {
	return &consumerService{
		pubSub:            pubSub,
		topicName:         topicName,
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishEmbedMessage
	err := json.Unmarshal(msg.Payload, &payload)
	if err != nil {
		log.Printf("[ERROR] Failed to unmarshal message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	switch {
	case payload.RepositoryId != uuid.Nil:
		cs.embedRepository(ctx, msg, payload.RepositoryId)
	case payload.ProjectId != uuid.Nil:
		cs.embedProject(ctx, msg, payload.ProjectId)
	default:
		log.Printf("[ERROR] Embed message carries no id")
		msg.Ack()
	}
}

func (cs *consumerService) embedRepository(ctx context.Context, msg *message.Message, id uuid.UUID) {
	log.Printf("[INFO] Processing repository embedding for %s", id)

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	repo, err := uow.RepoRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		log.Printf("[ERROR] Failed to get repository %s: %v", id, err)
		msg.Nack()
		return
	}
	if repo == nil {
		log.Printf("[ERROR] Repository not found: %s", id)
		msg.Ack() // Row deleted? Ack.
		return
	}

	summary := ""
	if repo.Analysis != nil {
		summary = repo.Analysis.Summary
	}
	content := embedding.RepoSummary(repo.FullName, repo.Description, repo.Language, repo.Topics, summary)

	res, err := cs.embeddingProvider.Generate(content, embedding.TaskTypeDocument)
	if err != nil {
		log.Printf("[ERROR] Failed to generate embedding for repository %s: %v", id, err)
		msg.Nack()
		return
	}

	if err := uow.RepoRepository().UpdateEmbedding(ctx, repo.Id, res.Embedding.Values); err != nil {
		log.Printf("[ERROR] Failed to store embedding for repository %s: %v", id, err)
		msg.Nack()
		return
	}

	msg.Ack()
}

func (cs *consumerService) embedProject(ctx context.Context, msg *message.Message, id uuid.UUID) {
	log.Printf("[INFO] Processing project embedding for %s", id)

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	project, err := uow.ProjectRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		log.Printf("[ERROR] Failed to get project %s: %v", id, err)
		msg.Nack()
		return
	}
	if project == nil {
		log.Printf("[ERROR] Project not found: %s", id)
		msg.Ack()
		return
	}

	content := embedding.ProjectSummary(
		project.Name,
		project.Description,
		project.TechStack,
		project.Tags,
		project.Goals,
		"",
	)

	res, err := cs.embeddingProvider.Generate(content, embedding.TaskTypeQuery)
	if err != nil {
		log.Printf("[ERROR] Failed to generate embedding for project %s: %v", id, err)
		msg.Nack()
		return
	}

	if err := uow.ProjectRepository().UpdateEmbedding(ctx, project.Id, res.Embedding.Values); err != nil {
		log.Printf("[ERROR] Failed to store embedding for project %s: %v", id, err)
		msg.Nack()
		return
	}

	msg.Ack()
}
