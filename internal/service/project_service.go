package service

import (
	"context"
	"encoding/json"
	"time"

	"gitscout-be/internal/dto"
	"gitscout-be/internal/entity"
	"gitscout-be/internal/repository/specification"
	"gitscout-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IProjectService interface {
	Create(ctx context.Context, req *dto.CreateProjectRequest) (*dto.CreateProjectResponse, error)
	Show(ctx context.Context, id uuid.UUID) (*dto.ShowProjectResponse, error)
	List(ctx context.Context) ([]*dto.ShowProjectResponse, error)
	Update(ctx context.Context, req *dto.UpdateProjectRequest) (*dto.UpdateProjectResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type projectService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
}

func NewProjectService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
) IProjectService {
	return &projectService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
	}
}

func (s *projectService) Create(ctx context.Context, req *dto.CreateProjectRequest) (*dto.CreateProjectResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	project := entity.Project{
		Id:          uuid.New(),
		Name:        req.Name,
		Description: req.Description,
		TechStack:   req.TechStack,
		Tags:        req.Tags,
		Goals:       req.Goals,
		IsActive:    true,
		CreatedAt:   time.Now(),
	}

	if err := uow.ProjectRepository().Create(ctx, &project); err != nil {
		return nil, err
	}

	if err := s.publishEmbed(ctx, project.Id); err != nil {
		return nil, err
	}

	return &dto.CreateProjectResponse{Id: project.Id}, nil
}

func (s *projectService) Show(ctx context.Context, id uuid.UUID) (*dto.ShowProjectResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	project, err := uow.ProjectRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, ErrNotFound
	}

	return projectToResponse(project), nil
}

func (s *projectService) List(ctx context.Context) ([]*dto.ShowProjectResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	projects, err := uow.ProjectRepository().FindAll(ctx, specification.OrderBy{Field: "created_at", Desc: true})
	if err != nil {
		return nil, err
	}

	res := make([]*dto.ShowProjectResponse, 0, len(projects))
	for _, p := range projects {
		res = append(res, projectToResponse(p))
	}
	return res, nil
}

func (s *projectService) Update(ctx context.Context, req *dto.UpdateProjectRequest) (*dto.UpdateProjectResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	project, err := uow.ProjectRepository().FindOne(ctx, specification.ByID{ID: req.Id})
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, ErrNotFound
	}

	// A profile change invalidates the stored vector until the worker
	// recomputes it.
	profileChanged := project.Name != req.Name ||
		project.Description != req.Description ||
		project.Goals != req.Goals ||
		!equalStrings(project.TechStack, req.TechStack) ||
		!equalStrings(project.Tags, req.Tags)

	project.Name = req.Name
	project.Description = req.Description
	project.TechStack = req.TechStack
	project.Tags = req.Tags
	project.Goals = req.Goals
	if req.IsActive != nil {
		project.IsActive = *req.IsActive
	}
	now := time.Now()
	project.UpdatedAt = &now

	if err := uow.ProjectRepository().Update(ctx, project); err != nil {
		return nil, err
	}

	if profileChanged {
		if err := s.publishEmbed(ctx, project.Id); err != nil {
			return nil, err
		}
	}

	return &dto.UpdateProjectResponse{Id: project.Id}, nil
}

func (s *projectService) Delete(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	project, err := uow.ProjectRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return err
	}
	if project == nil {
		return ErrNotFound
	}

	return uow.ProjectRepository().Delete(ctx, id)
}

func (s *projectService) publishEmbed(ctx context.Context, projectId uuid.UUID) error {
	payload, err := json.Marshal(dto.PublishEmbedMessage{ProjectId: projectId})
	if err != nil {
		return err
	}
	return s.publisherService.Publish(ctx, payload)
}

func projectToResponse(p *entity.Project) *dto.ShowProjectResponse {
	return &dto.ShowProjectResponse{
		Id:           p.Id,
		Name:         p.Name,
		Description:  p.Description,
		TechStack:    p.TechStack,
		Tags:         p.Tags,
		Goals:        p.Goals,
		HasEmbedding: p.Embedding != nil,
		IsActive:     p.IsActive,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
