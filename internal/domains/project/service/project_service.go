package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"writerdesk-backend/internal/domains/project"
	"writerdesk-backend/internal/shared/ownership"
)

type projectService struct {
	repo     project.Repository
	resolver *ownership.Resolver
}

func NewProjectService(repo project.Repository, resolver *ownership.Resolver) project.Service {
	return &projectService{repo: repo, resolver: resolver}
}

func (s *projectService) Create(ctx context.Context, userID uuid.UUID, req *project.ProjectCreateRequest) (*project.ProjectResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, &project.Project{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		return nil, err
	}

	return s.toResponse(ctx, created)
}

func (s *projectService) List(ctx context.Context, userID uuid.UUID) ([]*project.ProjectResponse, error) {
	projects, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	responses := make([]*project.ProjectResponse, 0, len(projects))
	for _, p := range projects {
		resp, err := s.toResponse(ctx, p)
		if err != nil {
			return nil, err
		}
		responses = append(responses, resp)
	}

	return responses, nil
}

func (s *projectService) Get(ctx context.Context, userID, projectID uuid.UUID) (*project.ProjectResponse, error) {
	if _, err := s.resolver.Resolve(ctx, userID, ownership.KindProject, projectID); err != nil {
		return nil, err
	}

	p, err := s.repo.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	return s.toResponse(ctx, p)
}

func (s *projectService) Update(ctx context.Context, userID, projectID uuid.UUID, req *project.ProjectUpdateRequest) (*project.ProjectResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.resolver.Resolve(ctx, userID, ownership.KindProject, projectID); err != nil {
		return nil, err
	}

	p, err := s.repo.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		p.Title = *req.Title
	}
	if req.Description != nil {
		p.Description = *req.Description
	}

	updated, err := s.repo.Update(ctx, p)
	if err != nil {
		return nil, err
	}

	return s.toResponse(ctx, updated)
}

func (s *projectService) Delete(ctx context.Context, userID, projectID uuid.UUID) error {
	if _, err := s.resolver.Resolve(ctx, userID, ownership.KindProject, projectID); err != nil {
		return err
	}

	return s.repo.Delete(ctx, projectID)
}

func (s *projectService) Timeline(ctx context.Context, userID, projectID uuid.UUID) (*project.TimelineResponse, error) {
	if _, err := s.resolver.Resolve(ctx, userID, ownership.KindProject, projectID); err != nil {
		return nil, err
	}

	return s.repo.Timeline(ctx, projectID)
}

func (s *projectService) toResponse(ctx context.Context, p *project.Project) (*project.ProjectResponse, error) {
	stats, err := s.repo.Stats(ctx, p.ID)
	if err != nil {
		return nil, fmt.Errorf("project stats: %w", err)
	}

	return &project.ProjectResponse{
		ID:           p.ID,
		Title:        p.Title,
		Description:  p.Description,
		ChapterCount: stats.ChapterCount,
		WordCount:    stats.WordCount,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}, nil
}
