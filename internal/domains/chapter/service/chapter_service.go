package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"writerdesk-backend/internal/domains/chapter"
	"writerdesk-backend/internal/shared/ownership"
)

type chapterService struct {
	repo     chapter.Repository
	resolver *ownership.Resolver
}

func NewChapterService(repo chapter.Repository, resolver *ownership.Resolver) chapter.Service {
	return &chapterService{repo: repo, resolver: resolver}
}

func (s *chapterService) Create(ctx context.Context, userID, projectID uuid.UUID, req *chapter.ChapterCreateRequest) (*chapter.ChapterResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.resolver.Resolve(ctx, userID, ownership.KindProject, projectID); err != nil {
		return nil, err
	}

	ch := &chapter.Chapter{
		ProjectID:   projectID,
		Title:       req.Title,
		Description: req.Description,
		Notes:       req.Notes,
	}
	if req.Order != nil {
		ch.Order = *req.Order
	}

	created, err := s.repo.Create(ctx, ch)
	if err != nil {
		return nil, err
	}

	return s.toResponse(ctx, created)
}

func (s *chapterService) ListByProject(ctx context.Context, userID, projectID uuid.UUID) ([]*chapter.ChapterResponse, error) {
	if _, err := s.resolver.Resolve(ctx, userID, ownership.KindProject, projectID); err != nil {
		return nil, err
	}

	chapters, err := s.repo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	return s.toResponses(ctx, chapters)
}

func (s *chapterService) Get(ctx context.Context, userID, chapterID uuid.UUID) (*chapter.ChapterResponse, error) {
	if _, err := s.resolver.Resolve(ctx, userID, ownership.KindChapter, chapterID); err != nil {
		return nil, err
	}

	ch, err := s.repo.FindByID(ctx, chapterID)
	if err != nil {
		return nil, err
	}

	return s.toResponse(ctx, ch)
}

func (s *chapterService) Update(ctx context.Context, userID, chapterID uuid.UUID, req *chapter.ChapterUpdateRequest) (*chapter.ChapterResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.resolver.Resolve(ctx, userID, ownership.KindChapter, chapterID); err != nil {
		return nil, err
	}

	ch, err := s.repo.FindByID(ctx, chapterID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		ch.Title = *req.Title
	}
	if req.Description != nil {
		ch.Description = *req.Description
	}
	if req.Notes != nil {
		ch.Notes = *req.Notes
	}
	if req.Order != nil {
		ch.Order = *req.Order
	}
	if req.IsActive != nil {
		ch.IsActive = *req.IsActive
	}

	updated, err := s.repo.Update(ctx, ch)
	if err != nil {
		return nil, err
	}

	return s.toResponse(ctx, updated)
}

func (s *chapterService) Delete(ctx context.Context, userID, chapterID uuid.UUID) error {
	if _, err := s.resolver.Resolve(ctx, userID, ownership.KindChapter, chapterID); err != nil {
		return err
	}

	return s.repo.Delete(ctx, chapterID)
}

func (s *chapterService) Reorder(ctx context.Context, userID, projectID uuid.UUID, req *chapter.ReorderRequest) ([]*chapter.ChapterResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.resolver.Resolve(ctx, userID, ownership.KindProject, projectID); err != nil {
		return nil, err
	}

	if err := s.repo.Reorder(ctx, projectID, req.ChapterIDs); err != nil {
		return nil, err
	}

	chapters, err := s.repo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	return s.toResponses(ctx, chapters)
}

func (s *chapterService) toResponse(ctx context.Context, ch *chapter.Chapter) (*chapter.ChapterResponse, error) {
	stats, err := s.repo.Stats(ctx, ch.ID)
	if err != nil {
		return nil, fmt.Errorf("chapter stats: %w", err)
	}

	return &chapter.ChapterResponse{
		ID:          ch.ID,
		ProjectID:   ch.ProjectID,
		Title:       ch.Title,
		Description: ch.Description,
		Notes:       ch.Notes,
		Order:       ch.Order,
		IsActive:    ch.IsActive,
		SceneCount:  stats.SceneCount,
		WordCount:   stats.WordCount,
		CreatedAt:   ch.CreatedAt,
		UpdatedAt:   ch.UpdatedAt,
	}, nil
}

func (s *chapterService) toResponses(ctx context.Context, chapters []*chapter.Chapter) ([]*chapter.ChapterResponse, error) {
	responses := make([]*chapter.ChapterResponse, 0, len(chapters))
	for _, ch := range chapters {
		resp, err := s.toResponse(ctx, ch)
		if err != nil {
			return nil, err
		}
		responses = append(responses, resp)
	}
	return responses, nil
}
