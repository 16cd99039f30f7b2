package service

import (
	"context"

	"github.com/google/uuid"

	"writerdesk-backend/internal/domains/scene"
	"writerdesk-backend/internal/shared/ownership"
	"writerdesk-backend/internal/shared/utils"
)

type sceneService struct {
	repo     scene.Repository
	resolver *ownership.Resolver
}

func NewSceneService(repo scene.Repository, resolver *ownership.Resolver) scene.Service {
	return &sceneService{repo: repo, resolver: resolver}
}

func (s *sceneService) Create(ctx context.Context, userID, chapterID uuid.UUID, req *scene.SceneCreateRequest) (*scene.SceneResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.resolver.Resolve(ctx, userID, ownership.KindChapter, chapterID); err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = scene.StatusDraft
	}

	sc := &scene.Scene{
		ChapterID:   chapterID,
		Title:       req.Title,
		Content:     req.Content,
		SceneType:   req.SceneType,
		PointOfView: req.PointOfView,
		Location:    req.Location,
		TimeOfDay:   req.TimeOfDay,
		Status:      status,
		Notes:       req.Notes,
		Tags:        utils.JoinTags(req.Tags),
	}
	if req.Order != nil {
		sc.Order = *req.Order
	}

	created, err := s.repo.Create(ctx, sc)
	if err != nil {
		return nil, err
	}

	return scene.ToResponse(created), nil
}

func (s *sceneService) ListByChapter(ctx context.Context, userID, chapterID uuid.UUID) ([]*scene.SceneResponse, error) {
	if _, err := s.resolver.Resolve(ctx, userID, ownership.KindChapter, chapterID); err != nil {
		return nil, err
	}

	scenes, err := s.repo.ListByChapter(ctx, chapterID)
	if err != nil {
		return nil, err
	}

	responses := make([]*scene.SceneResponse, 0, len(scenes))
	for _, sc := range scenes {
		responses = append(responses, scene.ToResponse(sc))
	}

	return responses, nil
}

func (s *sceneService) Get(ctx context.Context, userID, sceneID uuid.UUID) (*scene.SceneResponse, error) {
	if _, err := s.resolver.Resolve(ctx, userID, ownership.KindScene, sceneID); err != nil {
		return nil, err
	}

	sc, err := s.repo.FindByID(ctx, sceneID)
	if err != nil {
		return nil, err
	}

	return scene.ToResponse(sc), nil
}

func (s *sceneService) Update(ctx context.Context, userID, sceneID uuid.UUID, req *scene.SceneUpdateRequest) (*scene.SceneResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.resolver.Resolve(ctx, userID, ownership.KindScene, sceneID); err != nil {
		return nil, err
	}

	sc, err := s.repo.FindByID(ctx, sceneID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		sc.Title = *req.Title
	}
	if req.Content != nil {
		// Draft mode shields published content from edits
		if sc.IsDraftMode {
			sc.DraftContent = *req.Content
		} else {
			sc.Content = *req.Content
		}
	}
	if req.Order != nil {
		sc.Order = *req.Order
	}
	if req.SceneType != nil {
		sc.SceneType = *req.SceneType
	}
	if req.PointOfView != nil {
		sc.PointOfView = *req.PointOfView
	}
	if req.Location != nil {
		sc.Location = *req.Location
	}
	if req.TimeOfDay != nil {
		sc.TimeOfDay = *req.TimeOfDay
	}
	if req.Status != nil {
		sc.Status = *req.Status
	}
	if req.Notes != nil {
		sc.Notes = *req.Notes
	}
	if req.Tags != nil {
		sc.Tags = utils.JoinTags(*req.Tags)
	}

	updated, err := s.repo.Update(ctx, sc)
	if err != nil {
		return nil, err
	}

	return scene.ToResponse(updated), nil
}

func (s *sceneService) Delete(ctx context.Context, userID, sceneID uuid.UUID) error {
	if _, err := s.resolver.Resolve(ctx, userID, ownership.KindScene, sceneID); err != nil {
		return err
	}

	return s.repo.Delete(ctx, sceneID)
}

func (s *sceneService) Reorder(ctx context.Context, userID, chapterID uuid.UUID, req *scene.ReorderRequest) ([]*scene.SceneResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.resolver.Resolve(ctx, userID, ownership.KindChapter, chapterID); err != nil {
		return nil, err
	}

	if err := s.repo.Reorder(ctx, chapterID, req.SceneIDs); err != nil {
		return nil, err
	}

	scenes, err := s.repo.ListByChapter(ctx, chapterID)
	if err != nil {
		return nil, err
	}

	responses := make([]*scene.SceneResponse, 0, len(scenes))
	for _, sc := range scenes {
		responses = append(responses, scene.ToResponse(sc))
	}

	return responses, nil
}

func (s *sceneService) ToggleDraftMode(ctx context.Context, userID, sceneID uuid.UUID) (*scene.SceneResponse, error) {
	if _, err := s.resolver.Resolve(ctx, userID, ownership.KindScene, sceneID); err != nil {
		return nil, err
	}

	sc, err := s.repo.FindByID(ctx, sceneID)
	if err != nil {
		return nil, err
	}

	if sc.IsDraftMode {
		// Leaving draft mode without publishing discards the draft
		sc.IsDraftMode = false
		sc.DraftContent = ""
	} else {
		sc.IsDraftMode = true
		if sc.DraftContent == "" {
			sc.DraftContent = sc.Content
		}
	}

	updated, err := s.repo.Update(ctx, sc)
	if err != nil {
		return nil, err
	}

	return scene.ToResponse(updated), nil
}

func (s *sceneService) PublishDraft(ctx context.Context, userID, sceneID uuid.UUID) (*scene.SceneResponse, bool, error) {
	if _, err := s.resolver.Resolve(ctx, userID, ownership.KindScene, sceneID); err != nil {
		return nil, false, err
	}

	sc, published, err := s.repo.PublishDraft(ctx, sceneID)
	if err != nil {
		return nil, false, err
	}

	return scene.ToResponse(sc), published, nil
}
