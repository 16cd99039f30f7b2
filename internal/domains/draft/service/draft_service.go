package service

import (
	"context"

	"github.com/google/uuid"

	"writerdesk-backend/internal/domains/draft"
	"writerdesk-backend/internal/shared/ownership"
)

type draftService struct {
	repo     draft.Repository
	resolver *ownership.Resolver
}

func NewDraftService(repo draft.Repository, resolver *ownership.Resolver) draft.Service {
	return &draftService{repo: repo, resolver: resolver}
}

func (s *draftService) Create(ctx context.Context, userID, sceneID uuid.UUID, req *draft.DraftCreateRequest) (*draft.DraftResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.resolver.Resolve(ctx, userID, ownership.KindScene, sceneID); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, &draft.Draft{
		SceneID: sceneID,
		Title:   req.Title,
		Content: req.Content,
		IsFinal: req.IsFinal,
	})
	if err != nil {
		return nil, err
	}

	return draft.ToResponse(created), nil
}

func (s *draftService) ListByScene(ctx context.Context, userID, sceneID uuid.UUID) ([]*draft.DraftResponse, error) {
	if _, err := s.resolver.Resolve(ctx, userID, ownership.KindScene, sceneID); err != nil {
		return nil, err
	}

	drafts, err := s.repo.ListByScene(ctx, sceneID)
	if err != nil {
		return nil, err
	}

	responses := make([]*draft.DraftResponse, 0, len(drafts))
	for _, d := range drafts {
		responses = append(responses, draft.ToResponse(d))
	}

	return responses, nil
}

func (s *draftService) Get(ctx context.Context, userID, draftID uuid.UUID) (*draft.DraftResponse, error) {
	if _, err := s.resolver.Resolve(ctx, userID, ownership.KindDraft, draftID); err != nil {
		return nil, err
	}

	d, err := s.repo.FindByID(ctx, draftID)
	if err != nil {
		return nil, err
	}

	return draft.ToResponse(d), nil
}

func (s *draftService) Delete(ctx context.Context, userID, draftID uuid.UUID) error {
	if _, err := s.resolver.Resolve(ctx, userID, ownership.KindDraft, draftID); err != nil {
		return err
	}

	return s.repo.Delete(ctx, draftID)
}
