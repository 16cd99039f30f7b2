package service

import (
	"context"

	"github.com/google/uuid"

	"writerdesk-backend/internal/domains/annotation"
	"writerdesk-backend/internal/shared/ownership"
)

type annotationService struct {
	repo     annotation.Repository
	resolver *ownership.Resolver
}

func NewAnnotationService(repo annotation.Repository, resolver *ownership.Resolver) annotation.Service {
	return &annotationService{repo: repo, resolver: resolver}
}

func (s *annotationService) CreateForScene(ctx context.Context, userID, sceneID uuid.UUID, req *annotation.AnnotationCreateRequest) (*annotation.AnnotationResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.resolver.Resolve(ctx, userID, ownership.KindScene, sceneID); err != nil {
		return nil, err
	}

	return s.create(ctx, &annotation.Annotation{
		SceneID:     &sceneID,
		StartOffset: req.StartOffset,
		EndOffset:   req.EndOffset,
		Content:     req.Content,
		Priority:    defaultPriority(req.Priority),
	})
}

func (s *annotationService) CreateForDraft(ctx context.Context, userID, draftID uuid.UUID, req *annotation.AnnotationCreateRequest) (*annotation.AnnotationResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.resolver.Resolve(ctx, userID, ownership.KindDraft, draftID); err != nil {
		return nil, err
	}

	return s.create(ctx, &annotation.Annotation{
		DraftID:     &draftID,
		StartOffset: req.StartOffset,
		EndOffset:   req.EndOffset,
		Content:     req.Content,
		Priority:    defaultPriority(req.Priority),
	})
}

func (s *annotationService) create(ctx context.Context, a *annotation.Annotation) (*annotation.AnnotationResponse, error) {
	created, err := s.repo.Create(ctx, a)
	if err != nil {
		return nil, err
	}
	return annotation.ToResponse(created), nil
}

func (s *annotationService) ListByScene(ctx context.Context, userID, sceneID uuid.UUID) ([]*annotation.AnnotationResponse, error) {
	if _, err := s.resolver.Resolve(ctx, userID, ownership.KindScene, sceneID); err != nil {
		return nil, err
	}

	annotations, err := s.repo.ListByScene(ctx, sceneID)
	if err != nil {
		return nil, err
	}

	return toResponses(annotations), nil
}

func (s *annotationService) ListByDraft(ctx context.Context, userID, draftID uuid.UUID) ([]*annotation.AnnotationResponse, error) {
	if _, err := s.resolver.Resolve(ctx, userID, ownership.KindDraft, draftID); err != nil {
		return nil, err
	}

	annotations, err := s.repo.ListByDraft(ctx, draftID)
	if err != nil {
		return nil, err
	}

	return toResponses(annotations), nil
}

func (s *annotationService) Update(ctx context.Context, userID, annotationID uuid.UUID, req *annotation.AnnotationUpdateRequest) (*annotation.AnnotationResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.resolver.Resolve(ctx, userID, ownership.KindAnnotation, annotationID); err != nil {
		return nil, err
	}

	a, err := s.repo.FindByID(ctx, annotationID)
	if err != nil {
		return nil, err
	}

	if req.Content != nil {
		a.Content = *req.Content
	}
	if req.Priority != nil {
		a.Priority = *req.Priority
	}

	updated, err := s.repo.Update(ctx, a)
	if err != nil {
		return nil, err
	}

	return annotation.ToResponse(updated), nil
}

func (s *annotationService) Resolve(ctx context.Context, userID, annotationID uuid.UUID) (*annotation.AnnotationResponse, error) {
	if _, err := s.resolver.Resolve(ctx, userID, ownership.KindAnnotation, annotationID); err != nil {
		return nil, err
	}

	resolved, err := s.repo.Resolve(ctx, annotationID)
	if err != nil {
		return nil, err
	}

	return annotation.ToResponse(resolved), nil
}

func (s *annotationService) Delete(ctx context.Context, userID, annotationID uuid.UUID) error {
	if _, err := s.resolver.Resolve(ctx, userID, ownership.KindAnnotation, annotationID); err != nil {
		return err
	}

	return s.repo.Delete(ctx, annotationID)
}

func defaultPriority(priority string) string {
	if priority == "" {
		return annotation.PriorityMedium
	}
	return priority
}

func toResponses(annotations []*annotation.Annotation) []*annotation.AnnotationResponse {
	responses := make([]*annotation.AnnotationResponse, 0, len(annotations))
	for _, a := range annotations {
		responses = append(responses, annotation.ToResponse(a))
	}
	return responses
}
