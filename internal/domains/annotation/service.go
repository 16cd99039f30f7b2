package annotation

import (
	"context"

	"github.com/google/uuid"
)

// Service is the business contract for annotations
type Service interface {
	// CreateForScene anchors a new annotation to a scene
	CreateForScene(ctx context.Context, userID, sceneID uuid.UUID, req *AnnotationCreateRequest) (*AnnotationResponse, error)

	// CreateForDraft anchors a new annotation to a draft
	CreateForDraft(ctx context.Context, userID, draftID uuid.UUID, req *AnnotationCreateRequest) (*AnnotationResponse, error)

	ListByScene(ctx context.Context, userID, sceneID uuid.UUID) ([]*AnnotationResponse, error)
	ListByDraft(ctx context.Context, userID, draftID uuid.UUID) ([]*AnnotationResponse, error)
	Update(ctx context.Context, userID, annotationID uuid.UUID, req *AnnotationUpdateRequest) (*AnnotationResponse, error)

	// Resolve marks the annotation resolved; resolving twice is a no-op
	Resolve(ctx context.Context, userID, annotationID uuid.UUID) (*AnnotationResponse, error)

	Delete(ctx context.Context, userID, annotationID uuid.UUID) error
}
