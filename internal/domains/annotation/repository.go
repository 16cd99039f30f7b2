package annotation

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the data-access contract for annotations
type Repository interface {
	// Create persists the annotation. Exactly one of SceneID and DraftID
	// must be set; the service guarantees this.
	Create(ctx context.Context, a *Annotation) (*Annotation, error)

	// FindByID returns ErrAnnotationNotFound when missing
	FindByID(ctx context.Context, id uuid.UUID) (*Annotation, error)

	// ListByScene returns annotations anchored to the scene, oldest first
	ListByScene(ctx context.Context, sceneID uuid.UUID) ([]*Annotation, error)

	// ListByDraft returns annotations anchored to the draft, oldest first
	ListByDraft(ctx context.Context, draftID uuid.UUID) ([]*Annotation, error)

	Update(ctx context.Context, a *Annotation) (*Annotation, error)

	// Resolve marks the annotation resolved. Resolving an already
	// resolved annotation is a no-op.
	Resolve(ctx context.Context, id uuid.UUID) (*Annotation, error)

	Delete(ctx context.Context, id uuid.UUID) error
}
