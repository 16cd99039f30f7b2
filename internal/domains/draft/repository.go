package draft

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the data-access contract for drafts. Drafts are
// write-once: there is no update.
type Repository interface {
	Create(ctx context.Context, d *Draft) (*Draft, error)

	// FindByID returns ErrDraftNotFound when missing
	FindByID(ctx context.Context, id uuid.UUID) (*Draft, error)

	// ListByScene returns drafts newest first
	ListByScene(ctx context.Context, sceneID uuid.UUID) ([]*Draft, error)

	// Delete removes the draft and any annotations attached to it
	Delete(ctx context.Context, id uuid.UUID) error
}
