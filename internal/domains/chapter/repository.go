package chapter

import (
	"context"

	"github.com/google/uuid"
)

// Stats aggregates computed fields attached to chapter responses
type Stats struct {
	SceneCount int
	WordCount  int
}

// Repository is the data-access contract for chapters
type Repository interface {
	// Create appends the chapter after the project's current maximum order
	Create(ctx context.Context, ch *Chapter) (*Chapter, error)

	// FindByID returns ErrChapterNotFound when missing
	FindByID(ctx context.Context, id uuid.UUID) (*Chapter, error)

	// ListByProject returns chapters ordered by their position
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]*Chapter, error)

	Update(ctx context.Context, ch *Chapter) (*Chapter, error)

	// Delete removes the chapter and its scenes, drafts and annotations in
	// one transaction. Remaining chapters keep their order values.
	Delete(ctx context.Context, id uuid.UUID) error

	// Reorder assigns dense 1..N order following the given id list. The
	// list must contain every chapter of the project exactly once.
	Reorder(ctx context.Context, projectID uuid.UUID, orderedIDs []uuid.UUID) error

	// Stats computes scene count and live word count on read
	Stats(ctx context.Context, id uuid.UUID) (*Stats, error)
}
