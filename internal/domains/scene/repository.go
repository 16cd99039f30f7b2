package scene

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the data-access contract for scenes
type Repository interface {
	// Create appends the scene after the chapter's current maximum order
	Create(ctx context.Context, s *Scene) (*Scene, error)

	// FindByID returns ErrSceneNotFound when missing
	FindByID(ctx context.Context, id uuid.UUID) (*Scene, error)

	// ListByChapter returns scenes ordered by their position
	ListByChapter(ctx context.Context, chapterID uuid.UUID) ([]*Scene, error)

	Update(ctx context.Context, s *Scene) (*Scene, error)

	// Delete removes the scene and its drafts and annotations in one
	// transaction. Sibling scenes keep their order values.
	Delete(ctx context.Context, id uuid.UUID) error

	// Reorder assigns dense 1..N order following the given id list. The
	// list must contain every scene of the chapter exactly once.
	Reorder(ctx context.Context, chapterID uuid.UUID, orderedIDs []uuid.UUID) error

	// PublishDraft promotes draft_content into content in one guarded
	// UPDATE. It returns (scene, false) without modifying anything when
	// the scene is not in draft mode or the draft is empty.
	PublishDraft(ctx context.Context, id uuid.UUID) (*Scene, bool, error)
}
