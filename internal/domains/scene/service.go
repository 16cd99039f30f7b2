package scene

import (
	"context"

	"github.com/google/uuid"
)

// Service is the business contract for scenes. Creation, listing and
// reordering resolve ownership through the chapter; the rest resolve
// through the scene itself.
type Service interface {
	Create(ctx context.Context, userID, chapterID uuid.UUID, req *SceneCreateRequest) (*SceneResponse, error)
	ListByChapter(ctx context.Context, userID, chapterID uuid.UUID) ([]*SceneResponse, error)
	Get(ctx context.Context, userID, sceneID uuid.UUID) (*SceneResponse, error)

	// Update routes content edits to draft_content while draft mode is on
	Update(ctx context.Context, userID, sceneID uuid.UUID, req *SceneUpdateRequest) (*SceneResponse, error)

	Delete(ctx context.Context, userID, sceneID uuid.UUID) error
	Reorder(ctx context.Context, userID, chapterID uuid.UUID, req *ReorderRequest) ([]*SceneResponse, error)

	// ToggleDraftMode flips draft mode. Enabling seeds the draft with the
	// published content; disabling discards the unpublished draft.
	ToggleDraftMode(ctx context.Context, userID, sceneID uuid.UUID) (*SceneResponse, error)

	// PublishDraft promotes the draft into published content. The bool
	// reports whether anything was published; when false the scene is
	// returned unchanged.
	PublishDraft(ctx context.Context, userID, sceneID uuid.UUID) (*SceneResponse, bool, error)
}
