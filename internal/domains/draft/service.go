package draft

import (
	"context"

	"github.com/google/uuid"
)

// Service is the business contract for drafts
type Service interface {
	Create(ctx context.Context, userID, sceneID uuid.UUID, req *DraftCreateRequest) (*DraftResponse, error)
	ListByScene(ctx context.Context, userID, sceneID uuid.UUID) ([]*DraftResponse, error)
	Get(ctx context.Context, userID, draftID uuid.UUID) (*DraftResponse, error)
	Delete(ctx context.Context, userID, draftID uuid.UUID) error
}
