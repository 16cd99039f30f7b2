package chapter

import (
	"context"

	"github.com/google/uuid"
)

// Service is the business contract for chapters. Creation and listing
// resolve ownership through the project; the rest resolve through the
// chapter itself.
type Service interface {
	Create(ctx context.Context, userID, projectID uuid.UUID, req *ChapterCreateRequest) (*ChapterResponse, error)
	ListByProject(ctx context.Context, userID, projectID uuid.UUID) ([]*ChapterResponse, error)
	Get(ctx context.Context, userID, chapterID uuid.UUID) (*ChapterResponse, error)
	Update(ctx context.Context, userID, chapterID uuid.UUID, req *ChapterUpdateRequest) (*ChapterResponse, error)
	Delete(ctx context.Context, userID, chapterID uuid.UUID) error
	Reorder(ctx context.Context, userID, projectID uuid.UUID, req *ReorderRequest) ([]*ChapterResponse, error)
}
