package autosave

import (
	"context"

	"github.com/google/uuid"
)

// Service is the business contract for the snapshot store
type Service interface {
	// Save records a snapshot, folding byte-equal saves inside the dedup
	// window into the existing version
	Save(ctx context.Context, userID uuid.UUID, req *AutosaveRequest) (*SaveResponse, error)

	// ListVersions returns the project's history newest first
	ListVersions(ctx context.Context, userID, projectID uuid.UUID, limit int) ([]*VersionResponse, error)

	// Latest returns the most recent snapshot across the project
	Latest(ctx context.Context, userID, projectID uuid.UUID) (*VersionResponse, error)
}
