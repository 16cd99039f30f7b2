package export

import (
	"context"

	"github.com/google/uuid"
)

// TaskEnqueuer schedules rendering work for a pending export
type TaskEnqueuer interface {
	EnqueueExportRender(ctx context.Context, exportID uuid.UUID) error
}

// ArtifactStorage is the object store holding rendered artifacts
type ArtifactStorage interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
	Download(ctx context.Context, key string) ([]byte, error)
}

// Service is the business contract for exports
type Service interface {
	// Start validates the type, records a pending export and enqueues
	// the rendering task
	Start(ctx context.Context, userID, projectID uuid.UUID, req *ExportCreateRequest) (*ExportResponse, error)

	ListByProject(ctx context.Context, userID, projectID uuid.UUID) ([]*ExportResponse, error)
	Get(ctx context.Context, userID, exportID uuid.UUID) (*ExportResponse, error)

	// Download streams a completed artifact and bumps the download count
	Download(ctx context.Context, userID, exportID uuid.UUID) (*DownloadResult, error)
}
