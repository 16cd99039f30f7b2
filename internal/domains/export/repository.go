package export

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository is the data-access contract for exports
type Repository interface {
	// Create persists a pending export
	Create(ctx context.Context, e *Export) (*Export, error)

	// FindByID returns ErrExportNotFound when missing
	FindByID(ctx context.Context, id uuid.UUID) (*Export, error)

	// ListByProject returns exports newest first
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]*Export, error)

	// MarkCompleted records the artifact; a no-op when the export is
	// already completed
	MarkCompleted(ctx context.Context, id uuid.UUID, fileName, fileURL string) error

	// MarkFailed records the failure reason
	MarkFailed(ctx context.Context, id uuid.UUID, message string) error

	// IncrementDownloadCount bumps the counter atomically and returns
	// the updated row
	IncrementDownloadCount(ctx context.Context, id uuid.UUID) (*Export, error)

	// ReapStale fails every export still pending since before cutoff and
	// returns how many were reaped
	ReapStale(ctx context.Context, cutoff time.Time) (int64, error)

	// Manuscript assembles the project's live text for rendering,
	// honoring the export's chapter range when set
	Manuscript(ctx context.Context, e *Export) (*Manuscript, error)
}
