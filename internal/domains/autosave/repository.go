package autosave

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// SaveResult is the outcome of a snapshot save
type SaveResult struct {
	Version      *AutosaveVersion
	Deduplicated bool
}

// Repository is the data-access contract for the snapshot store
type Repository interface {
	// Save appends a snapshot to the version stream keyed by
	// (project_id, scene_id). Concurrent saves on the same key are
	// serialized, version numbers stay monotonic and gap-free, and a
	// byte-equal save inside the dedup window returns the existing
	// version instead of writing a new one. After an insert the
	// project's history is pruned down to maxVersions rows.
	Save(ctx context.Context, v *AutosaveVersion, dedupWindow time.Duration, maxVersions int) (*SaveResult, error)

	// ListByProject returns versions newest first, at most limit rows.
	// limit <= 0 means no limit.
	ListByProject(ctx context.Context, projectID uuid.UUID, limit int) ([]*AutosaveVersion, error)

	// Latest returns the most recent version across the whole project,
	// ErrVersionNotFound when the project has no saves yet
	Latest(ctx context.Context, projectID uuid.UUID) (*AutosaveVersion, error)

	// LatestForKey returns the most recent version of one stream
	LatestForKey(ctx context.Context, projectID uuid.UUID, sceneID *uuid.UUID) (*AutosaveVersion, error)
}
