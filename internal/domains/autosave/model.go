package autosave

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// AutosaveVersion is one immutable snapshot in a project's save history.
// Versions are numbered per key: the pair (project_id, scene_id) where
// scene_id may be null for project-level saves.
type AutosaveVersion struct {
	ID            uuid.UUID  `db:"id" json:"id"`
	ProjectID     uuid.UUID  `db:"project_id" json:"project_id"`
	SceneID       *uuid.UUID `db:"scene_id" json:"scene_id,omitempty"`
	VersionNumber int        `db:"version_number" json:"version_number"`
	Content       string     `db:"content" json:"content"`
	WordCount     int        `db:"word_count" json:"word_count"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
}

// Key identifies the autosave stream this version belongs to
func (v *AutosaveVersion) Key() string {
	return StreamKey(v.ProjectID, v.SceneID)
}

// IsDuplicateOf reports whether saving content at now would duplicate
// this version: byte-equal text saved inside the dedup window.
func (v *AutosaveVersion) IsDuplicateOf(content string, now time.Time, window time.Duration) bool {
	return v.Content == content && now.Sub(v.CreatedAt) < window
}

// StreamKey builds the canonical key for a (project, scene) pair. The
// same string feeds the advisory lock and the cache entry.
func StreamKey(projectID uuid.UUID, sceneID *uuid.UUID) string {
	if sceneID == nil {
		return fmt.Sprintf("autosave:%s:-", projectID)
	}
	return fmt.Sprintf("autosave:%s:%s", projectID, sceneID)
}
