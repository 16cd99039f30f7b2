package annotation

import (
	"time"

	"github.com/google/uuid"
)

// Annotation priorities
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Annotation is an inline note anchored to a character range of either a
// scene or a draft, never both. Offsets are positions in the target text
// at the time the note was made; they are not adjusted when the text
// changes afterwards.
type Annotation struct {
	ID          uuid.UUID  `db:"id" json:"id"`
	SceneID     *uuid.UUID `db:"scene_id" json:"scene_id,omitempty"`
	DraftID     *uuid.UUID `db:"draft_id" json:"draft_id,omitempty"`
	StartOffset int        `db:"start_offset" json:"start_offset"`
	EndOffset   int        `db:"end_offset" json:"end_offset"`
	Content     string     `db:"content" json:"content"`
	Priority    string     `db:"priority" json:"priority"`
	IsResolved  bool       `db:"is_resolved" json:"is_resolved"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updated_at"`
}
