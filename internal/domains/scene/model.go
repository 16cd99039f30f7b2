package scene

import (
	"time"

	"github.com/google/uuid"

	"writerdesk-backend/internal/shared/utils"
)

// Scene statuses
const (
	StatusDraft      = "draft"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
)

// Scene is the unit of writing inside a chapter. While draft mode is on,
// edits land in DraftContent and Content stays untouched until the draft
// is published.
type Scene struct {
	ID           uuid.UUID `db:"id" json:"id"`
	ChapterID    uuid.UUID `db:"chapter_id" json:"chapter_id"`
	Title        string    `db:"title" json:"title"`
	Content      string    `db:"content" json:"content"`
	Order        int       `db:"order" json:"order"`
	SceneType    string    `db:"scene_type" json:"scene_type"`
	PointOfView  string    `db:"point_of_view" json:"point_of_view"`
	Location     string    `db:"location" json:"location"`
	TimeOfDay    string    `db:"time_of_day" json:"time_of_day"`
	Status       string    `db:"status" json:"status"`
	Notes        string    `db:"notes" json:"notes"`
	Tags         string    `db:"tags" json:"-"`
	IsDraftMode  bool      `db:"is_draft_mode" json:"is_draft_mode"`
	DraftContent string    `db:"draft_content" json:"draft_content"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`

	// AnnotationCount is filled by the repository on read
	AnnotationCount int `db:"annotation_count" json:"-"`
}

// LiveContent is the text a reader currently sees: the draft while draft
// mode is on and the draft is non-empty, otherwise the published content.
func (s *Scene) LiveContent() string {
	if s.IsDraftMode && s.DraftContent != "" {
		return s.DraftContent
	}
	return s.Content
}

// WordCount is computed on read from the live content
func (s *Scene) WordCount() int {
	return utils.CountWords(s.LiveContent())
}

// TagList splits the stored comma-joined tags
func (s *Scene) TagList() []string {
	return utils.SplitTags(s.Tags)
}
