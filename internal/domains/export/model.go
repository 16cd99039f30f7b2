package export

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Export statuses
const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// Export is one manuscript rendering job and its artifact. It starts
// pending, a worker moves it to completed or failed, and a scheduled
// reaper fails jobs stuck pending for too long.
type Export struct {
	ID                uuid.UUID  `db:"id" json:"id"`
	ProjectID         uuid.UUID  `db:"project_id" json:"project_id"`
	ExportType        string     `db:"export_type" json:"export_type"`
	Status            string     `db:"status" json:"status"`
	FileName          string     `db:"file_name" json:"file_name"`
	FileURL           string     `db:"file_url" json:"file_url"`
	ErrorMessage      string     `db:"error_message" json:"error_message,omitempty"`
	ChapterRangeStart *int       `db:"chapter_range_start" json:"chapter_range_start,omitempty"`
	ChapterRangeEnd   *int       `db:"chapter_range_end" json:"chapter_range_end,omitempty"`
	DownloadCount     int        `db:"download_count" json:"download_count"`
	CreatedAt         time.Time  `db:"created_at" json:"created_at"`
	CompletedAt       *time.Time `db:"completed_at" json:"completed_at,omitempty"`
}

// ArtifactKey is the object-store key of the rendered artifact
func ArtifactKey(e *Export) string {
	return fmt.Sprintf("exports/%s/%s", e.ProjectID, e.FileName)
}

// Manuscript is the assembled project text handed to a renderer. Scene
// content is the live text, so unpublished drafts are what gets exported.
type Manuscript struct {
	ProjectTitle string
	Author       string
	Chapters     []ManuscriptChapter
}

type ManuscriptChapter struct {
	Title  string
	Scenes []ManuscriptScene
}

type ManuscriptScene struct {
	Title   string
	Content string
}
