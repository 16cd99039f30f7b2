package draft

import (
	"time"

	"github.com/google/uuid"

	"writerdesk-backend/internal/shared/utils"
)

// Draft is an immutable snapshot of a scene's text, kept independently of
// the autosave history. Once created it is never modified, only deleted.
type Draft struct {
	ID        uuid.UUID `db:"id" json:"id"`
	SceneID   uuid.UUID `db:"scene_id" json:"scene_id"`
	Title     string    `db:"title" json:"title"`
	Content   string    `db:"content" json:"content"`
	IsFinal   bool      `db:"is_final" json:"is_final"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// WordCount is computed on read
func (d *Draft) WordCount() int {
	return utils.CountWords(d.Content)
}
