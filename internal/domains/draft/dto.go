package draft

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// DraftCreateRequest is the payload for POST /scenes/:id/drafts
type DraftCreateRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	IsFinal bool   `json:"is_final"`
}

func (r DraftCreateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Length(0, 255)),
		validation.Field(&r.Content, validation.Required.Error("content is required")),
	)
}

// DraftResponse is the public draft representation
type DraftResponse struct {
	ID        uuid.UUID `json:"id"`
	SceneID   uuid.UUID `json:"scene_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	IsFinal   bool      `json:"is_final"`
	WordCount int       `json:"word_count"`
	CreatedAt time.Time `json:"created_at"`
}

func ToResponse(d *Draft) *DraftResponse {
	return &DraftResponse{
		ID:        d.ID,
		SceneID:   d.SceneID,
		Title:     d.Title,
		Content:   d.Content,
		IsFinal:   d.IsFinal,
		WordCount: d.WordCount(),
		CreatedAt: d.CreatedAt,
	}
}
