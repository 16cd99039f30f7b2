package project

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// ProjectCreateRequest is the payload for POST /projects
type ProjectCreateRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (r ProjectCreateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required.Error("title is required"), validation.Length(1, 255)),
		validation.Field(&r.Description, validation.Length(0, 5000)),
	)
}

// ProjectUpdateRequest is the payload for PUT /projects/:id.
// Nil fields are left unchanged.
type ProjectUpdateRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

func (r ProjectUpdateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.NilOrNotEmpty, validation.Length(1, 255)),
		validation.Field(&r.Description, validation.Length(0, 5000)),
	)
}

// ProjectResponse is the public project representation
type ProjectResponse struct {
	ID           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	ChapterCount int       `json:"chapter_count"`
	WordCount    int       `json:"word_count"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Timeline DTOs: ordered chapters with their ordered scenes

type TimelineScene struct {
	SceneID   uuid.UUID `json:"scene_id"`
	Title     string    `json:"title"`
	Order     int       `json:"order"`
	WordCount int       `json:"word_count"`
	CreatedAt time.Time `json:"created_at"`
}

type TimelineChapter struct {
	ChapterID uuid.UUID       `json:"chapter_id"`
	Title     string          `json:"title"`
	Order     int             `json:"order"`
	Scenes    []TimelineScene `json:"scenes"`
}

type TimelineResponse struct {
	ProjectID    uuid.UUID         `json:"project_id"`
	ProjectTitle string            `json:"project_title"`
	Timeline     []TimelineChapter `json:"timeline"`
}
