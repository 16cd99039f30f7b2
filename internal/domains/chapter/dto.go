package chapter

import (
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// ChapterCreateRequest is the payload for POST /projects/:id/chapters.
// Order is optional; when absent the chapter is appended after the
// project's current maximum.
type ChapterCreateRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Notes       string `json:"notes"`
	Order       *int   `json:"order"`
}

func (r ChapterCreateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required.Error("title is required"), validation.Length(1, 255)),
		validation.Field(&r.Description, validation.Length(0, 5000)),
		validation.Field(&r.Order, validation.By(orderRule(r.Order))),
	)
}

// ChapterUpdateRequest is the payload for PUT /chapters/:id.
// Nil fields are left unchanged.
type ChapterUpdateRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Notes       *string `json:"notes"`
	Order       *int    `json:"order"`
	IsActive    *bool   `json:"is_active"`
}

func (r ChapterUpdateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.NilOrNotEmpty, validation.Length(1, 255)),
		validation.Field(&r.Description, validation.Length(0, 5000)),
		validation.Field(&r.Order, validation.By(orderRule(r.Order))),
	)
}

// orderRule checks the pointer itself; Min would skip a dereferenced zero
func orderRule(v *int) validation.RuleFunc {
	return func(interface{}) error {
		if v != nil && *v < 1 {
			return errors.New("must be no less than 1")
		}
		return nil
	}
}

// ReorderRequest carries the complete chapter id list in its new order
type ReorderRequest struct {
	ChapterIDs []uuid.UUID `json:"chapter_ids"`
}

func (r ReorderRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ChapterIDs, validation.Required.Error("chapter_ids is required")),
	)
}

// ChapterResponse is the public chapter representation
type ChapterResponse struct {
	ID          uuid.UUID `json:"id"`
	ProjectID   uuid.UUID `json:"project_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Notes       string    `json:"notes"`
	Order       int       `json:"order"`
	IsActive    bool      `json:"is_active"`
	SceneCount  int       `json:"scene_count"`
	WordCount   int       `json:"word_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
