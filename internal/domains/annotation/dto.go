package annotation

import (
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// AnnotationCreateRequest is the payload for POST /scenes/:id/annotations
// and POST /drafts/:id/annotations. The target comes from the URL.
type AnnotationCreateRequest struct {
	StartOffset int    `json:"start_offset"`
	EndOffset   int    `json:"end_offset"`
	Content     string `json:"content"`
	Priority    string `json:"priority"`
}

func (r AnnotationCreateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.StartOffset, validation.Min(0)),
		validation.Field(&r.EndOffset, validation.Min(0), validation.By(func(interface{}) error {
			if r.EndOffset < r.StartOffset {
				return errors.New("must not be before start_offset")
			}
			return nil
		})),
		validation.Field(&r.Content, validation.Required.Error("content is required")),
		validation.Field(&r.Priority, validation.In(PriorityLow, PriorityMedium, PriorityHigh)),
	)
}

// AnnotationUpdateRequest is the payload for PUT /annotations/:id.
// Nil fields are left unchanged; offsets are not updatable.
type AnnotationUpdateRequest struct {
	Content  *string `json:"content"`
	Priority *string `json:"priority"`
}

func (r AnnotationUpdateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Content, validation.NilOrNotEmpty),
		validation.Field(&r.Priority, validation.In(PriorityLow, PriorityMedium, PriorityHigh)),
	)
}

// AnnotationResponse is the public annotation representation
type AnnotationResponse struct {
	ID          uuid.UUID  `json:"id"`
	SceneID     *uuid.UUID `json:"scene_id,omitempty"`
	DraftID     *uuid.UUID `json:"draft_id,omitempty"`
	StartOffset int        `json:"start_offset"`
	EndOffset   int        `json:"end_offset"`
	Content     string     `json:"content"`
	Priority    string     `json:"priority"`
	IsResolved  bool       `json:"is_resolved"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func ToResponse(a *Annotation) *AnnotationResponse {
	return &AnnotationResponse{
		ID:          a.ID,
		SceneID:     a.SceneID,
		DraftID:     a.DraftID,
		StartOffset: a.StartOffset,
		EndOffset:   a.EndOffset,
		Content:     a.Content,
		Priority:    a.Priority,
		IsResolved:  a.IsResolved,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}
