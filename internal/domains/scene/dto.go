package scene

import (
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// SceneCreateRequest is the payload for POST /chapters/:id/scenes.
// Order is optional; when absent the scene is appended after the
// chapter's current maximum.
type SceneCreateRequest struct {
	Title       string   `json:"title"`
	Content     string   `json:"content"`
	Order       *int     `json:"order"`
	SceneType   string   `json:"scene_type"`
	PointOfView string   `json:"point_of_view"`
	Location    string   `json:"location"`
	TimeOfDay   string   `json:"time_of_day"`
	Status      string   `json:"status"`
	Notes       string   `json:"notes"`
	Tags        []string `json:"tags"`
}

func (r SceneCreateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required.Error("title is required"), validation.Length(1, 255)),
		validation.Field(&r.Order, validation.By(orderRule(r.Order))),
		validation.Field(&r.Status, validation.In(StatusDraft, StatusInProgress, StatusCompleted)),
		validation.Field(&r.SceneType, validation.Length(0, 100)),
		validation.Field(&r.PointOfView, validation.Length(0, 100)),
		validation.Field(&r.Location, validation.Length(0, 255)),
		validation.Field(&r.TimeOfDay, validation.Length(0, 100)),
	)
}

// SceneUpdateRequest is the payload for PUT /scenes/:id.
// Nil fields are left unchanged. While the scene is in draft mode,
// content updates are routed to draft_content.
type SceneUpdateRequest struct {
	Title       *string   `json:"title"`
	Content     *string   `json:"content"`
	Order       *int      `json:"order"`
	SceneType   *string   `json:"scene_type"`
	PointOfView *string   `json:"point_of_view"`
	Location    *string   `json:"location"`
	TimeOfDay   *string   `json:"time_of_day"`
	Status      *string   `json:"status"`
	Notes       *string   `json:"notes"`
	Tags        *[]string `json:"tags"`
}

func (r SceneUpdateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.NilOrNotEmpty, validation.Length(1, 255)),
		validation.Field(&r.Order, validation.By(orderRule(r.Order))),
		validation.Field(&r.Status, validation.In(StatusDraft, StatusInProgress, StatusCompleted)),
		validation.Field(&r.SceneType, validation.Length(0, 100)),
		validation.Field(&r.PointOfView, validation.Length(0, 100)),
		validation.Field(&r.Location, validation.Length(0, 255)),
		validation.Field(&r.TimeOfDay, validation.Length(0, 100)),
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

// ReorderRequest carries the complete scene id list in its new order
type ReorderRequest struct {
	SceneIDs []uuid.UUID `json:"scene_ids"`
}

func (r ReorderRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.SceneIDs, validation.Required.Error("scene_ids is required")),
	)
}

// SceneResponse is the public scene representation
type SceneResponse struct {
	ID              uuid.UUID `json:"id"`
	ChapterID       uuid.UUID `json:"chapter_id"`
	Title           string    `json:"title"`
	Content         string    `json:"content"`
	Order           int       `json:"order"`
	SceneType       string    `json:"scene_type"`
	PointOfView     string    `json:"point_of_view"`
	Location        string    `json:"location"`
	TimeOfDay       string    `json:"time_of_day"`
	Status          string    `json:"status"`
	Notes           string    `json:"notes"`
	Tags            []string  `json:"tags"`
	IsDraftMode     bool      `json:"is_draft_mode"`
	DraftContent    string    `json:"draft_content"`
	WordCount       int       `json:"word_count"`
	AnnotationCount int       `json:"annotation_count"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// ToResponse builds the public representation with computed fields
func ToResponse(s *Scene) *SceneResponse {
	return &SceneResponse{
		ID:              s.ID,
		ChapterID:       s.ChapterID,
		Title:           s.Title,
		Content:         s.Content,
		Order:           s.Order,
		SceneType:       s.SceneType,
		PointOfView:     s.PointOfView,
		Location:        s.Location,
		TimeOfDay:       s.TimeOfDay,
		Status:          s.Status,
		Notes:           s.Notes,
		Tags:            s.TagList(),
		IsDraftMode:     s.IsDraftMode,
		DraftContent:    s.DraftContent,
		WordCount:       s.WordCount(),
		AnnotationCount: s.AnnotationCount,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}
