package autosave

import (
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// AutosaveRequest is the payload for POST /autosave. WordCount is
// optional; when absent it is computed from the content.
type AutosaveRequest struct {
	ProjectID uuid.UUID  `json:"project_id"`
	SceneID   *uuid.UUID `json:"scene_id"`
	Content   string     `json:"content"`
	WordCount *int       `json:"word_count"`
}

func (r AutosaveRequest) Validate() error {
	return validation.ValidateStruct(&r,
		// uuid.UUID is a fixed-size array, never "empty" to Required
		validation.Field(&r.ProjectID, validation.By(func(interface{}) error {
			if r.ProjectID == uuid.Nil {
				return errors.New("project_id is required")
			}
			return nil
		})),
		validation.Field(&r.Content, validation.Required.Error("content is required")),
		validation.Field(&r.WordCount, validation.Min(0)),
	)
}

// VersionResponse is the public representation of one snapshot
type VersionResponse struct {
	ID            uuid.UUID  `json:"id"`
	ProjectID     uuid.UUID  `json:"project_id"`
	SceneID       *uuid.UUID `json:"scene_id,omitempty"`
	VersionNumber int        `json:"version_number"`
	Content       string     `json:"content"`
	WordCount     int        `json:"word_count"`
	CreatedAt     time.Time  `json:"created_at"`
}

// SaveResponse reports the resulting version and whether the save was
// folded into an existing one
type SaveResponse struct {
	Deduplicated bool             `json:"deduplicated"`
	Version      *VersionResponse `json:"version"`
}

func ToVersionResponse(v *AutosaveVersion) *VersionResponse {
	return &VersionResponse{
		ID:            v.ID,
		ProjectID:     v.ProjectID,
		SceneID:       v.SceneID,
		VersionNumber: v.VersionNumber,
		Content:       v.Content,
		WordCount:     v.WordCount,
		CreatedAt:     v.CreatedAt,
	}
}
