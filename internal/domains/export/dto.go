package export

import (
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// ExportCreateRequest is the payload for POST /projects/:id/exports.
// An optional chapter range (by order, inclusive) limits the manuscript.
type ExportCreateRequest struct {
	ExportType        string `json:"export_type"`
	ChapterRangeStart *int   `json:"chapter_range_start"`
	ChapterRangeEnd   *int   `json:"chapter_range_end"`
}

func (r ExportCreateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ExportType, validation.Required.Error("export_type is required")),
		// Min would skip a dereferenced zero, so check the pointers directly
		validation.Field(&r.ChapterRangeStart, validation.By(func(interface{}) error {
			if r.ChapterRangeStart != nil && *r.ChapterRangeStart < 1 {
				return errors.New("must be no less than 1")
			}
			return nil
		})),
		validation.Field(&r.ChapterRangeEnd, validation.By(func(interface{}) error {
			if r.ChapterRangeEnd == nil {
				return nil
			}
			if *r.ChapterRangeEnd < 1 {
				return errors.New("must be no less than 1")
			}
			if r.ChapterRangeStart != nil && *r.ChapterRangeEnd < *r.ChapterRangeStart {
				return errors.New("must not be before chapter_range_start")
			}
			return nil
		})),
	)
}

// ExportResponse is the public export representation
type ExportResponse struct {
	ID                uuid.UUID  `json:"id"`
	ProjectID         uuid.UUID  `json:"project_id"`
	ExportType        string     `json:"export_type"`
	Status            string     `json:"status"`
	FileName          string     `json:"file_name,omitempty"`
	FileURL           string     `json:"file_url,omitempty"`
	ErrorMessage      string     `json:"error_message,omitempty"`
	ChapterRangeStart *int       `json:"chapter_range_start,omitempty"`
	ChapterRangeEnd   *int       `json:"chapter_range_end,omitempty"`
	DownloadCount     int        `json:"download_count"`
	CreatedAt         time.Time  `json:"created_at"`
	CompletedAt       *time.Time `json:"completed_at,omitempty"`
}

func ToResponse(e *Export) *ExportResponse {
	return &ExportResponse{
		ID:                e.ID,
		ProjectID:         e.ProjectID,
		ExportType:        e.ExportType,
		Status:            e.Status,
		FileName:          e.FileName,
		FileURL:           e.FileURL,
		ErrorMessage:      e.ErrorMessage,
		ChapterRangeStart: e.ChapterRangeStart,
		ChapterRangeEnd:   e.ChapterRangeEnd,
		DownloadCount:     e.DownloadCount,
		CreatedAt:         e.CreatedAt,
		CompletedAt:       e.CompletedAt,
	}
}

// DownloadResult carries artifact bytes with serving metadata
type DownloadResult struct {
	FileName    string
	ContentType string
	Data        []byte
}
