package chapter

import (
	"time"

	"github.com/google/uuid"
)

// Chapter groups scenes inside a project. Order is 1-based within the
// project; new chapters append after the current maximum.
type Chapter struct {
	ID          uuid.UUID `db:"id" json:"id"`
	ProjectID   uuid.UUID `db:"project_id" json:"project_id"`
	Title       string    `db:"title" json:"title"`
	Description string    `db:"description" json:"description"`
	Notes       string    `db:"notes" json:"notes"`
	Order       int       `db:"order" json:"order"`
	IsActive    bool      `db:"is_active" json:"is_active"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}
