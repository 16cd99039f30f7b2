package project

import (
	"time"

	"github.com/google/uuid"
)

// Project is the root of the content hierarchy. Every nested resource
// resolves its ownership through the project's user_id.
type Project struct {
	ID          uuid.UUID `db:"id" json:"id"`
	UserID      uuid.UUID `db:"user_id" json:"user_id"`
	Title       string    `db:"title" json:"title"`
	Description string    `db:"description" json:"description"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}
