package user

import (
	"time"

	"github.com/google/uuid"
)

// User is the domain entity mapped 1:1 to the users table
type User struct {
	// Identity
	ID       uuid.UUID `db:"id" json:"id"`
	Email    string    `db:"email" json:"email"`
	Username string    `db:"username" json:"username"`

	// Authentication
	PasswordHash string `db:"password_hash" json:"-"` // Never expose in JSON

	// Profile
	FirstName string `db:"first_name" json:"first_name"`
	LastName  string `db:"last_name" json:"last_name"`
	Bio       string `db:"bio" json:"bio,omitempty"`

	// Account status
	IsActive      bool `db:"is_active" json:"is_active"`
	EmailVerified bool `db:"email_verified" json:"email_verified"`

	// Timestamps
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Sanitize removes sensitive data before sending to a client
func (u *User) Sanitize() {
	u.PasswordHash = ""
}
