package project

import (
	"context"

	"github.com/google/uuid"
)

// Stats aggregates computed fields attached to project responses
type Stats struct {
	ChapterCount int
	WordCount    int
}

// Repository is the data-access contract for projects
type Repository interface {
	Create(ctx context.Context, p *Project) (*Project, error)

	// FindByID returns ErrProjectNotFound when missing
	FindByID(ctx context.Context, id uuid.UUID) (*Project, error)

	// ListByUser returns the caller's projects, most recently updated first
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*Project, error)

	Update(ctx context.Context, p *Project) (*Project, error)

	// Delete removes the project and all descendants (chapters, scenes,
	// drafts, annotations, autosave versions, exports) in one transaction.
	Delete(ctx context.Context, id uuid.UUID) error

	// Stats computes chapter count and live word count on read
	Stats(ctx context.Context, id uuid.UUID) (*Stats, error)

	// Timeline returns ordered chapters with their ordered scenes
	Timeline(ctx context.Context, id uuid.UUID) (*TimelineResponse, error)
}
