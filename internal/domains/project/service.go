package project

import (
	"context"

	"github.com/google/uuid"
)

// Service is the business contract for projects. Every operation that
// touches an existing project goes through the ownership resolver first.
type Service interface {
	Create(ctx context.Context, userID uuid.UUID, req *ProjectCreateRequest) (*ProjectResponse, error)
	List(ctx context.Context, userID uuid.UUID) ([]*ProjectResponse, error)
	Get(ctx context.Context, userID, projectID uuid.UUID) (*ProjectResponse, error)
	Update(ctx context.Context, userID, projectID uuid.UUID, req *ProjectUpdateRequest) (*ProjectResponse, error)
	Delete(ctx context.Context, userID, projectID uuid.UUID) error
	Timeline(ctx context.Context, userID, projectID uuid.UUID) (*TimelineResponse, error)
}
