package ownership

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// Kind identifies a resource type in the containment hierarchy
type Kind string

const (
	KindProject    Kind = "project"
	KindChapter    Kind = "chapter"
	KindScene      Kind = "scene"
	KindDraft      Kind = "draft"
	KindAnnotation Kind = "annotation"
	KindExport     Kind = "export"
)

var (
	// ErrNotFound means a link in the containment chain is missing (404)
	ErrNotFound = errors.New("resource not found")

	// ErrNotOwner means the chain resolved but the project belongs to
	// someone else (403)
	ErrNotOwner = errors.New("resource not owned by user")
)

// Resource is the result of a resolved ownership chain
type Resource struct {
	Kind      Kind
	ID        uuid.UUID
	ProjectID uuid.UUID
	OwnerID   uuid.UUID
}

// Store walks the containment chain for a resource up to its owning project.
// Implementations return ErrNotFound when any link is missing.
type Store interface {
	FindOwnerChain(ctx context.Context, kind Kind, id uuid.UUID) (*Resource, error)
}

// Resolver is the single ownership gate used by every handler. It is
// read-only: resolving never mutates anything.
type Resolver struct {
	store Store
}

func NewResolver(store Store) *Resolver {
	return &Resolver{store: store}
}

// Resolve walks resource -> ... -> project and confirms the caller owns the
// project. Missing resources map to ErrNotFound, foreign resources to
// ErrNotOwner, so handlers can choose 404 vs 403 consistently.
func (r *Resolver) Resolve(ctx context.Context, userID uuid.UUID, kind Kind, id uuid.UUID) (*Resource, error) {
	res, err := r.store.FindOwnerChain(ctx, kind, id)
	if err != nil {
		return nil, err
	}

	if res.OwnerID != userID {
		return nil, ErrNotOwner
	}

	return res, nil
}
