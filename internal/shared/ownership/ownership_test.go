package ownership

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	resources map[uuid.UUID]*Resource
}

func (f *fakeStore) FindOwnerChain(_ context.Context, kind Kind, id uuid.UUID) (*Resource, error) {
	res, ok := f.resources[id]
	if !ok || res.Kind != kind {
		return nil, ErrNotFound
	}
	return res, nil
}

func TestResolveOwnedResource(t *testing.T) {
	owner := uuid.New()
	sceneID := uuid.New()
	projectID := uuid.New()

	resolver := NewResolver(&fakeStore{resources: map[uuid.UUID]*Resource{
		sceneID: {Kind: KindScene, ID: sceneID, ProjectID: projectID, OwnerID: owner},
	}})

	res, err := resolver.Resolve(context.Background(), owner, KindScene, sceneID)
	require.NoError(t, err)
	assert.Equal(t, projectID, res.ProjectID)
	assert.Equal(t, owner, res.OwnerID)
}

func TestResolveMissingResource(t *testing.T) {
	resolver := NewResolver(&fakeStore{resources: map[uuid.UUID]*Resource{}})

	_, err := resolver.Resolve(context.Background(), uuid.New(), KindProject, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResolveForeignResource(t *testing.T) {
	owner := uuid.New()
	stranger := uuid.New()
	draftID := uuid.New()

	resolver := NewResolver(&fakeStore{resources: map[uuid.UUID]*Resource{
		draftID: {Kind: KindDraft, ID: draftID, ProjectID: uuid.New(), OwnerID: owner},
	}})

	_, err := resolver.Resolve(context.Background(), stranger, KindDraft, draftID)
	assert.ErrorIs(t, err, ErrNotOwner)
}

func TestResolveKindMismatchIsNotFound(t *testing.T) {
	owner := uuid.New()
	id := uuid.New()

	resolver := NewResolver(&fakeStore{resources: map[uuid.UUID]*Resource{
		id: {Kind: KindChapter, ID: id, ProjectID: uuid.New(), OwnerID: owner},
	}})

	// Existing id addressed as the wrong kind behaves like a missing row
	_, err := resolver.Resolve(context.Background(), owner, KindScene, id)
	assert.ErrorIs(t, err, ErrNotFound)
}
