package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"writerdesk-backend/internal/domains/scene"
	"writerdesk-backend/internal/shared/ownership"
)

// grantAllStore resolves every resource to the same owner
type grantAllStore struct {
	owner     uuid.UUID
	projectID uuid.UUID
}

func (s *grantAllStore) FindOwnerChain(_ context.Context, kind ownership.Kind, id uuid.UUID) (*ownership.Resource, error) {
	return &ownership.Resource{Kind: kind, ID: id, ProjectID: s.projectID, OwnerID: s.owner}, nil
}

type fakeSceneRepo struct {
	scenes map[uuid.UUID]*scene.Scene
}

func newFakeSceneRepo(scenes ...*scene.Scene) *fakeSceneRepo {
	repo := &fakeSceneRepo{scenes: make(map[uuid.UUID]*scene.Scene)}
	for _, s := range scenes {
		repo.scenes[s.ID] = s
	}
	return repo
}

func (f *fakeSceneRepo) Create(_ context.Context, s *scene.Scene) (*scene.Scene, error) {
	created := *s
	created.ID = uuid.New()
	if created.Order <= 0 {
		created.Order = len(f.scenes) + 1
	}
	f.scenes[created.ID] = &created
	return &created, nil
}

func (f *fakeSceneRepo) FindByID(_ context.Context, id uuid.UUID) (*scene.Scene, error) {
	s, ok := f.scenes[id]
	if !ok {
		return nil, scene.ErrSceneNotFound
	}
	copied := *s
	return &copied, nil
}

func (f *fakeSceneRepo) ListByChapter(_ context.Context, chapterID uuid.UUID) ([]*scene.Scene, error) {
	var out []*scene.Scene
	for _, s := range f.scenes {
		if s.ChapterID == chapterID {
			copied := *s
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeSceneRepo) Update(_ context.Context, s *scene.Scene) (*scene.Scene, error) {
	if _, ok := f.scenes[s.ID]; !ok {
		return nil, scene.ErrSceneNotFound
	}
	copied := *s
	f.scenes[s.ID] = &copied
	result := copied
	return &result, nil
}

func (f *fakeSceneRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.scenes[id]; !ok {
		return scene.ErrSceneNotFound
	}
	delete(f.scenes, id)
	return nil
}

func (f *fakeSceneRepo) Reorder(_ context.Context, _ uuid.UUID, orderedIDs []uuid.UUID) error {
	for i, id := range orderedIDs {
		s, ok := f.scenes[id]
		if !ok {
			return scene.ErrInvalidReorder
		}
		s.Order = i + 1
	}
	return nil
}

func (f *fakeSceneRepo) PublishDraft(_ context.Context, id uuid.UUID) (*scene.Scene, bool, error) {
	s, ok := f.scenes[id]
	if !ok {
		return nil, false, scene.ErrSceneNotFound
	}
	if s.IsDraftMode && s.DraftContent != "" {
		s.Content = s.DraftContent
		s.DraftContent = ""
		s.IsDraftMode = false
		copied := *s
		return &copied, true, nil
	}
	copied := *s
	return &copied, false, nil
}

func newTestService(scenes ...*scene.Scene) (scene.Service, *fakeSceneRepo, uuid.UUID) {
	owner := uuid.New()
	repo := newFakeSceneRepo(scenes...)
	resolver := ownership.NewResolver(&grantAllStore{owner: owner, projectID: uuid.New()})
	return NewSceneService(repo, resolver), repo, owner
}

func TestUpdateRoutesContentToDraftInDraftMode(t *testing.T) {
	sc := &scene.Scene{
		ID:          uuid.New(),
		ChapterID:   uuid.New(),
		Title:       "Opening",
		Content:     "published text",
		IsDraftMode: true,
	}
	svc, repo, owner := newTestService(sc)

	newContent := "work in progress"
	resp, err := svc.Update(context.Background(), owner, sc.ID, &scene.SceneUpdateRequest{Content: &newContent})
	require.NoError(t, err)

	assert.Equal(t, "work in progress", resp.DraftContent)
	assert.Equal(t, "published text", resp.Content)

	stored := repo.scenes[sc.ID]
	assert.Equal(t, "published text", stored.Content)
	assert.Equal(t, "work in progress", stored.DraftContent)
}

func TestUpdateWritesContentDirectlyOutsideDraftMode(t *testing.T) {
	sc := &scene.Scene{ID: uuid.New(), ChapterID: uuid.New(), Title: "Opening", Content: "old"}
	svc, _, owner := newTestService(sc)

	newContent := "new"
	resp, err := svc.Update(context.Background(), owner, sc.ID, &scene.SceneUpdateRequest{Content: &newContent})
	require.NoError(t, err)

	assert.Equal(t, "new", resp.Content)
	assert.Empty(t, resp.DraftContent)
}

func TestToggleDraftModeSeedsAndDiscards(t *testing.T) {
	sc := &scene.Scene{ID: uuid.New(), ChapterID: uuid.New(), Title: "Opening", Content: "published"}
	svc, _, owner := newTestService(sc)

	// Entering draft mode seeds the draft with the published text
	resp, err := svc.ToggleDraftMode(context.Background(), owner, sc.ID)
	require.NoError(t, err)
	assert.True(t, resp.IsDraftMode)
	assert.Equal(t, "published", resp.DraftContent)

	// Leaving without publishing discards the draft
	resp, err = svc.ToggleDraftMode(context.Background(), owner, sc.ID)
	require.NoError(t, err)
	assert.False(t, resp.IsDraftMode)
	assert.Empty(t, resp.DraftContent)
	assert.Equal(t, "published", resp.Content)
}

func TestPublishDraftPromotesDraft(t *testing.T) {
	sc := &scene.Scene{
		ID:           uuid.New(),
		ChapterID:    uuid.New(),
		Title:        "Opening",
		Content:      "old",
		DraftContent: "revised",
		IsDraftMode:  true,
	}
	svc, _, owner := newTestService(sc)

	resp, published, err := svc.PublishDraft(context.Background(), owner, sc.ID)
	require.NoError(t, err)

	assert.True(t, published)
	assert.Equal(t, "revised", resp.Content)
	assert.Empty(t, resp.DraftContent)
	assert.False(t, resp.IsDraftMode)
}

func TestPublishDraftNoOpWithoutDraft(t *testing.T) {
	sc := &scene.Scene{ID: uuid.New(), ChapterID: uuid.New(), Title: "Opening", Content: "old"}
	svc, _, owner := newTestService(sc)

	resp, published, err := svc.PublishDraft(context.Background(), owner, sc.ID)
	require.NoError(t, err)

	assert.False(t, published)
	assert.Equal(t, "old", resp.Content)
}

func TestCreateDefaultsStatus(t *testing.T) {
	svc, _, owner := newTestService()

	resp, err := svc.Create(context.Background(), owner, uuid.New(), &scene.SceneCreateRequest{Title: "Opening"})
	require.NoError(t, err)
	assert.Equal(t, scene.StatusDraft, resp.Status)
}

func TestCreateHonorsExplicitOrder(t *testing.T) {
	svc, _, owner := newTestService()
	chapterID := uuid.New()

	explicit := 4
	resp, err := svc.Create(context.Background(), owner, chapterID, &scene.SceneCreateRequest{
		Title: "Placed",
		Order: &explicit,
	})
	require.NoError(t, err)
	assert.Equal(t, 4, resp.Order)

	invalid := -1
	_, err = svc.Create(context.Background(), owner, chapterID, &scene.SceneCreateRequest{
		Title: "Bad",
		Order: &invalid,
	})
	assert.Error(t, err)
}

func TestUpdateMovesSceneOrder(t *testing.T) {
	sc := &scene.Scene{ID: uuid.New(), ChapterID: uuid.New(), Title: "Opening", Order: 1}
	svc, repo, owner := newTestService(sc)

	moved := 5
	resp, err := svc.Update(context.Background(), owner, sc.ID, &scene.SceneUpdateRequest{Order: &moved})
	require.NoError(t, err)

	assert.Equal(t, 5, resp.Order)
	assert.Equal(t, 5, repo.scenes[sc.ID].Order)
}
