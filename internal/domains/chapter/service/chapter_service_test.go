package service

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"writerdesk-backend/internal/domains/chapter"
	"writerdesk-backend/internal/shared/ownership"
)

type grantAllStore struct {
	owner uuid.UUID
}

func (s *grantAllStore) FindOwnerChain(_ context.Context, kind ownership.Kind, id uuid.UUID) (*ownership.Resource, error) {
	return &ownership.Resource{Kind: kind, ID: id, OwnerID: s.owner}, nil
}

type fakeChapterRepo struct {
	byID map[uuid.UUID]*chapter.Chapter
}

func newFakeChapterRepo() *fakeChapterRepo {
	return &fakeChapterRepo{byID: make(map[uuid.UUID]*chapter.Chapter)}
}

func (f *fakeChapterRepo) Create(_ context.Context, ch *chapter.Chapter) (*chapter.Chapter, error) {
	created := *ch
	created.ID = uuid.New()
	if created.Order <= 0 {
		maxOrder := 0
		for _, existing := range f.byID {
			if existing.ProjectID == ch.ProjectID && existing.Order > maxOrder {
				maxOrder = existing.Order
			}
		}
		created.Order = maxOrder + 1
	}
	created.IsActive = true
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	f.byID[created.ID] = &created
	return &created, nil
}

func (f *fakeChapterRepo) FindByID(_ context.Context, id uuid.UUID) (*chapter.Chapter, error) {
	ch, ok := f.byID[id]
	if !ok {
		return nil, chapter.ErrChapterNotFound
	}
	return ch, nil
}

func (f *fakeChapterRepo) ListByProject(_ context.Context, projectID uuid.UUID) ([]*chapter.Chapter, error) {
	var out []*chapter.Chapter
	for _, ch := range f.byID {
		if ch.ProjectID == projectID {
			out = append(out, ch)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out, nil
}

func (f *fakeChapterRepo) Update(_ context.Context, ch *chapter.Chapter) (*chapter.Chapter, error) {
	if _, ok := f.byID[ch.ID]; !ok {
		return nil, chapter.ErrChapterNotFound
	}
	updated := *ch
	updated.UpdatedAt = time.Now()
	f.byID[ch.ID] = &updated
	return &updated, nil
}

func (f *fakeChapterRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.byID[id]; !ok {
		return chapter.ErrChapterNotFound
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeChapterRepo) Reorder(_ context.Context, projectID uuid.UUID, orderedIDs []uuid.UUID) error {
	current := make(map[uuid.UUID]bool)
	for _, ch := range f.byID {
		if ch.ProjectID == projectID {
			current[ch.ID] = true
		}
	}

	if len(orderedIDs) != len(current) {
		return chapter.ErrInvalidReorder
	}
	seen := make(map[uuid.UUID]bool)
	for _, id := range orderedIDs {
		if !current[id] || seen[id] {
			return chapter.ErrInvalidReorder
		}
		seen[id] = true
	}

	for pos, id := range orderedIDs {
		f.byID[id].Order = pos + 1
	}
	return nil
}

func (f *fakeChapterRepo) Stats(_ context.Context, _ uuid.UUID) (*chapter.Stats, error) {
	return &chapter.Stats{}, nil
}

func newTestService() (chapter.Service, *fakeChapterRepo, uuid.UUID) {
	owner := uuid.New()
	repo := newFakeChapterRepo()
	resolver := ownership.NewResolver(&grantAllStore{owner: owner})
	return NewChapterService(repo, resolver), repo, owner
}

func TestCreateAssignsSequentialOrder(t *testing.T) {
	svc, _, owner := newTestService()
	projectID := uuid.New()

	for i, title := range []string{"One", "Two", "Three"} {
		resp, err := svc.Create(context.Background(), owner, projectID, &chapter.ChapterCreateRequest{Title: title})
		require.NoError(t, err)
		assert.Equal(t, i+1, resp.Order)
	}
}

func TestCreateHonorsExplicitOrder(t *testing.T) {
	svc, _, owner := newTestService()
	projectID := uuid.New()

	explicit := 7
	resp, err := svc.Create(context.Background(), owner, projectID, &chapter.ChapterCreateRequest{
		Title: "Placed",
		Order: &explicit,
	})
	require.NoError(t, err)
	assert.Equal(t, 7, resp.Order)

	// The next chapter without an explicit order appends after it
	resp, err = svc.Create(context.Background(), owner, projectID, &chapter.ChapterCreateRequest{Title: "Appended"})
	require.NoError(t, err)
	assert.Equal(t, 8, resp.Order)

	invalid := 0
	_, err = svc.Create(context.Background(), owner, projectID, &chapter.ChapterCreateRequest{
		Title: "Bad",
		Order: &invalid,
	})
	assert.Error(t, err)
}

func TestUpdateMovesChapterOrder(t *testing.T) {
	svc, repo, owner := newTestService()
	projectID := uuid.New()

	created, err := svc.Create(context.Background(), owner, projectID, &chapter.ChapterCreateRequest{Title: "One"})
	require.NoError(t, err)

	moved := 3
	updated, err := svc.Update(context.Background(), owner, created.ID, &chapter.ChapterUpdateRequest{Order: &moved})
	require.NoError(t, err)

	assert.Equal(t, 3, updated.Order)
	assert.Equal(t, 3, repo.byID[created.ID].Order)
}

func TestReorderMovesChapters(t *testing.T) {
	svc, _, owner := newTestService()
	projectID := uuid.New()

	var ids []uuid.UUID
	for _, title := range []string{"One", "Two", "Three"} {
		resp, err := svc.Create(context.Background(), owner, projectID, &chapter.ChapterCreateRequest{Title: title})
		require.NoError(t, err)
		ids = append(ids, resp.ID)
	}

	reordered, err := svc.Reorder(context.Background(), owner, projectID, &chapter.ReorderRequest{
		ChapterIDs: []uuid.UUID{ids[2], ids[0], ids[1]},
	})
	require.NoError(t, err)
	require.Len(t, reordered, 3)

	assert.Equal(t, "Three", reordered[0].Title)
	assert.Equal(t, "One", reordered[1].Title)
	assert.Equal(t, "Two", reordered[2].Title)
	for i, resp := range reordered {
		assert.Equal(t, i+1, resp.Order)
	}
}

func TestReorderRejectsIncompleteList(t *testing.T) {
	svc, _, owner := newTestService()
	projectID := uuid.New()

	var ids []uuid.UUID
	for _, title := range []string{"One", "Two"} {
		resp, err := svc.Create(context.Background(), owner, projectID, &chapter.ChapterCreateRequest{Title: title})
		require.NoError(t, err)
		ids = append(ids, resp.ID)
	}

	_, err := svc.Reorder(context.Background(), owner, projectID, &chapter.ReorderRequest{
		ChapterIDs: []uuid.UUID{ids[0]},
	})
	assert.ErrorIs(t, err, chapter.ErrInvalidReorder)

	_, err = svc.Reorder(context.Background(), owner, projectID, &chapter.ReorderRequest{
		ChapterIDs: []uuid.UUID{ids[0], uuid.New()},
	})
	assert.ErrorIs(t, err, chapter.ErrInvalidReorder)
}

func TestUpdateAppliesPartialFields(t *testing.T) {
	svc, repo, owner := newTestService()
	projectID := uuid.New()

	created, err := svc.Create(context.Background(), owner, projectID, &chapter.ChapterCreateRequest{
		Title:       "Original",
		Description: "kept",
	})
	require.NoError(t, err)

	title := "Renamed"
	updated, err := svc.Update(context.Background(), owner, created.ID, &chapter.ChapterUpdateRequest{Title: &title})
	require.NoError(t, err)

	assert.Equal(t, "Renamed", updated.Title)
	assert.Equal(t, "kept", updated.Description)
	assert.Equal(t, "Renamed", repo.byID[created.ID].Title)
}

func TestCreateValidation(t *testing.T) {
	svc, _, owner := newTestService()

	_, err := svc.Create(context.Background(), owner, uuid.New(), &chapter.ChapterCreateRequest{})
	assert.Error(t, err)
}
