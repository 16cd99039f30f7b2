package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"writerdesk-backend/internal/config"
	"writerdesk-backend/internal/domains/autosave"
	"writerdesk-backend/internal/shared/ownership"
)

type grantAllStore struct {
	owner     uuid.UUID
	projectID uuid.UUID
}

func (s *grantAllStore) FindOwnerChain(_ context.Context, kind ownership.Kind, id uuid.UUID) (*ownership.Resource, error) {
	projectID := s.projectID
	if kind == ownership.KindProject {
		projectID = id
	}
	return &ownership.Resource{Kind: kind, ID: id, ProjectID: projectID, OwnerID: s.owner}, nil
}

// fakeAutosaveRepo mirrors the store's dedup, numbering and retention
// semantics in memory: one version stream per key, plus an insertion log
// so pruning can drop the oldest versions per project.
type fakeAutosaveRepo struct {
	streams   map[string][]*autosave.AutosaveVersion
	log       []*autosave.AutosaveVersion
	saveCalls int
}

func newFakeAutosaveRepo() *fakeAutosaveRepo {
	return &fakeAutosaveRepo{streams: make(map[string][]*autosave.AutosaveVersion)}
}

func (f *fakeAutosaveRepo) Save(_ context.Context, v *autosave.AutosaveVersion, window time.Duration, maxVersions int) (*autosave.SaveResult, error) {
	f.saveCalls++

	stream := f.streams[v.Key()]
	if len(stream) > 0 {
		latest := stream[len(stream)-1]
		if latest.IsDuplicateOf(v.Content, time.Now(), window) {
			return &autosave.SaveResult{Version: latest, Deduplicated: true}, nil
		}
	}

	created := *v
	created.ID = uuid.New()
	created.VersionNumber = 1
	if len(stream) > 0 {
		created.VersionNumber = stream[len(stream)-1].VersionNumber + 1
	}
	created.CreatedAt = time.Now()
	f.streams[v.Key()] = append(stream, &created)
	f.log = append(f.log, &created)
	f.prune(created.ProjectID, maxVersions)

	return &autosave.SaveResult{Version: &created, Deduplicated: false}, nil
}

// prune drops the oldest versions of the project until at most
// maxVersions remain
func (f *fakeAutosaveRepo) prune(projectID uuid.UUID, maxVersions int) {
	if maxVersions <= 0 {
		return
	}

	count := 0
	for _, v := range f.log {
		if v.ProjectID == projectID {
			count++
		}
	}

	for i := 0; count > maxVersions && i < len(f.log); {
		if f.log[i].ProjectID != projectID {
			i++
			continue
		}
		victim := f.log[i]
		f.log = append(f.log[:i], f.log[i+1:]...)

		key := victim.Key()
		for j, sv := range f.streams[key] {
			if sv.ID == victim.ID {
				f.streams[key] = append(f.streams[key][:j], f.streams[key][j+1:]...)
				break
			}
		}
		count--
	}
}

func (f *fakeAutosaveRepo) ListByProject(_ context.Context, projectID uuid.UUID, limit int) ([]*autosave.AutosaveVersion, error) {
	var out []*autosave.AutosaveVersion
	for i := len(f.log) - 1; i >= 0; i-- {
		if f.log[i].ProjectID == projectID {
			out = append(out, f.log[i])
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeAutosaveRepo) Latest(_ context.Context, projectID uuid.UUID) (*autosave.AutosaveVersion, error) {
	var latest *autosave.AutosaveVersion
	for _, stream := range f.streams {
		for _, v := range stream {
			if v.ProjectID == projectID && (latest == nil || v.CreatedAt.After(latest.CreatedAt)) {
				latest = v
			}
		}
	}
	if latest == nil {
		return nil, autosave.ErrVersionNotFound
	}
	return latest, nil
}

func (f *fakeAutosaveRepo) LatestForKey(_ context.Context, projectID uuid.UUID, sceneID *uuid.UUID) (*autosave.AutosaveVersion, error) {
	stream := f.streams[autosave.StreamKey(projectID, sceneID)]
	if len(stream) == 0 {
		return nil, autosave.ErrVersionNotFound
	}
	return stream[len(stream)-1], nil
}

type fakeCache struct {
	entries map[string][]byte
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string][]byte)}
}

func (f *fakeCache) Get(_ context.Context, key string, dest interface{}) (bool, error) {
	raw, ok := f.entries[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (f *fakeCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.entries[key] = raw
	return nil
}

func (f *fakeCache) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(f.entries, k)
	}
	return nil
}

func (f *fakeCache) Increment(_ context.Context, _ string) (int64, error) { return 0, nil }
func (f *fakeCache) Ping(_ context.Context) error                        { return nil }

func newTestService() (autosave.Service, *fakeAutosaveRepo, *fakeCache, uuid.UUID) {
	owner := uuid.New()
	repo := newFakeAutosaveRepo()
	c := newFakeCache()
	resolver := ownership.NewResolver(&grantAllStore{owner: owner})
	cfg := config.AutosaveConfig{DedupWindowSeconds: 30, MaxVersions: 50}
	return NewAutosaveService(repo, resolver, c, cfg), repo, c, owner
}

func TestSaveComputesWordCount(t *testing.T) {
	svc, _, _, owner := newTestService()

	resp, err := svc.Save(context.Background(), owner, &autosave.AutosaveRequest{
		ProjectID: uuid.New(),
		Content:   "five words of sample text",
	})
	require.NoError(t, err)

	assert.False(t, resp.Deduplicated)
	assert.Equal(t, 5, resp.Version.WordCount)
	assert.Equal(t, 1, resp.Version.VersionNumber)
}

func TestSaveHonorsProvidedWordCount(t *testing.T) {
	svc, _, _, owner := newTestService()

	provided := 42
	resp, err := svc.Save(context.Background(), owner, &autosave.AutosaveRequest{
		ProjectID: uuid.New(),
		Content:   "text",
		WordCount: &provided,
	})
	require.NoError(t, err)

	assert.Equal(t, 42, resp.Version.WordCount)
}

func TestSaveVersionNumbersAreMonotonic(t *testing.T) {
	svc, _, _, owner := newTestService()
	projectID := uuid.New()

	for i, content := range []string{"first", "second", "third"} {
		resp, err := svc.Save(context.Background(), owner, &autosave.AutosaveRequest{
			ProjectID: projectID,
			Content:   content,
		})
		require.NoError(t, err)
		assert.False(t, resp.Deduplicated)
		assert.Equal(t, i+1, resp.Version.VersionNumber)
	}
}

func TestSaveDeduplicatesIdenticalContent(t *testing.T) {
	svc, _, _, owner := newTestService()
	projectID := uuid.New()
	req := &autosave.AutosaveRequest{ProjectID: projectID, Content: "unchanged text"}

	first, err := svc.Save(context.Background(), owner, req)
	require.NoError(t, err)
	require.False(t, first.Deduplicated)

	second, err := svc.Save(context.Background(), owner, req)
	require.NoError(t, err)

	assert.True(t, second.Deduplicated)
	assert.Equal(t, first.Version.ID, second.Version.ID)
	assert.Equal(t, first.Version.VersionNumber, second.Version.VersionNumber)
}

func TestSaveFastPathSkipsRepository(t *testing.T) {
	svc, repo, _, owner := newTestService()
	projectID := uuid.New()
	req := &autosave.AutosaveRequest{ProjectID: projectID, Content: "cached text"}

	_, err := svc.Save(context.Background(), owner, req)
	require.NoError(t, err)
	require.Equal(t, 1, repo.saveCalls)

	resp, err := svc.Save(context.Background(), owner, req)
	require.NoError(t, err)

	assert.True(t, resp.Deduplicated)
	assert.Equal(t, 1, repo.saveCalls, "duplicate save should be answered from cache")
}

func TestSaveSeparateStreamsPerScene(t *testing.T) {
	owner := uuid.New()
	projectID := uuid.New()
	sceneID := uuid.New()

	// Scenes resolve into the same project the saves target
	resolver := ownership.NewResolver(&grantAllStore{owner: owner, projectID: projectID})
	svc := NewAutosaveService(newFakeAutosaveRepo(), resolver, newFakeCache(),
		config.AutosaveConfig{DedupWindowSeconds: 30, MaxVersions: 50})

	projectSave, err := svc.Save(context.Background(), owner, &autosave.AutosaveRequest{
		ProjectID: projectID,
		Content:   "same text",
	})
	require.NoError(t, err)

	sceneSave, err := svc.Save(context.Background(), owner, &autosave.AutosaveRequest{
		ProjectID: projectID,
		SceneID:   &sceneID,
		Content:   "same text",
	})
	require.NoError(t, err)

	// Same content on a different key is a fresh version, not a dedup
	assert.False(t, sceneSave.Deduplicated)
	assert.NotEqual(t, projectSave.Version.ID, sceneSave.Version.ID)
	assert.Equal(t, 1, sceneSave.Version.VersionNumber)
}

func TestSaveRejectsSceneFromAnotherProject(t *testing.T) {
	owner := uuid.New()
	repo := newFakeAutosaveRepo()
	// Scenes resolve to a fixed project that never matches the request
	resolver := ownership.NewResolver(&grantAllStore{owner: owner, projectID: uuid.New()})
	svc := NewAutosaveService(repo, resolver, newFakeCache(), config.AutosaveConfig{DedupWindowSeconds: 30, MaxVersions: 50})

	sceneID := uuid.New()
	_, err := svc.Save(context.Background(), owner, &autosave.AutosaveRequest{
		ProjectID: uuid.New(),
		SceneID:   &sceneID,
		Content:   "text",
	})

	assert.ErrorIs(t, err, autosave.ErrSceneNotInProject)
}

func TestSaveRetentionKeepsNewest(t *testing.T) {
	owner := uuid.New()
	repo := newFakeAutosaveRepo()
	resolver := ownership.NewResolver(&grantAllStore{owner: owner})
	svc := NewAutosaveService(repo, resolver, newFakeCache(),
		config.AutosaveConfig{DedupWindowSeconds: 30, MaxVersions: 3})

	projectID := uuid.New()
	for _, content := range []string{"first", "second", "third", "fourth", "fifth"} {
		_, err := svc.Save(context.Background(), owner, &autosave.AutosaveRequest{
			ProjectID: projectID,
			Content:   content,
		})
		require.NoError(t, err)
	}

	versions, err := svc.ListVersions(context.Background(), owner, projectID, 0)
	require.NoError(t, err)
	require.Len(t, versions, 3)

	// The three newest survive, newest first; numbering never restarts
	assert.Equal(t, "fifth", versions[0].Content)
	assert.Equal(t, "fourth", versions[1].Content)
	assert.Equal(t, "third", versions[2].Content)
	assert.Equal(t, 5, versions[0].VersionNumber)

	// The latest version is untouched by pruning
	latest, err := svc.Latest(context.Background(), owner, projectID)
	require.NoError(t, err)
	assert.Equal(t, "fifth", latest.Content)
}

func TestLatestEmptyProject(t *testing.T) {
	svc, _, _, owner := newTestService()

	_, err := svc.Latest(context.Background(), owner, uuid.New())
	assert.ErrorIs(t, err, autosave.ErrVersionNotFound)
}
