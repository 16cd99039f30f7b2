package autosave

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestIsDuplicateOf(t *testing.T) {
	now := time.Now()
	window := 30 * time.Second

	version := &AutosaveVersion{Content: "same text", CreatedAt: now.Add(-10 * time.Second)}

	assert.True(t, version.IsDuplicateOf("same text", now, window))
	assert.False(t, version.IsDuplicateOf("different text", now, window))

	old := &AutosaveVersion{Content: "same text", CreatedAt: now.Add(-31 * time.Second)}
	assert.False(t, old.IsDuplicateOf("same text", now, window))
}

func TestStreamKey(t *testing.T) {
	projectID := uuid.New()
	sceneID := uuid.New()

	projectKey := StreamKey(projectID, nil)
	sceneKey := StreamKey(projectID, &sceneID)

	assert.NotEqual(t, projectKey, sceneKey)
	assert.Contains(t, projectKey, projectID.String())
	assert.Contains(t, sceneKey, sceneID.String())

	// Stable for the same pair
	assert.Equal(t, sceneKey, StreamKey(projectID, &sceneID))
}

func TestAutosaveRequestValidate(t *testing.T) {
	valid := AutosaveRequest{ProjectID: uuid.New(), Content: "text"}
	assert.NoError(t, valid.Validate())

	missingProject := AutosaveRequest{Content: "text"}
	assert.Error(t, missingProject.Validate())

	missingContent := AutosaveRequest{ProjectID: uuid.New()}
	assert.Error(t, missingContent.Validate())
}
