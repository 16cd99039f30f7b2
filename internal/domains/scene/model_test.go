package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLiveContent(t *testing.T) {
	tests := []struct {
		name  string
		scene Scene
		want  string
	}{
		{
			name:  "published content when draft mode off",
			scene: Scene{Content: "published", DraftContent: "draft", IsDraftMode: false},
			want:  "published",
		},
		{
			name:  "draft content when draft mode on",
			scene: Scene{Content: "published", DraftContent: "draft", IsDraftMode: true},
			want:  "draft",
		},
		{
			name:  "empty draft falls back to published",
			scene: Scene{Content: "published", DraftContent: "", IsDraftMode: true},
			want:  "published",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.scene.LiveContent())
		})
	}
}

func TestWordCountFollowsLiveContent(t *testing.T) {
	s := Scene{Content: "one two three", DraftContent: "one two", IsDraftMode: true}
	assert.Equal(t, 2, s.WordCount())

	s.IsDraftMode = false
	assert.Equal(t, 3, s.WordCount())
}

func TestTagList(t *testing.T) {
	s := Scene{Tags: "noir, flashback"}
	assert.Equal(t, []string{"noir", "flashback"}, s.TagList())

	s.Tags = ""
	assert.Empty(t, s.TagList())
}

func TestToResponseComputedFields(t *testing.T) {
	s := &Scene{
		Title:        "Opening",
		Content:      "it was a dark and stormy night",
		Tags:         "weather, opening",
		IsDraftMode:  false,
		DraftContent: "",
	}

	resp := ToResponse(s)
	assert.Equal(t, 7, resp.WordCount)
	assert.Equal(t, []string{"weather", "opening"}, resp.Tags)
}
