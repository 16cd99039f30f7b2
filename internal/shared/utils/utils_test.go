package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCountWords(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    int
	}{
		{"empty", "", 0},
		{"single word", "hello", 1},
		{"simple sentence", "the quick brown fox", 4},
		{"collapses whitespace runs", "a\t\tb \n c", 3},
		{"whitespace only", "   \n\t  ", 0},
		{"leading and trailing space", "  word  ", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CountWords(tt.content))
		})
	}
}

func TestSplitTags(t *testing.T) {
	assert.Equal(t, []string{}, SplitTags(""))
	assert.Equal(t, []string{"noir", "flashback"}, SplitTags("noir, flashback"))
	assert.Equal(t, []string{"a", "b"}, SplitTags(" a ,, b , "))
}

func TestJoinTags(t *testing.T) {
	assert.Equal(t, "", JoinTags(nil))
	assert.Equal(t, "noir, flashback", JoinTags([]string{"noir", " flashback "}))
	assert.Equal(t, "a", JoinTags([]string{"", "a", "  "}))
}

func TestTagsRoundTrip(t *testing.T) {
	tags := []string{"noir", "flashback", "rain"}
	assert.Equal(t, tags, SplitTags(JoinTags(tags)))
}
