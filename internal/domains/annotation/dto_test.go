package annotation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnnotationCreateRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     AnnotationCreateRequest
		wantErr bool
	}{
		{
			name: "valid range",
			req:  AnnotationCreateRequest{StartOffset: 5, EndOffset: 12, Content: "tighten this", Priority: PriorityHigh},
		},
		{
			name: "zero-length range",
			req:  AnnotationCreateRequest{StartOffset: 5, EndOffset: 5, Content: "insert here"},
		},
		{
			name:    "end before start",
			req:     AnnotationCreateRequest{StartOffset: 12, EndOffset: 5, Content: "text"},
			wantErr: true,
		},
		{
			name:    "negative start",
			req:     AnnotationCreateRequest{StartOffset: -1, EndOffset: 5, Content: "text"},
			wantErr: true,
		},
		{
			name:    "missing content",
			req:     AnnotationCreateRequest{StartOffset: 0, EndOffset: 5},
			wantErr: true,
		},
		{
			name:    "unknown priority",
			req:     AnnotationCreateRequest{StartOffset: 0, EndOffset: 5, Content: "text", Priority: "urgent"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAnnotationUpdateRequestValidate(t *testing.T) {
	content := "rephrase"
	priority := PriorityLow
	assert.NoError(t, AnnotationUpdateRequest{Content: &content, Priority: &priority}.Validate())

	empty := ""
	assert.Error(t, AnnotationUpdateRequest{Content: &empty}.Validate())

	bad := "asap"
	assert.Error(t, AnnotationUpdateRequest{Priority: &bad}.Validate())
}
