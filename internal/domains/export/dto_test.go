package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int { return &v }

func TestExportCreateRequestValidate(t *testing.T) {
	assert.NoError(t, ExportCreateRequest{ExportType: "txt"}.Validate())
	assert.NoError(t, ExportCreateRequest{
		ExportType:        "markdown",
		ChapterRangeStart: intPtr(2),
		ChapterRangeEnd:   intPtr(5),
	}.Validate())

	assert.Error(t, ExportCreateRequest{}.Validate())
	assert.Error(t, ExportCreateRequest{ExportType: "txt", ChapterRangeStart: intPtr(0)}.Validate())
	assert.Error(t, ExportCreateRequest{ExportType: "txt", ChapterRangeEnd: intPtr(0)}.Validate())
	assert.Error(t, ExportCreateRequest{
		ExportType:        "txt",
		ChapterRangeStart: intPtr(5),
		ChapterRangeEnd:   intPtr(2),
	}.Validate())
}
