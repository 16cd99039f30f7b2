package export

import (
	"archive/zip"
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleManuscript() *Manuscript {
	return &Manuscript{
		ProjectTitle: "The Long Rain",
		Author:       "writer",
		Chapters: []ManuscriptChapter{
			{
				Title: "Chapter One",
				Scenes: []ManuscriptScene{
					{Title: "Opening", Content: "It was raining again."},
					{Title: "The Call", Content: "The phone rang twice."},
				},
			},
			{
				Title:  "Chapter Two",
				Scenes: []ManuscriptScene{{Title: "Empty", Content: ""}},
			},
		},
	}
}

func TestPlainTextRenderer(t *testing.T) {
	renderer := DefaultRenderers()["txt"]
	require.NotNil(t, renderer)

	out, err := renderer.Render(context.Background(), sampleManuscript())
	require.NoError(t, err)

	text := string(out)
	assert.Contains(t, text, "The Long Rain")
	assert.Contains(t, text, "Chapter One")
	assert.Contains(t, text, "It was raining again.")

	// Chapter titles appear in manuscript order
	assert.Less(t, strings.Index(text, "Chapter One"), strings.Index(text, "Chapter Two"))

	assert.Equal(t, "txt", renderer.Extension())
}

func TestMarkdownRenderer(t *testing.T) {
	renderer := DefaultRenderers()["markdown"]
	require.NotNil(t, renderer)

	out, err := renderer.Render(context.Background(), sampleManuscript())
	require.NoError(t, err)

	text := string(out)
	assert.Contains(t, text, "# The Long Rain")
	assert.Contains(t, text, "## Chapter One")
	assert.Contains(t, text, "### Opening")
	assert.Equal(t, "md", renderer.Extension())
}

func TestDocxRenderer(t *testing.T) {
	renderer := DefaultRenderers()["docx"]
	require.NotNil(t, renderer)

	out, err := renderer.Render(context.Background(), sampleManuscript())
	require.NoError(t, err)

	zr, err := zip.NewReader(bytes.NewReader(out), int64(len(out)))
	require.NoError(t, err)

	var doc string
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			rc, err := f.Open()
			require.NoError(t, err)
			data, err := io.ReadAll(rc)
			require.NoError(t, err)
			require.NoError(t, rc.Close())
			doc = string(data)
		}
	}
	require.NotEmpty(t, doc, "document part missing from package")

	assert.Contains(t, doc, "The Long Rain")
	assert.Contains(t, doc, "It was raining again.")
	assert.Equal(t, "docx", renderer.Extension())
}

func TestDocxRendererEscapesMarkup(t *testing.T) {
	m := &Manuscript{
		ProjectTitle: "Ampersand & Angle <Brackets>",
		Chapters:     []ManuscriptChapter{},
	}

	out, err := DefaultRenderers()["docx"].Render(context.Background(), m)
	require.NoError(t, err)

	zr, err := zip.NewReader(bytes.NewReader(out), int64(len(out)))
	require.NoError(t, err)

	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		require.NoError(t, err)
		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		require.NoError(t, rc.Close())

		assert.Contains(t, string(data), "Ampersand &amp; Angle &lt;Brackets&gt;")
	}
}

func TestPdfRenderer(t *testing.T) {
	renderer := DefaultRenderers()["pdf"]
	require.NotNil(t, renderer)

	out, err := renderer.Render(context.Background(), sampleManuscript())
	require.NoError(t, err)

	text := string(out)
	assert.True(t, strings.HasPrefix(text, "%PDF-1.4"))
	assert.True(t, strings.HasSuffix(text, "%%EOF\n"))
	assert.Contains(t, text, "The Long Rain")
	assert.Contains(t, text, "/BaseFont /Helvetica")
	assert.Equal(t, "pdf", renderer.Extension())
	assert.Equal(t, "application/pdf", renderer.ContentType())
}

func TestPdfRendererPaginatesLongManuscripts(t *testing.T) {
	long := &Manuscript{ProjectTitle: "Long One"}
	scene := ManuscriptScene{Title: "Scene", Content: strings.Repeat("line\n", 200)}
	long.Chapters = []ManuscriptChapter{{Title: "Chapter", Scenes: []ManuscriptScene{scene}}}

	out, err := DefaultRenderers()["pdf"].Render(context.Background(), long)
	require.NoError(t, err)

	assert.Greater(t, strings.Count(string(out), "/Type /Page "), 1)
}

func TestRegistrySupportedTypes(t *testing.T) {
	types := DefaultRenderers().SupportedTypes()
	assert.ElementsMatch(t, []string{"docx", "pdf", "txt", "markdown"}, types)
}

func TestArtifactKey(t *testing.T) {
	e := &Export{FileName: "abc.txt"}
	e.ProjectID = e.ID // any fixed uuid works

	key := ArtifactKey(e)
	assert.True(t, strings.HasPrefix(key, "exports/"))
	assert.True(t, strings.HasSuffix(key, "/abc.txt"))
}
