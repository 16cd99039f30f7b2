package export

import (
	"context"
	"fmt"
	"strings"
)

// Renderer turns an assembled manuscript into a downloadable artifact
type Renderer interface {
	Render(ctx context.Context, m *Manuscript) ([]byte, error)
	ContentType() string
	Extension() string
}

// RendererRegistry maps export types to their renderers
type RendererRegistry map[string]Renderer

// DefaultRenderers returns the registry of built-in renderers. docx and
// pdf are the primary document formats; txt and markdown are kept as
// lightweight extras.
func DefaultRenderers() RendererRegistry {
	return RendererRegistry{
		"docx":     &docxRenderer{},
		"pdf":      &pdfRenderer{},
		"txt":      &plainTextRenderer{},
		"markdown": &markdownRenderer{},
	}
}

// SupportedTypes lists registered export types
func (r RendererRegistry) SupportedTypes() []string {
	types := make([]string, 0, len(r))
	for t := range r {
		types = append(types, t)
	}
	return types
}

type plainTextRenderer struct{}

func (plainTextRenderer) ContentType() string { return "text/plain; charset=utf-8" }
func (plainTextRenderer) Extension() string   { return "txt" }

func (plainTextRenderer) Render(_ context.Context, m *Manuscript) ([]byte, error) {
	var b strings.Builder

	b.WriteString(m.ProjectTitle)
	b.WriteString("\n")
	b.WriteString(strings.Repeat("=", len(m.ProjectTitle)))
	b.WriteString("\n\n")

	for _, ch := range m.Chapters {
		b.WriteString(ch.Title)
		b.WriteString("\n")
		b.WriteString(strings.Repeat("-", len(ch.Title)))
		b.WriteString("\n\n")

		for _, sc := range ch.Scenes {
			if sc.Title != "" {
				fmt.Fprintf(&b, "%s\n\n", sc.Title)
			}
			if sc.Content != "" {
				b.WriteString(sc.Content)
				b.WriteString("\n\n")
			}
		}
	}

	return []byte(b.String()), nil
}

type markdownRenderer struct{}

func (markdownRenderer) ContentType() string { return "text/markdown; charset=utf-8" }
func (markdownRenderer) Extension() string   { return "md" }

func (markdownRenderer) Render(_ context.Context, m *Manuscript) ([]byte, error) {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", m.ProjectTitle)

	for _, ch := range m.Chapters {
		fmt.Fprintf(&b, "## %s\n\n", ch.Title)

		for _, sc := range ch.Scenes {
			if sc.Title != "" {
				fmt.Fprintf(&b, "### %s\n\n", sc.Title)
			}
			if sc.Content != "" {
				b.WriteString(sc.Content)
				b.WriteString("\n\n")
			}
		}
	}

	return []byte(b.String()), nil
}
