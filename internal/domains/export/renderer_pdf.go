package export

import (
	"bytes"
	"context"
	"fmt"
	"strings"
)

// pdfRenderer writes a minimal PDF 1.4 document: US Letter pages with a
// single Helvetica text stream each, paginated by line count.
type pdfRenderer struct{}

func (pdfRenderer) ContentType() string { return "application/pdf" }
func (pdfRenderer) Extension() string   { return "pdf" }

const pdfLinesPerPage = 52

func (pdfRenderer) Render(_ context.Context, m *Manuscript) ([]byte, error) {
	lines := manuscriptLines(m)

	var pages [][]string
	for start := 0; start < len(lines); start += pdfLinesPerPage {
		end := start + pdfLinesPerPage
		if end > len(lines) {
			end = len(lines)
		}
		pages = append(pages, lines[start:end])
	}
	if len(pages) == 0 {
		pages = [][]string{{""}}
	}

	// Object layout: 1 catalog, 2 page tree, 3 font, then a page and
	// content pair per page.
	var buf bytes.Buffer
	offsets := []int{0}
	writeObj := func(body string) {
		offsets = append(offsets, buf.Len())
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", len(offsets)-1, body)
	}

	buf.WriteString("%PDF-1.4\n")

	const firstPageObj = 4
	kids := make([]string, 0, len(pages))
	for i := range pages {
		kids = append(kids, fmt.Sprintf("%d 0 R", firstPageObj+2*i))
	}

	writeObj("<< /Type /Catalog /Pages 2 0 R >>")
	writeObj(fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), len(pages)))
	writeObj("<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>")

	for i, page := range pages {
		contentObj := firstPageObj + 2*i + 1
		writeObj(fmt.Sprintf(
			"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 3 0 R >> >> /Contents %d 0 R >>",
			contentObj))

		var stream strings.Builder
		stream.WriteString("BT /F1 11 Tf 13 TL 72 756 Td\n")
		for _, line := range page {
			fmt.Fprintf(&stream, "(%s) Tj T*\n", pdfEscaper.Replace(line))
		}
		stream.WriteString("ET")
		writeObj(fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(stream.String()), stream.String()))
	}

	xrefStart := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(offsets))
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets[1:] {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(offsets), xrefStart)

	return buf.Bytes(), nil
}

var pdfEscaper = strings.NewReplacer(`\`, `\\`, "(", `\(`, ")", `\)`)

func manuscriptLines(m *Manuscript) []string {
	lines := []string{m.ProjectTitle, ""}
	for _, ch := range m.Chapters {
		lines = append(lines, ch.Title, "")
		for _, sc := range ch.Scenes {
			if sc.Title != "" {
				lines = append(lines, sc.Title, "")
			}
			if sc.Content != "" {
				lines = append(lines, strings.Split(sc.Content, "\n")...)
				lines = append(lines, "")
			}
		}
	}
	return lines
}
