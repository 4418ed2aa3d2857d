package sink

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dgallion1/parafind/internal/layout"
	"github.com/dgallion1/parafind/internal/parser"
)

func sampleDocument() layout.FormattedDocument {
	stats := layout.Stats{
		DocumentsSearched:    3,
		DocumentCount:        2,
		TotalParagraphs:      9,
		TotalFoundParagraphs: 2,
		TotalOccurrences:     3,
	}
	return layout.BuildDocument(`Search results for "x"`, stats, []layout.Group{
		{DocumentID: "a", Paragraphs: []string{"has **bold** and `code`"}},
		{DocumentID: "b", Paragraphs: []string{"an *italic* x and 2 * 3 = 6"}},
	})
}

func TestFilename(t *testing.T) {
	now := time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC)
	assert.Equal(t, "search_results_20250304_050607.pdf", Filename("search_results", FormatPDF, now))
	assert.Equal(t, "search_results_20250304_050607.docx", Filename("", FormatDOCX, now))
	assert.Equal(t, "report_20250304_050607.html", Filename("report", FormatHTML, now))
}

func TestParseFormats(t *testing.T) {
	got, err := ParseFormats([]string{" PDF", "docx", "pdf", ""})
	require.NoError(t, err)
	assert.Equal(t, []Format{FormatPDF, FormatDOCX}, got)

	got, err = ParseFormats(nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultFormats, got)

	_, err = ParseFormats([]string{"xls"})
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestContentType(t *testing.T) {
	assert.Equal(t, "application/pdf", FormatPDF.ContentType())
	assert.Contains(t, FormatDOCX.ContentType(), "wordprocessingml")
	assert.Equal(t, "text/html; charset=utf-8", FormatHTML.ContentType())
	assert.Equal(t, "application/octet-stream", Format("zip").ContentType())
}

func TestWriteDOCXReadsBack(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteDOCX(&buf, sampleDocument(), 11))

	text, err := (&parser.DOCXParser{}).Parse(&buf, "out.docx")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(text, `# Search results for "x"`), "title heading missing: %q", text)
	assert.Contains(t, text, "Documents with matches: 2 of 3")
	assert.Contains(t, text, "## a\n\n**1.** has **bold** and `code`")
	assert.Contains(t, text, "## b\n\n**2.** an *italic* x and 2 * 3 = 6")
}

func TestWritePDF(t *testing.T) {
	r, err := NewRenderer(layout.DefaultPageConfig(), nil)
	require.NoError(t, err)

	doc := sampleDocument()
	pl := r.Layout(doc)
	require.Len(t, pl.Pages, 2, "document break should start a new page")

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, FormatPDF, doc))
	out := buf.Bytes()
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-1.")))
	assert.Contains(t, string(out), "/Count 2")
}

func TestWritePDFRejectsBadConfig(t *testing.T) {
	cfg := layout.DefaultPageConfig()
	cfg.MarginLeft = cfg.Width
	err := WritePDF(&bytes.Buffer{}, layout.PaginatedLayout{Config: cfg}, "t")
	assert.ErrorIs(t, err, layout.ErrNoUsableArea)

	_, err = NewRenderer(cfg, nil)
	assert.ErrorIs(t, err, layout.ErrNoUsableArea)
}

func TestPDFMetrics(t *testing.T) {
	m := NewPDFMetrics()
	regular := layout.Style{Size: 11}
	bold := layout.Style{Size: 11, Bold: true}
	mono := layout.Style{Size: 11, Mono: true}

	assert.Less(t, m.Width("iii", regular), m.Width("MMM", regular))
	assert.GreaterOrEqual(t, m.Width("abc", bold), m.Width("abc", regular))
	// Courier advances are 600 units for every glyph.
	assert.InDelta(t, 19.8, m.Width("iii", mono), 1e-9)
	assert.InDelta(t, m.Width("iii", mono), m.Width("MMM", mono), 1e-9)
	assert.Zero(t, m.Width("", regular))
}

func TestWriteHTML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteHTML(&buf, sampleDocument()))
	out := buf.String()

	assert.Contains(t, out, "<title>Search results for &#34;x&#34;</title>")
	assert.Contains(t, out, "<h2>a</h2>")
	assert.Contains(t, out, "<strong>bold</strong>")
	assert.Contains(t, out, "<code>code</code>")
	assert.Contains(t, out, "<em>italic</em>")
	assert.Contains(t, out, "2 * 3 = 6")
	assert.Contains(t, out, "<hr")
}

func TestMarkdownEscapesPlainText(t *testing.T) {
	doc := layout.BuildDocument("t", layout.Stats{}, []layout.Group{
		{DocumentID: "d_1", Paragraphs: []string{"a_b [link] <tag>"}},
	})
	md := Markdown(doc)
	assert.Contains(t, md, `## d\_1`)
	assert.Contains(t, md, "**1.** ")
	assert.Contains(t, md, `a\_b \[link\] \<tag\>`)
}

func TestRenderUnknownFormat(t *testing.T) {
	r, err := NewRenderer(layout.DefaultPageConfig(), layout.CellMetrics{})
	require.NoError(t, err)
	err = r.Render(&bytes.Buffer{}, Format("xls"), sampleDocument())
	assert.ErrorIs(t, err, ErrUnknownFormat)
}
