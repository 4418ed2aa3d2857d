// Package sink writes formatted search results to DOCX, PDF and HTML.
package sink

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dgallion1/parafind/internal/layout"
)

// ErrUnknownFormat is returned for output formats no sink handles.
var ErrUnknownFormat = errors.New("unknown output format")

// Format names an output artifact type.
type Format string

const (
	FormatDOCX Format = "docx"
	FormatPDF  Format = "pdf"
	FormatHTML Format = "html"
)

// DefaultFormats are produced when a caller asks for none.
var DefaultFormats = []Format{FormatDOCX, FormatPDF}

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), "."))); f {
	case FormatDOCX, FormatPDF, FormatHTML:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// ParseFormats parses and de-duplicates names, keeping their order.
func ParseFormats(names []string) ([]Format, error) {
	var out []Format
	seen := map[Format]bool{}
	for _, n := range names {
		if strings.TrimSpace(n) == "" {
			continue
		}
		f, err := ParseFormat(n)
		if err != nil {
			return nil, err
		}
		if !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	if len(out) == 0 {
		return append([]Format(nil), DefaultFormats...), nil
	}
	return out, nil
}

func (f Format) ContentType() string {
	switch f {
	case FormatDOCX:
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case FormatPDF:
		return "application/pdf"
	case FormatHTML:
		return "text/html; charset=utf-8"
	}
	return "application/octet-stream"
}

// Filename builds "<prefix>_YYYYMMDD_HHMMSS.<ext>".
func Filename(prefix string, f Format, now time.Time) string {
	if prefix == "" {
		prefix = "search_results"
	}
	return fmt.Sprintf("%s_%s.%s", prefix, now.Format("20060102_150405"), f)
}

// Renderer writes a formatted document in any supported format. The PDF
// path paginates with the renderer's page configuration.
type Renderer struct {
	paginator *layout.Paginator
}

// NewRenderer validates cfg. A nil m measures with the PDF core fonts.
func NewRenderer(cfg layout.PageConfig, m layout.Metrics) (*Renderer, error) {
	if m == nil {
		m = NewPDFMetrics()
	}
	p, err := layout.NewPaginator(cfg, m)
	if err != nil {
		return nil, err
	}
	return &Renderer{paginator: p}, nil
}

// Layout paginates doc without writing anything.
func (r *Renderer) Layout(doc layout.FormattedDocument) layout.PaginatedLayout {
	return r.paginator.Layout(doc)
}

func (r *Renderer) Render(w io.Writer, f Format, doc layout.FormattedDocument) error {
	switch f {
	case FormatDOCX:
		return WriteDOCX(w, doc, r.paginator.Config().FontSize)
	case FormatPDF:
		return WritePDF(w, r.Layout(doc), doc.Title)
	case FormatHTML:
		return WriteHTML(w, doc)
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, string(f))
}
