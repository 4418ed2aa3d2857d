package sink

import (
	"fmt"
	"io"
	"sync"

	"github.com/go-pdf/fpdf"

	"github.com/dgallion1/parafind/internal/layout"
)

const (
	textFont   = "Helvetica"
	monoFont   = "Courier"
	footerSize = 8
)

// Grey behind code spans, matching the DOCX shading.
var codeShade = [3]int{0xE7, 0xE6, 0xE6}

func fontFor(st layout.Style) (family, style string) {
	family = textFont
	if st.Mono {
		family = monoFont
	}
	if st.Bold {
		style += "B"
	}
	if st.Italic {
		style += "I"
	}
	return family, style
}

// WritePDF draws a paginated layout with the PDF core fonts. Every layout
// page becomes one PDF page with a "Page n of m" footer.
func WritePDF(w io.Writer, pl layout.PaginatedLayout, title string) error {
	cfg := pl.Config
	if err := cfg.Validate(); err != nil {
		return err
	}

	pdf := fpdf.NewCustom(&fpdf.InitType{
		UnitStr: "pt",
		Size:    fpdf.SizeType{Wd: cfg.Width, Ht: cfg.Height},
	})
	pdf.SetMargins(cfg.MarginLeft, cfg.MarginTop, cfg.MarginRight)
	pdf.SetAutoPageBreak(false, cfg.MarginBottom)
	pdf.SetTitle(title, true)
	pdf.SetCreator("parafind", true)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pages := pl.Pages
	if len(pages) == 0 {
		pages = []layout.Page{{Number: 1}}
	}
	for _, page := range pages {
		pdf.AddPage()
		for _, line := range page.Lines {
			for _, pc := range line.Placements {
				family, style := fontFor(pc.Style)
				pdf.SetFont(family, style, pc.Style.Size)
				if pc.Style.Mono {
					pdf.SetFillColor(codeShade[0], codeShade[1], codeShade[2])
					pdf.Rect(pc.X-1, line.Y-pc.Style.Size*0.8, pc.Width+2, pc.Style.Size, "F")
				}
				pdf.Text(pc.X, line.Y, tr(pc.Text))
			}
		}

		pdf.SetFont(textFont, "", footerSize)
		footer := fmt.Sprintf("Page %d of %d", page.Number, len(pages))
		x := (cfg.Width - pdf.GetStringWidth(footer)) / 2
		pdf.Text(x, cfg.Height-cfg.MarginBottom/2, footer)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

// PDFMetrics measures text with the same core-font tables WritePDF draws
// with, so wrapped lines fit the page exactly.
type PDFMetrics struct {
	mu  sync.Mutex
	pdf *fpdf.Fpdf
	tr  func(string) string
}

func NewPDFMetrics() *PDFMetrics {
	pdf := fpdf.New("P", "pt", "A4", "")
	return &PDFMetrics{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}
}

func (m *PDFMetrics) Width(text string, st layout.Style) float64 {
	family, style := fontFor(st)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pdf.SetFont(family, style, st.Size)
	return m.pdf.GetStringWidth(m.tr(text))
}
