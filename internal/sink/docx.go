package sink

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/fumiama/go-docx"

	"github.com/dgallion1/parafind/internal/layout"
	"github.com/dgallion1/parafind/internal/markup"
)

const (
	codeFont  = "Courier New"
	codeFill  = "E7E6E6"
	mutedText = "595959"
)

// WriteDOCX writes doc as a Word document. Headings carry HeadingN paragraph
// styles so the file can be read back by the DOCX parser.
func WriteDOCX(w io.Writer, doc layout.FormattedDocument, baseSize float64) error {
	if baseSize <= 0 {
		baseSize = layout.DefaultPageConfig().FontSize
	}
	f := docx.New().WithDefaultTheme()

	if doc.Title != "" {
		addHeading(f, markup.Run{Kind: markup.Heading, Level: 1, Content: doc.Title}, baseSize)
	}
	for _, line := range doc.SummaryLines() {
		f.AddParagraph().AddText(line).Color(mutedText).Size(halfPoints(baseSize))
	}

	for _, b := range doc.Blocks {
		switch b.Kind {
		case layout.BlockBreak:
			f.AddParagraph().AddPageBreaks()
		case layout.BlockHeading:
			for _, r := range b.Runs {
				addHeading(f, r, baseSize)
			}
		default:
			addParagraph(f, b, baseSize)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write docx: %w", err)
	}
	return nil
}

// addParagraph writes one block, splitting it wherever a heading run
// needs a paragraph of its own.
func addParagraph(f *docx.Docx, b layout.Block, base float64) {
	para := f.AddParagraph()
	if b.Label != "" {
		para.AddText(b.Label + " ").Bold().Size(halfPoints(base))
	}
	for _, r := range b.Runs {
		if r.Kind == markup.Heading {
			addHeading(f, r, base)
			para = f.AddParagraph()
			continue
		}
		addRun(para, r, base)
	}
}

func addHeading(f *docx.Docx, r markup.Run, base float64) {
	st := layout.StyleFor(r, base)
	level := r.Level
	if level < 1 || level > 6 {
		level = 6
	}
	f.AddParagraph().Style("Heading" + strconv.Itoa(level)).
		AddText(r.Content).Bold().Size(halfPoints(st.Size))
}

func addRun(p *docx.Paragraph, r markup.Run, base float64) {
	run := p.AddText(r.Content).Size(halfPoints(base))
	switch r.Kind {
	case markup.Strong:
		run.Bold()
	case markup.Emphasis:
		run.Italic()
	case markup.Code:
		run.Font(codeFont, codeFont, codeFont, "").Shade("clear", "auto", codeFill)
	}
}

// halfPoints formats a point size the way WordprocessingML expects.
func halfPoints(pt float64) string {
	return strconv.Itoa(int(math.Round(pt * 2)))
}
