package layout

import (
	"strings"
	"unicode"

	"github.com/dgallion1/parafind/internal/markup"
)

// Placement is a piece of text positioned on a line. X is measured from the
// left page edge in points.
type Placement struct {
	Text  string      `json:"text"`
	Kind  markup.Kind `json:"kind"`
	Style Style       `json:"style"`
	X     float64     `json:"x"`
	Width float64     `json:"width"`
}

// Line is a row of placements. Y is the baseline measured from the top page
// edge; Width is the extent of the placed text.
type Line struct {
	Y          float64     `json:"y"`
	Height     float64     `json:"height"`
	Width      float64     `json:"width"`
	Placements []Placement `json:"placements"`
}

// Page is one page of the paginated layout.
type Page struct {
	Number int    `json:"number"`
	Lines  []Line `json:"lines"`
}

// PaginatedLayout is the model consumed by the page-based sink.
type PaginatedLayout struct {
	Config PageConfig `json:"config"`
	Pages  []Page     `json:"pages"`
}

// Paginator wraps formatted documents onto pages with a greedy line breaker.
type Paginator struct {
	cfg     PageConfig
	metrics Metrics
}

// NewPaginator validates cfg up front so Layout itself cannot fail.
func NewPaginator(cfg PageConfig, m Metrics) (*Paginator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if m == nil {
		m = CellMetrics{}
	}
	return &Paginator{cfg: cfg, metrics: m}, nil
}

// Config returns the page configuration the paginator was built with.
func (p *Paginator) Config() PageConfig { return p.cfg }

// Layout places the title, the statistics header and every block.
func (p *Paginator) Layout(doc FormattedDocument) PaginatedLayout {
	s := &pageState{p: p}
	s.newPage()

	if doc.Title != "" {
		s.heading(markup.Run{Kind: markup.Heading, Level: 1, Content: doc.Title})
	}
	for _, line := range doc.SummaryLines() {
		s.flow([]markup.Run{{Kind: markup.Plain, Content: line}})
		s.flush()
	}
	s.space(p.cfg.ParagraphSpacing)

	for _, b := range doc.Blocks {
		switch b.Kind {
		case BlockBreak:
			s.pageBreak()
		case BlockHeading:
			for _, r := range b.Runs {
				s.heading(r)
			}
		default:
			runs := b.Runs
			if b.Label != "" {
				runs = append([]markup.Run{{Kind: markup.Strong, Content: b.Label + " "}}, runs...)
			}
			s.paragraph(runs)
			s.space(p.cfg.ParagraphSpacing)
		}
	}
	s.flush()

	return PaginatedLayout{Config: p.cfg, Pages: s.pages}
}

type fragment struct {
	text  string
	kind  markup.Kind
	style Style
	width float64
}

// word is text with no whitespace inside it; it may span several runs.
type word struct {
	frags       []fragment
	width       float64
	spaceBefore bool
	breakBefore bool
}

type pageState struct {
	p     *Paginator
	pages []Page
	y     float64 // top of the next line

	line     []Placement
	x        float64 // width used on the current line
	lineSize float64 // largest font size on the current line
}

func (s *pageState) current() *Page { return &s.pages[len(s.pages)-1] }

func (s *pageState) newPage() {
	s.pages = append(s.pages, Page{Number: len(s.pages) + 1})
	s.y = s.p.cfg.MarginTop
}

func (s *pageState) pageBreak() {
	s.flush()
	if len(s.current().Lines) > 0 {
		s.newPage()
	}
}

func (s *pageState) space(pt float64) {
	if len(s.current().Lines) > 0 {
		s.y += pt
	}
}

// paragraph lays out runs, isolating heading runs on their own lines.
func (s *pageState) paragraph(runs []markup.Run) {
	start := 0
	for i, r := range runs {
		if r.Kind != markup.Heading {
			continue
		}
		s.flow(runs[start:i])
		s.heading(r)
		start = i + 1
	}
	s.flow(runs[start:])
	s.flush()
}

func (s *pageState) heading(r markup.Run) {
	s.flush()
	s.space(s.p.cfg.HeadingSpacing)
	s.flow([]markup.Run{r})
	s.flush()
	s.space(s.p.cfg.HeadingSpacing / 2)
}

// flow packs the words of runs onto lines greedily.
func (s *pageState) flow(runs []markup.Run) {
	cfg := s.p.cfg
	usable := cfg.UsableWidth()
	spaceWidth := s.p.metrics.Width(" ", Style{Size: cfg.FontSize})

	for _, w := range s.words(runs) {
		if w.breakBefore {
			s.flush()
		}
		gap := 0.0
		if len(s.line) > 0 && w.spaceBefore {
			gap = spaceWidth
		}
		if len(s.line) > 0 && s.x+gap+w.width > usable {
			s.flush()
			gap = 0
		}
		x := s.x + gap
		for _, f := range w.frags {
			s.line = append(s.line, Placement{
				Text:  f.text,
				Kind:  f.kind,
				Style: f.style,
				X:     cfg.MarginLeft + x,
				Width: f.width,
			})
			x += f.width
			if f.style.Size > s.lineSize {
				s.lineSize = f.style.Size
			}
		}
		s.x = x
	}
}

// words splits runs at whitespace. Text on either side of a run boundary
// with no whitespace between stays one word.
func (s *pageState) words(runs []markup.Run) []word {
	var out []word
	cur := -1
	space, brk := false, false

	for _, r := range runs {
		st := StyleFor(r, s.p.cfg.FontSize)
		content := r.Content
		for content != "" {
			n := strings.IndexFunc(content, unicode.IsSpace)
			if n == 0 {
				m := strings.IndexFunc(content, notSpace)
				if m < 0 {
					m = len(content)
				}
				if strings.ContainsRune(content[:m], '\n') {
					brk = true
				} else {
					space = true
				}
				cur = -1
				content = content[m:]
				continue
			}
			if n < 0 {
				n = len(content)
			}
			if cur < 0 {
				out = append(out, word{spaceBefore: space, breakBefore: brk})
				cur = len(out) - 1
				space, brk = false, false
			}
			f := fragment{text: content[:n], kind: r.Kind, style: st}
			f.width = s.p.metrics.Width(f.text, st)
			out[cur].frags = append(out[cur].frags, f)
			out[cur].width += f.width
			content = content[n:]
		}
	}
	return out
}

// flush ends the current line, starting a new page when it would cross the
// bottom margin.
func (s *pageState) flush() {
	if len(s.line) == 0 {
		return
	}
	cfg := s.p.cfg
	height := s.lineSize * cfg.LineSpacing
	if s.y+height > cfg.Height-cfg.MarginBottom && len(s.current().Lines) > 0 {
		s.newPage()
	}
	page := s.current()
	page.Lines = append(page.Lines, Line{
		Y:          s.y + s.lineSize,
		Height:     height,
		Width:      s.x,
		Placements: s.line,
	})
	s.y += height
	s.line = nil
	s.x = 0
	s.lineSize = 0
}

func notSpace(r rune) bool { return !unicode.IsSpace(r) }
