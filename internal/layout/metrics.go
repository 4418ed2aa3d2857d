package layout

import (
	"github.com/dgallion1/parafind/internal/markup"
	"github.com/mattn/go-runewidth"
)

// Style is the resolved formatting of a run.
type Style struct {
	Bold   bool    `json:"bold,omitempty"`
	Italic bool    `json:"italic,omitempty"`
	Mono   bool    `json:"mono,omitempty"`
	Size   float64 `json:"size"`
}

var headingScale = [...]float64{1: 1.6, 2: 1.4, 3: 1.25, 4: 1.15, 5: 1.05, 6: 1.0}

// StyleFor maps a run to its style at the given base font size.
func StyleFor(r markup.Run, base float64) Style {
	st := Style{Size: base}
	switch r.Kind {
	case markup.Strong:
		st.Bold = true
	case markup.Emphasis:
		st.Italic = true
	case markup.Code:
		st.Mono = true
	case markup.Heading:
		st.Bold = true
		level := r.Level
		if level < 1 || level >= len(headingScale) {
			level = len(headingScale) - 1
		}
		st.Size = base * headingScale[level]
	}
	return st
}

// Metrics measures text in points under a style.
type Metrics interface {
	Width(text string, st Style) float64
}

// CellMetrics approximates glyph widths from terminal cell widths, so wide
// CJK characters count double. Each style has its own average advance.
type CellMetrics struct{}

// Average advance per cell as a fraction of the font size.
const (
	advanceRegular = 0.50
	advanceBold    = 0.55
	advanceItalic  = 0.48
	advanceMono    = 0.60
)

func (CellMetrics) Width(text string, st Style) float64 {
	adv := advanceRegular
	switch {
	case st.Mono:
		adv = advanceMono
	case st.Bold:
		adv = advanceBold
	case st.Italic:
		adv = advanceItalic
	}
	return float64(runewidth.StringWidth(text)) * adv * st.Size
}
