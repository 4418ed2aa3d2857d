package layout

import (
	"errors"
	"fmt"
)

// ErrNoUsableArea means the margins leave no room to place a line.
var ErrNoUsableArea = errors.New("page configuration leaves no usable area")

// PageConfig describes the page geometry in points.
type PageConfig struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`

	MarginTop    float64 `json:"margin_top"`
	MarginRight  float64 `json:"margin_right"`
	MarginBottom float64 `json:"margin_bottom"`
	MarginLeft   float64 `json:"margin_left"`

	FontSize         float64 `json:"font_size"`
	LineSpacing      float64 `json:"line_spacing"`      // multiple of the largest font size on a line
	ParagraphSpacing float64 `json:"paragraph_spacing"` // points after each paragraph block
	HeadingSpacing   float64 `json:"heading_spacing"`   // extra points around headings
}

// DefaultPageConfig is A4 with 2cm margins and 11pt text.
func DefaultPageConfig() PageConfig {
	return PageConfig{
		Width:            595.28,
		Height:           841.89,
		MarginTop:        56.69,
		MarginRight:      56.69,
		MarginBottom:     56.69,
		MarginLeft:       56.69,
		FontSize:         11,
		LineSpacing:      1.4,
		ParagraphSpacing: 6,
		HeadingSpacing:   8,
	}
}

// UniformMargins returns a copy of c with all four margins set to m.
func (c PageConfig) UniformMargins(m float64) PageConfig {
	c.MarginTop, c.MarginRight, c.MarginBottom, c.MarginLeft = m, m, m, m
	return c
}

// UsableWidth is the horizontal space between the side margins.
func (c PageConfig) UsableWidth() float64 {
	return c.Width - c.MarginLeft - c.MarginRight
}

// UsableHeight is the vertical space between the top and bottom margins.
func (c PageConfig) UsableHeight() float64 {
	return c.Height - c.MarginTop - c.MarginBottom
}

// Validate rejects configurations that cannot hold a single line of text.
func (c PageConfig) Validate() error {
	if c.FontSize <= 0 {
		return fmt.Errorf("font size must be positive, got %v", c.FontSize)
	}
	if c.LineSpacing <= 0 {
		return fmt.Errorf("line spacing must be positive, got %v", c.LineSpacing)
	}
	if c.UsableWidth() <= 0 {
		return fmt.Errorf("%w: usable width %.2fpt", ErrNoUsableArea, c.UsableWidth())
	}
	if c.UsableHeight() < c.FontSize*c.LineSpacing {
		return fmt.Errorf("%w: usable height %.2fpt", ErrNoUsableArea, c.UsableHeight())
	}
	return nil
}
