package parser

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/fumiama/go-docx"
)

// DOCXParser handles .docx files. Bold, italic and shaded runs are written
// back as **, * and ` markers; heading styles become "#" lines.
type DOCXParser struct{}

func (p *DOCXParser) Parse(r io.Reader, filename string) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read docx: %w", err)
	}
	doc, err := docx.Parse(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("parse docx: %w", err)
	}

	var blocks []string
	for _, item := range doc.Document.Body.Items {
		para, ok := item.(*docx.Paragraph)
		if !ok {
			continue
		}
		if level := docxHeadingLevel(para); level > 0 {
			if t := docxParagraphText(para, false); t != "" {
				blocks = append(blocks, heading(level, t))
			}
			continue
		}
		blocks = append(blocks, docxParagraphText(para, true))
	}
	return joinBlocks(blocks), nil
}

func docxHeadingLevel(para *docx.Paragraph) int {
	if para.Properties == nil || para.Properties.Style == nil {
		return 0
	}
	style := strings.ToLower(strings.ReplaceAll(para.Properties.Style.Val, " ", ""))
	switch style {
	case "title":
		return 1
	case "heading1", "heading2", "heading3", "heading4", "heading5", "heading6":
		return int(style[len(style)-1] - '0')
	}
	return 0
}

func docxParagraphText(para *docx.Paragraph, marked bool) string {
	var buf strings.Builder
	for _, child := range para.Children {
		run, ok := child.(*docx.Run)
		if !ok {
			continue
		}
		var text strings.Builder
		for _, rc := range run.Children {
			switch t := rc.(type) {
			case *docx.Text:
				text.WriteString(t.Text)
			case *docx.BarterRabbet:
				if t.Type == "" {
					text.WriteString("\n")
				}
			}
		}
		s := text.String()
		if marked && strings.TrimSpace(s) != "" {
			s = wrapRun(s, run.RunProperties)
		}
		buf.WriteString(s)
	}
	return strings.TrimSpace(buf.String())
}

func wrapRun(s string, props *docx.RunProperties) string {
	if props == nil {
		return s
	}
	var marker string
	switch {
	case props.Shade != nil:
		marker = "`"
	case props.Bold != nil:
		marker = "**"
	case props.Italic != nil:
		marker = "*"
	default:
		return s
	}
	// Markers must hug the text, so surrounding spaces stay outside.
	trimmed := strings.TrimSpace(s)
	lead := s[:strings.Index(s, trimmed)]
	trail := s[len(lead)+len(trimmed):]
	return lead + marker + trimmed + marker + trail
}
