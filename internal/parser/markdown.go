package parser

import (
	"bytes"
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownParser handles Markdown files. Inline markup is kept verbatim;
// goldmark is only used to find block boundaries so that blocks written
// without a separating blank line still become separate paragraphs.
type MarkdownParser struct{}

func (p *MarkdownParser) Parse(r io.Reader, filename string) (string, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	decoded, err := decodeText(raw)
	if err != nil {
		return "", err
	}
	src := []byte(strings.ReplaceAll(decoded, "\r\n", "\n"))

	doc := goldmark.New().Parser().Parse(text.NewReader(src))

	var blocks []string
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.Heading:
			blocks = append(blocks, heading(node.Level, string(bytes.TrimSpace(linesValue(node, src)))))
		case *ast.ThematicBreak:
		default:
			start, stop, ok := blockSpan(n)
			if !ok {
				continue
			}
			blocks = append(blocks, string(src[lineStart(src, start):stop]))
		}
	}
	return joinBlocks(blocks), nil
}

func linesValue(n ast.Node, src []byte) []byte {
	var buf bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf.Write(seg.Value(src))
	}
	return buf.Bytes()
}

// blockSpan returns the source range covered by the lines of n and its
// block descendants.
func blockSpan(n ast.Node) (start, stop int, ok bool) {
	start = -1
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if c.Type() != ast.TypeBlock {
			return ast.WalkSkipChildren, nil
		}
		lines := c.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			if start < 0 || seg.Start < start {
				start = seg.Start
			}
			if seg.Stop > stop {
				stop = seg.Stop
			}
		}
		return ast.WalkContinue, nil
	})
	return start, stop, start >= 0 && stop > start
}

// lineStart widens pos back to the start of its line so list and quote
// markers survive.
func lineStart(src []byte, pos int) int {
	if i := bytes.LastIndexByte(src[:pos], '\n'); i >= 0 {
		return i + 1
	}
	return 0
}
