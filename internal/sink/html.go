package sink

import (
	"bytes"
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/yuin/goldmark"
	gmhtml "github.com/yuin/goldmark/renderer/html"

	"github.com/dgallion1/parafind/internal/layout"
	"github.com/dgallion1/parafind/internal/markup"
)

var previewMarkdown = goldmark.New(
	goldmark.WithRendererOptions(gmhtml.WithHardWraps()),
)

const previewStyle = `body{font-family:Helvetica,Arial,sans-serif;max-width:50em;margin:2em auto;line-height:1.4}
code{background:#e7e6e6;padding:0 .2em}
.summary{color:#595959}
hr{page-break-after:always;border:0;border-top:1px solid #ccc}`

// WriteHTML renders doc as a standalone HTML page. The model is written
// out as markdown and converted with goldmark.
func WriteHTML(w io.Writer, doc layout.FormattedDocument) error {
	var body bytes.Buffer
	if err := previewMarkdown.Convert([]byte(Markdown(doc)), &body); err != nil {
		return fmt.Errorf("render html: %w", err)
	}

	_, err := fmt.Fprintf(w, "<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>%s</title>\n<style>\n%s\n</style>\n</head>\n<body>\n%s</body>\n</html>\n",
		html.EscapeString(doc.Title), previewStyle, body.String())
	return err
}

// Markdown serializes the formatted model. Text that was not recognized as
// markup is escaped so it renders literally.
func Markdown(doc layout.FormattedDocument) string {
	var b strings.Builder
	if doc.Title != "" {
		b.WriteString("# " + escapeMarkdown(doc.Title) + "\n\n")
	}
	for _, line := range doc.SummaryLines() {
		b.WriteString(line + "  \n")
	}
	b.WriteString("\n")

	for _, blk := range doc.Blocks {
		switch blk.Kind {
		case layout.BlockBreak:
			b.WriteString("---\n\n")
		case layout.BlockHeading:
			for _, r := range blk.Runs {
				writeHeading(&b, r)
			}
		default:
			if blk.Label != "" {
				b.WriteString("**" + escapeMarkdown(blk.Label) + "** ")
			}
			for _, r := range blk.Runs {
				writeRun(&b, r)
			}
			b.WriteString("\n\n")
		}
	}
	return b.String()
}

func writeHeading(b *strings.Builder, r markup.Run) {
	level := min(max(r.Level, 1), 6)
	b.WriteString(strings.Repeat("#", level) + " " + escapeMarkdown(r.Content) + "\n\n")
}

func writeRun(b *strings.Builder, r markup.Run) {
	switch r.Kind {
	case markup.Strong:
		b.WriteString("**" + escapeMarkdown(r.Content) + "**")
	case markup.Emphasis:
		b.WriteString("*" + escapeMarkdown(r.Content) + "*")
	case markup.Code:
		b.WriteString("`" + r.Content + "`")
	case markup.Heading:
		b.WriteString("\n\n")
		writeHeading(b, r)
	default:
		b.WriteString(escapeMarkdown(r.Content))
	}
}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"`", "\\`",
	"*", `\*`,
	"_", `\_`,
	"#", `\#`,
	"[", `\[`,
	"]", `\]`,
	"<", `\<`,
	">", `\>`,
	"|", `\|`,
)

func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}
