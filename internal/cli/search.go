package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/dgallion1/parafind/internal/pipeline"
	"github.com/dgallion1/parafind/internal/sink"
)

type searchOptions struct {
	out         string
	formats     []string
	prefix      string
	diagnostics bool
	now         func() time.Time
}

func newSearchCommand(g *globalOptions) *cobra.Command {
	opts := &searchOptions{now: time.Now}
	cmd := &cobra.Command{
		Use:   "search TERM FILE...",
		Short: "Search files for a term and write the matching paragraphs",
		Long: `Search every FILE for paragraphs containing TERM (case-insensitive) and
write the results to timestamped files in --out.

Supported inputs: .txt .md .markdown .csv .html .htm .pdf .docx

Examples:
  parafind search invoice notes.md report.pdf
  parafind search "late fee" contracts/*.docx --format pdf,html --out results`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, g, opts, args[0], args[1:])
		},
	}
	cmd.Flags().StringVarP(&opts.out, "out", "o", ".", "directory for result files")
	cmd.Flags().StringSliceVarP(&opts.formats, "format", "f", []string{"docx", "pdf"}, "output formats: docx, pdf, html")
	cmd.Flags().StringVar(&opts.prefix, "prefix", "", "result file name prefix (default EXPORT_PREFIX)")
	cmd.Flags().BoolVar(&opts.diagnostics, "diagnostics", false, "print segmentation and restructuring details")
	return cmd
}

func runSearch(cmd *cobra.Command, g *globalOptions, opts *searchOptions, term string, paths []string) error {
	out := cmd.OutOrStdout()
	log := g.logger(cmd.ErrOrStderr())

	formats, err := sink.ParseFormats(opts.formats)
	if err != nil {
		return err
	}
	renderer, err := sink.NewRenderer(g.cfg.Page(), nil)
	if err != nil {
		return err
	}

	set, ids := loadFiles(paths, log, g.cfg.PDFFallbackPdftotext)
	sess, err := pipeline.Search(set, term, ids, pipeline.Options{Trace: opts.diagnostics, Logger: log})
	if errors.Is(err, pipeline.ErrNoDocuments) {
		return errors.New("none of the files could be read")
	}
	if err != nil {
		return err
	}

	printSummary(out, sess)
	if opts.diagnostics {
		printDiagnostics(out, sess)
	}
	if sess.Stats.TotalFoundParagraphs == 0 {
		color.New(color.FgYellow).Fprintln(out, "No paragraphs matched; nothing written.")
		return nil
	}

	if err := os.MkdirAll(opts.out, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	prefix := opts.prefix
	if prefix == "" {
		prefix = g.cfg.ExportPrefix
	}
	doc := sess.Formatted()
	now := opts.now()
	for _, f := range formats {
		path := filepath.Join(opts.out, sink.Filename(prefix, f, now))
		if err := writeArtifact(path, func(w io.Writer) error { return renderer.Render(w, f, doc) }); err != nil {
			return err
		}
		color.New(color.FgGreen).Fprintf(out, "wrote %s\n", path)
	}
	return nil
}

func writeArtifact(path string, render func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := render(f); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("render %s: %w", filepath.Base(path), err)
	}
	return f.Close()
}

func printSummary(w io.Writer, sess *pipeline.Session) {
	title := color.New(color.FgCyan, color.Bold)
	title.Fprintln(w, sess.Title())

	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.AppendHeader(table.Row{"Document", "Paragraphs", "Found", "Occurrences"})
	for _, r := range sess.Results {
		tw.AppendRow(table.Row{r.DocumentID, r.TotalParagraphs, len(r.FoundParagraphs), r.Occurrences})
	}
	for _, id := range sess.Unavailable() {
		tw.AppendRow(table.Row{id, "-", "-", "unavailable"})
	}
	st := sess.Stats
	tw.AppendFooter(table.Row{
		fmt.Sprintf("%d of %d with matches", st.DocumentCount, st.DocumentsSearched),
		st.TotalParagraphs, st.TotalFoundParagraphs, st.TotalOccurrences,
	})
	tw.SetStyle(table.StyleLight)
	tw.Style().Format.Footer = text.FormatDefault
	tw.Render()
}

func printDiagnostics(w io.Writer, sess *pipeline.Session) {
	section := color.New(color.FgYellow, color.Bold)
	for _, d := range sess.Diagnostics {
		section.Fprintf(w, "\n%s\n", d.DocumentID)
		if d.Error != "" {
			color.New(color.FgRed).Fprintf(w, "  %s\n", d.Error)
			continue
		}
		if d.Segmentation != nil {
			renderSegmentation(w, *d.Segmentation)
		}
		for _, tr := range d.Restructured {
			tw := table.NewWriter()
			tw.SetOutputMirror(w)
			tw.SetTitle(fmt.Sprintf("paragraph %d", tr.Index+1))
			tw.AppendHeader(table.Row{"#", "Section", "Kept", "Reason"})
			for _, s := range tr.Sections {
				tw.AppendRow(table.Row{s.Index + 1, s.Text, s.Kept, s.Reason})
			}
			tw.SetStyle(table.StyleLight)
			tw.Render()
		}
	}
}
