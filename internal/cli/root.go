// Package cli implements the parafind command line: search files for a term
// and write the results as DOCX, PDF or HTML, or inspect how files segment.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dgallion1/parafind/internal/config"
	"github.com/dgallion1/parafind/internal/document"
	"github.com/dgallion1/parafind/internal/parser"
)

type globalOptions struct {
	debug bool
	cfg   config.Config
}

// NewRootCommand builds the parafind command tree.
func NewRootCommand(version string) *cobra.Command {
	opts := &globalOptions{}
	root := &cobra.Command{
		Use:           "parafind",
		Short:         "Find the paragraphs of your documents that mention a term",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			opts.cfg = config.Load()
			return opts.cfg.Validate()
		},
	}
	root.PersistentFlags().BoolVar(&opts.debug, "debug", false, "log pipeline decisions to stderr")

	root.AddCommand(newSearchCommand(opts), newInspectCommand(opts))
	return root
}

func (o *globalOptions) logger(w io.Writer) *slog.Logger {
	level := slog.LevelWarn
	if o.debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// loadFiles parses each path into the returned set, keyed by base name.
// Files that cannot be read are logged and skipped; the returned ids keep
// argument order.
func loadFiles(paths []string, log *slog.Logger, pdfFallback bool) (document.Set, []string) {
	set := document.Set{}
	var ids []string
	for _, path := range paths {
		text, err := readFile(path, pdfFallback)
		if err != nil {
			log.Warn("skipping file", "path", path, "error", err)
			continue
		}
		id := filepath.Base(path)
		if _, dup := set[id]; dup {
			id = path
		}
		set[id] = text
		ids = append(ids, id)
	}
	return set, ids
}

func readFile(path string, pdfFallback bool) (string, error) {
	p, err := parser.ForFile(path)
	if err != nil {
		return "", err
	}
	if pp, ok := p.(*parser.PDFParser); ok {
		pp.FallbackPdftotext = pdfFallback
	}
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	text, err := p.Parse(f, filepath.Base(path))
	if err != nil {
		return "", fmt.Errorf("parse %s: %w", path, err)
	}
	return text, nil
}
