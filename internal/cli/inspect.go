package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/dgallion1/parafind/internal/segment"
)

func newInspectCommand(g *globalOptions) *cobra.Command {
	var showParagraphs bool
	cmd := &cobra.Command{
		Use:   "inspect FILE...",
		Short: "Show how each file is split into paragraphs",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			set, ids := loadFiles(args, g.logger(cmd.ErrOrStderr()), g.cfg.PDFFallbackPdftotext)
			if len(ids) == 0 {
				return fmt.Errorf("none of the files could be read")
			}
			for _, id := range ids {
				paras, diag := segment.Segment(set[id])
				color.New(color.FgCyan, color.Bold).Fprintf(out, "%s: %d paragraphs (%s)\n", id, len(paras), diag.Method)
				renderSegmentation(out, diag)
				if showParagraphs {
					for i, p := range paras {
						fmt.Fprintf(out, "%4d  %s\n", i+1, p)
					}
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&showParagraphs, "paragraphs", "p", false, "also print every paragraph")
	return cmd
}

func renderSegmentation(w io.Writer, diag segment.Diagnostics) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.AppendHeader(table.Row{"Method", "Paragraphs", "Avg length", "Chosen"})
	for _, c := range diag.Candidates {
		chosen := ""
		if c.Method == diag.Method {
			chosen = "*"
		}
		tw.AppendRow(table.Row{c.Method, c.Count, fmt.Sprintf("%.1f", c.AvgLength), chosen})
	}
	caption := ""
	if diag.ConvertedLineEndings {
		caption = "line endings normalized"
	}
	if diag.Fallback {
		if caption != "" {
			caption += "; "
		}
		caption += "fell back from the default split"
	}
	if caption != "" {
		tw.SetCaption(caption)
	}
	tw.SetStyle(table.StyleLight)
	tw.Render()
}
