package commands

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/civicviz/reasons311/internal/config"
	"github.com/civicviz/reasons311/internal/dataset"
	"github.com/civicviz/reasons311/internal/model"
	"github.com/civicviz/reasons311/internal/pipeline"
)

func newTopCommand(g *globalFlags) *cobra.Command {
	var topN int
	var asCSV bool

	cmd := &cobra.Command{
		Use:   "top [source]",
		Short: "Print the most frequent reasons without drawing a chart",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.loadConfig()
			if err != nil {
				return err
			}
			if len(args) > 0 {
				cfg.Source.Path = args[0]
			}
			if cmd.Flags().Changed("top") {
				cfg.Source.TopN = topN
			}
			return runTop(cmd.Context(), cmd.OutOrStdout(), cfg, asCSV, g)
		},
	}

	cmd.Flags().IntVarP(&topN, "top", "n", 10, "number of reasons to list")
	cmd.Flags().BoolVar(&asCSV, "csv", false, "print as CSV instead of a table")

	return cmd
}

func runTop(ctx context.Context, stdout io.Writer, cfg *config.Config, asCSV bool, g *globalFlags) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := cfg.ValidatePipeline(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	h, err := pipeline.Run(ctx, pipeline.Options{
		Config: cfg,
		Logger: g.log(),
	})
	if err != nil {
		return err
	}

	if asCSV {
		cols := dataset.Columns{Reason: cfg.Source.ReasonColumn, Count: cfg.Source.CountColumn}
		return dataset.Write(stdout, h.Top, cols)
	}
	return writeTable(stdout, h.Top)
}

// writeTable prints rank, reason, and count in aligned columns.
func writeTable(w io.Writer, top model.Dataset) error {
	reasonWidth := runewidth.StringWidth("REASON")
	countWidth := len("COUNT")
	for _, r := range top {
		reasonWidth = max(reasonWidth, runewidth.StringWidth(r.Reason))
		countWidth = max(countWidth, len(r.CountText()))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%4s  %s  %*s\n", "#", runewidth.FillRight("REASON", reasonWidth), countWidth, "COUNT")
	for i, r := range top {
		fmt.Fprintf(&b, "%4d  %s  %*s\n", i+1, runewidth.FillRight(r.Reason, reasonWidth), countWidth, r.CountText())
	}
	_, err := io.WriteString(w, b.String())
	return err
}
