package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/civicviz/reasons311/internal/config"
	"github.com/civicviz/reasons311/internal/pipeline"
	"github.com/civicviz/reasons311/internal/render"
)

type renderFlags struct {
	out         string
	format      string
	topN        int
	containerID string
}

func newRenderCommand(g *globalFlags) *cobra.Command {
	var f renderFlags

	cmd := &cobra.Command{
		Use:   "render [source]",
		Short: "Render the top reasons as a bar chart",
		Long: `Loads a CSV of reasons and counts from a file path or http(s) URL,
selects the most frequent reasons, and writes a horizontal bar chart.

Use --out - to write to stdout. The format is taken from --format, then
from the output file extension, then from the config file.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.loadConfig()
			if err != nil {
				return err
			}
			if len(args) > 0 {
				cfg.Source.Path = args[0]
			}
			if !cmd.Flags().Changed("top") {
				f.topN = cfg.Source.TopN
			}
			return runRender(cmd.Context(), cmd.OutOrStdout(), cfg, f, g)
		},
	}

	cmd.Flags().StringVarP(&f.out, "out", "o", "", "output path, or - for stdout")
	cmd.Flags().StringVarP(&f.format, "format", "f", "", "output format: svg, png, html, text")
	cmd.Flags().IntVarP(&f.topN, "top", "n", 10, "number of reasons to chart")
	cmd.Flags().StringVar(&f.containerID, "container-id", "", "id of the HTML element holding the chart")

	return cmd
}

func runRender(ctx context.Context, stdout io.Writer, cfg *config.Config, f renderFlags, g *globalFlags) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg.Source.TopN = f.topN
	if f.out != "" {
		cfg.Output.Path = f.out
		if f.format == "" && f.out != "-" {
			cfg.Output.Format = string(render.FormatForPath(f.out))
		}
	}
	if f.format != "" {
		cfg.Output.Format = f.format
	}
	if f.containerID != "" {
		cfg.Output.ContainerID = f.containerID
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	format, err := render.ParseFormat(cfg.Output.Format)
	if err != nil {
		return err
	}
	opts := render.Options{ContainerID: cfg.Output.ContainerID}

	var target render.Target
	if cfg.Output.Path == "-" {
		target = &render.WriterTarget{W: stdout, Format: format, Options: opts}
	} else {
		target = render.NewFileTarget(cfg.Output.Path, format, opts)
	}

	h, err := pipeline.Run(ctx, pipeline.Options{
		Config: cfg,
		Target: target,
		Logger: g.log(),
	})
	if err != nil {
		return err
	}

	if cfg.Output.Path != "-" {
		fmt.Fprintf(stdout, "Rendered %d of %d reasons to %s (%s)\n",
			len(h.Top), len(h.Dataset), cfg.Output.Path, format)
	}
	return nil
}
