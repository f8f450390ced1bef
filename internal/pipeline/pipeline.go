// Package pipeline wires load, rank, build, and mount into one call.
package pipeline

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/civicviz/reasons311/internal/config"
	"github.com/civicviz/reasons311/internal/dataset"
	"github.com/civicviz/reasons311/internal/model"
	"github.com/civicviz/reasons311/internal/rank"
	"github.com/civicviz/reasons311/internal/render"
	"github.com/civicviz/reasons311/internal/visual"
)

// Options configure one pipeline run.
type Options struct {
	// Source overrides Config.Source.Path when set.
	Source string
	// Config defaults to config.Default().
	Config *config.Config
	// Target receives the chart. A nil Target builds without mounting.
	Target render.Target
	// Registry defaults to dataset.DefaultRegistry(nil).
	Registry *dataset.Registry
	Logger   *zap.Logger
}

// Handle is the result of a successful run. Close unmounts the chart.
type Handle struct {
	Source  string
	Dataset model.Dataset
	Top     model.Dataset
	Tree    *visual.Tree
	Issues  []dataset.Issue

	target render.Target
}

// Close removes the chart from its target.
func (h *Handle) Close() error {
	if h.target == nil {
		return nil
	}
	return h.target.Unmount()
}

// Run loads the source, selects the top reasons, lays out the chart, and
// mounts it. A load failure is returned as a *dataset.DataLoadError and
// nothing is mounted.
func Run(ctx context.Context, opts Options) (*Handle, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	reg := opts.Registry
	if reg == nil {
		reg = dataset.DefaultRegistry(nil)
	}
	source := opts.Source
	if source == "" {
		source = cfg.Source.Path
	}

	if cfg.Source.FetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Source.FetchTimeout)
		defer cancel()
	}

	cols := dataset.Columns{Reason: cfg.Source.ReasonColumn, Count: cfg.Source.CountColumn}
	data, err := dataset.Load(ctx, reg, source, cols, log)
	if err != nil {
		return nil, err
	}

	issues := dataset.Validate(data)
	for _, is := range issues {
		log.Warn("malformed record",
			zap.String("kind", string(is.Kind)),
			zap.Int("row", is.Row),
			zap.String("reason", is.Reason),
			zap.String("detail", is.Description))
	}

	top := rank.Top(data, cfg.Source.TopN)
	log.Debug("selected top reasons", zap.Int("records", len(data)), zap.Int("top", len(top)))

	tree, err := visual.Build(top, cfg.Chart)
	if err != nil {
		return nil, fmt.Errorf("building chart: %w", err)
	}

	h := &Handle{
		Source:  source,
		Dataset: data,
		Top:     top,
		Tree:    tree,
		Issues:  issues,
	}
	if opts.Target != nil {
		if err := opts.Target.Mount(tree); err != nil {
			return nil, fmt.Errorf("mounting chart: %w", err)
		}
		h.target = opts.Target
		log.Info("chart rendered", zap.String("source", source), zap.Int("bars", len(tree.Bars)))
	}
	return h, nil
}
