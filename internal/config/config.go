package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// FileName is the conventional config file name in a project directory.
const FileName = "reasons311.yaml"

// Config represents the top-level reasons311.yaml configuration.
type Config struct {
	Source SourceConfig `yaml:"source"`
	Chart  ChartConfig  `yaml:"chart"`
	Output OutputConfig `yaml:"output"`
}

// SourceConfig describes where the dataset comes from and how much of it to chart.
type SourceConfig struct {
	Path         string        `yaml:"path"`
	ReasonColumn string        `yaml:"reason_column"`
	CountColumn  string        `yaml:"count_column"`
	TopN         int           `yaml:"top_n"`
	FetchTimeout time.Duration `yaml:"fetch_timeout,omitempty"` // 0 = wait forever
}

// Margin is the space between the outer chart edge and the plot area.
type Margin struct {
	Top    float64 `yaml:"top"`
	Right  float64 `yaml:"right"`
	Bottom float64 `yaml:"bottom"`
	Left   float64 `yaml:"left"`
}

// TextStyle is a fixed annotation such as the title.
type TextStyle struct {
	Text     string  `yaml:"text"`
	FontSize float64 `yaml:"font_size"`
	Color    string  `yaml:"color"`
	Bold     bool    `yaml:"bold,omitempty"`
}

// ChartConfig holds the layout constants of the chart. Nothing here is
// derived from data.
type ChartConfig struct {
	Width         float64   `yaml:"width"`
	Height        float64   `yaml:"height"`
	Margin        Margin    `yaml:"margin"`
	BarColor      string    `yaml:"bar_color"`
	GridColor     string    `yaml:"grid_color"`
	TextColor     string    `yaml:"text_color"`
	FontFamily    string    `yaml:"font_family"`
	AxisFontSize  float64   `yaml:"axis_font_size"`
	LabelFontSize float64   `yaml:"label_font_size"`
	LabelDX       float64   `yaml:"label_dx"` // px right of the bar end
	LabelDY       float64   `yaml:"label_dy"` // em below the band centre
	BandPadding   float64   `yaml:"band_padding"`
	TickCount     int       `yaml:"tick_count"`
	Title         TextStyle `yaml:"title"`
	Subtitle      TextStyle `yaml:"subtitle"`
	Attribution   TextStyle `yaml:"attribution"`
}

// OutputConfig controls where and how the chart is written.
type OutputConfig struct {
	Path        string `yaml:"path"`
	Format      string `yaml:"format"` // svg, png, html, text
	ContainerID string `yaml:"container_id"`
}

// PlotWidth is the width of the drawing area inside the margins.
func (c ChartConfig) PlotWidth() float64 {
	return c.Width - c.Margin.Left - c.Margin.Right
}

// PlotHeight is the height of the drawing area inside the margins.
func (c ChartConfig) PlotHeight() float64 {
	return c.Height - c.Margin.Top - c.Margin.Bottom
}

// Validate checks every section of the config.
func (c *Config) Validate() error {
	return errors.Join(c.ValidatePipeline(), c.validateOutput())
}

// ValidatePipeline checks the source and layout settings that loading,
// ranking and building the chart depend on. Output settings are ignored.
func (c *Config) ValidatePipeline() error {
	var errs []error
	if c.Chart.Width <= 0 || c.Chart.Height <= 0 {
		errs = append(errs, fmt.Errorf("chart size %gx%g must be positive", c.Chart.Width, c.Chart.Height))
	}
	if c.Chart.PlotWidth() <= 0 || c.Chart.PlotHeight() <= 0 {
		errs = append(errs, fmt.Errorf("margins leave no plot area (%gx%g)", c.Chart.PlotWidth(), c.Chart.PlotHeight()))
	}
	if c.Chart.BandPadding < 0 || c.Chart.BandPadding >= 1 {
		errs = append(errs, fmt.Errorf("band_padding %g must be in [0, 1)", c.Chart.BandPadding))
	}
	if c.Source.TopN < 0 {
		errs = append(errs, fmt.Errorf("top_n %d must not be negative", c.Source.TopN))
	}
	if c.Source.FetchTimeout < 0 {
		errs = append(errs, fmt.Errorf("fetch_timeout %s must not be negative", c.Source.FetchTimeout))
	}
	return errors.Join(errs...)
}

func (c *Config) validateOutput() error {
	switch strings.ToLower(c.Output.Format) {
	case "", "svg", "png", "html", "text":
		return nil
	}
	return fmt.Errorf("unknown output format %q", c.Output.Format)
}

// Load reads a reasons311.yaml file from disk. Fields missing from the file
// keep their Default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns the Boston 311 chart layout.
func Default() *Config {
	return &Config{
		Source: SourceConfig{
			Path:         "boston_311_2023_by_reason.csv",
			ReasonColumn: "reason",
			CountColumn:  "Count",
			TopN:         10,
		},
		Chart: ChartConfig{
			Width:         800,
			Height:        400,
			Margin:        Margin{Top: 70, Right: 50, Bottom: 50, Left: 200},
			BarColor:      "#34D1BF",
			GridColor:     "#ddd",
			TextColor:     "#000",
			FontFamily:    "Roboto",
			AxisFontSize:  12,
			LabelFontSize: 12.8,
			LabelDX:       3,
			LabelDY:       0.35,
			BandPadding:   0.1,
			TickCount:     10,
			Title: TextStyle{
				Text:     "What are Bostonians calling 311 for?",
				FontSize: 32,
				Color:    "#D1345B",
				Bold:     true,
			},
			Subtitle: TextStyle{
				Text:     "Top 10 reasons for 311 calls in the past year",
				FontSize: 16,
				Color:    "#777",
			},
			Attribution: TextStyle{
				Text:     "Source: Analyze Boston (https://data.boston.gov/dataset/311-service-requests)",
				FontSize: 12.8,
				Color:    "#777",
			},
		},
		Output: OutputConfig{
			Path:        "chart.svg",
			Format:      "svg",
			ContainerID: "chart",
		},
	}
}
