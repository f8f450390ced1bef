package visual

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/civicviz/reasons311/internal/config"
	"github.com/civicviz/reasons311/internal/model"
	"github.com/civicviz/reasons311/internal/rank"
	"github.com/civicviz/reasons311/internal/scale"
)

func scenario() model.Dataset {
	return rank.Top(model.Dataset{
		{Reason: "Pothole", Count: 50},
		{Reason: "Noise", Count: 120},
		{Reason: "Trash", Count: 80},
	}, rank.DefaultN)
}

func defaultChart() config.ChartConfig {
	return config.Default().Chart
}

func TestBuild_Scenario(t *testing.T) {
	tree, err := Build(scenario(), defaultChart())
	require.NoError(t, err)

	assert.Equal(t, [2]float64{0, 120}, tree.XDomain)
	assert.Equal(t, []string{"Noise", "Trash", "Pothole"}, tree.YDomain)
	assert.Equal(t, Point{X: 200, Y: 70}, tree.Origin)
	assert.InDelta(t, 800, tree.Width, 1e-9)
	assert.InDelta(t, 400, tree.Height, 1e-9)

	require.Len(t, tree.Bars, 3)
	wantWidths := []float64{550, 550 * 80.0 / 120, 550 * 50.0 / 120}
	for i, bar := range tree.Bars {
		assert.InDelta(t, wantWidths[i], bar.Width, 1e-9, bar.Reason)
		assert.InDelta(t, 280/3.1*0.9, bar.Height, 1e-9)
		assert.Zero(t, bar.X)
		assert.Equal(t, "#34D1BF", bar.Fill)
		assert.False(t, bar.Invalid)
	}

	require.Len(t, tree.Labels, 3)
	assert.Equal(t, "120", tree.Labels[0].Body)
	assert.Equal(t, "80", tree.Labels[1].Body)
	assert.Equal(t, "50", tree.Labels[2].Body)
	assert.InDelta(t, 553, tree.Labels[0].X, 1e-9)
}

func TestBuild_LabelCenteredOnBar(t *testing.T) {
	cfg := defaultChart()
	tree, err := Build(scenario(), cfg)
	require.NoError(t, err)

	for i, bar := range tree.Bars {
		label := tree.Labels[i]
		center := bar.Y + bar.Height/2
		assert.InDelta(t, center+cfg.LabelDY*cfg.LabelFontSize, label.Y, 1e-9)
		assert.InDelta(t, bar.Width+cfg.LabelDX, label.X, 1e-9)
		assert.Equal(t, AnchorStart, label.Anchor)
	}
}

func TestBuild_DomainUsesSelectedMax(t *testing.T) {
	full := model.Dataset{
		{Reason: "a", Count: 1000},
		{Reason: "b", Count: 40},
		{Reason: "c", Count: 30},
	}
	// Only the bottom two are charted; the scale must not see 1000.
	tree, err := Build(full[1:], defaultChart())
	require.NoError(t, err)
	assert.Equal(t, [2]float64{0, 40}, tree.XDomain)
	assert.InDelta(t, 550, tree.Bars[0].Width, 1e-9)
}

func TestBuild_BandCompleteness(t *testing.T) {
	var data model.Dataset
	for _, r := range []string{"j", "i", "h", "g", "f", "e", "d", "c", "b", "a"} {
		data = append(data, model.Record{Reason: r, Count: float64(len(data) + 1)})
	}
	top := rank.Top(data, 10)

	tree, err := Build(top, defaultChart())
	require.NoError(t, err)
	assert.Equal(t, top.Reasons(), tree.YDomain)
	require.Len(t, tree.YAxis.Ticks, 10)
	for i, tk := range tree.YAxis.Ticks {
		assert.Equal(t, top[i].Reason, tk.Value)
		assert.Equal(t, top[i].Reason, tk.Label.Body)
		assert.Equal(t, AnchorEnd, tk.Label.Anchor)
	}
}

func TestBuild_FewRowsNoPadding(t *testing.T) {
	tree, err := Build(scenario(), defaultChart())
	require.NoError(t, err)
	assert.Len(t, tree.Bars, 3)
	assert.Len(t, tree.Labels, 3)
	assert.Len(t, tree.YAxis.Ticks, 3)
}

func TestBuild_NaNCount(t *testing.T) {
	data := rank.Top(model.Dataset{
		{Reason: "Pothole", Count: 50},
		{Reason: "Noise", Count: math.NaN()},
		{Reason: "Trash", Count: 80},
	}, 10)
	require.Equal(t, []string{"Trash", "Pothole", "Noise"}, data.Reasons())

	tree, err := Build(data, defaultChart())
	require.NoError(t, err)

	// NaN is ignored when picking the domain maximum.
	assert.Equal(t, [2]float64{0, 80}, tree.XDomain)

	nan := tree.Bars[2]
	assert.Equal(t, "Noise", nan.Reason)
	assert.True(t, nan.Invalid)
	assert.Zero(t, nan.Width)
	assert.False(t, math.IsNaN(nan.Y))
	assert.Equal(t, "NaN", tree.Labels[2].Body)
	assert.InDelta(t, 3, tree.Labels[2].X, 1e-9)
}

func TestBuild_NegativeCount(t *testing.T) {
	tree, err := Build(model.Dataset{{Reason: "a", Count: 10}, {Reason: "b", Count: -5}}, defaultChart())
	require.NoError(t, err)
	assert.True(t, tree.Bars[1].Invalid)
	assert.Zero(t, tree.Bars[1].Width)
}

func TestBuild_XAxisTicks(t *testing.T) {
	tree, err := Build(scenario(), defaultChart())
	require.NoError(t, err)

	require.Len(t, tree.XAxis.Ticks, 13)
	assert.Equal(t, "0", tree.XAxis.Ticks[0].Value)
	assert.Equal(t, "120", tree.XAxis.Ticks[12].Value)
	assert.InDelta(t, 550, tree.XAxis.Ticks[12].Pos, 1e-9)
	for _, tk := range tree.XAxis.Ticks {
		assert.InDelta(t, 280, tk.Mark.Y1, 1e-9)
		assert.InDelta(t, 286, tk.Mark.Y2, 1e-9)
		assert.Equal(t, AnchorMiddle, tk.Label.Anchor)
	}
}

func TestBuild_GroupedTickLabels(t *testing.T) {
	tree, err := Build(model.Dataset{{Reason: "Enforcement", Count: 61541}}, defaultChart())
	require.NoError(t, err)
	last := tree.XAxis.Ticks[len(tree.XAxis.Ticks)-1]
	assert.Equal(t, "60,000", last.Label.Body)
}

func TestBuild_Gridlines(t *testing.T) {
	tree, err := Build(scenario(), defaultChart())
	require.NoError(t, err)
	require.Len(t, tree.Grids, 2)

	xGrid, yGrid := tree.Grids[0], tree.Grids[1]
	require.Len(t, xGrid.Lines, len(tree.XAxis.Ticks))
	for i, l := range xGrid.Lines {
		assert.InDelta(t, tree.XAxis.Ticks[i].Pos, l.X1, 1e-9)
		assert.InDelta(t, l.X1, l.X2, 1e-9)
		assert.InDelta(t, 280, math.Abs(l.Y2-l.Y1), 1e-9, "spans the full plot height")
		assert.Equal(t, "#ddd", l.Color)
	}

	require.Len(t, yGrid.Lines, 3)
	for i, l := range yGrid.Lines {
		assert.InDelta(t, tree.YAxis.Ticks[i].Pos, l.Y1, 1e-9)
		assert.InDelta(t, 0, l.X1, 1e-9)
		assert.InDelta(t, 550, l.X2, 1e-9, "spans the full plot width")
	}
}

func TestBuild_Annotations(t *testing.T) {
	cfg := defaultChart()
	tree, err := Build(scenario(), cfg)
	require.NoError(t, err)
	require.Len(t, tree.Annotations, 3)

	title, subtitle, source := tree.Annotations[0], tree.Annotations[1], tree.Annotations[2]
	assert.Equal(t, cfg.Title.Text, title.Body)
	assert.InDelta(t, -40, title.Y, 1e-9)
	assert.True(t, title.Bold)
	assert.Equal(t, "#D1345B", title.Color)

	assert.Equal(t, cfg.Subtitle.Text, subtitle.Body)
	assert.InDelta(t, -20, subtitle.Y, 1e-9)

	assert.Equal(t, cfg.Attribution.Text, source.Body)
	assert.InDelta(t, 340, source.Y, 1e-9)
}

func TestBuild_AnnotationsIndependentOfData(t *testing.T) {
	a, err := Build(scenario(), defaultChart())
	require.NoError(t, err)
	b, err := Build(model.Dataset{{Reason: "x", Count: 1}}, defaultChart())
	require.NoError(t, err)
	assert.Equal(t, a.Annotations, b.Annotations)
}

func TestBuild_Idempotent(t *testing.T) {
	data := scenario()
	a, err := Build(data, defaultChart())
	require.NoError(t, err)
	b, err := Build(data, defaultChart())
	require.NoError(t, err)

	if diff := cmp.Diff(a, b, cmpopts.EquateNaNs()); diff != "" {
		t.Errorf("second build differs (-first +second):\n%s", diff)
	}
}

func TestBuild_Empty(t *testing.T) {
	tree, err := Build(nil, defaultChart())
	require.NoError(t, err)
	assert.Empty(t, tree.Bars)
	assert.Empty(t, tree.YDomain)
	assert.Len(t, tree.Annotations, 3)
}

func TestBuild_NoPlotArea(t *testing.T) {
	cfg := defaultChart()
	cfg.Margin.Left = cfg.Width
	_, err := Build(scenario(), cfg)
	require.Error(t, err)
}

func TestBarWidth(t *testing.T) {
	x := scale.NewLinear(0, 100, 0, 500)
	w, ok := BarWidth(x, 50)
	assert.True(t, ok)
	assert.InDelta(t, 250, w, 1e-9)

	w, ok = BarWidth(x, math.NaN())
	assert.False(t, ok)
	assert.Zero(t, w)

	_, ok = BarWidth(x, -1)
	assert.False(t, ok)
}

func TestTexts_Order(t *testing.T) {
	tree, err := Build(scenario(), defaultChart())
	require.NoError(t, err)

	texts := tree.Texts()
	assert.Len(t, texts, 13+3+3+3)
	assert.Equal(t, "source", texts[len(texts)-1].Class)
}
