package outwriter

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/huangsam/trendline/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitSegments(t *testing.T) {
	points := sampleReport().Points

	a := splitSegments(points, 0, schema.ValuesView)
	require.Len(t, a, 1)
	assert.Equal(t, []float64{1, 2, 3, 4}, a[0].xs)
	assert.Equal(t, []float64{10, 20, 20, 15}, a[0].ys)

	b := splitSegments(points, 1, schema.ValuesView)
	require.Len(t, b, 2)
	assert.Equal(t, []float64{2}, b[0].xs)
	assert.Equal(t, []float64{4}, b[1].xs)

	second := splitSegments(points, 0, schema.SecondView)
	require.Len(t, second, 1)
	assert.Equal(t, []float64{3, 4}, second[0].xs)
	assert.Equal(t, []float64{-10, -5}, second[0].ys)

	assert.Empty(t, splitSegments(points, 1, schema.FirstView))
}

func TestBuildXAxis(t *testing.T) {
	points := sampleReport().Points

	axis := buildXAxis(points, 1024)
	require.Len(t, axis.Ticks, 4)
	assert.Equal(t, "10:00", axis.Ticks[0].Label)
	assert.InDelta(t, 4.5, axis.Range.GetMax(), 0.001)

	single := buildXAxis(points[:1], 1024)
	require.Len(t, single.Ticks, 2)
	assert.InDelta(t, 2.0, single.Range.GetMax(), 0.001)

	many := make([]schema.CombinedPoint, 100)
	thinned := buildXAxis(many, 700)
	assert.Len(t, thinned.Ticks, 10)
}

func TestWriteChart(t *testing.T) {
	for _, view := range []schema.ChartView{schema.ValuesView, schema.FirstView, schema.SecondView} {
		t.Run(string(view), func(t *testing.T) {
			cfg := plainConfig(schema.TextOut)
			cfg.View = view

			var buf bytes.Buffer
			require.NoError(t, WriteChart(&buf, sampleReport(), cfg))

			img, err := png.DecodeConfig(&buf)
			require.NoError(t, err)
			assert.Equal(t, 400, img.Width)
			assert.Equal(t, 200, img.Height)
		})
	}
}

func TestWriteChartNothingToPlot(t *testing.T) {
	report := sampleReport()
	for i := range report.Points {
		report.Points[i].Series = report.Points[i].Series[1:]
	}
	report.Timeline.Series = []string{"b"}

	cfg := plainConfig(schema.TextOut)
	cfg.View = schema.SecondView

	var buf bytes.Buffer
	err := WriteChart(&buf, report, cfg)
	require.ErrorIs(t, err, ErrNothingToPlot)
}

func TestPrintChartToFile(t *testing.T) {
	cfg := plainConfig(schema.TextOut)
	cfg.OutputFile = filepath.Join(t.TempDir(), "chart.png")

	require.NoError(t, PrintChart(sampleReport(), cfg))

	data, err := os.ReadFile(cfg.OutputFile)
	require.NoError(t, err)
	_, err = png.DecodeConfig(bytes.NewReader(data))
	require.NoError(t, err)
}
