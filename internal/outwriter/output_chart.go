package outwriter

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/huangsam/trendline/internal/contract"
	"github.com/huangsam/trendline/schema"
	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ErrNothingToPlot is returned when the selected view has no present value.
var ErrNothingToPlot = errors.New("nothing to plot")

// minTickSpacing is the horizontal room, in pixels, one x axis label needs.
const minTickSpacing = 70

// seriesColors cycles through line colors per series.
var seriesColors = []drawing.Color{chart.ColorBlue, chart.ColorGreen, chart.ColorRed, chart.ColorOrange}

// segment is a run of consecutive points where the plotted value is present.
type segment struct {
	xs []float64
	ys []float64
}

// PrintChart renders the chart to the configured output file, or to the default PNG file.
func PrintChart(report schema.Report, cfg *contract.Config) error {
	outputFile := cfg.OutputFile
	if outputFile == "" {
		outputFile = contract.DefaultChartFile
	}
	return writeWithFile(outputFile, func(w io.Writer) error {
		return WriteChart(w, report, cfg)
	}, fmt.Sprintf("Wrote %s chart", cfg.View))
}

// WriteChart renders the report as a PNG line chart with one line per series.
// The x axis is the timeline index labelled by local time. Absent values
// split a line into segments; nothing is interpolated.
func WriteChart(w io.Writer, report schema.Report, cfg *contract.Config) error {
	ch, err := buildChart(report, cfg)
	if err != nil {
		return err
	}
	if err := ch.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return nil
}

func buildChart(report schema.Report, cfg *contract.Config) (chart.Chart, error) {
	view := cfg.View
	if view == "" {
		view = schema.ValuesView
	}
	width, height := cfg.ChartWidth, cfg.ChartHeight
	if width <= 0 {
		width = contract.DefaultChartWidth
	}
	if height <= 0 {
		height = contract.DefaultChartHeight
	}

	var series, named []chart.Series
	minY, maxY, plotted := 0.0, 0.0, false
	for j, name := range report.Timeline.Series {
		style := lineStyle(seriesColors[j%len(seriesColors)])
		for k, seg := range splitSegments(report.Points, j, view) {
			for _, y := range seg.ys {
				if !plotted || y < minY {
					minY = y
				}
				if !plotted || y > maxY {
					maxY = y
				}
				plotted = true
			}
			xs, ys := seg.xs, seg.ys
			if len(xs) == 1 {
				// A lone point still needs two values to render
				xs = []float64{xs[0], xs[0]}
				ys = []float64{ys[0], ys[0]}
			}
			s := chart.ContinuousSeries{XValues: xs, YValues: ys, Style: style}
			if k == 0 {
				s.Name = name
				named = append(named, s)
			}
			series = append(series, s)
		}
	}
	if !plotted {
		return chart.Chart{}, fmt.Errorf("%w: no %s values", ErrNothingToPlot, view)
	}

	lo, hi := min(minY, 0), max(maxY, 0)
	if hi <= lo {
		hi = lo + 1
	}

	ch := chart.Chart{
		Title:      fmt.Sprintf("%s (%s)", strings.Join(report.Timeline.Series, " vs "), view),
		Width:      width,
		Height:     height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 12, Bottom: 28}},
		XAxis:      buildXAxis(report.Points, width),
		YAxis:      chart.YAxis{Name: yAxisName(view), Range: &chart.ContinuousRange{Min: lo, Max: hi}},
		Series:     series,
	}
	// Continuation segments stay out of the legend
	legendSource := ch
	legendSource.Series = named
	ch.Elements = []chart.Renderable{chart.Legend(&legendSource)}
	return ch, nil
}

// splitSegments collects the present values of one series column for a view.
// X values are 1-based timeline indexes.
func splitSegments(points []schema.CombinedPoint, col int, view schema.ChartView) []segment {
	var out []segment
	var cur *segment
	for i, p := range points {
		v := p.Series[col].Pick(view)
		if !v.Present {
			cur = nil
			continue
		}
		if cur == nil {
			out = append(out, segment{})
			cur = &out[len(out)-1]
		}
		cur.xs = append(cur.xs, float64(i+1))
		cur.ys = append(cur.ys, float64(v.N))
	}
	return out
}

// buildXAxis labels the index axis with local times, thinning labels to fit the width.
func buildXAxis(points []schema.CombinedPoint, width int) chart.XAxis {
	n := len(points)
	maxLabels := max(width/minTickSpacing, 2)
	step := (n + maxLabels - 1) / maxLabels
	if step < 1 {
		step = 1
	}

	ticks := make([]chart.Tick, 0, n/step+2)
	for i := 0; i < n; i += step {
		ticks = append(ticks, chart.Tick{Value: float64(i + 1), Label: points[i].LocalTime})
	}
	// Provide an explicit range so n=1 still renders with non-zero width
	maxR := float64(n) + 0.5
	if n == 1 {
		maxR = 2.0
		ticks = append(ticks, chart.Tick{Value: 2, Label: ""})
	}
	return chart.XAxis{
		Name:  "Time",
		Ticks: ticks,
		Range: &chart.ContinuousRange{Min: 0.5, Max: maxR},
	}
}

func lineStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeColor: col,
		StrokeWidth: 2,
		DotColor:    col,
		DotWidth:    3,
	}
}

func yAxisName(view schema.ChartView) string {
	switch view {
	case schema.FirstView:
		return "First derivative"
	case schema.SecondView:
		return "Second derivative"
	default:
		return "Events"
	}
}
