package outwriter

import (
	"testing"

	"github.com/huangsam/trendline/internal/contract"
	"github.com/huangsam/trendline/schema"
	"github.com/stretchr/testify/assert"
)

// sampleReport is the analysis of a = {10, 20, 20, 15} and b = {11:00: 5, 13:00: 5}
// sampled hourly from 10:00.
func sampleReport() schema.Report {
	v := schema.NewValue
	none := schema.NoValue
	ts := []string{"2025-06-01T10:00", "2025-06-01T11:00", "2025-06-01T12:00", "2025-06-01T13:00"}

	a := []schema.SeriesSample{
		{Name: "a", Value: v(10), First: none, Second: none},
		{Name: "a", Value: v(20), First: v(10), Second: none},
		{Name: "a", Value: v(20), First: v(0), Second: v(-10)},
		{Name: "a", Value: v(15), First: v(-5), Second: v(-5)},
	}
	b := []schema.SeriesSample{
		{Name: "b"},
		{Name: "b", Value: v(5)},
		{Name: "b"},
		{Name: "b", Value: v(5)},
	}

	report := schema.Report{
		Timeline: schema.Timeline{Series: []string{"a", "b"}},
		Critical: []schema.CriticalPoint{
			{Series: "a", Timestamp: ts[2], LocalTime: "12:00", Kind: schema.StationaryKind},
		},
		Summaries: []schema.Summary{
			{Series: "a", Peak: v(20), PeakTime: "11:00", Average: v(16), Samples: 4, Positive: 4},
			{Series: "b", Peak: v(5), PeakTime: "11:00", Average: v(5), Samples: 2, Positive: 2},
		},
		Period: &schema.Period{Start: ts[0], End: ts[3], Hours: 3},
	}
	for i, t := range ts {
		report.Timeline.Points = append(report.Timeline.Points, schema.UnifiedPoint{
			Timestamp: t,
			LocalTime: schema.LocalTime(t),
			Values:    []schema.Value{a[i].Value, b[i].Value},
		})
		report.Points = append(report.Points, schema.CombinedPoint{
			Timestamp: t,
			LocalTime: schema.LocalTime(t),
			Series:    []schema.SeriesSample{a[i], b[i]},
		})
	}
	return report
}

func plainConfig(mode schema.OutputMode) *contract.Config {
	return &contract.Config{
		Output:      mode,
		Width:       120,
		View:        schema.ValuesView,
		ChartWidth:  400,
		ChartHeight: 200,
	}
}

func TestTruncateLabel(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		width    int
		expected string
	}{
		{"fits", "insta", 10, "insta"},
		{"exact", "insta", 5, "insta"},
		{"cut", "instagram", 6, "insta…"},
		{"multibyte", "微信公众号文章", 4, "微信公…"},
		{"tiny width is ignored", "insta", 1, "insta"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, truncateLabel(tt.in, tt.width))
		})
	}
}

func TestGetMaxLabelWidth(t *testing.T) {
	assert.Equal(t, 40, getMaxLabelWidth(&contract.Config{Width: 200}, 1))
	assert.Equal(t, 6, getMaxLabelWidth(&contract.Config{Width: 40}, 7))
	assert.Equal(t, 16, getMaxLabelWidth(&contract.Config{Width: 60}, 3))
	assert.Equal(t, 40, getMaxLabelWidth(&contract.Config{Width: 200}, 0))
}

func TestHeadingAndColors(t *testing.T) {
	cfg := &contract.Config{}
	assert.Equal(t, "Stats", heading(cfg, "📊", "Stats"))
	assert.Equal(t, "-5", deltaText(cfg, schema.NewValue(-5)))
	assert.Equal(t, "Inflection", kindText(cfg, schema.InflectionKind))

	cfg.UseEmojis = true
	assert.Equal(t, "📊 Stats", heading(cfg, "📊", "Stats"))
}

func TestFormatBytes(t *testing.T) {
	assert.Equal(t, "0 B", formatBytes(0))
	assert.Equal(t, "1023 B", formatBytes(1023))
	assert.Equal(t, "1.0 KiB", formatBytes(1024))
	assert.Equal(t, "1.5 MiB", formatBytes(3*512*1024))
}

func TestFormatPeriod(t *testing.T) {
	assert.Equal(t, "Period: -", formatPeriod(nil))
	assert.Equal(t, "Period: A to B (3 hours)", formatPeriod(&schema.Period{Start: "A", End: "B", Hours: 3}))
}
