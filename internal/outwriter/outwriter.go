// Package outwriter has output and writer logic.
package outwriter

import (
	"os"
	"time"

	"github.com/huangsam/trendline/internal/contract"
	"github.com/huangsam/trendline/schema"
	"golang.org/x/term"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteSeries prints the unified series with derivatives using the configured output format.
func (ow *OutWriter) WriteSeries(report schema.Report, cfg *contract.Config, duration time.Duration) error {
	return PrintSeriesResults(report, cfg, duration)
}

// WriteCritical prints stationary and inflection points using the configured output format.
func (ow *OutWriter) WriteCritical(report schema.Report, cfg *contract.Config, duration time.Duration) error {
	return PrintCriticalResults(report, cfg, duration)
}

// WriteStats prints per-series summaries and the period using the configured output format.
func (ow *OutWriter) WriteStats(report schema.Report, cfg *contract.Config, duration time.Duration) error {
	return PrintStatsResults(report, cfg, duration)
}

// WriteChart renders the report as a PNG line chart.
func (ow *OutWriter) WriteChart(report schema.Report, cfg *contract.Config) error {
	return PrintChart(report, cfg)
}

// WriteSamples prints a sample map produced by bucketing or combining.
func (ow *OutWriter) WriteSamples(m schema.SampleMap, cfg *contract.Config) error {
	return PrintSampleMap(m, cfg)
}

// WriteSeriesList prints the series held by the sample store.
func (ow *OutWriter) WriteSeriesList(infos []schema.SeriesInfo, cfg *contract.Config) error {
	return PrintSeriesList(infos, cfg)
}

// WriteStoreStatus prints the status of the sample store.
func (ow *OutWriter) WriteStoreStatus(status schema.StoreStatus, cfg *contract.Config) error {
	return PrintStoreStatus(status, cfg)
}

// terminalWidth returns the width override, the detected terminal width, or 80.
func terminalWidth(cfg *contract.Config) int {
	if cfg.Width > 0 {
		return cfg.Width
	}
	detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || detectedWidth <= 0 {
		return 80 // Conservative default for narrow terminals and CI
	}
	return detectedWidth
}

// getMaxLabelWidth calculates how wide a series name may be in a table
// with the given number of columns.
func getMaxLabelWidth(cfg *contract.Config, columns int) int {
	if columns < 1 {
		columns = 1
	}
	// Time column plus borders and padding
	available := (terminalWidth(cfg) - 12) / columns
	if available < 6 {
		return 6
	}
	if available > 40 {
		return 40
	}
	return available
}

// truncateLabel shortens s to at most width runes, marking the cut with an ellipsis.
func truncateLabel(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width || width < 2 {
		return s
	}
	return string(runes[:width-1]) + "…"
}
