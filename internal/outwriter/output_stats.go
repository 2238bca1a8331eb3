package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/huangsam/trendline/internal/contract"
	"github.com/huangsam/trendline/internal/parquet"
	"github.com/huangsam/trendline/schema"
)

// statsDocument is the serialized form of the stats view.
type statsDocument struct {
	Summaries []schema.Summary `json:"summaries" yaml:"summaries"`
	Period    *schema.Period   `json:"period" yaml:"period"`
}

// PrintStatsResults outputs the summaries to stdout or the configured output file.
func PrintStatsResults(report schema.Report, cfg *contract.Config, duration time.Duration) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return WriteStatsResults(w, report, cfg, duration)
	}, fmt.Sprintf("Wrote %s stats", cfg.Output))
}

// WriteStatsResults outputs the summaries, dispatching based on the output format configured.
func WriteStatsResults(w io.Writer, report schema.Report, cfg *contract.Config, duration time.Duration) error {
	doc := statsDocument{Summaries: report.Summaries, Period: report.Period}
	handled, err := writeStructured(w, cfg.Output, doc, parquet.SummaryRows(report.Summaries))
	if handled {
		if err != nil {
			return fmt.Errorf("error writing %s output: %w", cfg.Output, err)
		}
		return nil
	}

	if cfg.Output == schema.CSVOut {
		if err := writeCSVResultsForStats(w, report.Summaries); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
		return nil
	}

	return writeStatsTable(w, report, cfg, duration)
}

func writeCSVResultsForStats(w io.Writer, summaries []schema.Summary) error {
	header := []string{"series", "peak", "peak_time", "average", "samples", "positive"}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		for _, s := range summaries {
			row := []string{
				s.Series,
				valueCSV(s.Peak),
				s.PeakTime,
				valueCSV(s.Average),
				strconv.Itoa(s.Samples),
				strconv.Itoa(s.Positive),
			}
			if err := csvWriter.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}

// writeStatsTable prints one row per series followed by the period line.
func writeStatsTable(w io.Writer, report schema.Report, cfg *contract.Config, duration time.Duration) error {
	labelWidth := getMaxLabelWidth(cfg, 5)

	data := make([][]string, 0, len(report.Summaries))
	for _, s := range report.Summaries {
		peakTime := s.PeakTime
		if !s.HasData() {
			peakTime = "-"
		}
		data = append(data, []string{
			truncateLabel(s.Series, labelWidth),
			s.Peak.String(),
			peakTime,
			s.Average.String(),
			strconv.Itoa(s.Samples),
		})
	}

	if _, err := fmt.Fprintln(w, heading(cfg, "📊", "Stats")); err != nil {
		return err
	}
	if err := renderTable(w, []string{"Series", "Peak", "Peak Time", "Average", "Samples"}, data); err != nil {
		return fmt.Errorf("error writing stats table output: %w", err)
	}
	if _, err := fmt.Fprintln(w, formatPeriod(report.Period)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Stats analysis completed in %v\n", duration); err != nil {
		return err
	}
	return nil
}

// formatPeriod renders the span of the timeline.
func formatPeriod(p *schema.Period) string {
	if p == nil {
		return "Period: -"
	}
	return fmt.Sprintf("Period: %s to %s (%d hours)", p.Start, p.End, p.Hours)
}
