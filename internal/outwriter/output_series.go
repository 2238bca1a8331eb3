package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/huangsam/trendline/internal/contract"
	"github.com/huangsam/trendline/internal/parquet"
	"github.com/huangsam/trendline/schema"
)

// seriesDocument is the serialized form of the series view.
type seriesDocument struct {
	Series []string               `json:"series" yaml:"series"`
	Points []schema.CombinedPoint `json:"points" yaml:"points"`
	Period *schema.Period         `json:"period" yaml:"period"`
}

// PrintSeriesResults outputs the series view to stdout or the configured output file.
func PrintSeriesResults(report schema.Report, cfg *contract.Config, duration time.Duration) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return WriteSeriesResults(w, report, cfg, duration)
	}, fmt.Sprintf("Wrote %s series results", cfg.Output))
}

// WriteSeriesResults outputs the series view, dispatching based on the output format configured.
func WriteSeriesResults(w io.Writer, report schema.Report, cfg *contract.Config, duration time.Duration) error {
	doc := seriesDocument{Series: report.Timeline.Series, Points: report.Points, Period: report.Period}
	handled, err := writeStructured(w, cfg.Output, doc, parquet.SeriesRows(report.Points))
	if handled {
		if err != nil {
			return fmt.Errorf("error writing %s output: %w", cfg.Output, err)
		}
		return nil
	}

	if cfg.Output == schema.CSVOut {
		if err := writeCSVResultsForSeries(w, report); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
		return nil
	}

	// Default to human-readable table
	return writeSeriesTable(w, report, cfg, duration)
}

// writeCSVResultsForSeries writes one wide row per timeline point.
func writeCSVResultsForSeries(w io.Writer, report schema.Report) error {
	header := []string{"timestamp", "local_time"}
	for _, name := range report.Timeline.Series {
		header = append(header, name, name+"_first", name+"_second")
	}

	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		for _, p := range report.Points {
			row := []string{p.Timestamp, p.LocalTime}
			for _, s := range p.Series {
				row = append(row, valueCSV(s.Value), valueCSV(s.First), valueCSV(s.Second))
			}
			if err := csvWriter.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}

// writeSeriesTable prints Time followed by value, Δ1 and Δ2 for every series.
func writeSeriesTable(w io.Writer, report schema.Report, cfg *contract.Config, duration time.Duration) error {
	names := report.Timeline.Series
	labelWidth := getMaxLabelWidth(cfg, 1+3*len(names))

	headers := []string{"Time"}
	for _, name := range names {
		label := truncateLabel(name, labelWidth)
		headers = append(headers, label, label+" Δ1", label+" Δ2")
	}

	data := make([][]string, 0, len(report.Points))
	for _, p := range report.Points {
		row := []string{p.LocalTime}
		for _, s := range p.Series {
			row = append(row, s.Value.String(), deltaText(cfg, s.First), deltaText(cfg, s.Second))
		}
		data = append(data, row)
	}

	if _, err := fmt.Fprintln(w, heading(cfg, "📈", "Series")); err != nil {
		return err
	}
	if err := renderTable(w, headers, data); err != nil {
		return fmt.Errorf("error writing series table output: %w", err)
	}
	if _, err := fmt.Fprintf(w, "Series analysis of %d points completed in %v\n", len(report.Points), duration); err != nil {
		return err
	}
	return nil
}
