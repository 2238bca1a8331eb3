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

// PrintCriticalResults outputs the critical points to stdout or the configured output file.
func PrintCriticalResults(report schema.Report, cfg *contract.Config, duration time.Duration) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return WriteCriticalResults(w, report, cfg, duration)
	}, fmt.Sprintf("Wrote %s critical points", cfg.Output))
}

// WriteCriticalResults outputs the critical points, dispatching based on the output format configured.
// Points are grouped by series, then by kind, as produced by the classifier.
func WriteCriticalResults(w io.Writer, report schema.Report, cfg *contract.Config, duration time.Duration) error {
	handled, err := writeStructured(w, cfg.Output, report.Critical, parquet.CriticalRows(report.Critical))
	if handled {
		if err != nil {
			return fmt.Errorf("error writing %s output: %w", cfg.Output, err)
		}
		return nil
	}

	if cfg.Output == schema.CSVOut {
		err := writeCSVWithHeader(w, []string{"series", "timestamp", "local_time", "kind"}, func(csvWriter *csv.Writer) error {
			for _, c := range report.Critical {
				if err := csvWriter.Write([]string{c.Series, c.Timestamp, c.LocalTime, string(c.Kind)}); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
		return nil
	}

	return writeCriticalTable(w, report, cfg, duration)
}

// writeCriticalTable prints one row per critical point.
func writeCriticalTable(w io.Writer, report schema.Report, cfg *contract.Config, duration time.Duration) error {
	labelWidth := getMaxLabelWidth(cfg, 4)

	data := make([][]string, 0, len(report.Critical))
	var stationary, inflection int
	for _, c := range report.Critical {
		switch c.Kind {
		case schema.StationaryKind:
			stationary++
		case schema.InflectionKind:
			inflection++
		}
		data = append(data, []string{
			truncateLabel(c.Series, labelWidth),
			c.LocalTime,
			kindText(cfg, c.Kind),
			c.Timestamp,
		})
	}

	if _, err := fmt.Fprintln(w, heading(cfg, "🎯", "Critical points")); err != nil {
		return err
	}
	if len(data) == 0 {
		if _, err := fmt.Fprintln(w, "No critical points found"); err != nil {
			return err
		}
	} else if err := renderTable(w, []string{"Series", "Time", "Kind", "Timestamp"}, data); err != nil {
		return fmt.Errorf("error writing critical table output: %w", err)
	}
	if _, err := fmt.Fprintf(w, "Stationary: %d, Inflection: %d\n", stationary, inflection); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Critical point analysis completed in %v\n", duration); err != nil {
		return err
	}
	return nil
}
