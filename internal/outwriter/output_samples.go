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

// PrintSampleMap outputs a sample map to stdout or the configured output file.
func PrintSampleMap(m schema.SampleMap, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return WriteSampleMap(w, m, cfg)
	}, fmt.Sprintf("Wrote %s samples", cfg.Output))
}

// WriteSampleMap outputs a sample map. JSON output is a plain timestamp to count
// object, so it can be fed back in as a series file.
func WriteSampleMap(w io.Writer, m schema.SampleMap, cfg *contract.Config) error {
	if m == nil {
		m = schema.SampleMap{}
	}
	handled, err := writeStructured(w, cfg.Output, m, parquet.SampleRows(m))
	if handled {
		if err != nil {
			return fmt.Errorf("error writing %s output: %w", cfg.Output, err)
		}
		return nil
	}

	samples := m.Samples()
	if cfg.Output == schema.CSVOut {
		err := writeCSVWithHeader(w, []string{"timestamp", "count"}, func(csvWriter *csv.Writer) error {
			for _, s := range samples {
				if err := csvWriter.Write([]string{s.Timestamp, strconv.Itoa(s.Value)}); err != nil {
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

	data := make([][]string, 0, len(samples))
	total := 0
	for _, s := range samples {
		total += s.Value
		data = append(data, []string{s.Timestamp, strconv.Itoa(s.Value)})
	}
	if err := renderTable(w, []string{"Timestamp", "Count"}, data); err != nil {
		return fmt.Errorf("error writing samples table output: %w", err)
	}
	_, err = fmt.Fprintf(w, "%d samples, %d events\n", len(samples), total)
	return err
}

// PrintSeriesList outputs the stored series.
func PrintSeriesList(infos []schema.SeriesInfo, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return WriteSeriesList(w, infos, cfg)
	}, fmt.Sprintf("Wrote %s series list", cfg.Output))
}

// WriteSeriesList outputs the stored series, dispatching based on the output format configured.
func WriteSeriesList(w io.Writer, infos []schema.SeriesInfo, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeJSON(w, infos)
	case schema.YAMLOut:
		return writeYAML(w, infos)
	case schema.ParquetOut:
		return fmt.Errorf("parquet output is not supported for the series list")
	case schema.CSVOut:
		header := []string{"name", "import_id", "imported_at", "sample_count", "first_sample", "last_sample"}
		return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
			for _, info := range infos {
				row := []string{
					info.Name,
					info.ImportID,
					info.ImportedAt.Format(time.RFC3339),
					strconv.Itoa(info.SampleCount),
					info.FirstSample,
					info.LastSample,
				}
				if err := csvWriter.Write(row); err != nil {
					return err
				}
			}
			return nil
		})
	}

	if len(infos) == 0 {
		_, err := fmt.Fprintln(w, "No stored series")
		return err
	}
	data := make([][]string, 0, len(infos))
	for _, info := range infos {
		data = append(data, []string{
			info.Name,
			strconv.Itoa(info.SampleCount),
			info.FirstSample,
			info.LastSample,
			info.ImportedAt.Local().Format(time.DateTime),
		})
	}
	return renderTable(w, []string{"Name", "Samples", "First", "Last", "Imported"}, data)
}

// PrintStoreStatus outputs the store status.
func PrintStoreStatus(status schema.StoreStatus, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return WriteStoreStatus(w, status, cfg)
	}, fmt.Sprintf("Wrote %s store status", cfg.Output))
}

// WriteStoreStatus outputs the store status as a document or a short report.
func WriteStoreStatus(w io.Writer, status schema.StoreStatus, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeJSON(w, status)
	case schema.YAMLOut:
		return writeYAML(w, status)
	case schema.ParquetOut:
		return fmt.Errorf("parquet output is not supported for the store status")
	}

	lastImport := "never"
	if !status.LastImportTime.IsZero() {
		lastImport = status.LastImportTime.Local().Format(time.DateTime)
	}
	lines := []string{
		heading(cfg, "🗄️", "Sample store"),
		fmt.Sprintf("  Backend:        %s", status.Backend),
		fmt.Sprintf("  Connected:      %t", status.Connected),
		fmt.Sprintf("  Schema version: %d", status.SchemaVersion),
		fmt.Sprintf("  Series:         %d", status.TotalSeries),
		fmt.Sprintf("  Samples:        %d", status.TotalSamples),
		fmt.Sprintf("  Last import:    %s", lastImport),
		fmt.Sprintf("  Size:           %s", formatBytes(status.SizeBytes)),
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// formatBytes renders a byte count with a binary unit.
func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
