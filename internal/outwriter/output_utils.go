package outwriter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/huangsam/trendline/internal/contract"
	"github.com/huangsam/trendline/internal/parquet"
	"github.com/huangsam/trendline/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"gopkg.in/yaml.v3"
)

// writeWithFile handles the common pattern of opening a file, writing to it, and cleaning up.
// It accepts a writer function that takes an io.Writer and returns an error.
func writeWithFile(outputFile string, writer func(io.Writer) error, successMsg string) error {
	file, err := contract.SelectOutputFile(outputFile)
	if err != nil {
		return err
	}
	// Only close if it's not stdout
	if file != os.Stdout {
		defer func() { _ = file.Close() }()
	}

	if err := writer(file); err != nil {
		return err
	}

	if file != os.Stdout {
		fmt.Fprintf(os.Stderr, "💾 %s to %s\n", successMsg, outputFile)
	}
	return nil
}

// writeJSON is a generic JSON encoder that handles indentation consistently.
func writeJSON(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// writeYAML is the YAML counterpart of writeJSON.
func writeYAML(w io.Writer, data any) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	return nil
}

// writeCSVWithHeader handles the common pattern of creating a CSV writer,
// writing a header, and writing data rows.
func writeCSVWithHeader(w io.Writer, header []string, writeRows func(*csv.Writer) error) error {
	csvWriter := csv.NewWriter(w)

	if err := csvWriter.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	if err := writeRows(csvWriter); err != nil {
		return err
	}

	csvWriter.Flush()
	return csvWriter.Error()
}

// writeStructured covers the formats that serialize a document as a whole.
// It reports false when the mode needs a view-specific writer.
func writeStructured[T any](w io.Writer, mode schema.OutputMode, doc any, rows []T) (bool, error) {
	switch mode {
	case schema.JSONOut:
		return true, writeJSON(w, doc)
	case schema.YAMLOut:
		return true, writeYAML(w, doc)
	case schema.ParquetOut:
		return true, parquet.Write(w, rows)
	default:
		return false, nil
	}
}

// renderTable writes a right-aligned table in the style shared by all text views.
func renderTable(w io.Writer, headers []string, data [][]string) error {
	table := tablewriter.NewWriter(w)
	defer func() { _ = table.Close() }()

	table.Header(headers)
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// heading returns a section title, prefixed with an emoji when enabled.
func heading(cfg *contract.Config, emoji, title string) string {
	if cfg.UseEmojis {
		return emoji + " " + title
	}
	return title
}

// deltaText renders a derivative, colored by sign when colors are enabled.
func deltaText(cfg *contract.Config, v schema.Value) string {
	if cfg.UseColors {
		return contract.GetColorDelta(v)
	}
	return v.String()
}

// kindText renders a critical point kind, colored when colors are enabled.
func kindText(cfg *contract.Config, kind schema.CriticalKind) string {
	if cfg.UseColors {
		return contract.GetColorLabel(kind)
	}
	return contract.GetPlainLabel(kind)
}

// valueCSV renders an optional value for CSV: absent values become empty cells.
func valueCSV(v schema.Value) string {
	if !v.Present {
		return ""
	}
	return v.String()
}
