// Package parquet provides row types and functions for exporting trendline
// results to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"io"

	"github.com/huangsam/trendline/schema"
	"github.com/parquet-go/parquet-go"
)

// SeriesRow is one series at one timeline point, in long format.
// Absent values and derivatives are stored as nulls.
type SeriesRow struct {
	// Timestamp is the ISO-8601 timestamp of the timeline point
	Timestamp string `parquet:"timestamp,snappy"`

	// LocalTime is the time-of-day portion of the timestamp
	LocalTime string `parquet:"local_time,snappy"`

	// Series is the name of the series
	Series string `parquet:"series,snappy,dict"`

	// Value is the recorded count (nullable)
	Value *int64 `parquet:"value,optional,snappy"`

	// FirstDerivative is the change from the previous point (nullable)
	FirstDerivative *int64 `parquet:"first_derivative,optional,snappy"`

	// SecondDerivative is the change of the change (nullable)
	SecondDerivative *int64 `parquet:"second_derivative,optional,snappy"`
}

// CriticalRow is one stationary or inflection point.
type CriticalRow struct {
	Series    string `parquet:"series,snappy,dict"`
	Timestamp string `parquet:"timestamp,snappy"`
	LocalTime string `parquet:"local_time,snappy"`
	Kind      string `parquet:"kind,snappy,dict"`
}

// SummaryRow holds the statistics of one series.
type SummaryRow struct {
	Series   string  `parquet:"series,snappy"`
	Peak     *int64  `parquet:"peak,optional,snappy"`
	PeakTime *string `parquet:"peak_time,optional,snappy"`
	Average  *int64  `parquet:"average,optional,snappy"`
	Samples  int32   `parquet:"samples,snappy"`
	Positive int32   `parquet:"positive,snappy"`
}

// SampleRow is one sample map entry.
type SampleRow struct {
	Timestamp string `parquet:"timestamp,snappy"`
	Count     int64  `parquet:"count,snappy"`
}

// SeriesRows flattens combined points into one row per series and point.
func SeriesRows(points []schema.CombinedPoint) []SeriesRow {
	var rows []SeriesRow
	for _, p := range points {
		for _, s := range p.Series {
			rows = append(rows, SeriesRow{
				Timestamp:        p.Timestamp,
				LocalTime:        p.LocalTime,
				Series:           s.Name,
				Value:            s.Value.Int64Ptr(),
				FirstDerivative:  s.First.Int64Ptr(),
				SecondDerivative: s.Second.Int64Ptr(),
			})
		}
	}
	return rows
}

// CriticalRows converts critical points to rows.
func CriticalRows(points []schema.CriticalPoint) []CriticalRow {
	rows := make([]CriticalRow, len(points))
	for i, c := range points {
		rows[i] = CriticalRow{
			Series:    c.Series,
			Timestamp: c.Timestamp,
			LocalTime: c.LocalTime,
			Kind:      string(c.Kind),
		}
	}
	return rows
}

// SummaryRows converts summaries to rows. Series without data get nulls.
func SummaryRows(summaries []schema.Summary) []SummaryRow {
	rows := make([]SummaryRow, len(summaries))
	for i, s := range summaries {
		row := SummaryRow{
			Series:   s.Series,
			Peak:     s.Peak.Int64Ptr(),
			Average:  s.Average.Int64Ptr(),
			Samples:  int32(s.Samples),
			Positive: int32(s.Positive),
		}
		if s.HasData() {
			peakTime := s.PeakTime
			row.PeakTime = &peakTime
		}
		rows[i] = row
	}
	return rows
}

// SampleRows converts a sample map to chronologically ordered rows.
func SampleRows(m schema.SampleMap) []SampleRow {
	samples := m.Samples()
	rows := make([]SampleRow, len(samples))
	for i, s := range samples {
		rows[i] = SampleRow{Timestamp: s.Timestamp, Count: int64(s.Value)}
	}
	return rows
}

// Write encodes rows as a Parquet file on w.
// The schema is derived from the struct tags of T.
func Write[T any](w io.Writer, rows []T) error {
	writer := parquet.NewGenericWriter[T](w)
	if _, err := writer.Write(rows); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finish parquet file: %w", err)
	}
	return nil
}
