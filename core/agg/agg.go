// Package agg turns raw post exports into sample maps and merges sample maps.
package agg

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/huangsam/trendline/schema"
)

// TimestampColumn is the CSV column holding each post's ISO-8601 timestamp.
const TimestampColumn = "timestamp"

// minTimestampLen is the shortest timestamp that still carries hour and minute.
const minTimestampLen = 16

// BucketOptions controls how raw posts are counted.
type BucketOptions struct {
	IntervalMinutes int    // slot width, must divide 60
	UniqueBy        string // optional id column; each id is counted once
}

// Validate checks the options before any row is read.
func (o BucketOptions) Validate() error {
	if o.IntervalMinutes <= 0 || 60%o.IntervalMinutes != 0 {
		return fmt.Errorf("interval must be a positive divisor of 60, got %d", o.IntervalMinutes)
	}
	return nil
}

// Bucket reads a CSV export of posts and counts posts per time slot.
//
// The slot of a post is found by string arithmetic on its timestamp: the
// first 14 characters are kept and the minute is floored to the interval.
// Slots without posts are not emitted. When UniqueBy names a column, rows
// repeating an id already seen are skipped.
func Bucket(r io.Reader, opts BucketOptions) (schema.SampleMap, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return schema.SampleMap{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read header: %w", err)
	}

	tsCol, err := columnIndex(header, TimestampColumn)
	if err != nil {
		return nil, err
	}
	idCol := -1
	if opts.UniqueBy != "" {
		if idCol, err = columnIndex(header, opts.UniqueBy); err != nil {
			return nil, err
		}
	}

	counts := schema.SampleMap{}
	seen := map[string]struct{}{}
	row := 1
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		row++
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}
		if tsCol >= len(record) {
			return nil, fmt.Errorf("row %d: missing %s column", row, TimestampColumn)
		}

		if idCol >= 0 && idCol < len(record) {
			id := record[idCol]
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
		}

		slot, err := BucketTimestamp(record[tsCol], opts.IntervalMinutes)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}
		counts[slot]++
	}
	return counts, nil
}

// BucketTimestamp floors the minute of an ISO-8601 timestamp to the interval
// and drops everything after it: "2025-06-01T12:37:10Z" becomes "2025-06-01T12:30".
func BucketTimestamp(ts string, intervalMinutes int) (string, error) {
	if len(ts) < minTimestampLen {
		return "", fmt.Errorf("timestamp %q is too short", ts)
	}
	minute, err := strconv.Atoi(ts[14:16])
	if err != nil || minute < 0 || minute > 59 {
		return "", fmt.Errorf("timestamp %q has no valid minute", ts)
	}
	return fmt.Sprintf("%s%02d", ts[:14], minute-minute%intervalMinutes), nil
}

// columnIndex finds a header column, ignoring surrounding space and case.
func columnIndex(header []string, name string) (int, error) {
	for i, h := range header {
		if strings.EqualFold(strings.TrimSpace(h), name) {
			return i, nil
		}
	}
	return -1, fmt.Errorf("column %q not found in header", name)
}
