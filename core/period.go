package core

import (
	"fmt"
	"math"
	"time"

	"github.com/huangsam/trendline/schema"
)

// timestampLayouts are tried in order when a timestamp has to become a time.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// ParseTimestamp parses an ISO-8601 sample timestamp.
func ParseTimestamp(ts string) (time.Time, error) {
	var firstErr error
	for _, layout := range timestampLayouts {
		t, err := time.Parse(layout, ts)
		if err == nil {
			return t, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q: %w", ts, firstErr)
}

// PeriodOf returns the span covered by the timeline, in whole hours.
func PeriodOf(tl schema.Timeline) (schema.Period, error) {
	if tl.Len() == 0 {
		return schema.Period{}, ErrEmptyTimeline
	}

	first := tl.Points[0].Timestamp
	last := tl.Points[tl.Len()-1].Timestamp

	start, err := ParseTimestamp(first)
	if err != nil {
		return schema.Period{}, err
	}
	end, err := ParseTimestamp(last)
	if err != nil {
		return schema.Period{}, err
	}

	return schema.Period{
		Start: first,
		End:   last,
		Hours: int(math.Round(end.Sub(start).Hours())),
	}, nil
}
