package core

import (
	"sort"

	"github.com/huangsam/trendline/schema"
)

// Unify merges independently sampled series into one timeline.
// The result holds every timestamp of every series exactly once, sorted
// ascending. Lexicographic order equals chronological order because all
// timestamps share one ISO-8601 format and zone; that is a caller
// precondition and is not checked here.
func Unify(series []schema.Series) schema.Timeline {
	names := make([]string, len(series))
	seen := make(map[string]struct{})
	for i, s := range series {
		names[i] = s.Name
		for ts := range s.Samples {
			seen[ts] = struct{}{}
		}
	}

	timestamps := make([]string, 0, len(seen))
	for ts := range seen {
		timestamps = append(timestamps, ts)
	}
	sort.Strings(timestamps)

	points := make([]schema.UnifiedPoint, len(timestamps))
	for i, ts := range timestamps {
		values := make([]schema.Value, len(series))
		for j, s := range series {
			if v, ok := s.Samples[ts]; ok {
				values[j] = schema.NewValue(v)
			}
		}
		points[i] = schema.UnifiedPoint{
			Timestamp: ts,
			LocalTime: schema.LocalTime(ts),
			Values:    values,
		}
	}

	return schema.Timeline{Series: names, Points: points}
}
