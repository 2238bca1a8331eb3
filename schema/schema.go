// Package schema has configs, models and constants for all parts of trendline.
package schema

import "sort"

// localTimeOffset is where the time-of-day portion starts in an ISO-8601 timestamp.
const localTimeOffset = 11

// SampleMap maps an ISO-8601 timestamp to a non-negative event count.
// All keys of one map share format, resolution and zone.
type SampleMap map[string]int

// Series is a named SampleMap, the unit the engine compares.
type Series struct {
	Name    string    `json:"name" yaml:"name"`
	Samples SampleMap `json:"samples" yaml:"samples"`
}

// Sample is one SampleMap entry with its time-of-day label.
type Sample struct {
	Timestamp string `json:"timestamp" yaml:"timestamp"`
	LocalTime string `json:"local_time" yaml:"local_time"`
	Value     int    `json:"value" yaml:"value"`
}

// Source describes where a series is read from: a file or the sample store.
type Source struct {
	Name   string
	Path   string // empty when Stored is true
	Stored bool
}

// LocalTime returns the time-of-day portion of an ISO-8601 timestamp,
// everything from character offset 11 on.
func LocalTime(timestamp string) string {
	if len(timestamp) <= localTimeOffset {
		return ""
	}
	return timestamp[localTimeOffset:]
}

// Timestamps returns the keys of m in ascending order.
func (m SampleMap) Timestamps() []string {
	keys := make([]string, 0, len(m))
	for ts := range m {
		keys = append(keys, ts)
	}
	sort.Strings(keys)
	return keys
}

// Samples returns the entries of m as chronologically ordered samples.
func (m SampleMap) Samples() []Sample {
	keys := m.Timestamps()
	out := make([]Sample, len(keys))
	for i, ts := range keys {
		out[i] = Sample{Timestamp: ts, LocalTime: LocalTime(ts), Value: m[ts]}
	}
	return out
}

// Clone returns a copy of m.
func (m SampleMap) Clone() SampleMap {
	out := make(SampleMap, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
