package core

import (
	"fmt"
	"sort"
	"testing"

	"github.com/huangsam/trendline/schema"
)

// seriesFromBytes builds two series over a 10-minute grid. Each byte decides
// whether a slot is sampled and with which count.
func seriesFromBytes(data []byte) []schema.Series {
	a := schema.SampleMap{}
	b := schema.SampleMap{}
	for i, c := range data {
		ts := fmt.Sprintf("2025-06-01T%02d:%02d", (i/6)%24, (i%6)*10)
		switch c % 4 {
		case 0:
			a[ts] = int(c) / 4
		case 1:
			b[ts] = int(c) / 4
		case 2:
			a[ts] = int(c) / 8
			b[ts] = 0
		}
	}
	return []schema.Series{{Name: "a", Samples: a}, {Name: "b", Samples: b}}
}

// FuzzAnalyze checks the engine invariants on random sparse series.
func FuzzAnalyze(f *testing.F) {
	f.Add([]byte{})
	f.Add([]byte{0, 4, 8, 8, 3, 12})
	f.Add([]byte{2, 2, 2, 2, 1, 1, 1})
	f.Add([]byte{255, 0, 128, 64, 33, 3, 9})

	f.Fuzz(func(t *testing.T, data []byte) {
		series := seriesFromBytes(data)
		report := Analyze(series)
		tl := report.Timeline

		// Timestamps are unique and ascending, and cover every input key.
		total := map[string]struct{}{}
		for _, s := range series {
			for ts := range s.Samples {
				total[ts] = struct{}{}
			}
		}
		if tl.Len() != len(total) {
			t.Fatalf("timeline has %d points, want %d", tl.Len(), len(total))
		}
		if !sort.SliceIsSorted(tl.Points, func(i, j int) bool {
			return tl.Points[i].Timestamp < tl.Points[j].Timestamp
		}) {
			t.Fatal("timeline is not sorted")
		}
		for i := 1; i < tl.Len(); i++ {
			if tl.Points[i].Timestamp == tl.Points[i-1].Timestamp {
				t.Fatalf("duplicate timestamp %s", tl.Points[i].Timestamp)
			}
		}

		for col, d := range report.Derivatives {
			for i, p := range d.Points {
				v := tl.Points[i].Values[col]
				if p.Value != v {
					t.Fatalf("%s[%d]: value %v, want %v", d.Series, i, p.Value, v)
				}

				wantFirst := i >= 1 && v.Present && tl.Points[i-1].Values[col].Present
				if p.First.Present != wantFirst {
					t.Fatalf("%s[%d]: first present=%v, want %v", d.Series, i, p.First.Present, wantFirst)
				}
				if wantFirst && p.First.N != v.N-tl.Points[i-1].Values[col].N {
					t.Fatalf("%s[%d]: wrong first derivative", d.Series, i)
				}

				wantSecond := wantFirst && i >= 2 && tl.Points[i-2].Values[col].Present
				if p.Second.Present != wantSecond {
					t.Fatalf("%s[%d]: second present=%v, want %v", d.Series, i, p.Second.Present, wantSecond)
				}
				if wantSecond {
					a := tl.Points[i-2].Values[col].N
					b := tl.Points[i-1].Values[col].N
					if p.Second.N != (v.N-b)-(b-a) {
						t.Fatalf("%s[%d]: wrong second derivative", d.Series, i)
					}
				}
			}
		}

		for _, c := range report.Critical {
			col := tl.Index(c.Series)
			if col < 0 {
				t.Fatalf("critical point for unknown series %s", c.Series)
			}
		}

		for _, s := range report.Summaries {
			if !s.HasData() {
				if s.Peak.Present || s.Average.Present {
					t.Fatalf("%s: summary without data has values", s.Series)
				}
				continue
			}
			if s.Average.N > s.Peak.N || s.Average.N < 1 {
				t.Fatalf("%s: average %d outside [1, %d]", s.Series, s.Average.N, s.Peak.N)
			}
		}
	})
}
