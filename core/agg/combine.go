package agg

import "github.com/huangsam/trendline/schema"

// CombineWindow sums several sample maps into one over their common window.
//
// The window runs from the latest first timestamp to the earliest last
// timestamp among the non-empty inputs, inclusive. Counts outside it are
// dropped so every slot of the result is covered by every input's range.
// Inputs that do not overlap produce an empty map.
func CombineWindow(maps ...schema.SampleMap) schema.SampleMap {
	var start, end string
	found := false
	for _, m := range maps {
		keys := m.Timestamps()
		if len(keys) == 0 {
			continue
		}
		first, last := keys[0], keys[len(keys)-1]
		if !found || first > start {
			start = first
		}
		if !found || last < end {
			end = last
		}
		found = true
	}

	out := schema.SampleMap{}
	if !found {
		return out
	}
	for _, m := range maps {
		for ts, n := range m {
			if ts < start || ts > end {
				continue
			}
			out[ts] += n
		}
	}
	return out
}
