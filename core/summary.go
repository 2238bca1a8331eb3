package core

import "github.com/huangsam/trendline/schema"

// Summarize computes the peak and average of one series of the timeline.
//
// Only present values greater than zero are considered; a zero count means
// the slot was not measured for this purpose. The peak time is the local
// time of the first chronological occurrence of the peak. The average is
// rounded half-up. A series without positive samples yields a summary with
// absent Peak and Average.
func Summarize(tl schema.Timeline, name string) (schema.Summary, error) {
	col := tl.Index(name)
	if col < 0 {
		return schema.Summary{}, wrapUnknown(name)
	}

	summary := schema.Summary{Series: name}
	sum := 0
	for _, p := range tl.Points {
		v := p.Values[col]
		if !v.Present {
			continue
		}
		summary.Samples++
		if v.N <= 0 {
			continue
		}
		summary.Positive++
		sum += v.N
		if !summary.Peak.Present || v.N > summary.Peak.N {
			summary.Peak = v
			summary.PeakTime = p.LocalTime
		}
	}

	if summary.Positive > 0 {
		summary.Average = schema.NewValue(roundedMean(sum, summary.Positive))
	}
	return summary, nil
}

// SummarizeAll summarizes every series of the timeline, in column order.
func SummarizeAll(tl schema.Timeline) []schema.Summary {
	out := make([]schema.Summary, 0, len(tl.Series))
	for _, name := range tl.Series {
		s, err := Summarize(tl, name)
		if err != nil {
			continue
		}
		out = append(out, s)
	}
	return out
}

// roundedMean divides a non-negative sum by n > 0, rounding half-up.
func roundedMean(sum, n int) int {
	return (2*sum + n) / (2 * n)
}
