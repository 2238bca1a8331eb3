package core

import "github.com/huangsam/trendline/schema"

// Differentiate computes the first and second discrete derivatives of one
// series of the timeline.
//
// A derivative is defined only from adjacent present samples: the first at i
// needs values i-1 and i, the second needs i-2, i-1 and i. Anything else is
// absent. The second derivative is taken from the raw values, never from
// previously computed first derivatives.
func Differentiate(tl schema.Timeline, name string) ([]schema.DerivativePoint, error) {
	col := tl.Index(name)
	if col < 0 {
		return nil, wrapUnknown(name)
	}

	out := make([]schema.DerivativePoint, len(tl.Points))
	for i, p := range tl.Points {
		cur := p.Values[col]
		dp := schema.DerivativePoint{
			Timestamp: p.Timestamp,
			LocalTime: p.LocalTime,
			Value:     cur,
		}

		if i >= 1 {
			prev := tl.Points[i-1].Values[col]
			if cur.Present && prev.Present {
				dp.First = schema.NewValue(cur.N - prev.N)
			}
		}

		if i >= 2 {
			prev := tl.Points[i-1].Values[col]
			prevPrev := tl.Points[i-2].Values[col]
			if cur.Present && prev.Present && prevPrev.Present {
				dp.Second = schema.NewValue((cur.N - prev.N) - (prev.N - prevPrev.N))
			}
		}

		out[i] = dp
	}
	return out, nil
}

// DifferentiateAll differentiates every series of the timeline, in column order.
func DifferentiateAll(tl schema.Timeline) []schema.SeriesDerivatives {
	out := make([]schema.SeriesDerivatives, 0, len(tl.Series))
	for _, name := range tl.Series {
		points, err := Differentiate(tl, name)
		if err != nil {
			// Unreachable: name comes from tl.Series.
			continue
		}
		out = append(out, schema.SeriesDerivatives{Series: name, Points: points})
	}
	return out
}

// Combine zips per-series derivative sequences back onto the timeline rows.
// derivs must come from DifferentiateAll on the same timeline.
func Combine(tl schema.Timeline, derivs []schema.SeriesDerivatives) []schema.CombinedPoint {
	out := make([]schema.CombinedPoint, len(tl.Points))
	for i, p := range tl.Points {
		row := schema.CombinedPoint{
			Timestamp: p.Timestamp,
			LocalTime: p.LocalTime,
			Series:    make([]schema.SeriesSample, len(derivs)),
		}
		for j, d := range derivs {
			dp := d.Points[i]
			row.Series[j] = schema.SeriesSample{
				Name:   d.Series,
				Value:  dp.Value,
				First:  dp.First,
				Second: dp.Second,
			}
		}
		out[i] = row
	}
	return out
}
