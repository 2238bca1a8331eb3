package core

import "github.com/huangsam/trendline/schema"

// Classify returns the points where the selected derivative is present and
// exactly zero. A first-order zero is a stationary point and a second-order
// zero an inflection point. Input order is kept and plateaus yield one
// point per sample.
//
// Only exact zeros count. A derivative that jumps over zero between two
// samples (2 then -3) produces nothing.
func Classify(points []schema.DerivativePoint, series string, order schema.DerivativeOrder) []schema.CriticalPoint {
	kind := schema.KindFor(order)
	var out []schema.CriticalPoint
	for _, p := range points {
		if !p.Derivative(order).IsZero() {
			continue
		}
		out = append(out, schema.CriticalPoint{
			Series:    series,
			Timestamp: p.Timestamp,
			LocalTime: p.LocalTime,
			Kind:      kind,
		})
	}
	return out
}

// ClassifyAll lists critical points grouped by series, then by order.
// With no orders given both stationary and inflection points are listed.
func ClassifyAll(derivs []schema.SeriesDerivatives, orders ...schema.DerivativeOrder) []schema.CriticalPoint {
	if len(orders) == 0 {
		orders = schema.BothOrders.Expand()
	}
	out := []schema.CriticalPoint{}
	for _, d := range derivs {
		for _, order := range orders {
			out = append(out, Classify(d.Points, d.Series, order)...)
		}
	}
	return out
}
