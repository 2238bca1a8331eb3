package schema

// UnifiedPoint is one timestamp of the unified timeline. Values is aligned
// with Timeline.Series; a series without a sample here holds NoValue.
type UnifiedPoint struct {
	Timestamp string  `json:"timestamp" yaml:"timestamp"`
	LocalTime string  `json:"local_time" yaml:"local_time"`
	Values    []Value `json:"values" yaml:"values"`
}

// Timeline is the sorted union of timestamps across all tracked series.
type Timeline struct {
	Series []string       `json:"series" yaml:"series"`
	Points []UnifiedPoint `json:"points" yaml:"points"`
}

// Index returns the column of a series name, or -1.
func (t Timeline) Index(name string) int {
	for i, s := range t.Series {
		if s == name {
			return i
		}
	}
	return -1
}

// Len returns the number of points.
func (t Timeline) Len() int {
	return len(t.Points)
}

// DerivativePoint is one series' value at a timeline point with its first
// and second discrete derivatives.
type DerivativePoint struct {
	Timestamp string `json:"timestamp" yaml:"timestamp"`
	LocalTime string `json:"local_time" yaml:"local_time"`
	Value     Value  `json:"value" yaml:"value"`
	First     Value  `json:"first_derivative" yaml:"first_derivative"`
	Second    Value  `json:"second_derivative" yaml:"second_derivative"`
}

// Derivative returns the derivative of the given order.
func (p DerivativePoint) Derivative(order DerivativeOrder) Value {
	if order == SecondOrder {
		return p.Second
	}
	return p.First
}

// SeriesDerivatives is the derivative sequence of one series.
type SeriesDerivatives struct {
	Series string            `json:"series" yaml:"series"`
	Points []DerivativePoint `json:"points" yaml:"points"`
}

// SeriesSample is one series' slice of a CombinedPoint.
type SeriesSample struct {
	Name   string `json:"name" yaml:"name"`
	Value  Value  `json:"value" yaml:"value"`
	First  Value  `json:"first_derivative" yaml:"first_derivative"`
	Second Value  `json:"second_derivative" yaml:"second_derivative"`
}

// CombinedPoint is a unified point extended with every series' derivatives.
// It is the row shape consumed by tables and charts.
type CombinedPoint struct {
	Timestamp string         `json:"timestamp" yaml:"timestamp"`
	LocalTime string         `json:"local_time" yaml:"local_time"`
	Series    []SeriesSample `json:"series" yaml:"series"`
}

// Pick returns the signal a chart view plots.
func (s SeriesSample) Pick(view ChartView) Value {
	switch view {
	case FirstView:
		return s.First
	case SecondView:
		return s.Second
	default:
		return s.Value
	}
}
