package schema

// CriticalPoint is a timestamp where a derivative of a series is exactly zero.
type CriticalPoint struct {
	Series    string       `json:"series" yaml:"series"`
	Timestamp string       `json:"timestamp" yaml:"timestamp"`
	LocalTime string       `json:"local_time" yaml:"local_time"`
	Kind      CriticalKind `json:"kind" yaml:"kind"`
}

// Summary holds the peak and average of one series' positive samples.
// Peak and Average are absent when the series has no positive sample.
type Summary struct {
	Series   string `json:"series" yaml:"series"`
	Peak     Value  `json:"peak" yaml:"peak"`
	PeakTime string `json:"peak_time" yaml:"peak_time"`
	Average  Value  `json:"average" yaml:"average"`
	Samples  int    `json:"samples" yaml:"samples"`  // present samples
	Positive int    `json:"positive" yaml:"positive"` // present samples greater than zero
}

// HasData reports whether the summary was computed over at least one positive sample.
func (s Summary) HasData() bool {
	return s.Positive > 0
}

// Period is the span between the first and last timeline timestamps.
type Period struct {
	Start string `json:"start" yaml:"start"`
	End   string `json:"end" yaml:"end"`
	Hours int    `json:"hours" yaml:"hours"`
}

// Report bundles every stage of one pipeline run.
type Report struct {
	Timeline    Timeline            `json:"timeline" yaml:"timeline"`
	Derivatives []SeriesDerivatives `json:"derivatives" yaml:"derivatives"`
	Points      []CombinedPoint     `json:"points" yaml:"points"`
	Critical    []CriticalPoint     `json:"critical" yaml:"critical"`
	Summaries   []Summary           `json:"summaries" yaml:"summaries"`
	Period      *Period             `json:"period" yaml:"period"`
}
