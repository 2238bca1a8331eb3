package core

import (
	"errors"
	"log/slog"

	"github.com/huangsam/trendline/schema"
)

// Analyze runs the whole pipeline over the given series: unify, differentiate,
// classify, summarize and measure the period. Output depends only on input.
func Analyze(series []schema.Series) schema.Report {
	tl := Unify(series)
	derivs := DifferentiateAll(tl)

	report := schema.Report{
		Timeline:    tl,
		Derivatives: derivs,
		Points:      Combine(tl, derivs),
		Critical:    ClassifyAll(derivs),
		Summaries:   SummarizeAll(tl),
	}

	period, err := PeriodOf(tl)
	switch {
	case err == nil:
		report.Period = &period
	case errors.Is(err, ErrEmptyTimeline):
	default:
		slog.Warn("Cannot compute period", "error", err)
	}
	return report
}
