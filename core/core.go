// Package core has the trendline engine: timeline unification, discrete
// derivatives, critical points and summaries, plus the entry points that
// load series, run the engine and print results.
package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/huangsam/trendline/core/agg"
	"github.com/huangsam/trendline/internal/contract"
	"github.com/huangsam/trendline/internal/loader"
	"github.com/huangsam/trendline/internal/outwriter"
	"github.com/huangsam/trendline/schema"
)

// ErrNothingToWatch is returned when --watch is set but every source is stored.
var ErrNothingToWatch = errors.New("--watch needs at least one file source")

// ExecutorFunc defines the function signature for executing different commands.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error

// reportPrinter prints one view of a report.
type reportPrinter func(report schema.Report, cfg *contract.Config, duration time.Duration) error

// ExecuteSeries prints the unified timeline with both derivatives of every series.
// It serves as the main entry point for the 'series' command.
func ExecuteSeries(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	return runReport(ctx, cfg, mgr, outwriter.PrintSeriesResults)
}

// ExecuteCritical prints the stationary and inflection points selected by cfg.Order.
func ExecuteCritical(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	return runReport(ctx, cfg, mgr, outwriter.PrintCriticalResults)
}

// ExecuteStats prints the peak, peak time and average of every series and the period.
func ExecuteStats(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	return runReport(ctx, cfg, mgr, outwriter.PrintStatsResults)
}

// ExecuteChart renders the series as a PNG line chart for the view in cfg.View.
func ExecuteChart(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	return runReport(ctx, cfg, mgr, func(report schema.Report, cfg *contract.Config, _ time.Duration) error {
		return outwriter.PrintChart(report, cfg)
	})
}

// ExecuteBucket counts the raw posts of cfg.Inputs[0] into fixed-width slots
// and prints the resulting sample map.
func ExecuteBucket(_ context.Context, cfg *contract.Config, _ contract.StoreManager) error {
	if len(cfg.Inputs) != 1 {
		return fmt.Errorf("bucket needs exactly one input file (received %d)", len(cfg.Inputs))
	}

	f, err := os.Open(cfg.Inputs[0])
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	samples, err := agg.Bucket(f, agg.BucketOptions{
		IntervalMinutes: cfg.BucketInterval,
		UniqueBy:        cfg.UniqueBy,
	})
	if err != nil {
		return fmt.Errorf("%s: %w", cfg.Inputs[0], err)
	}
	slog.Debug("Bucketed posts", "file", cfg.Inputs[0], "slots", len(samples))
	return outwriter.PrintSampleMap(samples, cfg)
}

// ExecuteCombine sums the sample maps in cfg.Inputs over their common window
// and prints the result.
func ExecuteCombine(_ context.Context, cfg *contract.Config, _ contract.StoreManager) error {
	if len(cfg.Inputs) == 0 {
		return errors.New("combine needs at least one input file")
	}

	maps := make([]schema.SampleMap, 0, len(cfg.Inputs))
	for _, path := range cfg.Inputs {
		m, err := loader.LoadFile(path)
		if err != nil {
			return err
		}
		maps = append(maps, m)
	}
	return outwriter.PrintSampleMap(agg.CombineWindow(maps...), cfg)
}

// runReport loads the configured series, analyzes them and prints one view.
// With cfg.Watch it keeps running and reprints whenever a source file changes.
func runReport(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager, printer reportPrinter) error {
	run := func() error {
		start := time.Now()
		report, err := buildReport(cfg, mgr)
		if err != nil {
			return err
		}
		return printer(report, cfg, time.Since(start))
	}

	if err := run(); err != nil {
		return err
	}
	if !cfg.Watch {
		return nil
	}

	paths := loader.FilePaths(cfg.Sources)
	if len(paths) == 0 {
		return ErrNothingToWatch
	}
	return loader.Watch(ctx, paths, func(path string) {
		slog.Info("Source changed, recomputing", "file", path)
		if err := run(); err != nil {
			slog.Error("Cannot recompute", "file", path, "error", err)
		}
	})
}

// buildReport loads the sources of cfg and runs the pipeline.
// Critical points are restricted to cfg.Order.
func buildReport(cfg *contract.Config, mgr contract.StoreManager) (schema.Report, error) {
	var store contract.SampleStore
	if mgr != nil {
		store = mgr.GetSampleStore()
	}
	series, err := loader.Load(cfg.Sources, store)
	if err != nil {
		return schema.Report{}, err
	}

	report := Analyze(series)
	if cfg.Order != "" && cfg.Order != schema.BothOrders {
		report.Critical = ClassifyAll(report.Derivatives, cfg.Order.Expand()...)
	}
	return report, nil
}
