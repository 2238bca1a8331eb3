package cmd

import (
	"github.com/huangsam/trendline/core"
	"github.com/huangsam/trendline/internal/contract"
	"github.com/huangsam/trendline/schema"
	"github.com/spf13/cobra"
)

// seriesCmd prints the unified timeline with both derivatives per series.
var seriesCmd = &cobra.Command{
	Use:   "series SOURCE [SOURCE]",
	Short: "Show values and derivatives on one shared timeline.",
	Long: `Align up to two series on the union of their timestamps and print each
value next to its first and second discrete derivative.

A SOURCE is a JSON file mapping "YYYY-MM-DDTHH:MM" to a post count, optionally
named as NAME=FILE, or a stored series written as store:NAME. Without a name
the file's base name is used.

Examples:
  # Compare two platforms
  trendline series insta.json wechat.json

  # Same data, as CSV for a spreadsheet
  trendline series insta.json wechat.json --output csv --output-file series.csv

  # Mix a file with a series imported earlier
  trendline series today=insta.json store:wechat

  # Recompute whenever a file is saved
  trendline series insta.json --watch`,
	Args:    cobra.RangeArgs(1, schema.MaxSeries),
	PreRunE: analysisSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteSeries(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot run series analysis", err)
		}
	},
}

// criticalCmd prints stationary and inflection points.
var criticalCmd = &cobra.Command{
	Use:   "critical SOURCE [SOURCE]",
	Short: "List stationary and inflection points.",
	Long: `Find the timestamps where a derivative is exactly zero. A zero first
derivative marks a stationary point and a zero second derivative marks an
inflection point.

Examples:
  # Both kinds for two series
  trendline critical insta.json wechat.json

  # Only inflection points, as JSON
  trendline critical insta.json --order second --output json`,
	Args:    cobra.RangeArgs(1, schema.MaxSeries),
	PreRunE: analysisSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteCritical(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot run critical point analysis", err)
		}
	},
}

// statsCmd prints per-series summary statistics.
var statsCmd = &cobra.Command{
	Use:   "stats SOURCE [SOURCE]",
	Short: "Summarize peak and average per series.",
	Long: `Report the peak value and when it happened, the rounded average over
present samples and the sample count for every series.

Examples:
  trendline stats insta.json wechat.json
  trendline stats store:insta --output yaml`,
	Args:    cobra.RangeArgs(1, schema.MaxSeries),
	PreRunE: analysisSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteStats(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot run stats analysis", err)
		}
	},
}

// chartCmd renders a PNG line chart.
var chartCmd = &cobra.Command{
	Use:   "chart SOURCE [SOURCE]",
	Short: "Render values or a derivative as a PNG chart.",
	Long: `Plot one signal of every series against the shared timeline. Gaps in a
series break its line instead of being bridged.

Examples:
  # Raw counts to trendline.png
  trendline chart insta.json wechat.json

  # Second derivative in a larger image
  trendline chart insta.json wechat.json --view second --chart-width 1600 --output-file accel.png`,
	Args:    cobra.RangeArgs(1, schema.MaxSeries),
	PreRunE: analysisSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteChart(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot render chart", err)
		}
	},
}

// bucketCmd turns a raw post export into a sample map.
var bucketCmd = &cobra.Command{
	Use:   "bucket FILE",
	Short: "Count raw posts into fixed time slots.",
	Long: `Read a CSV export of posts with a timestamp column and count them into
slots of --interval minutes. Rows sharing a --unique-by value are counted once.

Examples:
  trendline bucket posts.csv --output json --output-file insta.json
  trendline bucket posts.csv --interval 30 --unique-by shortCode`,
	Args:    cobra.ExactArgs(1),
	PreRunE: inputSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteBucket(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot bucket posts", err)
		}
	},
}

// combineCmd merges sample maps from several scrapes of one platform.
var combineCmd = &cobra.Command{
	Use:   "combine FILE...",
	Short: "Merge sample maps over their common window.",
	Long: `Merge sample maps taken from overlapping scrapes of the same platform.
Only timestamps inside the window every input covers are kept, and counts
at the same timestamp are added.

Examples:
  trendline combine morning.json evening.json --output json --output-file insta.json`,
	Args:    cobra.MinimumNArgs(1),
	PreRunE: inputSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteCombine(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot combine sample maps", err)
		}
	},
}
