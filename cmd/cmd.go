// Package cmd defines the command-line interface for trendline.
package cmd

import (
	"github.com/huangsam/trendline/internal/contract"
	"github.com/huangsam/trendline/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(seriesCmd)
	rootCmd.AddCommand(criticalCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(chartCmd)
	rootCmd.AddCommand(bucketCmd)
	rootCmd.AddCommand(combineCmd)
	rootCmd.AddCommand(samplesCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the samples subcommands to the parent samples command
	samplesCmd.AddCommand(samplesImportCmd)
	samplesCmd.AddCommand(samplesListCmd)
	samplesCmd.AddCommand(samplesStatusCmd)
	samplesCmd.AddCommand(samplesDeleteCmd)
	samplesCmd.AddCommand(samplesClearCmd)
	samplesCmd.AddCommand(samplesMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or yaml or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().Bool("watch", false, "Recompute whenever a source file changes (series, critical, stats, chart)")
	rootCmd.PersistentFlags().String("store-backend", string(schema.SQLiteBackend), "Sample store backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("store-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level: debug or info or warn or error")
	rootCmd.PersistentFlags().String("log-file", "", "Optional path to also write JSON logs to")
	rootCmd.PersistentFlags().String("emoji", "no", "Prefix section headers with emojis (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of criticalCmd to Viper
	criticalCmd.Flags().String("order", string(schema.BothOrders), "Derivative order: first (stationary) or second (inflection) or both")
	if err := viper.BindPFlags(criticalCmd.Flags()); err != nil {
		contract.LogFatal("Error binding critical flags", err)
	}

	// Bind all flags of chartCmd to Viper
	chartCmd.Flags().String("view", string(schema.ValuesView), "Signal to plot: values or first or second")
	chartCmd.Flags().Int("chart-width", contract.DefaultChartWidth, "Chart width in pixels")
	chartCmd.Flags().Int("chart-height", contract.DefaultChartHeight, "Chart height in pixels")
	if err := viper.BindPFlags(chartCmd.Flags()); err != nil {
		contract.LogFatal("Error binding chart flags", err)
	}

	// Bind all flags of bucketCmd to Viper
	bucketCmd.Flags().Int("interval", schema.DefaultBucketMinutes, "Slot width in minutes (must divide 60)")
	bucketCmd.Flags().String("unique-by", "", "Column whose values are counted once (e.g., shortCode)")
	if err := viper.BindPFlags(bucketCmd.Flags()); err != nil {
		contract.LogFatal("Error binding bucket flags", err)
	}

	// Bind all flags of samplesMigrateCmd to Viper
	samplesMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(samplesMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding samples migrate flags", err)
	}
}
