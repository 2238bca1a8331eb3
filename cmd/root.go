package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/huangsam/trendline/internal/contract"
	"github.com/huangsam/trendline/internal/iostore"
	"github.com/huangsam/trendline/internal/loader"
	"github.com/huangsam/trendline/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// All linker flags will be set by goreleaser infra at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCtx is the root context for all operations.
var rootCtx = context.Background()

// cfg will hold the validated, final configuration.
var cfg = &contract.Config{}

// input holds the raw, unvalidated configuration from all sources (file, env, flags).
// Viper will unmarshal into this struct.
var input = &contract.ConfigRawInput{}

// storeManager is the global sample store manager instance.
var storeManager contract.StoreManager

// closeLog releases the log file opened by sharedSetup.
var closeLog = func() error { return nil }

// rootCmd is the command-line entrypoint for all other commands.
var rootCmd = &cobra.Command{
	Use:   "trendline",
	Short: "Compare engagement time series through their discrete derivatives.",
	Long: `Trendline lines up post-count time series from different platforms on one
timeline and shows where each one speeds up, slows down, peaks and turns.`,
	Version:            version,
	SilenceErrors:      true,
	SilenceUsage:       true,
	DisableSuggestions: true,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	// Check if a specific config file is provided
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		// Set config file name and paths
		viper.SetConfigName(".trendline") // Name of config file (without extension)
		viper.SetConfigType("yaml")       // We'll use YAML format
		viper.AddConfigPath(".")          // Look in the current directory
		viper.AddConfigPath("$HOME")      // Look in the home directory
	}

	// Set environment variable prefix
	viper.SetEnvPrefix("TRENDLINE")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // Read in environment variables that match

	// Set defaults in Viper
	viper.SetDefault("output", string(schema.TextOut))
	viper.SetDefault("order", string(schema.BothOrders))
	viper.SetDefault("view", string(schema.ValuesView))
	viper.SetDefault("interval", schema.DefaultBucketMinutes)
	viper.SetDefault("chart-width", contract.DefaultChartWidth)
	viper.SetDefault("chart-height", contract.DefaultChartHeight)
	viper.SetDefault("store-backend", string(schema.SQLiteBackend))
	viper.SetDefault("store-db-connect", "")
	viper.SetDefault("log-level", "info")
	viper.SetDefault("emoji", "no")
	viper.SetDefault("color", "yes")
}

// loadConfigFile reads the config file if present. A missing file is fine;
// defaults, env and flags still apply.
func loadConfigFile() error {
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Config file was found but another error was produced
			return fmt.Errorf("error reading config file: %w", err)
		}
	}
	return nil
}

// sharedSetup unmarshals config, runs validation and installs the logger.
func sharedSetup(_ context.Context, _ *cobra.Command, _ []string) error {
	// 1. Read config file. This merges defaults, file, env, and flags.
	if err := loadConfigFile(); err != nil {
		return err
	}

	// 2. Unmarshal all resolved values from Viper into our raw input struct.
	if err := viper.Unmarshal(input); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}

	// 3. Run all validation and complex parsing.
	if err := contract.ProcessAndValidate(cfg, input); err != nil {
		return err
	}

	// 4. Route slog to stderr and the optional JSON log file.
	logger, closer := contract.SetupLogger(cfg.LogFile, cfg.LogLevel)
	slog.SetDefault(logger)
	closeLog = closer

	return nil
}

// analysisSetup prepares the series commands: positional arguments are the
// sources, and the store is opened only when one of them is stored.
func analysisSetup(ctx context.Context, cmd *cobra.Command, args []string) error {
	if err := sharedSetup(ctx, cmd, args); err != nil {
		return err
	}

	sources, err := loader.ParseSources(args)
	if err != nil {
		return err
	}
	if err := contract.ValidateSources(sources); err != nil {
		return err
	}
	cfg.Sources = sources

	if hasStoredSource(sources) {
		if err := iostore.InitStore(cfg.StoreBackend, cfg.StoreDBConnect); err != nil {
			return fmt.Errorf("failed to initialize sample store: %w", err)
		}
	}
	return nil
}

// analysisSetupWrapper wraps analysisSetup to provide context for Cobra's PreRunE.
func analysisSetupWrapper(cmd *cobra.Command, args []string) error {
	return analysisSetup(rootCtx, cmd, args)
}

// inputSetupWrapper prepares commands whose positional arguments are raw input files.
func inputSetupWrapper(cmd *cobra.Command, args []string) error {
	if err := sharedSetup(rootCtx, cmd, args); err != nil {
		return err
	}
	cfg.Inputs = args
	return nil
}

func hasStoredSource(sources []schema.Source) bool {
	for _, s := range sources {
		if s.Stored {
			return true
		}
	}
	return false
}

// Execute runs the root command. ctx is cancelled on shutdown and stops --watch.
func Execute(ctx context.Context) error {
	rootCtx = ctx
	return rootCmd.ExecuteContext(ctx)
}

// SetStoreManager sets the global store manager.
func SetStoreManager(mgr contract.StoreManager) {
	storeManager = mgr
}

// Cleanup releases resources acquired during setup.
func Cleanup() error {
	return closeLog()
}
