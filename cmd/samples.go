package cmd

import (
	"fmt"
	"strings"

	"github.com/huangsam/trendline/internal/contract"
	"github.com/huangsam/trendline/internal/iostore"
	"github.com/huangsam/trendline/internal/loader"
	"github.com/huangsam/trendline/internal/outwriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// samplesSetup runs the shared setup and opens the sample store.
func samplesSetup(cmd *cobra.Command, args []string) error {
	if err := sharedSetup(rootCtx, cmd, args); err != nil {
		return err
	}
	if err := iostore.InitStore(cfg.StoreBackend, cfg.StoreDBConnect); err != nil {
		return fmt.Errorf("failed to initialize sample store: %w", err)
	}
	return nil
}

// samplesAdminSetup runs the shared setup without opening the store, for
// commands that act on the database itself.
func samplesAdminSetup(cmd *cobra.Command, args []string) error {
	return sharedSetup(rootCtx, cmd, args)
}

// storedName validates a series name the way store:NAME sources are parsed.
func storedName(arg string) (string, error) {
	src, err := loader.ParseSource("store:" + strings.TrimSpace(arg))
	if err != nil {
		return "", err
	}
	return src.Name, nil
}

// samplesCmd focused on sample store management.
var samplesCmd = &cobra.Command{
	Use:   "samples",
	Short: "Manage the sample store of named series",
	Long: `Manage the database of named series that analyses can read with store:NAME.

Importing a series replaces any earlier version under the same name, so a
fresh scrape can be loaded without cleaning up first.

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (disabled)

Subcommands:
  import  - Save a sample map under a name
  list    - Show stored series
  status  - Show store statistics and connection info
  delete  - Remove one stored series
  clear   - Remove all stored data
  migrate - Move the store schema to a version

Examples:
  # Import and analyze
  trendline samples import insta insta.json
  trendline series store:insta wechat.json

  # Use PostgreSQL (set connection string via env variable)
  TRENDLINE_STORE_BACKEND=postgresql TRENDLINE_STORE_DB_CONNECT="..." trendline samples list`,
}

// samplesImportCmd saves a sample map file under a name.
var samplesImportCmd = &cobra.Command{
	Use:   "import NAME FILE",
	Short: "Save a sample map file under a name",
	Long: `Read a JSON sample map and store it as NAME, replacing any series already
stored under that name.

Examples:
  trendline samples import insta insta.json`,
	Args:    cobra.ExactArgs(2),
	PreRunE: samplesSetup,
	Run: func(_ *cobra.Command, args []string) {
		name, err := storedName(args[0])
		if err != nil {
			contract.LogFatal("Invalid series name", err)
		}
		samples, err := loader.LoadFile(args[1])
		if err != nil {
			contract.LogFatal("Cannot read sample map", err)
		}
		importID, err := storeManager.GetSampleStore().SaveSeries(name, samples)
		if err != nil {
			contract.LogFatal("Failed to import series", err)
		}
		fmt.Printf("Imported %d samples as %q (import %s).\n", len(samples), name, importID)
	},
}

// samplesListCmd lists stored series.
var samplesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored series",
	Long: `Show every stored series with its import time, sample count and the
first and last timestamps it covers.

Examples:
  trendline samples list
  trendline samples list --output json`,
	Args:    cobra.NoArgs,
	PreRunE: samplesSetup,
	Run: func(_ *cobra.Command, _ []string) {
		infos, err := storeManager.GetSampleStore().ListSeries()
		if err != nil {
			contract.LogFatal("Failed to list series", err)
		}
		if err := outwriter.PrintSeriesList(infos, cfg); err != nil {
			contract.LogFatal("Failed to print series list", err)
		}
	},
}

// samplesStatusCmd shows store status.
var samplesStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display store statistics and connection details",
	Long: `Show detailed information about the sample store.

Displays:
- Backend type and connection status
- Schema version
- Number of stored series and samples
- Last import time
- Database size

Examples:
  trendline samples status`,
	Args:    cobra.NoArgs,
	PreRunE: samplesSetup,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := storeManager.GetSampleStore().GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get store status", err)
		}
		if err := outwriter.PrintStoreStatus(status, cfg); err != nil {
			contract.LogFatal("Failed to print store status", err)
		}
	},
}

// samplesDeleteCmd removes one stored series.
var samplesDeleteCmd = &cobra.Command{
	Use:   "delete NAME",
	Short: "Remove a stored series",
	Long: `Delete the series stored as NAME together with its samples.

Examples:
  trendline samples delete insta`,
	Args:    cobra.ExactArgs(1),
	PreRunE: samplesSetup,
	Run: func(_ *cobra.Command, args []string) {
		name, err := storedName(args[0])
		if err != nil {
			contract.LogFatal("Invalid series name", err)
		}
		if err := storeManager.GetSampleStore().DeleteSeries(name); err != nil {
			contract.LogFatal("Failed to delete series", err)
		}
		fmt.Printf("Deleted series %q.\n", name)
	},
}

// samplesClearCmd clears the store.
var samplesClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all stored series",
	Long: `Delete all stored data from the configured backend.

For SQLite: Deletes the database file
For MySQL/PostgreSQL: Drops the store tables

Examples:
  # Clear SQLite store (default)
  trendline samples clear

  # Clear MySQL store (set connection string via env variable)
  TRENDLINE_STORE_BACKEND=mysql TRENDLINE_STORE_DB_CONNECT="..." trendline samples clear`,
	Args:    cobra.NoArgs,
	PreRunE: samplesAdminSetup,
	Run: func(_ *cobra.Command, _ []string) {
		dbPath := iostore.SQLitePath(cfg.StoreDBConnect)
		if err := iostore.ClearStore(cfg.StoreBackend, dbPath, cfg.StoreDBConnect); err != nil {
			contract.LogFatal("Failed to clear store", err)
		}
		fmt.Println("Sample store cleared successfully.")
	},
}

// samplesMigrateCmd manages store schema migrations.
var samplesMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database migrations for the sample store",
	Long: `Apply or roll back store schema migrations.

Stores opened by other commands are migrated to the latest version
automatically. Use this to roll back or to pin a version.

Examples:
  # Migrate to latest version
  trendline samples migrate

  # Rollback to initial state
  trendline samples migrate --target-version 0`,
	Args:    cobra.NoArgs,
	PreRunE: samplesAdminSetup,
	Run: func(cmd *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := iostore.MigrateStore(cmd.OutOrStdout(), cfg.StoreBackend, cfg.StoreDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
