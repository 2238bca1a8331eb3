package contract

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/huangsam/trendline/schema"
)

// Default values for configuration.
const (
	DefaultChartWidth  = 1024
	DefaultChartHeight = 512
	DefaultChartFile   = "trendline.png"
	MaxChartSize       = 8192
)

// Config holds the runtime configuration for a run.
// This struct remains the "final, validated" config.
type Config struct {
	Sources []schema.Source
	Inputs  []string // Raw files for bucket and combine

	Output     schema.OutputMode
	OutputFile string
	Width      int // Terminal width override (0 = auto-detect)

	Order       schema.DerivativeOrder
	View        schema.ChartView
	ChartWidth  int
	ChartHeight int

	BucketInterval int
	UniqueBy       string

	Watch bool

	StoreBackend   schema.DatabaseBackend
	StoreDBConnect string // Please use env var as this is plaintext

	LogLevel slog.Level
	LogFile  string

	UseEmojis bool // Enable emojis in output headers
	UseColors bool // Enable colored labels in table output
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// --- Fields from rootCmd.PersistentFlags() ---
	Output         string `mapstructure:"output"`
	OutputFile     string `mapstructure:"output-file"`
	Width          int    `mapstructure:"width"`
	StoreBackend   string `mapstructure:"store-backend"`
	StoreDBConnect string `mapstructure:"store-db-connect"`
	LogLevel       string `mapstructure:"log-level"`
	LogFile        string `mapstructure:"log-file"`
	Emoji          string `mapstructure:"emoji"`
	Color          string `mapstructure:"color"`

	// --- Fields from analysis commands ---
	Order string `mapstructure:"order"`
	Watch bool   `mapstructure:"watch"`

	// --- Fields from chartCmd.Flags() ---
	View        string `mapstructure:"view"`
	ChartWidth  int    `mapstructure:"chart-width"`
	ChartHeight int    `mapstructure:"chart-height"`

	// --- Fields from bucketCmd.Flags() ---
	Interval int    `mapstructure:"interval"`
	UniqueBy string `mapstructure:"unique-by"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	if c.Sources != nil {
		clone.Sources = make([]schema.Source, len(c.Sources))
		copy(clone.Sources, c.Sources)
	}
	if c.Inputs != nil {
		clone.Inputs = make([]string, len(c.Inputs))
		copy(clone.Inputs, c.Inputs)
	}
	return &clone
}

// SourceNames returns the series names in source order.
func (c *Config) SourceNames() []string {
	names := make([]string, len(c.Sources))
	for i, s := range c.Sources {
		names[i] = s.Name
	}
	return names
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := validateAnalysisInputs(cfg, input); err != nil {
		return err
	}
	if err := validateChartInputs(cfg, input); err != nil {
		return err
	}
	if err := validateStoreConfig(cfg, input); err != nil {
		return err
	}
	return nil
}

// ValidateSources checks the number and names of the series of one run.
func ValidateSources(sources []schema.Source) error {
	if len(sources) == 0 {
		return fmt.Errorf("at least one series is required")
	}
	if len(sources) > schema.MaxSeries {
		return fmt.Errorf("at most %d series can be compared (received %d)", schema.MaxSeries, len(sources))
	}
	seen := make(map[string]struct{}, len(sources))
	for _, s := range sources {
		if _, dup := seen[s.Name]; dup {
			return fmt.Errorf("series name %q is used more than once", s.Name)
		}
		seen[s.Name] = struct{}{}
	}
	return nil
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("store-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("store-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// validateSimpleInputs processes and validates output and presentation fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.OutputFile = input.OutputFile
	cfg.LogFile = input.LogFile

	emojis, err := ParseBoolString(input.Emoji)
	if err != nil {
		return fmt.Errorf("invalid --emoji value: %w", err)
	}
	cfg.UseEmojis = emojis

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	if input.Width < 0 {
		return fmt.Errorf("width cannot be negative (received %d)", input.Width)
	}
	cfg.Width = input.Width

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, yaml, parquet", input.Output)
	}
	if cfg.Output == schema.ParquetOut && cfg.OutputFile == "" {
		return fmt.Errorf("--output-file is required for parquet output")
	}

	level, err := ParseLogLevel(input.LogLevel)
	if err != nil {
		return err
	}
	cfg.LogLevel = level

	return nil
}

// validateAnalysisInputs handles the derivative order, watch mode and bucketing.
func validateAnalysisInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.Order = schema.DerivativeOrder(strings.ToLower(input.Order))
	if cfg.Order == "" {
		cfg.Order = schema.BothOrders
	}
	if _, ok := schema.ValidDerivativeOrders[cfg.Order]; !ok {
		return fmt.Errorf("invalid order '%s'. must be first, second, both", input.Order)
	}
	cfg.Watch = input.Watch

	cfg.BucketInterval = input.Interval
	if cfg.BucketInterval == 0 {
		cfg.BucketInterval = schema.DefaultBucketMinutes
	}
	if cfg.BucketInterval < 0 || 60%cfg.BucketInterval != 0 {
		return fmt.Errorf("interval must be a positive divisor of 60 (received %d)", input.Interval)
	}
	cfg.UniqueBy = strings.TrimSpace(input.UniqueBy)

	return nil
}

// validateChartInputs handles the chart view and image size.
func validateChartInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.View = schema.ChartView(strings.ToLower(input.View))
	if cfg.View == "" {
		cfg.View = schema.ValuesView
	}
	if _, ok := schema.ValidChartViews[cfg.View]; !ok {
		return fmt.Errorf("invalid view '%s'. must be values, first, second", input.View)
	}

	cfg.ChartWidth, cfg.ChartHeight = input.ChartWidth, input.ChartHeight
	if cfg.ChartWidth == 0 {
		cfg.ChartWidth = DefaultChartWidth
	}
	if cfg.ChartHeight == 0 {
		cfg.ChartHeight = DefaultChartHeight
	}
	if cfg.ChartWidth < 0 || cfg.ChartWidth > MaxChartSize || cfg.ChartHeight < 0 || cfg.ChartHeight > MaxChartSize {
		return fmt.Errorf("chart size must be between 1 and %d pixels (received %dx%d)", MaxChartSize, cfg.ChartWidth, cfg.ChartHeight)
	}
	return nil
}

// validateStoreConfig validates the sample store backend.
func validateStoreConfig(cfg *Config, input *ConfigRawInput) error {
	backend := input.StoreBackend
	if backend == "" {
		backend = string(schema.SQLiteBackend)
	}
	cfg.StoreBackend = schema.DatabaseBackend(strings.ToLower(backend))
	if _, ok := schema.ValidDatabaseBackends[cfg.StoreBackend]; !ok {
		return fmt.Errorf("invalid store backend '%s'. must be sqlite, mysql, postgresql, none", input.StoreBackend)
	}
	cfg.StoreDBConnect = input.StoreDBConnect
	return ValidateDatabaseConnectionString(cfg.StoreBackend, cfg.StoreDBConnect)
}
