package contract

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/huangsam/trendline/schema"
)

// Color variables for console output.
var (
	StationaryColor = color.New(color.FgCyan, color.Bold) // StationaryColor marks peaks, troughs and plateaus.
	InflectionColor = color.New(color.FgMagenta)          // InflectionColor marks changes in acceleration.
	RisingColor     = color.New(color.FgGreen)            // RisingColor marks a positive first derivative.
	FallingColor    = color.New(color.FgRed)              // FallingColor marks a negative first derivative.
)

// GetPlainLabel returns the plain text label of a critical point kind.
// This is the core logic used for CSV, JSON, and table printing.
func GetPlainLabel(kind schema.CriticalKind) string {
	switch kind {
	case schema.StationaryKind:
		return "Stationary"
	case schema.InflectionKind:
		return "Inflection"
	default:
		return string(kind)
	}
}

// GetColorLabel returns a colored label for console output (table).
func GetColorLabel(kind schema.CriticalKind) string {
	text := GetPlainLabel(kind)
	switch kind {
	case schema.StationaryKind:
		return StationaryColor.Sprint(text)
	case schema.InflectionKind:
		return InflectionColor.Sprint(text)
	default:
		return text
	}
}

// GetColorDelta colors a derivative by its sign. Zero and absent values stay plain.
func GetColorDelta(v schema.Value) string {
	text := v.String()
	switch {
	case !v.Present || v.N == 0:
		return text
	case v.N > 0:
		return RisingColor.Sprint(text)
	default:
		return FallingColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on the provided
// file path. An empty path selects os.Stdout.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetDBFilePath returns the path to the SQLite DB file for the sample store.
func GetDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".trendline.db"
	}
	return filepath.Join(homeDir, ".trendline.db")
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}

// ParseLogLevel parses debug, info, warn or error. Empty means info.
func ParseLogLevel(s string) (slog.Level, error) {
	var level slog.Level
	if s == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid --log-level value %q: must be debug, info, warn, error", s)
	}
	return level, nil
}
