// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import "github.com/huangsam/trendline/schema"

// StoreManager hands out the sample store used by the current run.
// This allows the store layer to be mocked for testing.
type StoreManager interface {
	GetSampleStore() SampleStore
}

// SampleStore persists raw sample maps by series name so later runs can
// reference them instead of a file.
type SampleStore interface {
	// SaveSeries replaces the named series atomically and returns a fresh import ID
	SaveSeries(name string, samples schema.SampleMap) (string, error)

	// LoadSeries returns the samples of a stored series
	LoadSeries(name string) (schema.SampleMap, error)

	// ListSeries describes every stored series, ordered by name
	ListSeries() ([]schema.SeriesInfo, error)

	// DeleteSeries removes a series and its samples
	DeleteSeries(name string) error

	// GetStatus returns status information about the store
	GetStatus() (schema.StoreStatus, error)

	// Close closes the underlying connection
	Close() error
}
