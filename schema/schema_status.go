package schema

import "time"

// StoreStatus represents the status of the sample store.
type StoreStatus struct {
	Backend        string    `json:"backend" yaml:"backend"`
	Connected      bool      `json:"connected" yaml:"connected"`
	SchemaVersion  uint      `json:"schema_version" yaml:"schema_version"`
	TotalSeries    int       `json:"total_series" yaml:"total_series"`
	TotalSamples   int       `json:"total_samples" yaml:"total_samples"`
	LastImportTime time.Time `json:"last_import_time" yaml:"last_import_time"`
	SizeBytes      int64     `json:"size_bytes" yaml:"size_bytes"`
}

// SeriesInfo describes one series held by the sample store.
type SeriesInfo struct {
	Name        string    `json:"name" yaml:"name"`
	ImportID    string    `json:"import_id" yaml:"import_id"`
	ImportedAt  time.Time `json:"imported_at" yaml:"imported_at"`
	SampleCount int       `json:"sample_count" yaml:"sample_count"`
	FirstSample string    `json:"first_sample" yaml:"first_sample"`
	LastSample  string    `json:"last_sample" yaml:"last_sample"`
}
