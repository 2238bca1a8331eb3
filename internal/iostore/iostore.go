// Package iostore persists raw sample maps in a SQL database.
package iostore

import (
	"errors"
	"sync"

	"github.com/huangsam/trendline/internal/contract"
)

// Table names used by the store. Migrations create the first two.
const (
	seriesTable     = "trendline_series"
	samplesTable    = "trendline_samples"
	migrationsTable = "trendline_schema_migrations"
)

var (
	// ErrSeriesNotFound is returned when a series is not in the store.
	ErrSeriesNotFound = errors.New("series not found")

	// ErrStoreDisabled is returned when writing to the none backend.
	ErrStoreDisabled = errors.New("sample store is disabled")
)

// StoreManagerImpl holds the sample store of the running process.
type StoreManagerImpl struct {
	sync.RWMutex // Protects the store pointer during initialization
	samples      contract.SampleStore
}

var _ contract.StoreManager = &StoreManagerImpl{} // Compile-time check

// GetSampleStore returns the SampleStore.
func (mgr *StoreManagerImpl) GetSampleStore() contract.SampleStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.samples
}
