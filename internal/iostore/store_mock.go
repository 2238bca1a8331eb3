package iostore

import (
	"github.com/huangsam/trendline/internal/contract"
	"github.com/huangsam/trendline/schema"
	"github.com/stretchr/testify/mock"
)

// MockStoreManager is a mock implementation of StoreManager for testing.
type MockStoreManager struct {
	mock.Mock
}

var _ contract.StoreManager = &MockStoreManager{} // Compile-time check

// GetSampleStore implements the StoreManager interface.
func (m *MockStoreManager) GetSampleStore() contract.SampleStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.SampleStore)
	return store
}

// MockSampleStore is a mock implementation of SampleStore for testing.
type MockSampleStore struct {
	mock.Mock
}

var _ contract.SampleStore = &MockSampleStore{} // Compile-time check

// SaveSeries implements the SampleStore interface.
func (m *MockSampleStore) SaveSeries(name string, samples schema.SampleMap) (string, error) {
	args := m.Called(name, samples)
	return args.String(0), args.Error(1)
}

// LoadSeries implements the SampleStore interface.
func (m *MockSampleStore) LoadSeries(name string) (schema.SampleMap, error) {
	args := m.Called(name)
	samples, _ := args.Get(0).(schema.SampleMap)
	return samples, args.Error(1)
}

// ListSeries implements the SampleStore interface.
func (m *MockSampleStore) ListSeries() ([]schema.SeriesInfo, error) {
	args := m.Called()
	infos, _ := args.Get(0).([]schema.SeriesInfo)
	return infos, args.Error(1)
}

// DeleteSeries implements the SampleStore interface.
func (m *MockSampleStore) DeleteSeries(name string) error {
	args := m.Called(name)
	return args.Error(0)
}

// GetStatus implements the SampleStore interface.
func (m *MockSampleStore) GetStatus() (schema.StoreStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.StoreStatus), args.Error(1)
}

// Close implements the SampleStore interface.
func (m *MockSampleStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
