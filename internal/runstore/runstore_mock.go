package runstore

import (
	"time"

	"github.com/huangsam/cofail/internal/contract"
	"github.com/huangsam/cofail/schema"
	"github.com/stretchr/testify/mock"
)

// MockStoreManager is a mock implementation of StoreManager for testing.
type MockStoreManager struct {
	mock.Mock
}

var _ contract.StoreManager = &MockStoreManager{} // Compile-time check

// GetRunStore implements the StoreManager interface.
func (m *MockStoreManager) GetRunStore() contract.RunStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.RunStore)
	return store
}

// MockRunStore is a mock implementation of RunStore for testing.
type MockRunStore struct {
	mock.Mock
}

var _ contract.RunStore = &MockRunStore{} // Compile-time check

// BeginRun implements the RunStore interface.
func (m *MockRunStore) BeginRun(startTime time.Time, configParams map[string]any) (int64, error) {
	args := m.Called(startTime, configParams)
	return args.Get(0).(int64), args.Error(1)
}

// EndRun implements the RunStore interface.
func (m *MockRunStore) EndRun(runID int64, endTime time.Time, stats schema.MiningStats, totalRules int) error {
	args := m.Called(runID, endTime, stats, totalRules)
	return args.Error(0)
}

// RecordRule implements the RunStore interface.
func (m *MockRunStore) RecordRule(runID int64, rule schema.AssociationRule) error {
	args := m.Called(runID, rule)
	return args.Error(0)
}

// GetAllRuns implements the RunStore interface.
func (m *MockRunStore) GetAllRuns() ([]schema.MiningRunRecord, error) {
	args := m.Called()
	runs, _ := args.Get(0).([]schema.MiningRunRecord)
	return runs, args.Error(1)
}

// GetAllRules implements the RunStore interface.
func (m *MockRunStore) GetAllRules() ([]schema.StoredRuleRecord, error) {
	args := m.Called()
	rules, _ := args.Get(0).([]schema.StoredRuleRecord)
	return rules, args.Error(1)
}

// GetStatus implements the RunStore interface.
func (m *MockRunStore) GetStatus() (schema.StoreStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.StoreStatus), args.Error(1)
}

// Close implements the RunStore interface.
func (m *MockRunStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
