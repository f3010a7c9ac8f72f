// Package contract provides interfaces and shared utilities for the cofail CLI's internal architecture.
package contract

import (
	"time"

	"github.com/huangsam/cofail/schema"
)

// StoreManager defines the interface for managing run-tracking stores.
// This allows the persistence layer to be mocked for testing.
type StoreManager interface {
	GetRunStore() RunStore
}

// RunStore defines the interface for tracking mining runs and storing rules.
type RunStore interface {
	// BeginRun creates a new mining run and returns its unique ID
	BeginRun(startTime time.Time, configParams map[string]any) (int64, error)

	// EndRun updates the mining run with completion data
	EndRun(runID int64, endTime time.Time, stats schema.MiningStats, totalRules int) error

	// RecordRule stores one emitted association rule for a run
	RecordRule(runID int64, rule schema.AssociationRule) error

	// GetAllRuns returns every tracked mining run
	GetAllRuns() ([]schema.MiningRunRecord, error)

	// GetAllRules returns every stored rule across all runs
	GetAllRules() ([]schema.StoredRuleRecord, error)

	// GetStatus returns status information about the run store
	GetStatus() (schema.StoreStatus, error)

	// Close closes the underlying connection
	Close() error
}
