package schema

import "time"

// MiningRunRecord represents a single tracked mining run as stored in the
// cofail_mining_runs table.
type MiningRunRecord struct {
	RunID               int64      `json:"run_id"`
	StartTime           time.Time  `json:"start_time"`
	EndTime             *time.Time `json:"end_time"`
	RunDurationMs       *int32     `json:"run_duration_ms"`
	TotalTransactions   int32      `json:"total_transactions"`
	DroppedTransactions int32      `json:"dropped_transactions"`
	TotalRules          int32      `json:"total_rules"`
	ConfigParams        *string    `json:"config_params"`
}

// StoredRuleRecord represents one association rule as stored in the
// cofail_rules table. Item sets are flattened to comma-joined strings;
// conviction is nullable because it is infinite at perfect confidence.
type StoredRuleRecord struct {
	RunID       int64    `json:"run_id"`
	Antecedents string   `json:"antecedents"`
	Consequents string   `json:"consequents"`
	Support     float64  `json:"support"`
	Confidence  float64  `json:"confidence"`
	Lift        float64  `json:"lift"`
	Leverage    float64  `json:"leverage"`
	Conviction  *float64 `json:"conviction"`
}

// StoreStatus holds status information about the run-tracking store.
type StoreStatus struct {
	Backend       string           `json:"backend"`
	Connected     bool             `json:"connected"`
	TotalRuns     int64            `json:"total_runs"`
	LastRunID     int64            `json:"last_run_id"`
	LastRunTime   time.Time        `json:"last_run_time"`
	OldestRunTime time.Time        `json:"oldest_run_time"`
	TableSizes    map[string]int64 `json:"table_sizes"`
}
