// Package core has core logic for ingestion, mining and rule generation.
package core

import (
	"context"
	"sort"
	"time"

	"github.com/huangsam/cofail/internal/contract"
	"github.com/huangsam/cofail/internal/outwriter"
	"github.com/huangsam/cofail/schema"
)

// ExecutorFunc defines the function signature for executing different pipeline modes.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error

// MiningOutput bundles the intermediate products of one mining run so the
// rule and itemset entry points can share the same pipeline core.
type MiningOutput struct {
	Dataset  *schema.Dataset
	Matrix   *schema.ItemMatrix
	Itemsets []schema.ItemSet
	Stats    schema.MiningStats
}

// runMiningCore performs the common Ingestion, Transaction and Mining steps.
func runMiningCore(ctx context.Context, cfg *contract.Config) (*MiningOutput, error) {
	if !shouldSuppressHeader(ctx) {
		outwriter.LogMiningHeader(cfg)
	}

	// --- 1. Ingestion Phase ---
	ds, err := LoadDataset(ctx, cfg)
	if err != nil {
		return nil, err
	}

	// --- 2. Transaction Building ---
	txns, dropped, err := BuildTransactions(ds, cfg)
	if err != nil {
		return nil, err
	}

	// --- 3. Encoding and Mining ---
	matrix := EncodeTransactions(txns)
	itemsets := MineFrequentItemsets(matrix, cfg.MinSupport, cfg.Workers)

	return &MiningOutput{
		Dataset:  ds,
		Matrix:   matrix,
		Itemsets: itemsets,
		Stats: schema.MiningStats{
			TotalRecords:        ds.Len(),
			TotalTransactions:   len(txns),
			DroppedTransactions: dropped,
			FrequentItemsets:    len(itemsets),
		},
	}, nil
}

// GetItemsetResults runs the pipeline through the mining phase and returns
// frequent itemsets sorted by descending support.
func GetItemsetResults(ctx context.Context, cfg *contract.Config) ([]schema.ItemSet, schema.MiningStats, error) {
	output, err := runMiningCore(ctx, cfg)
	if err != nil {
		return nil, schema.MiningStats{}, err
	}
	itemsets := output.Itemsets
	sort.SliceStable(itemsets, func(i, j int) bool {
		if itemsets[i].Support != itemsets[j].Support {
			return itemsets[i].Support > itemsets[j].Support
		}
		return itemsKey(itemsets[i].Items) < itemsKey(itemsets[j].Items)
	})
	return itemsets, output.Stats, nil
}

// GetRuleResults runs the full pipeline and returns filtered, sorted rules.
// When a run store is configured, the run and its rules are recorded; store
// failures are logged and never fail the analysis itself.
func GetRuleResults(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) ([]schema.AssociationRule, schema.MiningStats, error) {
	// --- 0. Begin Run Tracking (if configured) ---
	var runID int64
	var runStore contract.RunStore
	if mgr != nil {
		runStore = mgr.GetRunStore()
	}
	if runStore != nil {
		var err error
		runID, err = runStore.BeginRun(time.Now(), cfg.ConfigParams())
		if err != nil {
			contract.LogWarn("Run tracking initialization failed", err)
			runStore = nil
		}
	}

	output, err := runMiningCore(ctx, cfg)
	if err != nil {
		return nil, schema.MiningStats{}, err
	}

	rules := GenerateRules(output.Itemsets, cfg.Metric, cfg.MinThreshold)

	// --- End Run Tracking ---
	if runStore != nil && runID > 0 {
		for _, rule := range rules {
			if recErr := runStore.RecordRule(runID, rule); recErr != nil {
				contract.LogWarn("Failed to record rule", recErr)
				break
			}
		}
		if endErr := runStore.EndRun(runID, time.Now(), output.Stats, len(rules)); endErr != nil {
			contract.LogWarn("Failed to finalize run tracking", endErr)
		}
	}

	return rules, output.Stats, nil
}

// GetDateResults runs ingestion and buckets the configured date column.
// A nil result means the column had no usable values.
func GetDateResults(ctx context.Context, cfg *contract.Config) (*schema.DateBuckets, error) {
	if !shouldSuppressHeader(ctx) {
		outwriter.LogMiningHeader(cfg)
	}
	ds, err := LoadDataset(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return AnalyzeDates(ds, cfg.DateColumn), nil
}

// GetSummaryResults runs ingestion and builds the dataset frequency tables.
func GetSummaryResults(ctx context.Context, cfg *contract.Config) (*schema.DatasetSummary, error) {
	if !shouldSuppressHeader(ctx) {
		outwriter.LogMiningHeader(cfg)
	}
	ds, err := LoadDataset(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return SummarizeDataset(ds, cfg.Top), nil
}

// ExecuteProcess ingests and cleans the data file, then writes the cleaned
// dataset in the configured output format. Text output is the exploratory
// summary; json, csv and parquet export the records themselves.
func ExecuteProcess(ctx context.Context, cfg *contract.Config, _ contract.StoreManager) error {
	start := time.Now()
	if cfg.Output == schema.TextOut {
		summary, err := GetSummaryResults(ctx, cfg)
		if err != nil {
			return err
		}
		return outwriter.NewOutWriter().WriteSummary(summary, cfg, time.Since(start))
	}

	if !shouldSuppressHeader(ctx) {
		outwriter.LogMiningHeader(cfg)
	}
	ds, err := LoadDataset(ctx, cfg)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteDataset(ds, cfg, time.Since(start))
}

// ExecuteMine runs the pipeline through frequent itemset mining and prints
// the itemsets. It serves as the main entry point for the 'mine' mode.
func ExecuteMine(ctx context.Context, cfg *contract.Config, _ contract.StoreManager) error {
	start := time.Now()
	itemsets, stats, err := GetItemsetResults(ctx, cfg)
	if err != nil {
		return err
	}
	if len(itemsets) > cfg.ResultLimit {
		itemsets = itemsets[:cfg.ResultLimit]
	}
	return outwriter.NewOutWriter().WriteItemsets(itemsets, stats, cfg, time.Since(start))
}

// ExecuteRules runs the full pipeline and prints association rules.
// It serves as the main entry point for the 'rules' mode.
func ExecuteRules(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	start := time.Now()
	rules, stats, err := GetRuleResults(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	if len(rules) > cfg.ResultLimit {
		rules = rules[:cfg.ResultLimit]
	}
	return outwriter.NewOutWriter().WriteRules(rules, stats, cfg, time.Since(start))
}

// ExecuteDates runs ingestion and prints the temporal distribution of the
// configured date column.
func ExecuteDates(ctx context.Context, cfg *contract.Config, _ contract.StoreManager) error {
	start := time.Now()
	buckets, err := GetDateResults(ctx, cfg)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteDates(buckets, cfg, time.Since(start))
}
