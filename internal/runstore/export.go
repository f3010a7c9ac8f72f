package runstore

import (
	"errors"
	"fmt"

	"github.com/huangsam/cofail/internal/parquet"
)

// ExecuteStoreExport performs the actual export of run-tracking data to Parquet files.
func ExecuteStoreExport(outputFile string) error {
	// Validate that output file is specified
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	// Get the run store
	store := Manager.GetRunStore()

	// Check if there's any data to export
	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get store status: %w", err)
	}

	if status.TotalRuns == 0 {
		return errors.New("no run data found to export")
	}

	fmt.Printf("Exporting data from %s backend...\n", status.Backend)
	fmt.Printf("Total mining runs: %d\n", status.TotalRuns)
	fmt.Printf("Total rule records: %d\n", status.TableSizes[rulesTable])

	// Retrieve all mining runs
	runs, err := store.GetAllRuns()
	if err != nil {
		return fmt.Errorf("failed to retrieve mining runs: %w", err)
	}

	// Retrieve all stored rules
	rules, err := store.GetAllRules()
	if err != nil {
		return fmt.Errorf("failed to retrieve rules: %w", err)
	}

	// Write mining runs to Parquet
	runsFile := outputFile + ".mining_runs.parquet"
	if err := parquet.WriteMiningRunsFile(runsFile, runs); err != nil {
		return fmt.Errorf("failed to write mining runs: %w", err)
	}
	fmt.Printf("Exported %d mining runs to: %s\n", len(runs), runsFile)

	// Write stored rules to Parquet
	rulesFile := outputFile + ".rules.parquet"
	if err := parquet.WriteStoredRulesFile(rulesFile, rules); err != nil {
		return fmt.Errorf("failed to write rules: %w", err)
	}
	fmt.Printf("Exported %d rule records to: %s\n", len(rules), rulesFile)

	fmt.Println("\nExport complete! The Parquet files can be used with:")
	fmt.Println("  - Apache Spark")
	fmt.Println("  - Apache Arrow")
	fmt.Println("  - Pandas (via pyarrow)")
	fmt.Println("  - DuckDB")
	fmt.Println("  - Any other Parquet-compatible tool")

	return nil
}
