package cmd

import (
	"github.com/huangsam/cofail/core"
	"github.com/huangsam/cofail/internal/contract"
	"github.com/spf13/cobra"
)

// processCmd ingests and cleans a complaint flat file.
var processCmd = &cobra.Command{
	Use:   "process [data-file]",
	Short: "Ingest a complaint flat file and report or export the cleaned records.",
	Long: `Parse a raw complaint flat file into cleaned, typed records.

Handles the messy realities of the source data for you:
- Tab-delimited rows with a fixed 20-column layout
- Non-UTF-8 bytes (windows-1252 and latin-1 fallbacks)
- Malformed rows, reported with their line numbers
- Sentinel date values and partial timestamps

With the default text output, prints frequency tables of the most common
components and manufacturers. With csv, json or parquet output, exports
the full cleaned dataset instead.

Examples:
  # Summarize the most common components and manufacturers
  cofail process FLAT_CMPL.txt

  # Deeper frequency tables
  cofail process FLAT_CMPL.txt --top 50

  # Export the cleaned dataset for downstream tools
  cofail process FLAT_CMPL.txt --output parquet --output-file cleaned.parquet
  cofail process FLAT_CMPL.txt --output csv --output-file cleaned.csv`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteProcess(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot process data file", err)
		}
	},
}
