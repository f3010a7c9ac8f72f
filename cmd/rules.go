package cmd

import (
	"github.com/huangsam/cofail/core"
	"github.com/huangsam/cofail/internal/contract"
	"github.com/spf13/cobra"
)

// rulesCmd generates association rules from mined itemsets.
var rulesCmd = &cobra.Command{
	Use:   "rules [data-file]",
	Short: "Show association rules between co-failing components.",
	Long: `Generate association rules from frequent component itemsets.

Every frequent itemset of two or more components is split into all
antecedent/consequent partitions, scored with support, confidence, lift,
leverage and conviction, then filtered and ranked by your chosen metric.

Reading the output:
- Confidence: how often the consequent fails when the antecedent does
- Lift > 1: the components fail together more than chance predicts
- Conviction inf: the antecedent never fails without the consequent

When a store backend is configured, each rules run is recorded with its
configuration and results for later trend analysis.

Examples:
  # Rank rules by lift (default)
  cofail rules FLAT_CMPL.txt

  # Only high-confidence rules
  cofail rules FLAT_CMPL.txt --metric confidence --min-threshold 0.8

  # Track runs in the local SQLite store
  cofail rules FLAT_CMPL.txt --store-backend sqlite

  # Export rules for a BI tool
  cofail rules FLAT_CMPL.txt --output parquet --output-file rules.parquet`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteRules(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot run rule generation", err)
		}
	},
}
