package cmd

import (
	"github.com/huangsam/cofail/core"
	"github.com/huangsam/cofail/internal/contract"
	"github.com/spf13/cobra"
)

// mineCmd performs frequent itemset mining.
var mineCmd = &cobra.Command{
	Use:   "mine [data-file]",
	Short: "Show the most frequent component combinations.",
	Long: `Mine complaint transactions for frequent component itemsets.

Groups complaints by vehicle (make, model, year), treats each vehicle's
distinct failed components as one transaction, then runs Apriori to find
the component combinations that appear in at least min-support of all
transactions.

Use this to:
- See which single components dominate complaint volume
- Find pairs and triples of components that fail together
- Tune min-support before generating association rules

Examples:
  # Mine with the default support threshold
  cofail mine FLAT_CMPL.txt

  # Lower the bar to surface rarer combinations
  cofail mine FLAT_CMPL.txt --min-support 0.01 --limit 50

  # Export itemsets for further analysis
  cofail mine FLAT_CMPL.txt --output csv --output-file itemsets.csv`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteMine(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot run itemset mining", err)
		}
	},
}
