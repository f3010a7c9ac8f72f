package cmd

import (
	"github.com/huangsam/cofail/core"
	"github.com/huangsam/cofail/internal/contract"
	"github.com/spf13/cobra"
)

// datesCmd analyzes complaint date distributions.
var datesCmd = &cobra.Command{
	Use:   "dates [data-file]",
	Short: "Show complaint counts bucketed by year, month and weekday.",
	Long: `Analyze the temporal distribution of complaints.

Buckets one of the parsed date columns by year, by month and by weekday,
helping you:
- Spot model years or calendar years with complaint spikes
- See seasonality in failure reports
- Compare intake volume across weekdays

Records without a usable value in the chosen column are skipped.

Examples:
  # Bucket by the date NHTSA received the complaint (default)
  cofail dates FLAT_CMPL.txt

  # Bucket by the reported failure date instead
  cofail dates FLAT_CMPL.txt --date-column fail_date

  # Export buckets as CSV
  cofail dates FLAT_CMPL.txt --output csv --output-file dates.csv`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteDates(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot run date analysis", err)
		}
	},
}
