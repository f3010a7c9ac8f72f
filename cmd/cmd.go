// Package cmd defines the command-line interface for cofail.
package cmd

import (
	"github.com/huangsam/cofail/internal/contract"
	"github.com/huangsam/cofail/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(processCmd)
	rootCmd.AddCommand(mineCmd)
	rootCmd.AddCommand(rulesCmd)
	rootCmd.AddCommand(datesCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(storeCmd)

	// Add the store subcommands to the parent store command
	storeCmd.AddCommand(storeClearCmd)
	storeCmd.AddCommand(storeStatusCmd)
	storeCmd.AddCommand(storeExportCmd)
	storeCmd.AddCommand(storeMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().Int("chunk-size", contract.DefaultChunkSize, "Number of records to parse per ingestion chunk")
	rootCmd.PersistentFlags().Int("max-transactions", contract.DefaultMaxTransactions, "Maximum number of transactions to mine")
	rootCmd.PersistentFlags().Float64P("min-support", "s", contract.DefaultMinSupport, "Minimum support threshold in (0, 1) exclusive")
	rootCmd.PersistentFlags().StringP("metric", "m", string(schema.LiftMetric), "Rule ranking metric: support or confidence or lift")
	rootCmd.PersistentFlags().Float64P("min-threshold", "t", contract.DefaultMinThreshold, "Minimum metric value for reported rules")
	rootCmd.PersistentFlags().String("date-column", string(schema.DateReceivedColumn), "Date column for bucketing: fail_date or date_added or date_received")
	rootCmd.PersistentFlags().String("truncate", string(schema.PrefixTruncate), "Transaction cap policy: prefix or sample")
	rootCmd.PersistentFlags().Int64("seed", contract.DefaultSeed, "Random seed for the sample truncation policy")
	rootCmd.PersistentFlags().IntP("limit", "l", contract.DefaultResultLimit, "Number of results to display")
	rootCmd.PersistentFlags().Int("workers", contract.DefaultWorkers, "Number of concurrent workers")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().StringP("output", "o", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().Int("top", contract.DefaultTop, "Depth of the summary frequency tables")
	rootCmd.PersistentFlags().String("store-backend", string(schema.NoneBackend), "Run tracking backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("store-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("profile", "", "Enable profiling and write profiles to files with this prefix")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of storeMigrateCmd to Viper
	storeMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(storeMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding store migrate flags", err)
	}
}
