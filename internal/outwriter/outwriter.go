// Package outwriter has output and writer logic.
package outwriter

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/huangsam/cofail/internal/contract"
	"github.com/huangsam/cofail/schema"
	"golang.org/x/term"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteRules prints association rules using the configured output format.
func (ow *OutWriter) WriteRules(rules []schema.AssociationRule, stats schema.MiningStats, cfg *contract.Config, duration time.Duration) error {
	return WriteRuleResults(rules, stats, cfg, duration)
}

// WriteItemsets prints frequent itemsets using the configured output format.
func (ow *OutWriter) WriteItemsets(itemsets []schema.ItemSet, stats schema.MiningStats, cfg *contract.Config, duration time.Duration) error {
	return WriteItemsetResults(itemsets, stats, cfg, duration)
}

// WriteDates prints date distribution results using the configured output format.
func (ow *OutWriter) WriteDates(buckets *schema.DateBuckets, cfg *contract.Config, duration time.Duration) error {
	return WriteDateResults(buckets, cfg, duration)
}

// WriteSummary prints the dataset frequency tables using the configured output format.
func (ow *OutWriter) WriteSummary(summary *schema.DatasetSummary, cfg *contract.Config, duration time.Duration) error {
	return WriteSummaryResults(summary, cfg, duration)
}

// WriteDataset exports the cleaned dataset using the configured output format.
func (ow *OutWriter) WriteDataset(ds *schema.Dataset, cfg *contract.Config, duration time.Duration) error {
	return WriteDatasetResults(ds, cfg, duration)
}

// LogMiningHeader prints a concise, 2-line header for each pipeline phase.
func LogMiningHeader(cfg *contract.Config) {
	fileName := filepath.Base(cfg.DataPath)
	if fileName == "" || fileName == "." {
		fileName = "input"
	}

	// Line 1: The input summary (File and Metric)
	fmt.Printf("🔎 Data: %s (Metric: %s)\n", fileName, cfg.Metric)

	// Line 2: The mining thresholds in effect
	fmt.Printf("⚙️  Support: %g | Threshold: %g | Max transactions: %d\n",
		cfg.MinSupport, cfg.MinThreshold, cfg.MaxTransactions)
}

// getMaxTableItemsWidth calculates the maximum width for item set labels in
// table output based on terminal width and the fixed metric columns.
func getMaxTableItemsWidth(cfg *contract.Config, numItemColumns int) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		// Get terminal width
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			// Fallback to conservative default for narrow terminals and CI
			termWidth = 80
		} else {
			termWidth = detectedWidth
		}
	}

	// Reserve space for the fixed columns with table formatting:
	// Rank + Label plus five metric columns, borders and padding included.
	baseWidth := 15
	baseWidth += 12 * 5
	baseWidth += 10

	// Split the remaining space across the item columns
	available := (termWidth - baseWidth) / numItemColumns
	if available < 15 {
		// Minimum reasonable label width
		return 15
	}
	if available > 60 {
		// Maximum label width to prevent overly wide tables
		return 60
	}
	return available
}

// ruleLabel picks the colored or plain lift label based on config.
func ruleLabel(lift float64, cfg *contract.Config) string {
	if cfg.UseColors {
		return contract.GetColorLabel(lift)
	}
	return contract.GetPlainLabel(lift)
}
