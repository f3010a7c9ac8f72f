package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/huangsam/cofail/internal/contract"
	"github.com/huangsam/cofail/internal/parquet"
	"github.com/huangsam/cofail/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteRuleResults outputs association rules, dispatching based on the output format configured.
func WriteRuleResults(rules []schema.AssociationRule, stats schema.MiningStats, cfg *contract.Config, duration time.Duration) error {
	// Create formatters using helper
	fmtFloat, fmtConviction := createFormatters(cfg.Precision)

	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeRuleJSONResults(rules, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeRuleCSVResults(rules, cfg, fmtFloat, fmtConviction); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if err := parquet.WriteRulesFile(ruleOutputFile(cfg), rules); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeRuleTable(rules, stats, cfg, fmtFloat, fmtConviction, duration, w)
		}, "Wrote table")
	}
	return nil
}

// ruleOutputFile resolves the Parquet destination for rule exports.
func ruleOutputFile(cfg *contract.Config) string {
	if cfg.OutputFile != "" {
		return cfg.OutputFile
	}
	return "cofail_rules.parquet"
}

// writeRuleJSONResults handles opening the file and calling the JSON writer.
func writeRuleJSONResults(rules []schema.AssociationRule, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSONResultsForRules(w, rules)
	}, "Wrote JSON")
}

// writeRuleCSVResults handles opening the file and calling the CSV writer.
func writeRuleCSVResults(rules []schema.AssociationRule, cfg *contract.Config, fmtFloat, fmtConviction func(float64) string) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		header := []string{
			"rank",
			"antecedents",
			"consequents",
			"support",
			"confidence",
			"lift",
			"leverage",
			"conviction",
			"label",
		}
		return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
			for i, r := range rules {
				rec := []string{
					strconv.Itoa(i + 1),                // Rank
					contract.FormatItems(r.Antecedents), // If-side items
					contract.FormatItems(r.Consequents), // Then-side items
					fmtFloat(r.Support),
					fmtFloat(r.Confidence),
					fmtFloat(r.Lift),
					fmtFloat(r.Leverage),
					fmtConviction(r.Conviction),
					contract.GetPlainLabel(r.Lift),
				}
				if err := csvWriter.Write(rec); err != nil {
					return err
				}
			}
			return nil
		})
	}, "Wrote CSV")
}

// writeRuleTable generates and writes the human-readable table.
func writeRuleTable(rules []schema.AssociationRule, stats schema.MiningStats, cfg *contract.Config, fmtFloat, fmtConviction func(float64) string, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)

	// 1. Define Headers
	headers := []string{"Rank", "If", "Then", "Support", "Confidence", "Lift", "Leverage", "Conviction", "Label"}
	table.Header(headers)

	// 2. Configure Separators/Borders to match a minimal look
	table.Configure(func(tableCfg *tablewriter.Config) {
		tableCfg.Row.Alignment.Global = tw.AlignRight
	})

	// 3. Populate Rows
	maxItemsWidth := getMaxTableItemsWidth(cfg, 2)
	var data [][]string
	for i, r := range rules {
		row := []string{
			strconv.Itoa(i + 1), // Rank
			contract.TruncateLabel(contract.FormatItems(r.Antecedents), maxItemsWidth),
			contract.TruncateLabel(contract.FormatItems(r.Consequents), maxItemsWidth),
			fmtFloat(r.Support),
			fmtFloat(r.Confidence),
			fmtFloat(r.Lift),
			fmtFloat(r.Leverage),
			fmtConviction(r.Conviction),
			ruleLabel(r.Lift, cfg),
		}
		data = append(data, row)
	}

	// 4. Render the table
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Showing top %d rules from %d transactions (%d dropped, %d frequent itemsets)\n",
		len(rules), stats.TotalTransactions, stats.DroppedTransactions, stats.FrequentItemsets); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Analysis completed in %v with %d workers\n", duration, cfg.Workers); err != nil {
		return err
	}
	return nil
}

// writeJSONResultsForRules writes association rules in JSON format.
func writeJSONResultsForRules(w io.Writer, rules []schema.AssociationRule) error {
	// 1. Prepare the data structure for JSON with rank and label added.
	// Conviction is a pointer so an infinite value renders as null.
	type JSONRuleResult struct {
		Rank        int      `json:"rank"`
		Label       string   `json:"label"`
		Antecedents []string `json:"antecedents"`
		Consequents []string `json:"consequents"`
		Support     float64  `json:"support"`
		Confidence  float64  `json:"confidence"`
		Lift        float64  `json:"lift"`
		Leverage    float64  `json:"leverage"`
		Conviction  *float64 `json:"conviction"`
	}

	output := make([]JSONRuleResult, len(rules))
	for i, r := range rules {
		output[i] = JSONRuleResult{
			Rank:        i + 1,
			Label:       contract.GetPlainLabel(r.Lift),
			Antecedents: r.Antecedents,
			Consequents: r.Consequents,
			Support:     r.Support,
			Confidence:  r.Confidence,
			Lift:        r.Lift,
			Leverage:    r.Leverage,
			Conviction:  finiteOrNil(r.Conviction),
		}
	}

	// 2. Use the generic JSON writer
	return writeJSON(w, output)
}
