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

// WriteItemsetResults outputs frequent itemsets, dispatching based on the output format configured.
func WriteItemsetResults(itemsets []schema.ItemSet, stats schema.MiningStats, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeItemsetJSONResults(itemsets, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeItemsetCSVResults(itemsets, cfg, fmtFloat); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if err := parquet.WriteItemsetsFile(itemsetOutputFile(cfg), itemsets); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeItemsetTable(itemsets, stats, cfg, fmtFloat, duration, w)
		}, "Wrote table")
	}
	return nil
}

// itemsetOutputFile resolves the Parquet destination for itemset exports.
func itemsetOutputFile(cfg *contract.Config) string {
	if cfg.OutputFile != "" {
		return cfg.OutputFile
	}
	return "cofail_itemsets.parquet"
}

// writeItemsetJSONResults handles opening the file and calling the JSON writer.
func writeItemsetJSONResults(itemsets []schema.ItemSet, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		type JSONItemsetResult struct {
			Rank int `json:"rank"`
			Size int `json:"size"`
			schema.ItemSet
		}
		output := make([]JSONItemsetResult, len(itemsets))
		for i, is := range itemsets {
			output[i] = JSONItemsetResult{
				Rank:    i + 1,
				Size:    len(is.Items),
				ItemSet: is,
			}
		}
		return writeJSON(w, output)
	}, "Wrote JSON")
}

// writeItemsetCSVResults handles opening the file and calling the CSV writer.
func writeItemsetCSVResults(itemsets []schema.ItemSet, cfg *contract.Config, fmtFloat func(float64) string) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		header := []string{"rank", "items", "size", "support"}
		return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
			for i, is := range itemsets {
				rec := []string{
					strconv.Itoa(i + 1),
					contract.FormatItems(is.Items),
					strconv.Itoa(len(is.Items)),
					fmtFloat(is.Support),
				}
				if err := csvWriter.Write(rec); err != nil {
					return err
				}
			}
			return nil
		})
	}, "Wrote CSV")
}

// writeItemsetTable generates and writes the human-readable table.
func writeItemsetTable(itemsets []schema.ItemSet, stats schema.MiningStats, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)
	table.Header([]string{"Rank", "Items", "Size", "Support"})
	table.Configure(func(tableCfg *tablewriter.Config) {
		tableCfg.Row.Alignment.Global = tw.AlignRight
	})

	maxItemsWidth := getMaxTableItemsWidth(cfg, 1)
	var data [][]string
	for i, is := range itemsets {
		data = append(data, []string{
			strconv.Itoa(i + 1),
			contract.TruncateLabel(contract.FormatItems(is.Items), maxItemsWidth),
			strconv.Itoa(len(is.Items)),
			fmtFloat(is.Support),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Showing top %d itemsets from %d transactions (%d dropped)\n",
		len(itemsets), stats.TotalTransactions, stats.DroppedTransactions); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Analysis completed in %v with %d workers\n", duration, cfg.Workers); err != nil {
		return err
	}
	return nil
}
