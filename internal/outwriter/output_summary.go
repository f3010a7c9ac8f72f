package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/huangsam/cofail/internal/contract"
	"github.com/huangsam/cofail/schema"
)

// WriteSummaryResults outputs the dataset frequency tables, dispatching based
// on the output format configured.
func WriteSummaryResults(summary *schema.DatasetSummary, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeSummaryJSONResults(summary, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeSummaryCSVResults(summary, cfg); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeSummaryTables(summary, cfg, duration, w)
		}, "Wrote table")
	}
	return nil
}

// writeSummaryJSONResults handles opening the file and calling the JSON writer.
func writeSummaryJSONResults(summary *schema.DatasetSummary, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSON(w, summary)
	}, "Wrote JSON")
}

// writeSummaryCSVResults flattens both frequency tables into one long table.
func writeSummaryCSVResults(summary *schema.DatasetSummary, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		header := []string{"dimension", "label", "count"}
		return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
			for _, lc := range summary.Components {
				rec := []string{"component", lc.Label, strconv.Itoa(lc.Count)}
				if err := csvWriter.Write(rec); err != nil {
					return err
				}
			}
			for _, lc := range summary.Manufacturers {
				rec := []string{"manufacturer", lc.Label, strconv.Itoa(lc.Count)}
				if err := csvWriter.Write(rec); err != nil {
					return err
				}
			}
			return nil
		})
	}, "Wrote CSV")
}

// writeSummaryTables renders the component and manufacturer tables.
func writeSummaryTables(summary *schema.DatasetSummary, cfg *contract.Config, duration time.Duration, writer io.Writer) error {
	maxItemsWidth := getMaxTableItemsWidth(cfg, 1)

	componentData := make([][]string, 0, len(summary.Components))
	for _, lc := range summary.Components {
		componentData = append(componentData, []string{
			contract.TruncateLabel(lc.Label, maxItemsWidth),
			strconv.Itoa(lc.Count),
		})
	}
	if err := renderCountTable(writer, "Component", componentData); err != nil {
		return err
	}

	manufacturerData := make([][]string, 0, len(summary.Manufacturers))
	for _, lc := range summary.Manufacturers {
		manufacturerData = append(manufacturerData, []string{
			contract.TruncateLabel(lc.Label, maxItemsWidth),
			strconv.Itoa(lc.Count),
		})
	}
	if err := renderCountTable(writer, "Manufacturer", manufacturerData); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(writer, "Summarized %d records (top %d labels per table)\n", summary.TotalRecords, cfg.Top); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Analysis completed in %v\n", duration); err != nil {
		return err
	}
	return nil
}
