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

// WriteDateResults outputs the temporal distribution of one date column,
// dispatching based on the output format configured. A nil buckets value
// means the column had no usable dates and prints a notice instead.
func WriteDateResults(buckets *schema.DateBuckets, cfg *contract.Config, duration time.Duration) error {
	if buckets == nil {
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			_, err := fmt.Fprintf(w, "No usable dates found in column %s\n", cfg.DateColumn)
			return err
		}, "Wrote notice")
	}

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeDateJSONResults(buckets, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeDateCSVResults(buckets, cfg); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if err := parquet.WriteDateBucketsFile(dateOutputFile(cfg), buckets); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeDateTables(buckets, cfg, duration, w)
		}, "Wrote table")
	}
	return nil
}

// dateOutputFile resolves the Parquet destination for date distribution exports.
func dateOutputFile(cfg *contract.Config) string {
	if cfg.OutputFile != "" {
		return cfg.OutputFile
	}
	return "cofail_dates.parquet"
}

// writeDateJSONResults handles opening the file and calling the JSON writer.
func writeDateJSONResults(buckets *schema.DateBuckets, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		type JSONDateResult struct {
			Column string `json:"column"`
			*schema.DateBuckets
		}
		return writeJSON(w, JSONDateResult{
			Column:      string(cfg.DateColumn),
			DateBuckets: buckets,
		})
	}, "Wrote JSON")
}

// writeDateCSVResults flattens all three distributions into one long table.
func writeDateCSVResults(buckets *schema.DateBuckets, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		header := []string{"dimension", "bucket", "count"}
		return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
			for _, yc := range buckets.ByYear {
				rec := []string{"year", strconv.Itoa(yc.Year), strconv.Itoa(yc.Count)}
				if err := csvWriter.Write(rec); err != nil {
					return err
				}
			}
			for _, mc := range buckets.ByMonth {
				rec := []string{"month", monthBucket(mc), strconv.Itoa(mc.Count)}
				if err := csvWriter.Write(rec); err != nil {
					return err
				}
			}
			for _, wc := range buckets.WeekdayCounts() {
				rec := []string{"weekday", wc.Label, strconv.Itoa(wc.Count)}
				if err := csvWriter.Write(rec); err != nil {
					return err
				}
			}
			return nil
		})
	}, "Wrote CSV")
}

// writeDateTables renders the three distributions as consecutive tables.
func writeDateTables(buckets *schema.DateBuckets, cfg *contract.Config, duration time.Duration, writer io.Writer) error {
	total := 0

	yearData := make([][]string, 0, len(buckets.ByYear))
	for _, yc := range buckets.ByYear {
		yearData = append(yearData, []string{strconv.Itoa(yc.Year), strconv.Itoa(yc.Count)})
		total += yc.Count
	}
	if err := renderCountTable(writer, "Year", yearData); err != nil {
		return err
	}

	monthData := make([][]string, 0, len(buckets.ByMonth))
	for _, mc := range buckets.ByMonth {
		monthData = append(monthData, []string{monthBucket(mc), strconv.Itoa(mc.Count)})
	}
	if err := renderCountTable(writer, "Month", monthData); err != nil {
		return err
	}

	weekdayData := make([][]string, 0, 7)
	for _, wc := range buckets.WeekdayCounts() {
		weekdayData = append(weekdayData, []string{wc.Label, strconv.Itoa(wc.Count)})
	}
	if err := renderCountTable(writer, "Weekday", weekdayData); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(writer, "Bucketed %d dated complaints from column %s\n", total, cfg.DateColumn); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Analysis completed in %v\n", duration); err != nil {
		return err
	}
	return nil
}

// renderCountTable writes one two-column bucket/count table.
func renderCountTable(writer io.Writer, bucketName string, data [][]string) error {
	table := tablewriter.NewWriter(writer)
	table.Header([]string{bucketName, "Count"})
	table.Configure(func(tableCfg *tablewriter.Config) {
		tableCfg.Row.Alignment.Global = tw.AlignRight
	})
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// monthBucket formats a year-month bucket label as YYYY-MM.
func monthBucket(mc schema.MonthCount) string {
	return fmt.Sprintf("%04d-%02d", mc.Year, int(mc.Month))
}
