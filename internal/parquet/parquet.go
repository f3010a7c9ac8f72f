// Package parquet provides data structures and functions for exporting
// cleaned complaint data and mining results to Parquet files using
// github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/huangsam/cofail/schema"
	"github.com/parquet-go/parquet-go"
)

// ComplaintRow represents one cleaned complaint record in the Parquet export.
// Dates are nullable because unparsable source values become null, not errors.
type ComplaintRow struct {
	CmplID       string     `parquet:"cmplid,snappy"`
	ODINo        string     `parquet:"odino,snappy"`
	Manufacturer string     `parquet:"manufacturer,snappy"`
	Make         string     `parquet:"make,snappy"`
	Model        string     `parquet:"model,snappy"`
	Year         string     `parquet:"year,snappy"`
	Crash        bool       `parquet:"crash,snappy"`
	FailDate     *time.Time `parquet:"fail_date,optional,snappy"`
	Fire         bool       `parquet:"fire,snappy"`
	Injured      int32      `parquet:"injured,snappy"`
	Deaths       int32      `parquet:"deaths,snappy"`
	Component    string     `parquet:"component,snappy"`
	City         string     `parquet:"city,snappy"`
	State        string     `parquet:"state,snappy"`
	VIN          string     `parquet:"vin,snappy"`
	DateAdded    *time.Time `parquet:"date_added,optional,snappy"`
	DateReceived *time.Time `parquet:"date_received,optional,snappy"`
	Miles        int64      `parquet:"miles,snappy"`
	Occurrences  int32      `parquet:"occurrences,snappy"`
	Description  string     `parquet:"description,snappy"`
}

// RuleRow represents one association rule in the Parquet export.
// Item sets are flattened to comma-joined strings; conviction is nullable
// because it is infinite at perfect confidence.
type RuleRow struct {
	Rank        int32    `parquet:"rank,snappy"`
	Antecedents string   `parquet:"antecedents,snappy"`
	Consequents string   `parquet:"consequents,snappy"`
	Support     float64  `parquet:"support,snappy"`
	Confidence  float64  `parquet:"confidence,snappy"`
	Lift        float64  `parquet:"lift,snappy"`
	Leverage    float64  `parquet:"leverage,snappy"`
	Conviction  *float64 `parquet:"conviction,optional,snappy"`
}

// ItemsetRow represents one frequent itemset in the Parquet export.
// Item sets are flattened to comma-joined strings like RuleRow.
type ItemsetRow struct {
	Rank    int32   `parquet:"rank,snappy"`
	Items   string  `parquet:"items,snappy"`
	Size    int32   `parquet:"size,snappy"`
	Support float64 `parquet:"support,snappy"`
}

// DateCountRow represents one bucket of a date distribution in the Parquet
// export. The three distributions share one long table keyed by dimension
// (year, month or weekday), mirroring the CSV layout.
type DateCountRow struct {
	Dimension string `parquet:"dimension,snappy"`
	Bucket    string `parquet:"bucket,snappy"`
	Count     int32  `parquet:"count,snappy"`
}

// MiningRunRow represents a single tracked mining run with metadata.
// This struct maps to the cofail_mining_runs database table.
type MiningRunRow struct {
	RunID               int64      `parquet:"run_id,snappy"`
	StartTime           time.Time  `parquet:"start_time,snappy"`
	EndTime             *time.Time `parquet:"end_time,optional,snappy"`
	RunDurationMs       *int32     `parquet:"run_duration_ms,optional,snappy"`
	TotalTransactions   int32      `parquet:"total_transactions,snappy"`
	DroppedTransactions int32      `parquet:"dropped_transactions,snappy"`
	TotalRules          int32      `parquet:"total_rules,snappy"`
	ConfigParams        *string    `parquet:"config_params,optional,snappy"`
}

// StoredRuleRow represents one stored rule across all tracked runs.
// This struct maps to the cofail_rules database table.
type StoredRuleRow struct {
	RunID       int64    `parquet:"run_id,snappy"`
	Antecedents string   `parquet:"antecedents,snappy"`
	Consequents string   `parquet:"consequents,snappy"`
	Support     float64  `parquet:"support,snappy"`
	Confidence  float64  `parquet:"confidence,snappy"`
	Lift        float64  `parquet:"lift,snappy"`
	Leverage    float64  `parquet:"leverage,snappy"`
	Conviction  *float64 `parquet:"conviction,optional,snappy"`
}

// writeParquetFile writes a slice of rows to a Parquet file using struct
// schema inference from parquet tags.
func writeParquetFile[T any](outputPath string, rows []T) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[T](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(rows); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// WriteDatasetFile writes the cleaned dataset to a Parquet file.
func WriteDatasetFile(outputPath string, ds *schema.Dataset) error {
	return writeParquetFile(outputPath, ConvertRecords(ds.Records))
}

// WriteRulesFile writes ranked association rules to a Parquet file.
func WriteRulesFile(outputPath string, rules []schema.AssociationRule) error {
	return writeParquetFile(outputPath, ConvertRules(rules))
}

// WriteItemsetsFile writes ranked frequent itemsets to a Parquet file.
func WriteItemsetsFile(outputPath string, itemsets []schema.ItemSet) error {
	return writeParquetFile(outputPath, ConvertItemsets(itemsets))
}

// WriteDateBucketsFile writes the flattened date distributions to a Parquet file.
func WriteDateBucketsFile(outputPath string, buckets *schema.DateBuckets) error {
	return writeParquetFile(outputPath, ConvertDateBuckets(buckets))
}

// WriteMiningRunsFile writes tracked mining runs to a Parquet file.
func WriteMiningRunsFile(outputPath string, records []schema.MiningRunRecord) error {
	return writeParquetFile(outputPath, ConvertMiningRunRecords(records))
}

// WriteStoredRulesFile writes stored rules to a Parquet file.
func WriteStoredRulesFile(outputPath string, records []schema.StoredRuleRecord) error {
	return writeParquetFile(outputPath, ConvertStoredRuleRecords(records))
}

// ConvertRecords converts schema.Record to ComplaintRow for Parquet export.
func ConvertRecords(records []schema.Record) []ComplaintRow {
	result := make([]ComplaintRow, len(records))
	for i, r := range records {
		result[i] = ComplaintRow{
			CmplID:       r.CmplID,
			ODINo:        r.ODINo,
			Manufacturer: r.Manufacturer,
			Make:         r.Make,
			Model:        r.Model,
			Year:         r.Year,
			Crash:        r.Crash,
			FailDate:     r.FailDate,
			Fire:         r.Fire,
			Injured:      int32(r.Injured),
			Deaths:       int32(r.Deaths),
			Component:    r.Component,
			City:         r.City,
			State:        r.State,
			VIN:          r.VIN,
			DateAdded:    r.DateAdded,
			DateReceived: r.DateReceived,
			Miles:        r.Miles,
			Occurrences:  int32(r.Occurrences),
			Description:  r.Description,
		}
	}
	return result
}

// ConvertRules converts schema.AssociationRule to RuleRow for Parquet export.
func ConvertRules(rules []schema.AssociationRule) []RuleRow {
	result := make([]RuleRow, len(rules))
	for i, r := range rules {
		var conviction *float64
		if !math.IsInf(r.Conviction, 1) {
			c := r.Conviction
			conviction = &c
		}
		result[i] = RuleRow{
			Rank:        int32(i + 1),
			Antecedents: strings.Join(r.Antecedents, ", "),
			Consequents: strings.Join(r.Consequents, ", "),
			Support:     r.Support,
			Confidence:  r.Confidence,
			Lift:        r.Lift,
			Leverage:    r.Leverage,
			Conviction:  conviction,
		}
	}
	return result
}

// ConvertItemsets converts schema.ItemSet to ItemsetRow for Parquet export.
func ConvertItemsets(itemsets []schema.ItemSet) []ItemsetRow {
	result := make([]ItemsetRow, len(itemsets))
	for i, is := range itemsets {
		result[i] = ItemsetRow{
			Rank:    int32(i + 1),
			Items:   strings.Join(is.Items, ", "),
			Size:    int32(len(is.Items)),
			Support: is.Support,
		}
	}
	return result
}

// ConvertDateBuckets flattens the three date distributions into DateCountRow
// values, one row per bucket, matching the CSV layout.
func ConvertDateBuckets(buckets *schema.DateBuckets) []DateCountRow {
	result := make([]DateCountRow, 0, len(buckets.ByYear)+len(buckets.ByMonth)+len(buckets.ByWeekday))
	for _, yc := range buckets.ByYear {
		result = append(result, DateCountRow{
			Dimension: "year",
			Bucket:    strconv.Itoa(yc.Year),
			Count:     int32(yc.Count),
		})
	}
	for _, mc := range buckets.ByMonth {
		result = append(result, DateCountRow{
			Dimension: "month",
			Bucket:    fmt.Sprintf("%04d-%02d", mc.Year, int(mc.Month)),
			Count:     int32(mc.Count),
		})
	}
	for _, wc := range buckets.WeekdayCounts() {
		result = append(result, DateCountRow{
			Dimension: "weekday",
			Bucket:    wc.Label,
			Count:     int32(wc.Count),
		})
	}
	return result
}

// ConvertMiningRunRecords converts schema.MiningRunRecord to MiningRunRow for Parquet export.
func ConvertMiningRunRecords(records []schema.MiningRunRecord) []MiningRunRow {
	result := make([]MiningRunRow, len(records))
	for i, record := range records {
		result[i] = MiningRunRow{
			RunID:               record.RunID,
			StartTime:           record.StartTime,
			EndTime:             record.EndTime,
			RunDurationMs:       record.RunDurationMs,
			TotalTransactions:   record.TotalTransactions,
			DroppedTransactions: record.DroppedTransactions,
			TotalRules:          record.TotalRules,
			ConfigParams:        record.ConfigParams,
		}
	}
	return result
}

// ConvertStoredRuleRecords converts schema.StoredRuleRecord to StoredRuleRow for Parquet export.
func ConvertStoredRuleRecords(records []schema.StoredRuleRecord) []StoredRuleRow {
	result := make([]StoredRuleRow, len(records))
	for i, record := range records {
		result[i] = StoredRuleRow{
			RunID:       record.RunID,
			Antecedents: record.Antecedents,
			Consequents: record.Consequents,
			Support:     record.Support,
			Confidence:  record.Confidence,
			Lift:        record.Lift,
			Leverage:    record.Leverage,
			Conviction:  record.Conviction,
		}
	}
	return result
}
