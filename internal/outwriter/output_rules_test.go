package outwriter

import (
	"encoding/csv"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/cofail/internal/contract"
	"github.com/huangsam/cofail/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sampleRules returns one finite-conviction rule and one infinite one.
func sampleRules() []schema.AssociationRule {
	return []schema.AssociationRule{
		{
			Antecedents: []string{"ENGINE"},
			Consequents: []string{"BRAKES"},
			Support:     0.5, Confidence: 0.75, Lift: 1.2, Leverage: 0.08, Conviction: 1.6,
		},
		{
			Antecedents: []string{"BRAKES"},
			Consequents: []string{"ENGINE"},
			Support:     0.5, Confidence: 1.0, Lift: 1.2, Leverage: 0.08, Conviction: math.Inf(1),
		},
	}
}

func outputConfig(t *testing.T, mode schema.OutputMode, file string) *contract.Config {
	t.Helper()
	return &contract.Config{
		Output:     mode,
		OutputFile: filepath.Join(t.TempDir(), file),
		Precision:  contract.DefaultPrecision,
	}
}

func TestWriteRuleResultsJSON(t *testing.T) {
	cfg := outputConfig(t, schema.JSONOut, "rules.json")
	stats := schema.MiningStats{TotalTransactions: 3}

	require.NoError(t, WriteRuleResults(sampleRules(), stats, cfg, time.Millisecond))

	data, err := os.ReadFile(cfg.OutputFile)
	require.NoError(t, err)

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded, 2)

	// Rank and label survive the flattening alongside the rule fields.
	assert.Equal(t, float64(1), decoded[0]["rank"])
	assert.Equal(t, contract.PositiveValue, decoded[0]["label"])
	assert.InDelta(t, 1.6, decoded[0]["conviction"], 1e-9)

	// Infinite conviction is null.
	assert.Nil(t, decoded[1]["conviction"])
}

func TestWriteRuleResultsCSV(t *testing.T) {
	cfg := outputConfig(t, schema.CSVOut, "rules.csv")

	require.NoError(t, WriteRuleResults(sampleRules(), schema.MiningStats{}, cfg, time.Millisecond))

	f, err := os.Open(cfg.OutputFile)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "rank", rows[0][0])
	assert.Equal(t, "conviction", rows[0][7])
	assert.Equal(t, "ENGINE", rows[1][1])
	assert.Equal(t, "1.600", rows[1][7])
	assert.Equal(t, "inf", rows[2][7])
}

func TestWriteItemsetResultsCSV(t *testing.T) {
	cfg := outputConfig(t, schema.CSVOut, "itemsets.csv")
	itemsets := []schema.ItemSet{
		{Items: []string{"BRAKES", "ENGINE"}, Support: 2.0 / 3.0},
		{Items: []string{"ENGINE"}, Support: 1.0},
	}

	require.NoError(t, WriteItemsetResults(itemsets, schema.MiningStats{}, cfg, time.Millisecond))

	f, err := os.Open(cfg.OutputFile)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"rank", "items", "size", "support"}, rows[0])
	assert.Equal(t, "BRAKES, ENGINE", rows[1][1])
	assert.Equal(t, "2", rows[1][2])
}

func TestWriteItemsetResultsParquet(t *testing.T) {
	cfg := outputConfig(t, schema.ParquetOut, "itemsets.parquet")
	itemsets := []schema.ItemSet{
		{Items: []string{"BRAKES", "ENGINE"}, Support: 0.5},
	}

	require.NoError(t, WriteItemsetResults(itemsets, schema.MiningStats{}, cfg, time.Millisecond))

	info, err := os.Stat(cfg.OutputFile)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestWriteDateResultsCSV(t *testing.T) {
	cfg := outputConfig(t, schema.CSVOut, "dates.csv")
	cfg.DateColumn = schema.DateReceivedColumn
	buckets := &schema.DateBuckets{
		ByYear:    []schema.YearCount{{Year: 2020, Count: 3}},
		ByMonth:   []schema.MonthCount{{Year: 2020, Month: time.January, Count: 3}},
		ByWeekday: map[string]int{"Monday": 3},
	}

	require.NoError(t, WriteDateResults(buckets, cfg, time.Millisecond))

	f, err := os.Open(cfg.OutputFile)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"dimension", "bucket", "count"}, rows[0])
	assert.Equal(t, []string{"year", "2020", "3"}, rows[1])
	assert.Equal(t, []string{"month", "2020-01", "3"}, rows[2])
	assert.Equal(t, []string{"weekday", "Monday", "3"}, rows[3])
}

func TestWriteDateResultsParquet(t *testing.T) {
	cfg := outputConfig(t, schema.ParquetOut, "dates.parquet")
	cfg.DateColumn = schema.DateReceivedColumn
	buckets := &schema.DateBuckets{
		ByYear:    []schema.YearCount{{Year: 2021, Count: 2}},
		ByWeekday: map[string]int{"Friday": 2},
	}

	require.NoError(t, WriteDateResults(buckets, cfg, time.Millisecond))

	info, err := os.Stat(cfg.OutputFile)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestWriteSummaryResultsJSON(t *testing.T) {
	cfg := outputConfig(t, schema.JSONOut, "summary.json")
	summary := &schema.DatasetSummary{
		TotalRecords: 10,
		Components: []schema.LabelCount{
			{Label: "ENGINE", Count: 6},
			{Label: "BRAKES", Count: 4},
		},
	}

	require.NoError(t, WriteSummaryResults(summary, cfg, time.Millisecond))

	data, err := os.ReadFile(cfg.OutputFile)
	require.NoError(t, err)

	var decoded schema.DatasetSummary
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, 10, decoded.TotalRecords)
	require.Len(t, decoded.Components, 2)
	assert.Equal(t, "ENGINE", decoded.Components[0].Label)
}
