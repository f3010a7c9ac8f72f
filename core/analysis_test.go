package core

import (
	"context"
	"testing"

	"github.com/huangsam/cofail/internal/contract"
	"github.com/huangsam/cofail/internal/runstore"
	"github.com/huangsam/cofail/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// miningConfig builds a fully-populated config over a small flat file with
// three vehicles whose transactions are {A,B}, {A,B}, {A,C} in component
// terms.
func miningConfig(t *testing.T) *contract.Config {
	t.Helper()
	rows := []string{flatHeader}
	vehicles := [][]string{
		{"ENGINE", "BRAKES"},
		{"ENGINE", "BRAKES"},
		{"ENGINE", "STEERING"},
	}
	id := 0
	for i, components := range vehicles {
		for _, component := range components {
			id++
			rows = append(rows, flatRow(map[int]string{
				0: string(rune('1' + id)),
				4: "MODEL-" + string(rune('A'+i)),
				11: component,
			}))
		}
	}
	path := writeFlatFile(t, rows...)

	return &contract.Config{
		DataPath:        path,
		ChunkSize:       contract.DefaultChunkSize,
		MaxTransactions: contract.DefaultMaxTransactions,
		MinSupport:      0.5,
		Metric:          schema.LiftMetric,
		MinThreshold:    0,
		DateColumn:      schema.DateReceivedColumn,
		Truncate:        schema.PrefixTruncate,
		Workers:         2,
		ResultLimit:     contract.DefaultResultLimit,
		Precision:       contract.DefaultPrecision,
		Output:          schema.TextOut,
		Top:             contract.DefaultTop,
	}
}

func TestGetItemsetResults(t *testing.T) {
	cfg := miningConfig(t)
	ctx := WithSuppressHeader(context.Background())

	itemsets, stats, err := GetItemsetResults(ctx, cfg)
	require.NoError(t, err)

	assert.Equal(t, 6, stats.TotalRecords)
	assert.Equal(t, 3, stats.TotalTransactions)
	assert.Equal(t, 0, stats.DroppedTransactions)
	assert.Equal(t, len(itemsets), stats.FrequentItemsets)

	// Sorted by descending support, so ENGINE (in every transaction) leads.
	require.NotEmpty(t, itemsets)
	assert.Equal(t, []string{"ENGINE"}, itemsets[0].Items)
	assert.InDelta(t, 1.0, itemsets[0].Support, 1e-9)
}

func TestGetRuleResultsWithoutStore(t *testing.T) {
	cfg := miningConfig(t)
	ctx := WithSuppressHeader(context.Background())

	rules, stats, err := GetRuleResults(ctx, cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalTransactions)
	require.Len(t, rules, 2)
}

func TestGetRuleResultsRecordsRun(t *testing.T) {
	cfg := miningConfig(t)
	ctx := WithSuppressHeader(context.Background())

	mockStore := &runstore.MockRunStore{}
	mockStore.On("BeginRun", mock.Anything, mock.Anything).Return(int64(7), nil)
	mockStore.On("RecordRule", int64(7), mock.Anything).Return(nil)
	mockStore.On("EndRun", int64(7), mock.Anything, mock.Anything, 2).Return(nil)

	mockMgr := &runstore.MockStoreManager{}
	mockMgr.On("GetRunStore").Return(mockStore)

	rules, _, err := GetRuleResults(ctx, cfg, mockMgr)
	require.NoError(t, err)
	require.Len(t, rules, 2)

	mockStore.AssertExpectations(t)
	mockStore.AssertNumberOfCalls(t, "RecordRule", 2)
}

func TestGetRuleResultsStoreFailureIsNonFatal(t *testing.T) {
	cfg := miningConfig(t)
	ctx := WithSuppressHeader(context.Background())

	mockStore := &runstore.MockRunStore{}
	mockStore.On("BeginRun", mock.Anything, mock.Anything).Return(int64(0), assert.AnError)

	mockMgr := &runstore.MockStoreManager{}
	mockMgr.On("GetRunStore").Return(mockStore)

	rules, _, err := GetRuleResults(ctx, cfg, mockMgr)
	require.NoError(t, err)
	require.Len(t, rules, 2)

	// No rule recording after a failed BeginRun.
	mockStore.AssertNotCalled(t, "RecordRule", mock.Anything, mock.Anything)
	mockStore.AssertNotCalled(t, "EndRun", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestGetDateResults(t *testing.T) {
	cfg := miningConfig(t)
	ctx := WithSuppressHeader(context.Background())

	buckets, err := GetDateResults(ctx, cfg)
	require.NoError(t, err)
	require.NotNil(t, buckets)
	require.Len(t, buckets.ByYear, 1)
	assert.Equal(t, 2020, buckets.ByYear[0].Year)
	assert.Equal(t, 6, buckets.ByYear[0].Count)
}

func TestGetSummaryResults(t *testing.T) {
	cfg := miningConfig(t)
	ctx := WithSuppressHeader(context.Background())

	summary, err := GetSummaryResults(ctx, cfg)
	require.NoError(t, err)
	assert.Equal(t, 6, summary.TotalRecords)
	require.NotEmpty(t, summary.Components)
	assert.Equal(t, "ENGINE", summary.Components[0].Label)
}

func TestSuppressHeaderContext(t *testing.T) {
	ctx := context.Background()
	assert.False(t, shouldSuppressHeader(ctx))
	assert.True(t, shouldSuppressHeader(WithSuppressHeader(ctx)))
}
