package core

import (
	"testing"

	"github.com/huangsam/cofail/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// supportOf finds the support of an exact itemset, or -1 when absent.
func supportOf(itemsets []schema.ItemSet, items ...string) float64 {
	for _, is := range itemsets {
		if len(is.Items) != len(items) {
			continue
		}
		match := true
		for i := range items {
			if is.Items[i] != items[i] {
				match = false
				break
			}
		}
		if match {
			return is.Support
		}
	}
	return -1
}

func TestMineFrequentItemsets(t *testing.T) {
	m := EncodeTransactions([]schema.Transaction{
		txn("A", "B"),
		txn("A", "B"),
		txn("A", "C"),
	})

	itemsets := MineFrequentItemsets(m, 0.5, 1)

	assert.InDelta(t, 1.0, supportOf(itemsets, "A"), 1e-9)
	assert.InDelta(t, 2.0/3.0, supportOf(itemsets, "B"), 1e-9)
	assert.InDelta(t, 2.0/3.0, supportOf(itemsets, "A", "B"), 1e-9)

	// C appears in one of three transactions, below threshold, and so
	// is every superset of it.
	assert.Equal(t, -1.0, supportOf(itemsets, "C"))
	assert.Equal(t, -1.0, supportOf(itemsets, "A", "C"))
}

func TestMineFrequentItemsetsPrunesSupersets(t *testing.T) {
	m := EncodeTransactions([]schema.Transaction{
		txn("A", "B", "C"),
		txn("A", "B", "D"),
		txn("A", "C", "D"),
		txn("B", "C", "D"),
	})

	itemsets := MineFrequentItemsets(m, 0.9, 2)

	// No single item reaches 0.9 support, so the search stops at level 1.
	assert.Empty(t, itemsets)
}

func TestMineFrequentItemsetsWorkerInvariance(t *testing.T) {
	txns := []schema.Transaction{
		txn("A", "B", "C"),
		txn("A", "B"),
		txn("B", "C"),
		txn("A", "C"),
		txn("A", "B", "C"),
	}
	m := EncodeTransactions(txns)

	serial := MineFrequentItemsets(m, 0.2, 1)
	parallel := MineFrequentItemsets(m, 0.2, 8)

	// Results are bit-identical regardless of worker count.
	require.Equal(t, serial, parallel)
	assert.NotEmpty(t, serial)
}

func TestMineFrequentItemsetsEmptyMatrix(t *testing.T) {
	m := EncodeTransactions(nil)
	assert.Nil(t, MineFrequentItemsets(m, 0.5, 4))
}

func TestMineFrequentItemsetsDownwardClosure(t *testing.T) {
	m := EncodeTransactions([]schema.Transaction{
		txn("A", "B", "C", "D"),
		txn("A", "B", "C"),
		txn("A", "B", "D"),
		txn("B", "C", "D"),
		txn("A", "C"),
		txn("B", "D"),
	})

	itemsets := MineFrequentItemsets(m, 0.3, 2)
	require.NotEmpty(t, itemsets)

	// Every subset of a frequent itemset obtained by dropping one item
	// must itself be frequent, with support at least as high.
	for _, is := range itemsets {
		if len(is.Items) < 2 {
			continue
		}
		for drop := range is.Items {
			subset := make([]string, 0, len(is.Items)-1)
			for i, item := range is.Items {
				if i != drop {
					subset = append(subset, item)
				}
			}
			subSupport := supportOf(itemsets, subset...)
			require.GreaterOrEqual(t, subSupport, is.Support,
				"subset %v of %v", subset, is.Items)
		}
	}
}
