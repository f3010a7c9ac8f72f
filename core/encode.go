package core

import (
	"sort"

	"github.com/huangsam/cofail/schema"
)

// EncodeTransactions maps a transaction list onto a boolean
// transaction-by-item matrix. The item universe is the union of all labels
// across transactions in sorted order, so repeated runs on identical input
// produce identical column layouts.
func EncodeTransactions(txns []schema.Transaction) *schema.ItemMatrix {
	universe := make(map[string]struct{})
	for _, txn := range txns {
		for _, item := range txn.Items {
			universe[item] = struct{}{}
		}
	}

	items := make([]string, 0, len(universe))
	for item := range universe {
		items = append(items, item)
	}
	sort.Strings(items)

	index := make(map[string]int, len(items))
	for i, item := range items {
		index[item] = i
	}

	rows := make([][]bool, len(txns))
	for t, txn := range txns {
		row := make([]bool, len(items))
		for _, item := range txn.Items {
			row[index[item]] = true
		}
		rows[t] = row
	}

	return &schema.ItemMatrix{Items: items, Rows: rows}
}
