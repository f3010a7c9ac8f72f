package schema

// ItemMatrix is the boolean transaction-by-item encoding used by the miner.
// Items holds the full label universe in sorted order; Rows[t][i] is true
// iff transaction t contains Items[i]. Column order is deterministic so
// repeated runs on identical input are reproducible.
type ItemMatrix struct {
	Items []string `json:"items"`
	Rows  [][]bool `json:"rows"`
}

// NumTransactions returns the number of encoded transactions.
func (m *ItemMatrix) NumTransactions() int {
	return len(m.Rows)
}

// NumItems returns the size of the item universe.
func (m *ItemMatrix) NumItems() int {
	return len(m.Items)
}

// RowItems returns the item labels present in row t, in column order.
// Decoding a row reproduces the original transaction's sorted item set.
func (m *ItemMatrix) RowItems(t int) []string {
	var items []string
	for i, present := range m.Rows[t] {
		if present {
			items = append(items, m.Items[i])
		}
	}
	return items
}

// ContainsAll reports whether row t contains every column in cols.
func (m *ItemMatrix) ContainsAll(t int, cols []int) bool {
	row := m.Rows[t]
	for _, c := range cols {
		if !row[c] {
			return false
		}
	}
	return true
}
