package core

import (
	"math/rand"
	"sort"

	"github.com/huangsam/cofail/internal/contract"
	"github.com/huangsam/cofail/schema"
)

// BuildTransactions groups cleaned records by vehicle identity into
// deduplicated component sets. Grouping is a stable multi-key partition:
// groups appear in first-appearance order and within-group deduplication is
// an explicit set construction, so a vehicle with five complaints about the
// same component contributes that component once.
//
// Groups with fewer than two distinct components are dropped since no
// association is possible. When more than cfg.MaxTransactions survive, the
// list is truncated per cfg.Truncate and the number dropped is returned so
// truncation bias stays observable. Zero surviving transactions is a
// *contract.EmptyInputError.
func BuildTransactions(ds *schema.Dataset, cfg *contract.Config) ([]schema.Transaction, int, error) {
	var order []schema.VehicleKey
	groups := make(map[schema.VehicleKey]map[string]struct{})
	for i := range ds.Records {
		rec := &ds.Records[i]
		if rec.Component == "" {
			continue
		}
		key := schema.VehicleKey{
			Manufacturer: rec.Manufacturer,
			Make:         rec.Make,
			Model:        rec.Model,
			Year:         rec.Year,
		}
		set, ok := groups[key]
		if !ok {
			set = make(map[string]struct{})
			groups[key] = set
			order = append(order, key)
		}
		set[rec.Component] = struct{}{}
	}

	txns := make([]schema.Transaction, 0, len(order))
	for _, key := range order {
		set := groups[key]
		if len(set) < 2 {
			continue
		}
		items := make([]string, 0, len(set))
		for item := range set {
			items = append(items, item)
		}
		sort.Strings(items)
		txns = append(txns, schema.Transaction{Key: key, Items: items})
	}

	if len(txns) == 0 {
		return nil, 0, &contract.EmptyInputError{Reason: "no vehicles with multiple distinct failed components found"}
	}

	dropped := 0
	if len(txns) > cfg.MaxTransactions {
		dropped = len(txns) - cfg.MaxTransactions
		txns = truncateTransactions(txns, cfg.MaxTransactions, cfg.Truncate, cfg.Seed)
	}
	return txns, dropped, nil
}

// truncateTransactions applies the configured cap. The prefix policy keeps
// the first n transactions in group order; the sample policy draws a seeded
// reservoir sample of n and keeps the sample in original relative order, so
// the same seed always selects the same transactions.
func truncateTransactions(txns []schema.Transaction, n int, policy schema.TruncatePolicy, seed int64) []schema.Transaction {
	if policy != schema.SampleTruncate {
		return txns[:n]
	}

	rng := rand.New(rand.NewSource(seed))
	chosen := make([]int, n)
	for i := range chosen {
		chosen[i] = i
	}
	for i := n; i < len(txns); i++ {
		if j := rng.Intn(i + 1); j < n {
			chosen[j] = i
		}
	}
	sort.Ints(chosen)

	out := make([]schema.Transaction, n)
	for i, idx := range chosen {
		out[i] = txns[idx]
	}
	return out
}
