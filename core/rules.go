package core

import (
	"math"
	"sort"
	"strings"

	"github.com/huangsam/cofail/schema"
)

// GenerateRules expands frequent itemsets into directional association rules
// and keeps those meeting minThreshold on the chosen metric, sorted
// descending by that metric. Every frequent itemset of size k >= 2 yields
// all 2^k-2 non-empty disjoint bipartitions; both directions of a pair are
// distinct rules. An empty result is a valid outcome ("no patterns found"),
// never an error.
func GenerateRules(itemsets []schema.ItemSet, metric schema.Metric, minThreshold float64) []schema.AssociationRule {
	supports := make(map[string]float64, len(itemsets))
	for _, is := range itemsets {
		supports[itemsKey(is.Items)] = is.Support
	}

	var rules []schema.AssociationRule
	for _, is := range itemsets {
		k := len(is.Items)
		if k < 2 {
			continue
		}
		for mask := 1; mask < (1<<k)-1; mask++ {
			var antecedents, consequents []string
			for i, item := range is.Items {
				if mask&(1<<i) != 0 {
					antecedents = append(antecedents, item)
				} else {
					consequents = append(consequents, item)
				}
			}

			// Both sides are subsets of a frequent itemset, so downward
			// closure guarantees their supports are in the map.
			supA := supports[itemsKey(antecedents)]
			supC := supports[itemsKey(consequents)]

			confidence := is.Support / supA
			conviction := math.Inf(1)
			if confidence < 1 {
				conviction = (1 - supC) / (1 - confidence)
			}
			rule := schema.AssociationRule{
				Antecedents: antecedents,
				Consequents: consequents,
				Support:     is.Support,
				Confidence:  confidence,
				Lift:        confidence / supC,
				Leverage:    is.Support - supA*supC,
				Conviction:  conviction,
			}
			if MetricValue(rule, metric) >= minThreshold {
				rules = append(rules, rule)
			}
		}
	}

	sortRules(rules, metric)
	return rules
}

// MetricValue extracts the configured ranking metric from a rule.
func MetricValue(r schema.AssociationRule, metric schema.Metric) float64 {
	switch metric {
	case schema.SupportMetric:
		return r.Support
	case schema.ConfidenceMetric:
		return r.Confidence
	default:
		return r.Lift
	}
}

// sortRules orders rules descending by metric with a deterministic
// label-based tie-break so identical inputs always print identically.
func sortRules(rules []schema.AssociationRule, metric schema.Metric) {
	sort.SliceStable(rules, func(i, j int) bool {
		vi, vj := MetricValue(rules[i], metric), MetricValue(rules[j], metric)
		if vi != vj {
			return vi > vj
		}
		ki, kj := itemsKey(rules[i].Antecedents), itemsKey(rules[j].Antecedents)
		if ki != kj {
			return ki < kj
		}
		return itemsKey(rules[i].Consequents) < itemsKey(rules[j].Consequents)
	})
}

// itemsKey builds the canonical map key for a sorted label set.
func itemsKey(items []string) string {
	return strings.Join(items, "\x1f")
}
