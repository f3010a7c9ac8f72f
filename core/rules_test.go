package core

import (
	"math"
	"testing"

	"github.com/huangsam/cofail/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// minedItemsets are the frequent itemsets of {A,B}, {A,B}, {A,C} at
// minimum support 0.5.
var minedItemsets = []schema.ItemSet{
	{Items: []string{"A"}, Support: 1.0},
	{Items: []string{"B"}, Support: 2.0 / 3.0},
	{Items: []string{"A", "B"}, Support: 2.0 / 3.0},
}

func TestGenerateRules(t *testing.T) {
	rules := GenerateRules(minedItemsets, schema.LiftMetric, 0)
	require.Len(t, rules, 2)

	// Equal lift, so the deterministic tie-break puts A=>B first.
	aToB := rules[0]
	assert.Equal(t, []string{"A"}, aToB.Antecedents)
	assert.Equal(t, []string{"B"}, aToB.Consequents)
	assert.InDelta(t, 2.0/3.0, aToB.Support, 1e-9)
	assert.InDelta(t, 2.0/3.0, aToB.Confidence, 1e-9)
	assert.InDelta(t, 1.0, aToB.Lift, 1e-9)
	assert.InDelta(t, 0.0, aToB.Leverage, 1e-9)
	assert.InDelta(t, 1.0, aToB.Conviction, 1e-9)

	// B always co-occurs with A, so conviction is infinite.
	bToA := rules[1]
	assert.Equal(t, []string{"B"}, bToA.Antecedents)
	assert.InDelta(t, 1.0, bToA.Confidence, 1e-9)
	assert.True(t, math.IsInf(bToA.Conviction, 1))
}

func TestGenerateRulesMetricFiltering(t *testing.T) {
	rules := GenerateRules(minedItemsets, schema.ConfidenceMetric, 0.9)
	require.Len(t, rules, 1)
	assert.Equal(t, []string{"B"}, rules[0].Antecedents)
	assert.Equal(t, []string{"A"}, rules[0].Consequents)
}

func TestGenerateRulesConfidenceThreshold(t *testing.T) {
	rules := GenerateRules(minedItemsets, schema.ConfidenceMetric, 0.6)
	require.Len(t, rules, 2)

	// Sorted descending by confidence: B=>A at 1.0, then A=>B at 0.667.
	assert.Equal(t, []string{"B"}, rules[0].Antecedents)
	assert.InDelta(t, 1.0, rules[0].Confidence, 1e-9)
	assert.InDelta(t, 1.0, rules[0].Lift, 1e-9)
	assert.Equal(t, []string{"A"}, rules[1].Antecedents)
	assert.InDelta(t, 2.0/3.0, rules[1].Confidence, 1e-9)
	assert.InDelta(t, 1.0, rules[1].Lift, 1e-9)
}

func TestGenerateRulesMetricIdentities(t *testing.T) {
	itemsets := []schema.ItemSet{
		{Items: []string{"A"}, Support: 0.6},
		{Items: []string{"B"}, Support: 0.6},
		{Items: []string{"C"}, Support: 0.6},
		{Items: []string{"A", "B"}, Support: 0.5},
		{Items: []string{"A", "C"}, Support: 0.4},
		{Items: []string{"B", "C"}, Support: 0.4},
		{Items: []string{"A", "B", "C"}, Support: 0.3},
	}
	support := func(items []string) float64 {
		for _, is := range itemsets {
			if len(is.Items) == len(items) {
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
		}
		t.Fatalf("no itemset for %v", items)
		return 0
	}

	rules := GenerateRules(itemsets, schema.SupportMetric, 0)
	require.NotEmpty(t, rules)

	for _, r := range rules {
		supAnt := support(r.Antecedents)
		supCon := support(r.Consequents)
		assert.InDelta(t, r.Support/supAnt, r.Confidence, 1e-9)
		assert.InDelta(t, r.Confidence/supCon, r.Lift, 1e-9)
		assert.InDelta(t, r.Support-supAnt*supCon, r.Leverage, 1e-9)
	}
}

func TestGenerateRulesThresholdExcludesAll(t *testing.T) {
	rules := GenerateRules(minedItemsets, schema.LiftMetric, 5.0)
	assert.Empty(t, rules)
}

func TestGenerateRulesSkipsSingletons(t *testing.T) {
	itemsets := []schema.ItemSet{
		{Items: []string{"A"}, Support: 0.8},
		{Items: []string{"B"}, Support: 0.6},
	}
	assert.Empty(t, GenerateRules(itemsets, schema.LiftMetric, 0))
}

func TestGenerateRulesTripleItemset(t *testing.T) {
	itemsets := []schema.ItemSet{
		{Items: []string{"A"}, Support: 0.6},
		{Items: []string{"B"}, Support: 0.6},
		{Items: []string{"C"}, Support: 0.6},
		{Items: []string{"A", "B"}, Support: 0.5},
		{Items: []string{"A", "C"}, Support: 0.5},
		{Items: []string{"B", "C"}, Support: 0.5},
		{Items: []string{"A", "B", "C"}, Support: 0.4},
	}

	rules := GenerateRules(itemsets, schema.SupportMetric, 0)

	// 2 per pair plus 2^3-2 for the triple.
	assert.Len(t, rules, 12)
	for _, r := range rules {
		assert.NotEmpty(t, r.Antecedents)
		assert.NotEmpty(t, r.Consequents)
	}
}

func TestMetricValue(t *testing.T) {
	rule := schema.AssociationRule{Support: 0.5, Confidence: 0.8, Lift: 1.2}

	assert.Equal(t, 0.5, MetricValue(rule, schema.SupportMetric))
	assert.Equal(t, 0.8, MetricValue(rule, schema.ConfidenceMetric))
	assert.Equal(t, 1.2, MetricValue(rule, schema.LiftMetric))
}
