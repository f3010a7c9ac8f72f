package core

import (
	"sort"

	"github.com/huangsam/cofail/schema"
)

// SummarizeDataset builds the exploratory frequency tables for a cleaned
// dataset. Each table keeps the top labels by count, ties broken
// alphabetically; empty labels are skipped. top <= 0 keeps everything.
func SummarizeDataset(ds *schema.Dataset, top int) *schema.DatasetSummary {
	components := map[string]int{}
	manufacturers := map[string]int{}
	for i := range ds.Records {
		r := &ds.Records[i]
		if r.Component != "" {
			components[r.Component]++
		}
		if r.Manufacturer != "" {
			manufacturers[r.Manufacturer]++
		}
	}
	return &schema.DatasetSummary{
		TotalRecords:  ds.Len(),
		Components:    topCounts(components, top),
		Manufacturers: topCounts(manufacturers, top),
	}
}

func topCounts(counts map[string]int, top int) []schema.LabelCount {
	out := make([]schema.LabelCount, 0, len(counts))
	for label, count := range counts {
		out = append(out, schema.LabelCount{Label: label, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Label < out[j].Label
	})
	if top > 0 && len(out) > top {
		out = out[:top]
	}
	return out
}
