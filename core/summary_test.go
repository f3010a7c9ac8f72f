package core

import (
	"testing"

	"github.com/huangsam/cofail/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarizeDataset(t *testing.T) {
	ds := &schema.Dataset{Records: []schema.Record{
		{Component: "ENGINE", Manufacturer: "ACME MOTORS"},
		{Component: "ENGINE", Manufacturer: "ACME MOTORS"},
		{Component: "BRAKES", Manufacturer: "ZEBRA AUTO"},
		{Component: "", Manufacturer: ""}, // empty labels skipped
	}}

	summary := SummarizeDataset(ds, 10)
	assert.Equal(t, 4, summary.TotalRecords)

	require.Len(t, summary.Components, 2)
	assert.Equal(t, schema.LabelCount{Label: "ENGINE", Count: 2}, summary.Components[0])
	assert.Equal(t, schema.LabelCount{Label: "BRAKES", Count: 1}, summary.Components[1])

	require.Len(t, summary.Manufacturers, 2)
	assert.Equal(t, "ACME MOTORS", summary.Manufacturers[0].Label)
}

func TestSummarizeDatasetTopTruncation(t *testing.T) {
	ds := &schema.Dataset{Records: []schema.Record{
		{Component: "A"}, {Component: "B"}, {Component: "C"},
	}}

	summary := SummarizeDataset(ds, 2)
	require.Len(t, summary.Components, 2)
	// Equal counts tie-break alphabetically.
	assert.Equal(t, "A", summary.Components[0].Label)
	assert.Equal(t, "B", summary.Components[1].Label)
}

func TestSummarizeDatasetEmpty(t *testing.T) {
	summary := SummarizeDataset(&schema.Dataset{}, 5)
	assert.Equal(t, 0, summary.TotalRecords)
	assert.Empty(t, summary.Components)
	assert.Empty(t, summary.Manufacturers)
}
