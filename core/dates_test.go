package core

import (
	"testing"
	"time"

	"github.com/huangsam/cofail/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// datedRecord builds a record with the same value in all three date columns.
func datedRecord(year int, month time.Month, day int) schema.Record {
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return schema.Record{FailDate: &d, DateAdded: &d, DateReceived: &d}
}

func TestAnalyzeDates(t *testing.T) {
	ds := &schema.Dataset{Records: []schema.Record{
		datedRecord(2020, time.January, 6),  // Monday
		datedRecord(2020, time.January, 13), // Monday
		datedRecord(2020, time.March, 4),    // Wednesday
		datedRecord(2019, time.December, 1), // Sunday
		{}, // no dates, skipped
	}}

	buckets := AnalyzeDates(ds, schema.DateReceivedColumn)
	require.NotNil(t, buckets)

	// Years sorted ascending.
	require.Len(t, buckets.ByYear, 2)
	assert.Equal(t, schema.YearCount{Year: 2019, Count: 1}, buckets.ByYear[0])
	assert.Equal(t, schema.YearCount{Year: 2020, Count: 3}, buckets.ByYear[1])

	// Months sorted chronologically across year boundaries.
	require.Len(t, buckets.ByMonth, 3)
	assert.Equal(t, 2019, buckets.ByMonth[0].Year)
	assert.Equal(t, time.December, buckets.ByMonth[0].Month)
	assert.Equal(t, 2, buckets.ByMonth[1].Count) // 2020-01

	assert.Equal(t, 2, buckets.ByWeekday["Monday"])
	assert.Equal(t, 1, buckets.ByWeekday["Sunday"])
}

func TestAnalyzeDatesNoUsableValues(t *testing.T) {
	ds := &schema.Dataset{Records: []schema.Record{{}, {}}}
	assert.Nil(t, AnalyzeDates(ds, schema.FailDateColumn))
}

func TestAnalyzeDatesUnknownColumn(t *testing.T) {
	ds := &schema.Dataset{Records: []schema.Record{datedRecord(2020, time.May, 1)}}
	assert.Nil(t, AnalyzeDates(ds, schema.DateColumn("bogus")))
}

func TestWeekdayCountsOrder(t *testing.T) {
	ds := &schema.Dataset{Records: []schema.Record{
		datedRecord(2020, time.January, 4), // Saturday
		datedRecord(2020, time.January, 5), // Sunday
		datedRecord(2020, time.January, 6), // Monday
	}}

	buckets := AnalyzeDates(ds, schema.FailDateColumn)
	require.NotNil(t, buckets)

	counts := buckets.WeekdayCounts()
	require.Len(t, counts, 3)
	assert.Equal(t, "Sunday", counts[0].Label)
	assert.Equal(t, "Monday", counts[1].Label)
	assert.Equal(t, "Saturday", counts[2].Label)
}
