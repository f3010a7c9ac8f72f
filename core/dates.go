package core

import (
	"sort"
	"time"

	"github.com/huangsam/cofail/schema"
)

// AnalyzeDates buckets one date column by year, year-month and weekday.
// Returns nil when the column is unknown or holds no parseable values;
// callers treat nil as "no temporal analysis available", not an error.
func AnalyzeDates(ds *schema.Dataset, column schema.DateColumn) *schema.DateBuckets {
	extract := dateExtractor(column)
	if extract == nil {
		return nil
	}

	type yearMonth struct {
		year  int
		month time.Month
	}
	byYear := map[int]int{}
	byMonth := map[yearMonth]int{}
	byWeekday := map[string]int{}
	seen := 0
	for i := range ds.Records {
		t := extract(&ds.Records[i])
		if t == nil {
			continue
		}
		seen++
		byYear[t.Year()]++
		byMonth[yearMonth{t.Year(), t.Month()}]++
		byWeekday[t.Weekday().String()]++
	}
	if seen == 0 {
		return nil
	}

	years := make([]int, 0, len(byYear))
	for y := range byYear {
		years = append(years, y)
	}
	sort.Ints(years)

	months := make([]yearMonth, 0, len(byMonth))
	for ym := range byMonth {
		months = append(months, ym)
	}
	sort.Slice(months, func(i, j int) bool {
		if months[i].year != months[j].year {
			return months[i].year < months[j].year
		}
		return months[i].month < months[j].month
	})

	buckets := &schema.DateBuckets{ByWeekday: byWeekday}
	for _, y := range years {
		buckets.ByYear = append(buckets.ByYear, schema.YearCount{Year: y, Count: byYear[y]})
	}
	for _, ym := range months {
		buckets.ByMonth = append(buckets.ByMonth, schema.MonthCount{
			Year:  ym.year,
			Month: ym.month,
			Count: byMonth[ym],
		})
	}
	return buckets
}

func dateExtractor(column schema.DateColumn) func(*schema.Record) *time.Time {
	switch column {
	case schema.FailDateColumn:
		return func(r *schema.Record) *time.Time { return r.FailDate }
	case schema.DateAddedColumn:
		return func(r *schema.Record) *time.Time { return r.DateAdded }
	case schema.DateReceivedColumn:
		return func(r *schema.Record) *time.Time { return r.DateReceived }
	default:
		return nil
	}
}
