package schema

import "time"

// YearCount is the complaint count for one calendar year.
type YearCount struct {
	Year  int `json:"year"`
	Count int `json:"count"`
}

// MonthCount is the complaint count for one year-month period.
type MonthCount struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
	Count int        `json:"count"`
}

// DateBuckets holds three independent count distributions over one date
// column: by year (sorted by year), by year-month (sorted chronologically)
// and by weekday name (unordered frequency table). Only non-null values
// contribute.
type DateBuckets struct {
	ByYear    []YearCount    `json:"by_year"`
	ByMonth   []MonthCount   `json:"by_month"`
	ByWeekday map[string]int `json:"by_weekday"`
}

// WeekdayCounts flattens the by-weekday bucket in Sunday-first order for
// stable display.
func (b *DateBuckets) WeekdayCounts() []LabelCount {
	out := make([]LabelCount, 0, len(b.ByWeekday))
	for d := time.Sunday; d <= time.Saturday; d++ {
		name := d.String()
		if c, ok := b.ByWeekday[name]; ok {
			out = append(out, LabelCount{Label: name, Count: c})
		}
	}
	return out
}
