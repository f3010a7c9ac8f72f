// Package schema has configs, models and shared types for all parts of cofail.
package schema

import (
	"encoding/json"
	"math"
	"time"
)

// Record is one cleaned vehicle complaint. Fields follow the 20-column
// NHTSA flat-file layout after positional renaming and type conversion.
// Records are immutable once ingestion returns.
type Record struct {
	CmplID       string     `json:"cmplid"`        // Complaint identifier
	ODINo        string     `json:"odino"`         // ODI reference number
	Manufacturer string     `json:"manufacturer"`  // Manufacturer name
	Make         string     `json:"make"`          // Vehicle make
	Model        string     `json:"model"`         // Vehicle model
	Year         string     `json:"year"`          // Model year as reported (may be "9999" for unknown)
	Crash        bool       `json:"crash"`         // Whether a crash occurred
	FailDate     *time.Time `json:"fail_date"`     // Date of failure, nil when unparsable
	Fire         bool       `json:"fire"`          // Whether a fire occurred
	Injured      int        `json:"injured"`       // Number of persons injured
	Deaths       int        `json:"deaths"`        // Number of fatalities
	Component    string     `json:"component"`     // Normalized component label (trimmed, uppercased)
	City         string     `json:"city"`          // Incident city
	State        string     `json:"state"`         // Incident state code
	VIN          string     `json:"vin"`           // Vehicle identification number
	DateAdded    *time.Time `json:"date_added"`    // Date added to the database, nil when unparsable
	DateReceived *time.Time `json:"date_received"` // Date the complaint was received, nil when unparsable
	Miles        int64      `json:"miles"`         // Mileage at failure
	Occurrences  int        `json:"occurrences"`   // Number of occurrences
	Description  string     `json:"description"`   // Free-text complaint description
}

// Dataset is the cleaned output of one ingestion run.
// Record order matches the original file order.
type Dataset struct {
	Records []Record `json:"records"`
}

// Len returns the number of records in the dataset.
func (d *Dataset) Len() int {
	return len(d.Records)
}

// VehicleKey identifies one vehicle configuration for transaction grouping.
type VehicleKey struct {
	Manufacturer string `json:"manufacturer"`
	Make         string `json:"make"`
	Model        string `json:"model"`
	Year         string `json:"year"`
}

// Transaction is the deduplicated set of component labels observed for one
// VehicleKey. Items are sorted and unique; a valid transaction has at least
// two items since no association is possible below that.
type Transaction struct {
	Key   VehicleKey `json:"key"`
	Items []string   `json:"items"`
}

// ItemSet is a set of component labels with its transaction support.
// Items are sorted and unique.
type ItemSet struct {
	Items   []string `json:"items"`
	Support float64  `json:"support"`
}

// AssociationRule is a directional rule derived from one frequent itemset.
// Antecedents and Consequents are disjoint, sorted label sets.
type AssociationRule struct {
	Antecedents []string `json:"antecedents"`
	Consequents []string `json:"consequents"`
	Support     float64  `json:"support"`
	Confidence  float64  `json:"confidence"`
	Lift        float64  `json:"lift"`
	Leverage    float64  `json:"leverage"`
	Conviction  float64  `json:"conviction"` // +Inf when confidence is exactly 1
}

// MarshalJSON renders conviction as null when it is infinite,
// since JSON has no representation for +Inf.
func (r AssociationRule) MarshalJSON() ([]byte, error) {
	type alias struct {
		Antecedents []string `json:"antecedents"`
		Consequents []string `json:"consequents"`
		Support     float64  `json:"support"`
		Confidence  float64  `json:"confidence"`
		Lift        float64  `json:"lift"`
		Leverage    float64  `json:"leverage"`
		Conviction  *float64 `json:"conviction"`
	}
	a := alias{
		Antecedents: r.Antecedents,
		Consequents: r.Consequents,
		Support:     r.Support,
		Confidence:  r.Confidence,
		Lift:        r.Lift,
		Leverage:    r.Leverage,
	}
	if !math.IsInf(r.Conviction, 1) {
		conviction := r.Conviction
		a.Conviction = &conviction
	}
	return json.Marshal(a)
}

// MiningStats carries observable pipeline counters alongside mining results.
// DroppedTransactions reports truncation bias explicitly; silent truncation
// is not allowed.
type MiningStats struct {
	TotalRecords        int `json:"total_records"`
	TotalTransactions   int `json:"total_transactions"`
	DroppedTransactions int `json:"dropped_transactions"`
	FrequentItemsets    int `json:"frequent_itemsets"`
}

// LabelCount is one entry of a frequency table.
type LabelCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// DatasetSummary holds the exploratory frequency tables for a cleaned dataset.
type DatasetSummary struct {
	TotalRecords  int          `json:"total_records"`
	Components    []LabelCount `json:"components"`
	Manufacturers []LabelCount `json:"manufacturers"`
}
