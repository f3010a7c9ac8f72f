package schema

// Custom string types for type safety.
type (
	// Metric represents the rule-ranking metric used for filtering and sorting.
	Metric string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for run tracking.
	DatabaseBackend string

	// DateColumn represents one of the three parsed date fields of a Record.
	DateColumn string

	// TruncatePolicy represents how the transaction cap is applied.
	TruncatePolicy string
)

// All rule metrics supported.
const (
	SupportMetric    Metric = "support"
	ConfidenceMetric Metric = "confidence"
	LiftMetric       Metric = "lift" // default
)

// All output modes supported.
const (
	CSVOut     OutputMode = "csv"
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All store backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite"
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none" // default
)

// All date columns supported.
const (
	FailDateColumn     DateColumn = "fail_date"
	DateAddedColumn    DateColumn = "date_added"
	DateReceivedColumn DateColumn = "date_received" // default
)

// All truncation policies supported.
const (
	PrefixTruncate TruncatePolicy = "prefix" // default: first N in group order
	SampleTruncate TruncatePolicy = "sample" // seeded reservoir sample of N
)

// ValidMetrics lists all valid rule metrics.
var ValidMetrics = map[Metric]struct{}{
	SupportMetric:    {},
	ConfidenceMetric: {},
	LiftMetric:       {},
}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:     {},
	TextOut:    {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidDatabaseBackends lists all valid store backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// ValidDateColumns lists all valid date columns.
var ValidDateColumns = map[DateColumn]struct{}{
	FailDateColumn:     {},
	DateAddedColumn:    {},
	DateReceivedColumn: {},
}

// ValidTruncatePolicies lists all valid truncation policies.
var ValidTruncatePolicies = map[TruncatePolicy]struct{}{
	PrefixTruncate: {},
	SampleTruncate: {},
}
