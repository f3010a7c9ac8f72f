package contract

import (
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/huangsam/cofail/schema"
)

// Default values for configuration.
const (
	DefaultChunkSize       = 10000
	DefaultMaxTransactions = 50000
	DefaultMinSupport      = 0.05
	DefaultMinThreshold    = 1.0
	DefaultResultLimit     = 25
	MaxResultLimit         = 1000
	DefaultPrecision       = 3
	MaxPrecision           = 6
	DefaultTop             = 20
	DefaultSeed            = 1
)

// NumSchemaFields is the fixed field count of the complaint flat file.
const NumSchemaFields = 20

// DefaultWorkers is the default number of concurrent support-counting workers.
var DefaultWorkers = runtime.GOMAXPROCS(0)

// DateTimeFormat is the default date time representation for output.
var DateTimeFormat = time.RFC3339

// ProfileConfig holds profiling settings.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// ProcessProfilingConfig handles the profiling flag and sets up profiling configuration.
func ProcessProfilingConfig(profile *ProfileConfig, profilePrefix string) error {
	if profilePrefix != "" {
		profile.Enabled = true
		profile.Prefix = profilePrefix
	}
	return nil
}

// Config holds the runtime configuration for an analysis invocation.
// This struct remains the "final, validated" config.
type Config struct {
	DataPath        string
	ChunkSize       int
	MaxTransactions int
	MinSupport      float64
	Metric          schema.Metric
	MinThreshold    float64
	DateColumn      schema.DateColumn
	Truncate        schema.TruncatePolicy
	Seed            int64
	Workers         int
	ResultLimit     int
	Precision       int
	Output          schema.OutputMode
	OutputFile      string
	Width           int // Terminal width override (0 = auto-detect)
	Top             int // Depth of the summary frequency tables

	StoreBackend   schema.DatabaseBackend
	StoreDBConnect string // Please use env var as this is plaintext

	UseColors bool // Enable colored labels in table output
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	DataPathStr string

	ChunkSize       int     `mapstructure:"chunk-size"`
	MaxTransactions int     `mapstructure:"max-transactions"`
	MinSupport      float64 `mapstructure:"min-support"`
	Metric          string  `mapstructure:"metric"`
	MinThreshold    float64 `mapstructure:"min-threshold"`
	DateColumn      string  `mapstructure:"date-column"`
	Truncate        string  `mapstructure:"truncate"`
	Seed            int64   `mapstructure:"seed"`
	Workers         int     `mapstructure:"workers"`
	Limit           int     `mapstructure:"limit"`
	Precision       int     `mapstructure:"precision"`
	Output          string  `mapstructure:"output"`
	OutputFile      string  `mapstructure:"output-file"`
	Width           int     `mapstructure:"width"`
	Top             int     `mapstructure:"top"`
	Color           string  `mapstructure:"color"`
	StoreBackend    string  `mapstructure:"store-backend"`
	StoreDBConnect  string  `mapstructure:"store-db-connect"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := validateMiningInputs(cfg, input); err != nil {
		return err
	}
	if err := validateBackendConfigs(cfg, input); err != nil {
		return err
	}
	return resolveDataPath(cfg, input)
}

// validateSimpleInputs processes and validates all presentation-related fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width

	// Parse color flag
	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	// --- 1. ResultLimit Validation ---
	if input.Limit <= 0 || input.Limit > MaxResultLimit {
		return fmt.Errorf("limit must be greater than 0 and cannot exceed %d (received %d)", MaxResultLimit, input.Limit)
	}
	cfg.ResultLimit = input.Limit

	// --- 2. Workers Validation ---
	if input.Workers <= 0 {
		return fmt.Errorf("workers must be greater than 0 (received %d)", input.Workers)
	}
	cfg.Workers = input.Workers

	// --- 3. Precision and Output Validation ---
	if input.Precision < 1 || input.Precision > MaxPrecision {
		return fmt.Errorf("precision must be between 1 and %d (received %d)", MaxPrecision, input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", input.Output)
	}

	// --- 4. Top Validation ---
	if input.Top <= 0 {
		return fmt.Errorf("top must be greater than 0 (received %d)", input.Top)
	}
	cfg.Top = input.Top

	return nil
}

// validateMiningInputs processes and validates the mining pipeline parameters.
func validateMiningInputs(cfg *Config, input *ConfigRawInput) error {
	// --- 1. Ingestion parameters ---
	if input.ChunkSize <= 0 {
		return fmt.Errorf("chunk-size must be greater than 0 (received %d)", input.ChunkSize)
	}
	cfg.ChunkSize = input.ChunkSize

	if input.MaxTransactions <= 0 {
		return fmt.Errorf("max-transactions must be greater than 0 (received %d)", input.MaxTransactions)
	}
	cfg.MaxTransactions = input.MaxTransactions

	// --- 2. Support threshold ---
	// Support is a fraction of transactions, so the bound is exclusive on
	// both sides: 0 would admit everything and 1 only perfect co-occurrence.
	if input.MinSupport <= 0 || input.MinSupport >= 1 {
		return fmt.Errorf("min-support must be in (0, 1) exclusive (received %g)", input.MinSupport)
	}
	cfg.MinSupport = input.MinSupport

	// --- 3. Metric and threshold ---
	cfg.Metric = schema.Metric(strings.ToLower(input.Metric))
	if _, ok := schema.ValidMetrics[cfg.Metric]; !ok {
		return fmt.Errorf("invalid metric '%s'. must be support, confidence, lift", input.Metric)
	}
	if input.MinThreshold < 0 {
		return fmt.Errorf("min-threshold cannot be negative (received %g)", input.MinThreshold)
	}
	cfg.MinThreshold = input.MinThreshold

	// --- 4. Date column ---
	cfg.DateColumn = schema.DateColumn(strings.ToLower(input.DateColumn))
	if _, ok := schema.ValidDateColumns[cfg.DateColumn]; !ok {
		return fmt.Errorf("invalid date column '%s'. must be fail_date, date_added, date_received", input.DateColumn)
	}

	// --- 5. Truncation policy ---
	cfg.Truncate = schema.TruncatePolicy(strings.ToLower(input.Truncate))
	if _, ok := schema.ValidTruncatePolicies[cfg.Truncate]; !ok {
		return fmt.Errorf("invalid truncation policy '%s'. must be prefix or sample", input.Truncate)
	}
	cfg.Seed = input.Seed

	return nil
}

// validateBackendConfigs validates the run-store backend configuration.
func validateBackendConfigs(cfg *Config, input *ConfigRawInput) error {
	cfg.StoreBackend = schema.DatabaseBackend(strings.ToLower(input.StoreBackend))
	if _, ok := schema.ValidDatabaseBackends[cfg.StoreBackend]; !ok {
		return fmt.Errorf("invalid store backend '%s'. must be sqlite, mysql, postgresql, none", input.StoreBackend)
	}
	cfg.StoreDBConnect = input.StoreDBConnect
	return ValidateDatabaseConnectionString(cfg.StoreBackend, cfg.StoreDBConnect)
}

// resolveDataPath verifies that the input file exists and is a regular file.
func resolveDataPath(cfg *Config, input *ConfigRawInput) error {
	if input.DataPathStr == "" {
		return fmt.Errorf("a complaint data file is required")
	}
	info, err := os.Stat(input.DataPathStr)
	if err != nil {
		return fmt.Errorf("cannot access data file %q: %w", input.DataPathStr, err)
	}
	if info.IsDir() {
		return fmt.Errorf("data path %q is a directory, expected a delimited text file", input.DataPathStr)
	}
	cfg.DataPath = input.DataPathStr
	return nil
}

// ValidateDatabaseConnectionString validates the format of database connection
// strings for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("store-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("store-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// ConfigParams returns the run parameters recorded alongside a tracked run.
func (c *Config) ConfigParams() map[string]any {
	return map[string]any{
		"data_path":        c.DataPath,
		"chunk_size":       c.ChunkSize,
		"max_transactions": c.MaxTransactions,
		"min_support":      c.MinSupport,
		"metric":           string(c.Metric),
		"min_threshold":    c.MinThreshold,
		"truncate":         string(c.Truncate),
		"workers":          c.Workers,
	}
}
