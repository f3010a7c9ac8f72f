package contract

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/huangsam/cofail/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validInput returns a fully valid raw input pointing at a real temp file.
func validInput(t *testing.T) *ConfigRawInput {
	t.Helper()
	path := filepath.Join(t.TempDir(), "complaints.txt")
	require.NoError(t, os.WriteFile(path, []byte("header\n"), 0o644))
	return &ConfigRawInput{
		DataPathStr:     path,
		ChunkSize:       DefaultChunkSize,
		MaxTransactions: DefaultMaxTransactions,
		MinSupport:      DefaultMinSupport,
		Metric:          string(schema.LiftMetric),
		MinThreshold:    DefaultMinThreshold,
		DateColumn:      string(schema.DateReceivedColumn),
		Truncate:        string(schema.PrefixTruncate),
		Seed:            DefaultSeed,
		Workers:         4,
		Limit:           DefaultResultLimit,
		Precision:       DefaultPrecision,
		Output:          string(schema.TextOut),
		Top:             DefaultTop,
		Color:           "yes",
		StoreBackend:    string(schema.NoneBackend),
	}
}

func TestProcessAndValidate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*ConfigRawInput)
		expectError bool
	}{
		{
			name:        "valid config",
			mutate:      func(*ConfigRawInput) {},
			expectError: false,
		},
		{
			name:        "case-insensitive enums",
			mutate:      func(in *ConfigRawInput) { in.Metric = "LIFT"; in.Output = "Text" },
			expectError: false,
		},
		{
			name:        "zero min support",
			mutate:      func(in *ConfigRawInput) { in.MinSupport = 0 },
			expectError: true,
		},
		{
			name:        "min support of one",
			mutate:      func(in *ConfigRawInput) { in.MinSupport = 1 },
			expectError: true,
		},
		{
			name:        "invalid metric",
			mutate:      func(in *ConfigRawInput) { in.Metric = "chi-squared" },
			expectError: true,
		},
		{
			name:        "negative threshold",
			mutate:      func(in *ConfigRawInput) { in.MinThreshold = -0.5 },
			expectError: true,
		},
		{
			name:        "invalid date column",
			mutate:      func(in *ConfigRawInput) { in.DateColumn = "birthday" },
			expectError: true,
		},
		{
			name:        "invalid truncate policy",
			mutate:      func(in *ConfigRawInput) { in.Truncate = "random" },
			expectError: true,
		},
		{
			name:        "zero chunk size",
			mutate:      func(in *ConfigRawInput) { in.ChunkSize = 0 },
			expectError: true,
		},
		{
			name:        "zero max transactions",
			mutate:      func(in *ConfigRawInput) { in.MaxTransactions = 0 },
			expectError: true,
		},
		{
			name:        "limit above maximum",
			mutate:      func(in *ConfigRawInput) { in.Limit = MaxResultLimit + 1 },
			expectError: true,
		},
		{
			name:        "zero workers",
			mutate:      func(in *ConfigRawInput) { in.Workers = 0 },
			expectError: true,
		},
		{
			name:        "precision above maximum",
			mutate:      func(in *ConfigRawInput) { in.Precision = MaxPrecision + 1 },
			expectError: true,
		},
		{
			name:        "invalid output",
			mutate:      func(in *ConfigRawInput) { in.Output = "xml" },
			expectError: true,
		},
		{
			name:        "zero top",
			mutate:      func(in *ConfigRawInput) { in.Top = 0 },
			expectError: true,
		},
		{
			name:        "invalid color",
			mutate:      func(in *ConfigRawInput) { in.Color = "maybe" },
			expectError: true,
		},
		{
			name:        "invalid store backend",
			mutate:      func(in *ConfigRawInput) { in.StoreBackend = "mongodb" },
			expectError: true,
		},
		{
			name:        "mysql backend without connection string",
			mutate:      func(in *ConfigRawInput) { in.StoreBackend = string(schema.MySQLBackend) },
			expectError: true,
		},
		{
			name:        "missing data path",
			mutate:      func(in *ConfigRawInput) { in.DataPathStr = "" },
			expectError: true,
		},
		{
			name:        "data path is a directory",
			mutate:      func(in *ConfigRawInput) { in.DataPathStr = filepath.Dir(in.DataPathStr) },
			expectError: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validInput(t)
			tt.mutate(input)

			cfg := &Config{}
			err := ProcessAndValidate(cfg, input)
			if tt.expectError {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, input.DataPathStr, cfg.DataPath)
				assert.Equal(t, schema.LiftMetric, cfg.Metric)
				assert.True(t, cfg.UseColors)
			}
		})
	}
}

func TestValidateDatabaseConnectionString(t *testing.T) {
	// SQLite and none never need a connection string.
	assert.NoError(t, ValidateDatabaseConnectionString(schema.SQLiteBackend, ""))
	assert.NoError(t, ValidateDatabaseConnectionString(schema.NoneBackend, ""))

	// MySQL requires the tcp host and database name markers.
	assert.Error(t, ValidateDatabaseConnectionString(schema.MySQLBackend, ""))
	assert.Error(t, ValidateDatabaseConnectionString(schema.MySQLBackend, "user:pass@host/db"))
	assert.NoError(t, ValidateDatabaseConnectionString(schema.MySQLBackend, "user:pass@tcp(localhost:3306)/cofail"))

	// PostgreSQL requires host and dbname parameters.
	assert.Error(t, ValidateDatabaseConnectionString(schema.PostgreSQLBackend, ""))
	assert.Error(t, ValidateDatabaseConnectionString(schema.PostgreSQLBackend, "host=localhost"))
	assert.NoError(t, ValidateDatabaseConnectionString(schema.PostgreSQLBackend, "host=localhost port=5432 dbname=cofail"))
}

func TestConfigClone(t *testing.T) {
	cfg := &Config{DataPath: "a.txt", MinSupport: 0.1, Workers: 4}
	clone := cfg.Clone()

	clone.DataPath = "b.txt"
	clone.Workers = 8

	assert.Equal(t, "a.txt", cfg.DataPath)
	assert.Equal(t, 4, cfg.Workers)
}

func TestConfigParams(t *testing.T) {
	cfg := &Config{
		DataPath:        "complaints.txt",
		ChunkSize:       100,
		MaxTransactions: 500,
		MinSupport:      0.05,
		Metric:          schema.LiftMetric,
		MinThreshold:    1.0,
		Truncate:        schema.SampleTruncate,
		Workers:         2,
	}

	params := cfg.ConfigParams()
	assert.Equal(t, "complaints.txt", params["data_path"])
	assert.Equal(t, 0.05, params["min_support"])
	assert.Equal(t, "lift", params["metric"])
	assert.Equal(t, "sample", params["truncate"])
}

func TestProcessProfilingConfig(t *testing.T) {
	profile := &ProfileConfig{}
	require.NoError(t, ProcessProfilingConfig(profile, ""))
	assert.False(t, profile.Enabled)

	require.NoError(t, ProcessProfilingConfig(profile, "perf"))
	assert.True(t, profile.Enabled)
	assert.Equal(t, "perf", profile.Prefix)
}
