package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/huangsam/cofail/internal/contract"
	"github.com/huangsam/cofail/internal/parquet"
	"github.com/huangsam/cofail/schema"
)

// WriteDatasetResults exports the cleaned dataset, dispatching based on the
// output format configured. Text mode is handled upstream by the summary
// writer since raw records are not table-friendly.
func WriteDatasetResults(ds *schema.Dataset, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeDatasetJSONResults(ds, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeDatasetCSVResults(ds, cfg); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		path := cfg.OutputFile
		if path == "" {
			path = "cofail_dataset.parquet"
		}
		if err := parquet.WriteDatasetFile(path, ds); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	default:
		return fmt.Errorf("dataset export does not support %s output", cfg.Output)
	}

	fmt.Fprintf(os.Stderr, "Exported %d records in %v\n", ds.Len(), duration)
	return nil
}

// writeDatasetJSONResults handles opening the file and calling the JSON writer.
func writeDatasetJSONResults(ds *schema.Dataset, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSON(w, ds.Records)
	}, "Wrote JSON")
}

// writeDatasetCSVResults writes the cleaned records with the canonical column names.
func writeDatasetCSVResults(ds *schema.Dataset, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		header := []string{
			"cmplid", "odino", "manufacturer", "make", "model", "year",
			"crash", "fail_date", "fire", "injured", "deaths", "component",
			"city", "state", "vin", "date_added", "date_received", "miles",
			"occurrences", "description",
		}
		return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
			for i := range ds.Records {
				r := &ds.Records[i]
				rec := []string{
					r.CmplID,
					r.ODINo,
					r.Manufacturer,
					r.Make,
					r.Model,
					r.Year,
					strconv.FormatBool(r.Crash),
					formatDate(r.FailDate),
					strconv.FormatBool(r.Fire),
					strconv.Itoa(r.Injured),
					strconv.Itoa(r.Deaths),
					r.Component,
					r.City,
					r.State,
					r.VIN,
					formatDate(r.DateAdded),
					formatDate(r.DateReceived),
					strconv.FormatInt(r.Miles, 10),
					strconv.Itoa(r.Occurrences),
					r.Description,
				}
				if err := csvWriter.Write(rec); err != nil {
					return err
				}
			}
			return nil
		})
	}, "Wrote CSV")
}

// formatDate renders a nullable date as YYYY-MM-DD or empty.
func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}
