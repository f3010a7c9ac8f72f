package core

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/huangsam/cofail/internal/contract"
	"github.com/huangsam/cofail/schema"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// failDateLayout is the strict 8-digit numeric date format of the flat file.
const failDateLayout = "20060102"

// candidateEncodings lists the fallback text encodings in trial order.
// UTF-8 is validated strictly; the single-byte charmaps decode any input,
// which mirrors how real complaint extracts behave (only the UTF-8 attempt
// can actually fail).
var candidateEncodings = []struct {
	name   string
	reader func(io.Reader) io.Reader
}{
	{"utf-8", func(r io.Reader) io.Reader { return transform.NewReader(r, encoding.UTF8Validator) }},
	{"windows-1252", func(r io.Reader) io.Reader { return charmap.Windows1252.NewDecoder().Reader(r) }},
	{"latin-1", func(r io.Reader) io.Reader { return charmap.ISO8859_1.NewDecoder().Reader(r) }},
}

// LoadDataset streams the complaint flat file into a cleaned, typed dataset.
// Rows are read in chunks of cfg.ChunkSize to cap peak memory; the context
// is polled once per chunk boundary, never mid-chunk, and cancellation
// returns whatever has been cleaned so far as a normal result.
// When no candidate encoding decodes the whole file, the error is a
// *contract.EncodingError and no partial dataset is returned.
func LoadDataset(ctx context.Context, cfg *contract.Config) (*schema.Dataset, error) {
	var tried []string
	for _, enc := range candidateEncodings {
		ds, err := loadWithEncoding(ctx, cfg, enc.reader)
		if err == nil {
			return ds, nil
		}
		if errors.Is(err, encoding.ErrInvalidUTF8) {
			// Decode failure: restart the whole file with the next candidate.
			tried = append(tried, enc.name)
			continue
		}
		return nil, err
	}
	return nil, &contract.EncodingError{Path: cfg.DataPath, Tried: tried}
}

// loadWithEncoding performs one full ingestion attempt with a single decoder.
func loadWithEncoding(ctx context.Context, cfg *contract.Config, decode func(io.Reader) io.Reader) (*schema.Dataset, error) {
	f, err := os.Open(cfg.DataPath)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(decode(f))
	r.Comma = '\t'
	r.LazyQuotes = true
	r.FieldsPerRecord = -1 // field counts are checked explicitly below

	// Header row. An empty file yields an empty dataset, not an error.
	header, err := r.Read()
	if err == io.EOF {
		return &schema.Dataset{}, nil
	}
	if err != nil {
		return nil, err
	}
	if len(header) != contract.NumSchemaFields {
		return nil, &contract.SchemaError{Line: 1, Fields: len(header), Want: contract.NumSchemaFields}
	}

	var records []schema.Record
	line := 1
	done := false
	for !done {
		// The only suspend point: chunk boundary. A cancelled context means
		// "stop here" and the partial dataset is a valid result.
		if ctx.Err() != nil {
			break
		}
		for range cfg.ChunkSize {
			row, err := r.Read()
			if err == io.EOF {
				done = true
				break
			}
			if err != nil {
				return nil, err
			}
			line++
			if len(row) != contract.NumSchemaFields {
				return nil, &contract.SchemaError{Line: line, Fields: len(row), Want: contract.NumSchemaFields}
			}
			records = append(records, cleanRow(row))
		}
	}
	return &schema.Dataset{Records: records}, nil
}

// cleanRow maps one positional 20-field row onto the semantic schema and
// applies per-field normalization. Malformed dates and counts are recovered
// locally, never fatal.
func cleanRow(row []string) schema.Record {
	return schema.Record{
		CmplID:       strings.TrimSpace(row[0]),
		ODINo:        strings.TrimSpace(row[1]),
		Manufacturer: strings.TrimSpace(row[2]),
		Make:         strings.TrimSpace(row[3]),
		Model:        strings.TrimSpace(row[4]),
		Year:         strings.TrimSpace(row[5]),
		Crash:        parseFlag(row[6]),
		FailDate:     parseDate(row[7]),
		Fire:         parseFlag(row[8]),
		Injured:      parseCount(row[9]),
		Deaths:       parseCount(row[10]),
		Component:    strings.ToUpper(strings.TrimSpace(row[11])),
		City:         strings.TrimSpace(row[12]),
		State:        strings.TrimSpace(row[13]),
		VIN:          strings.TrimSpace(row[14]),
		DateAdded:    parseDate(row[15]),
		DateReceived: parseDate(row[16]),
		Miles:        parseMiles(row[17]),
		Occurrences:  parseCount(row[18]),
		Description:  strings.TrimSpace(row[19]),
	}
}

// parseDate parses the strict YYYYMMDD format, returning nil for anything
// that does not parse as a real calendar date.
func parseDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if len(s) != len(failDateLayout) {
		return nil
	}
	t, err := time.Parse(failDateLayout, s)
	if err != nil {
		return nil
	}
	return &t
}

// parseFlag interprets the Y/N crash and fire columns.
func parseFlag(s string) bool {
	return strings.EqualFold(strings.TrimSpace(s), "Y")
}

// parseCount parses a non-negative integer column, zero on garbage.
func parseCount(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// parseMiles parses the mileage column, zero on garbage.
func parseMiles(s string) int64 {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
