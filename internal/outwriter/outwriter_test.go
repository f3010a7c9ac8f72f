package outwriter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"math"
	"testing"

	"github.com/huangsam/cofail/internal/contract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetMaxTableItemsWidth(t *testing.T) {
	// Width override takes precedence over detection.
	wide := &contract.Config{Width: 300}
	assert.Equal(t, 60, getMaxTableItemsWidth(wide, 2))

	narrow := &contract.Config{Width: 40}
	assert.Equal(t, 15, getMaxTableItemsWidth(narrow, 2))

	medium := &contract.Config{Width: 165}
	got := getMaxTableItemsWidth(medium, 2)
	assert.GreaterOrEqual(t, got, 15)
	assert.LessOrEqual(t, got, 60)
}

func TestRuleLabel(t *testing.T) {
	plain := &contract.Config{UseColors: false}
	assert.Equal(t, contract.StrongValue, ruleLabel(2.5, plain))
	assert.Equal(t, contract.NegativeValue, ruleLabel(0.5, plain))

	colored := &contract.Config{UseColors: true}
	assert.Contains(t, ruleLabel(2.5, colored), contract.StrongValue)
}

func TestCreateFormatters(t *testing.T) {
	fmtFloat, fmtConviction := createFormatters(3)

	assert.Equal(t, "0.667", fmtFloat(2.0/3.0))
	assert.Equal(t, "1.500", fmtConviction(1.5))
	assert.Equal(t, "inf", fmtConviction(math.Inf(1)))

	fmtFloat, _ = createFormatters(1)
	assert.Equal(t, "0.7", fmtFloat(2.0/3.0))
}

func TestFiniteOrNil(t *testing.T) {
	v := finiteOrNil(1.5)
	require.NotNil(t, v)
	assert.Equal(t, 1.5, *v)

	assert.Nil(t, finiteOrNil(math.Inf(1)))
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeJSON(&buf, map[string]int{"count": 3}))

	var decoded map[string]int
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, 3, decoded["count"])
	// Indented output spans multiple lines.
	assert.Contains(t, buf.String(), "\n")
}

func TestWriteCSVWithHeader(t *testing.T) {
	var buf bytes.Buffer
	err := writeCSVWithHeader(&buf, []string{"rank", "items"}, func(w *csv.Writer) error {
		return w.Write([]string{"1", "BRAKES, ENGINE"})
	})
	require.NoError(t, err)

	reader := csv.NewReader(&buf)
	rows, err := reader.ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"rank", "items"}, rows[0])
	assert.Equal(t, []string{"1", "BRAKES, ENGINE"}, rows[1])
}
