package database

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRowReaderConvertsDriverValues(t *testing.T) {
	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	r := NewRowReader([]any{int64(5), []byte("Widget"), "19.90", day, int64(1)})

	assert.Equal(t, int64(5), r.Int64())
	assert.Equal(t, "Widget", r.Text())
	assert.True(t, decimal.RequireFromString("19.9").Equal(r.Decimal()))
	assert.Equal(t, day, r.Time())
	assert.True(t, r.Bool())
	assert.False(t, r.More())
	assert.NoError(t, r.Err())
}

func TestRowReaderAcceptsBinaryProtocolNumbers(t *testing.T) {
	r := NewRowReader([]any{float32(4.5), uint64(3), int32(-7), float32(12), uint64(18446744073709551615)})

	assert.Equal(t, "4.5", r.Decimal().String())
	assert.Equal(t, "3", r.Decimal().String())
	assert.Equal(t, "-7", r.Decimal().String())
	assert.Equal(t, int64(12), r.Int64())
	assert.Equal(t, "18446744073709551615", r.Decimal().String())
	assert.NoError(t, r.Err())
}

func TestRowReaderShortRowYieldsZeroValues(t *testing.T) {
	r := NewRowReader([]any{"3"})

	assert.Equal(t, 3, r.Int())
	assert.Equal(t, "", r.Text())
	assert.True(t, r.Decimal().IsZero())
	assert.False(t, r.Bool())
	assert.NoError(t, r.Err())
}

func TestRowReaderKeepsFirstError(t *testing.T) {
	r := NewRowReader([]any{"abc", "not-a-date"})

	r.Int64()
	r.Time()

	assert.EqualError(t, r.Err(), "column 0: cannot read string as integer")
}

func TestRowReaderParsesDateStrings(t *testing.T) {
	r := NewRowReader([]any{"2024-03-01", "2024-03-01 10:30:00"})

	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), r.Time())
	assert.Equal(t, time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC), r.Time())
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "", FormatValue(nil))
	assert.Equal(t, "12", FormatValue(int64(12)))
	assert.Equal(t, "0.5", FormatValue(0.5))
	assert.Equal(t, "2024-03-01", FormatValue(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2024-03-01 08:15:00", FormatValue(time.Date(2024, 3, 1, 8, 15, 0, 0, time.UTC)))
}

func TestResultLastOnEmpty(t *testing.T) {
	var r *Result
	assert.Empty(t, r.Last().Rows)
	assert.Empty(t, (&Result{}).Last().Columns)
}

func TestResultSetStrings(t *testing.T) {
	set := ResultSet{Columns: []string{"ID", "Name"}, Rows: [][]any{{int64(1), "Ann"}}}
	assert.Equal(t, [][]string{{"1", "Ann"}}, set.Strings())
}
