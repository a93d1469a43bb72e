package database

import (
	"database/sql"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ResultSet is one set of rows produced by a procedure or query.
// Cells hold the driver's values with []byte already turned into string.
type ResultSet struct {
	Columns []string
	Rows    [][]any
}

// Result holds every result set a call produced, in order.
type Result struct {
	Sets []ResultSet
}

// Last returns the final result set, or an empty one.
// Procedures in the catalog end with the SELECT callers care about.
func (r *Result) Last() ResultSet {
	if r == nil || len(r.Sets) == 0 {
		return ResultSet{}
	}
	return r.Sets[len(r.Sets)-1]
}

// Strings renders every cell as display text.
func (s ResultSet) Strings() [][]string {
	out := make([][]string, 0, len(s.Rows))
	for _, row := range s.Rows {
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = FormatValue(v)
		}
		out = append(out, cells)
	}
	return out
}

func drain(rows *sql.Rows) (*Result, error) {
	defer rows.Close()

	res := &Result{}
	for {
		set, err := readSet(rows)
		if err != nil {
			return res, err
		}
		if len(set.Columns) > 0 {
			res.Sets = append(res.Sets, set)
		}
		if !rows.NextResultSet() {
			break
		}
	}
	return res, rows.Err()
}

func readSet(rows *sql.Rows) (ResultSet, error) {
	columns, err := rows.Columns()
	if err != nil {
		return ResultSet{}, err
	}

	set := ResultSet{Columns: columns, Rows: [][]any{}}
	for rows.Next() {
		values := make([]any, len(columns))
		valuePtrs := make([]any, len(columns))
		for i := range columns {
			valuePtrs[i] = &values[i]
		}
		if err := rows.Scan(valuePtrs...); err != nil {
			return set, err
		}
		for i, v := range values {
			if b, ok := v.([]byte); ok {
				values[i] = string(b)
			}
		}
		set.Rows = append(set.Rows, values)
	}
	return set, rows.Err()
}

// FormatValue turns a driver value into display text.
func FormatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []byte:
		return string(t)
	case time.Time:
		if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 {
			return t.Format(time.DateOnly)
		}
		return t.Format(time.DateTime)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}

// RowReader walks one positional row, converting each cell to the
// requested Go type. Reading past the end yields zero values; the first
// conversion failure is kept in Err.
type RowReader struct {
	row []any
	pos int
	err error
}

func NewRowReader(row []any) *RowReader {
	return &RowReader{row: row}
}

// More reports whether unread cells remain.
func (r *RowReader) More() bool {
	return r.pos < len(r.row)
}

func (r *RowReader) Err() error {
	return r.err
}

func (r *RowReader) next() any {
	if r.pos >= len(r.row) {
		return nil
	}
	v := r.row[r.pos]
	r.pos++
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return v
}

func (r *RowReader) fail(col int, want string, v any) {
	if r.err == nil {
		r.err = fmt.Errorf("column %d: cannot read %T as %s", col, v, want)
	}
}

func (r *RowReader) Int64() int64 {
	col := r.pos
	switch v := r.next().(type) {
	case nil:
		return 0
	case int64:
		return v
	case int32:
		return int64(v)
	case int:
		return int64(v)
	case uint64:
		return int64(v)
	case float32:
		return int64(v)
	case float64:
		return int64(v)
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			r.fail(col, "integer", v)
		}
		return n
	default:
		r.fail(col, "integer", v)
		return 0
	}
}

func (r *RowReader) Int() int {
	return int(r.Int64())
}

func (r *RowReader) Text() string {
	return FormatValue(r.next())
}

func (r *RowReader) Decimal() decimal.Decimal {
	col := r.pos
	switch v := r.next().(type) {
	case nil:
		return decimal.Zero
	case int64:
		return decimal.NewFromInt(v)
	case int32:
		return decimal.NewFromInt32(v)
	case uint64:
		return decimal.NewFromBigInt(new(big.Int).SetUint64(v), 0)
	case float32:
		return decimal.NewFromFloat32(v)
	case float64:
		return decimal.NewFromFloat(v)
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(v))
		if err != nil {
			r.fail(col, "decimal", v)
		}
		return d
	default:
		r.fail(col, "decimal", v)
		return decimal.Zero
	}
}

func (r *RowReader) Time() time.Time {
	col := r.pos
	switch v := r.next().(type) {
	case nil:
		return time.Time{}
	case time.Time:
		return v
	case string:
		for _, layout := range []string{time.DateOnly, time.DateTime, time.RFC3339} {
			if t, err := time.Parse(layout, v); err == nil {
				return t
			}
		}
		r.fail(col, "time", v)
		return time.Time{}
	default:
		r.fail(col, "time", v)
		return time.Time{}
	}
}

func (r *RowReader) Bool() bool {
	col := r.pos
	switch v := r.next().(type) {
	case nil:
		return false
	case bool:
		return v
	case int64:
		return v != 0
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			r.fail(col, "bool", v)
		}
		return b
	default:
		r.fail(col, "bool", v)
		return false
	}
}
