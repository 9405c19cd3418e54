package quiver

import (
	"bytes"
	"math"
	"sort"
	"strconv"

	"github.com/tidwall/gjson"
)

// Row maps column names to cell values as decoded from JSON
// (string, float64, bool or nil).
type Row map[string]any

// Table is an ordered row/column structure built from an upstream JSON
// payload. Columns appear in the order they were first encountered across
// rows; the zero value is an empty table.
type Table struct {
	Columns []string
	Rows    []Row
}

// Len returns the number of rows.
func (t Table) Len() int { return len(t.Rows) }

// Empty reports whether the table has no rows.
func (t Table) Empty() bool { return len(t.Rows) == 0 }

// TopN returns the n rows with the largest numeric value in the given
// column, in descending order. Tables with n rows or fewer pass through
// unchanged. Rows whose cell is missing or non-numeric sort last.
func (t Table) TopN(column string, n int) Table {
	if n < 0 || t.Len() <= n {
		return t
	}

	rows := make([]Row, len(t.Rows))
	copy(rows, t.Rows)
	sort.SliceStable(rows, func(i, j int) bool {
		return cellNumber(rows[i][column]) > cellNumber(rows[j][column])
	})

	return Table{Columns: t.Columns, Rows: rows[:n]}
}

// cellNumber coerces a cell value to a float64 for ordering purposes.
func cellNumber(v any) float64 {
	switch x := v.(type) {
	case float64:
		return x
	case string:
		if f, err := strconv.ParseFloat(x, 64); err == nil {
			return f
		}
	}
	return math.Inf(-1)
}

// tableFromJSON converts an upstream JSON payload to a Table. An array of
// objects becomes one row per object; a bare object becomes a single row;
// anything else (null, empty body, scalars) yields an empty table.
func tableFromJSON(body []byte) Table {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return Table{}
	}

	parsed := gjson.ParseBytes(trimmed)
	switch {
	case parsed.IsArray():
		var t Table
		seen := make(map[string]struct{})
		parsed.ForEach(func(_, elem gjson.Result) bool {
			if !elem.IsObject() {
				return true
			}
			t.Rows = append(t.Rows, rowFromObject(elem, &t.Columns, seen))
			return true
		})
		return t
	case parsed.IsObject():
		var t Table
		seen := make(map[string]struct{})
		t.Rows = append(t.Rows, rowFromObject(parsed, &t.Columns, seen))
		return t
	default:
		return Table{}
	}
}

// rowFromObject flattens one JSON object into a Row, recording previously
// unseen keys into cols in document order.
func rowFromObject(obj gjson.Result, cols *[]string, seen map[string]struct{}) Row {
	row := make(Row)
	obj.ForEach(func(key, value gjson.Result) bool {
		name := key.String()
		if _, ok := seen[name]; !ok {
			seen[name] = struct{}{}
			*cols = append(*cols, name)
		}
		row[name] = value.Value()
		return true
	})
	return row
}
