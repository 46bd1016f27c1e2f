package gviz

import (
	"strconv"
	"strings"
)

// Cell is one GViz table cell. V holds the raw value (string, float64,
// bool or nil) and F the sheet's formatted text, when present.
type Cell struct {
	V any    `json:"v"`
	F string `json:"f,omitempty"`
}

// Row is a sparse positional record: C[i] is column i, and a nil entry or
// an index past the end is an absent cell.
type Row struct {
	C []*Cell `json:"c"`
}

// NewRow builds a row from raw values. nil values become absent cells.
func NewRow(values ...any) Row {
	r := Row{C: make([]*Cell, len(values))}
	for i, v := range values {
		if v != nil {
			r.C[i] = &Cell{V: v}
		}
	}
	return r
}

// Value returns the raw value at column i, or def when the cell or its
// value is absent.
func (r Row) Value(i int, def any) any {
	if i < 0 || i >= len(r.C) || r.C[i] == nil || r.C[i].V == nil {
		return def
	}
	return r.C[i].V
}

// Text returns the value at column i in string form.
func (r Row) Text(i int, def string) string {
	return Stringify(r.Value(i, def))
}

// Number returns the value at column i as a number. Numeric strings are
// parsed, an empty string counts as 0 and anything else yields def.
func (r Row) Number(i int, def float64) float64 {
	switch v := r.Value(i, def).(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case bool:
		if v {
			return 1
		}
		return 0
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return 0
		}
		f, err := strconv.ParseFloat(strings.Replace(s, ",", ".", 1), 64)
		if err != nil {
			return def
		}
		return f
	default:
		return def
	}
}

// Stringify renders a cell value the way the sheet displays plain values:
// whole numbers have no decimal part.
func Stringify(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}
