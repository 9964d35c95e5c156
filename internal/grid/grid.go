// Package grid lays out raw collection rows for the read-only explorer:
// sorted and filtered data rows with synthetic placeholder rows injected at
// a fixed stride.
package grid

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// Stride is the period of synthetic rows: every 6th output row is one.
const Stride = 6

// Label is the text rendered in place of a synthetic row's cells.
const Label = "Advertisement"

// Record is one raw row keyed by column name.
type Record map[string]any

// Row is one output row. Synthetic rows carry no record.
type Row struct {
	Synthetic bool
	Record    Record
}

// Options controls Build.
type Options struct {
	// SortBy names the column to order by. Empty keeps input order.
	SortBy string
	Desc   bool
	// Filter keeps records where any cell contains it, case-insensitively.
	Filter string
}

// Build filters and sorts records, then injects synthetic rows. The input
// slice is not modified.
func Build(records []Record, opts Options) []Row {
	data := make([]Record, 0, len(records))
	needle := strings.ToLower(strings.TrimSpace(opts.Filter))
	for _, rec := range records {
		if needle == "" || matches(rec, needle) {
			data = append(data, rec)
		}
	}

	if opts.SortBy != "" {
		slices.SortStableFunc(data, func(a, b Record) int {
			c := compare(a[opts.SortBy], b[opts.SortBy])
			if opts.Desc {
				return -c
			}
			return c
		})
	}

	rows := make([]Row, len(data))
	for i, rec := range data {
		rows[i] = Row{Record: rec}
	}
	return Inject(rows)
}

// Inject returns rows with a synthetic row at every 0-based output index
// Stride-2 + k*Stride that is below the number of data rows. Synthetic rows
// already present are dropped first, so Inject can be called on its own
// output.
func Inject(rows []Row) []Row {
	data := Strip(rows)
	out := make([]Row, 0, len(data)+len(data)/(Stride-1))
	next := Stride - 2
	for _, r := range data {
		if len(out) == next && next < len(data) {
			out = append(out, Row{Synthetic: true})
			next += Stride
		}
		out = append(out, r)
	}
	return out
}

// Strip returns the data rows of rows in order.
func Strip(rows []Row) []Row {
	out := make([]Row, 0, len(rows))
	for _, r := range rows {
		if !r.Synthetic {
			out = append(out, r)
		}
	}
	return out
}

// Columns returns the union of record keys, "id" first and the rest sorted.
func Columns(records []Record) []string {
	seen := map[string]bool{}
	var cols []string
	for _, rec := range records {
		for k := range rec {
			if !seen[k] {
				seen[k] = true
				cols = append(cols, k)
			}
		}
	}
	slices.SortFunc(cols, func(a, b string) int {
		switch {
		case a == b:
			return 0
		case a == "id":
			return -1
		case b == "id":
			return 1
		}
		return strings.Compare(a, b)
	})
	return cols
}

// Cell formats one value for display.
func Cell(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		if v == float64(int64(v)) {
			return fmt.Sprintf("%d", int64(v))
		}
		return fmt.Sprintf("%g", v)
	default:
		return fmt.Sprint(v)
	}
}

func matches(rec Record, needle string) bool {
	for _, v := range rec {
		if strings.Contains(strings.ToLower(Cell(v)), needle) {
			return true
		}
	}
	return false
}

// compare orders nil first, then numbers, then bools, then everything else
// by its display text.
func compare(a, b any) int {
	ra, rb := rank(a), rank(b)
	if ra != rb {
		return cmp.Compare(ra, rb)
	}
	switch av := a.(type) {
	case nil:
		return 0
	case float64:
		return cmp.Compare(av, b.(float64))
	case int:
		return cmp.Compare(av, b.(int))
	case bool:
		bv := b.(bool)
		switch {
		case av == bv:
			return 0
		case !av:
			return -1
		}
		return 1
	}
	return strings.Compare(Cell(a), Cell(b))
}

func rank(v any) int {
	switch v.(type) {
	case nil:
		return 0
	case float64:
		return 1
	case int:
		return 2
	case bool:
		return 3
	}
	return 4
}
