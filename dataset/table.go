package dataset

import (
	"math"
	"strconv"
	"strings"
	"unicode"
)

// ColumnType is the inferred element type of a column.
type ColumnType string

const (
	TypeInt    ColumnType = "int64"
	TypeFloat  ColumnType = "float64"
	TypeObject ColumnType = "object"
)

// nullTokens are the cell spellings treated as missing.
var nullTokens = map[string]struct{}{
	"":     {},
	"NA":   {},
	"N/A":  {},
	"NaN":  {},
	"nan":  {},
	"null": {},
	"NULL": {},
	"None": {},
}

// Column is one immutable, fully parsed column of a Table.
type Column struct {
	Name  string
	Type  ColumnType
	cells []string
	nulls []bool
	nums  []float64
}

func (c *Column) Len() int { return len(c.cells) }
func (c *Column) IsNull(i int) bool { return c.nulls[i] }
func (c *Column) Text(i int) string { return c.cells[i] }
func (c *Column) Float(i int) float64 { return c.nums[i] }
func (c *Column) IsNumeric() bool { return c.Type != TypeObject }

// Floats returns a copy of the parsed numeric values; missing or
// non-numeric cells are NaN.
func (c *Column) Floats() []float64 {
	out := make([]float64, len(c.nums))
	copy(out, c.nums)
	return out
}

// NullCount is the number of missing cells.
func (c *Column) NullCount() int {
	n := 0
	for _, null := range c.nulls {
		if null {
			n++
		}
	}
	return n
}

// key identifies a cell for distinct counting. Numeric columns compare by
// value so "5" and "5.0" are the same.
func (c *Column) key(i int) string {
	if c.IsNumeric() {
		return strconv.FormatFloat(c.nums[i], 'g', -1, 64)
	}
	return c.cells[i]
}

// Table is an ordered set of equally long columns. It is never modified
// after construction.
type Table struct {
	columns []*Column
	index   map[string]int
	rows    int
}

func (t *Table) Len() int { return t.rows }

// Columns returns the column names in file order.
func (t *Table) Columns() []string {
	names := make([]string, len(t.columns))
	for i, c := range t.columns {
		names[i] = c.Name
	}
	return names
}

func (t *Table) Column(name string) (*Column, bool) {
	i, ok := t.index[name]
	if !ok {
		return nil, false
	}
	return t.columns[i], true
}

func (t *Table) Has(name string) bool {
	_, ok := t.index[name]
	return ok
}

// RowHasNull reports whether any cell of row i is missing.
func (t *Table) RowHasNull(i int) bool {
	for _, c := range t.columns {
		if c.nulls[i] {
			return true
		}
	}
	return false
}

// newTable builds a Table from a header and data rows. Short rows are padded
// with missing cells.
func newTable(header []string, rows [][]string) *Table {
	names := dedupeHeader(header)
	t := &Table{
		columns: make([]*Column, len(names)),
		index:   make(map[string]int, len(names)),
		rows:    len(rows),
	}

	for ci, name := range names {
		raw := make([]string, len(rows))
		for ri, row := range rows {
			if ci < len(row) {
				raw[ri] = row[ci]
			}
		}
		t.columns[ci] = parseColumn(name, raw)
		t.index[name] = ci
	}
	return t
}

// dedupeHeader trims names and suffixes repeats with ".1", ".2", ...
func dedupeHeader(header []string) []string {
	seen := make(map[string]int, len(header))
	out := make([]string, len(header))
	for i, h := range header {
		name := strings.TrimSpace(h)
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		if n, dup := seen[name]; dup {
			seen[name] = n + 1
			name = name + "." + strconv.Itoa(n+1)
		} else {
			seen[name] = 0
		}
		out[i] = name
	}
	return out
}

func parseColumn(name string, raw []string) *Column {
	c := &Column{
		Name:  name,
		cells: make([]string, len(raw)),
		nulls: make([]bool, len(raw)),
		nums:  make([]float64, len(raw)),
	}

	allInt, allFloat, anyValue, anyNull := true, true, false, false
	for i, cell := range raw {
		trimmed := strings.TrimSpace(cell)
		if _, null := nullTokens[trimmed]; null {
			c.nulls[i] = true
			c.nums[i] = math.NaN()
			anyNull = true
			continue
		}
		anyValue = true
		c.cells[i] = normaliseText(trimmed)

		f, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			allInt, allFloat = false, false
			c.nums[i] = math.NaN()
			continue
		}
		c.nums[i] = f
		if _, err := strconv.ParseInt(trimmed, 10, 64); err != nil {
			allInt = false
		}
	}

	switch {
	case !anyValue:
		c.Type = TypeFloat
	case allInt && !anyNull:
		// an integer column with gaps is float64
		c.Type = TypeInt
	case allFloat:
		c.Type = TypeFloat
	default:
		c.Type = TypeObject
	}
	return c
}

// normaliseText strips leading/trailing whitespace and collapses internal whitespace.
func normaliseText(s string) string {
	s = strings.TrimSpace(s)
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return unicode.IsSpace(r)
	})
	return strings.Join(fields, " ")
}
