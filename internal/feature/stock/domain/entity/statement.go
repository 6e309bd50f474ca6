package entity

import "time"

// StatementColumn is one reporting period of a financial statement.
type StatementColumn struct {
	Period time.Time
	Items  map[string]float64 // line item name -> value, e.g. "Total Debt"
}

// StatementTable is a balance sheet or cash-flow statement.
// Columns are ordered most recent first and may be empty.
type StatementTable struct {
	Columns []StatementColumn
}

// Empty reports whether the table has no reporting periods.
func (t StatementTable) Empty() bool {
	return len(t.Columns) == 0
}

// HasRow reports whether any period carries the named line item.
func (t StatementTable) HasRow(name string) bool {
	for _, c := range t.Columns {
		if _, ok := c.Items[name]; ok {
			return true
		}
	}
	return false
}

// FirstRow returns the first alias present in the table.
// Issuers label the same concept differently, so callers pass every known
// name in order of preference.
func (t StatementTable) FirstRow(aliases ...string) (string, bool) {
	for _, a := range aliases {
		if t.HasRow(a) {
			return a, true
		}
	}
	return "", false
}

// Value returns the raw value of a line item in column i.
// The second return value is false when the column or the item is missing.
func (t StatementTable) Value(row string, i int) (float64, bool) {
	if i < 0 || i >= len(t.Columns) {
		return 0, false
	}
	v, ok := t.Columns[i].Items[row]
	return v, ok
}
