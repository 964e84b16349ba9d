package kil

import (
	"cmp"
	"fmt"
	"strings"
)

// Column identifies a sortable column of the line item table.
type Column int

const (
	// ColumnInsertion orders line items as they were added to the Store.
	ColumnInsertion Column = iota
	// ColumnName orders line items by name, ignoring case.
	ColumnName
	// ColumnStock orders line items by current stock.
	ColumnStock
	// ColumnShipment orders line items by next shipment date, unscheduled last.
	ColumnShipment
)

// columns maps a column to its name and comparator. Comparators never look at
// the insertion order: ties are resolved by the stable sort.
var columns = map[Column]struct {
	name    string
	compare func(a, b *LineItem) int
}{
	ColumnInsertion: {"insertion", func(a, b *LineItem) int { return 0 }},
	ColumnName:      {"name", compareName},
	ColumnStock:     {"stock", func(a, b *LineItem) int { return cmp.Compare(a.stock, b.stock) }},
	ColumnShipment:  {"shipment", compareShipment},
}

func (c Column) String() string {
	if col, ok := columns[c]; ok {
		return col.name
	}
	return "unknown"
}

// ParseColumn parses a column name.
func ParseColumn(s string) (Column, error) {
	for c, col := range columns {
		if col.name == strings.ToLower(strings.TrimSpace(s)) {
			return c, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown column %q", ErrInvalidInput, s)
}

func compareName(a, b *LineItem) int {
	return strings.Compare(strings.ToLower(a.name), strings.ToLower(b.name))
}

func compareShipment(a, b *LineItem) int {
	switch {
	case a.next == nil && b.next == nil:
		return 0
	case a.next == nil:
		return 1
	case b.next == nil:
		return -1
	}
	return a.next.Date.Compare(b.next.Date)
}

// Sort is a column and a direction.
type Sort struct {
	Column Column
	Desc   bool
}

// ParseSort parses a sort expressed as "column" or "column:asc" or "column:desc".
// An empty string is the insertion order.
func ParseSort(s string) (Sort, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Sort{}, nil
	}
	name, dir, _ := strings.Cut(s, ":")
	col, err := ParseColumn(name)
	if err != nil {
		return Sort{}, err
	}
	switch strings.ToLower(dir) {
	case "", "asc":
		return Sort{Column: col}, nil
	case "desc":
		return Sort{Column: col, Desc: true}, nil
	default:
		return Sort{}, fmt.Errorf("%w: unknown sort direction %q", ErrInvalidInput, dir)
	}
}

func (s Sort) String() string {
	if s.Desc {
		return s.Column.String() + ":desc"
	}
	return s.Column.String()
}

// compare returns the comparator for this sort, direction included.
func (s Sort) compare() func(a, b *LineItem) int {
	col, ok := columns[s.Column]
	if !ok {
		col = columns[ColumnInsertion]
	}
	if s.Desc {
		return func(a, b *LineItem) int { return -col.compare(a, b) }
	}
	return col.compare
}
