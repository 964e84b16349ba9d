package kil

import (
	"testing"

	"github.com/etnz/kil/date"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// cmpItems compares line items field by field.
var cmpItems = cmp.Options{
	cmp.AllowUnexported(LineItem{}, date.Date{}),
	cmp.Comparer(func(a, b Money) bool { return a.Equal(b) }),
	cmpopts.EquateEmpty(),
}

// EUR is a helper for test to create euro money from const
func EUR(v float64) Money { return M(v, "EUR") }

// day is a helper for test to create a date from a literal.
func day(s string) date.Date { return date.MustParse(s) }

// newTestStore creates a store dated on 2024-01-01 with the given line items,
// given as name and stock pairs.
func newTestStore(t *testing.T, pairs ...any) *Store {
	t.Helper()
	s := NewStore()
	s.SetClock(func() date.Date { return day("2024-01-01") })
	for i := 0; i < len(pairs); i += 2 {
		if _, err := s.Add(pairs[i].(string), pairs[i+1].(int)); err != nil {
			t.Fatalf("Add(%v, %v) unexpected error: %v", pairs[i], pairs[i+1], err)
		}
	}
	return s
}

// mustLookup returns a line item of the store or fails the test.
func mustLookup(t *testing.T, s *Store, name string) *LineItem {
	t.Helper()
	item, ok := s.Lookup(name)
	if !ok {
		t.Fatalf("Lookup(%q) not found", name)
	}
	return item
}

// names returns the names of the line items, in order.
func names(items []*LineItem) []string {
	list := make([]string, 0, len(items))
	for _, item := range items {
		list = append(list, item.Name())
	}
	return list
}
