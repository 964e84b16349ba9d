package kil

import (
	"iter"
	"slices"
	"strconv"
	"strings"
)

// noneToken is the text that stands for "no shipment scheduled".
const noneToken = "none"

// Projection is a filtered and sorted view over a Store.
//
// A Projection never holds line items of its own: its membership is rebuilt
// from the Store every time the Store changes, or the filter or the sort
// changes, so that reading it always reflects the current Store.
type Projection struct {
	store       *Store
	filter      string
	sort        Sort
	items       []*LineItem
	unsubscribe func()
}

// NewProjection creates a projection over every line item of s, in insertion order.
func NewProjection(s *Store) *Projection {
	p := &Projection{store: s}
	p.unsubscribe = s.Subscribe(p)
	p.rebuild()
	return p
}

// Close stops following the Store. The projection keeps its last state.
func (p *Projection) Close() {
	if p.unsubscribe != nil {
		p.unsubscribe()
		p.unsubscribe = nil
	}
}

// StoreChanged implements Observer.
func (p *Projection) StoreChanged(Change) { p.rebuild() }

// Filter returns the current filter text.
func (p *Projection) Filter() string { return p.filter }

// SetFilter replaces the filter text. See [Matches] for the matching rule.
func (p *Projection) SetFilter(text string) {
	p.filter = text
	p.rebuild()
}

// Sort returns the current sort.
func (p *Projection) Sort() Sort { return p.sort }

// SetSort replaces the sort.
func (p *Projection) SetSort(s Sort) {
	p.sort = s
	p.rebuild()
}

// Len returns the number of line items in the projection.
func (p *Projection) Len() int { return len(p.items) }

// At returns the i-th line item of the projection.
func (p *Projection) At(i int) *LineItem { return p.items[i] }

// Items returns the line items of the projection, in order.
func (p *Projection) Items() []*LineItem { return slices.Clone(p.items) }

// All returns an iterator over the line items of the projection, in order.
func (p *Projection) All() iter.Seq2[int, *LineItem] { return slices.All(p.Items()) }

// rebuild recomputes membership from scratch, then sorts it. The sort is
// stable, meaning that ties keep the Store insertion order.
func (p *Projection) rebuild() {
	items := make([]*LineItem, 0, p.store.Len())
	for _, item := range p.store.items {
		if Matches(item, p.filter) {
			items = append(items, item)
		}
	}
	slices.SortStableFunc(items, p.sort.compare())
	p.items = items
}

// Matches reports whether a line item is selected by a filter text.
//
// The match is a case-insensitive substring search in the line item name, in
// its stock written in decimal, in its next shipment date (YYYY-MM-DD) or, when
// no shipment is scheduled, in the word "none". Surrounding blanks are
// ignored, so a blank filter matches everything. The filter "none" alone
// selects exactly the line items without a scheduled shipment.
func Matches(item *LineItem, filter string) bool {
	filter = strings.ToLower(strings.TrimSpace(filter))
	if filter == "" {
		return true
	}
	if filter == noneToken {
		return item.next == nil
	}
	if strings.Contains(strings.ToLower(item.name), filter) {
		return true
	}
	if strings.Contains(strconv.Itoa(item.stock), filter) {
		return true
	}
	if item.next != nil {
		return strings.Contains(item.next.Date.String(), filter)
	}
	return strings.Contains(noneToken, filter)
}
