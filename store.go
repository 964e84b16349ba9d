package kil

import (
	"fmt"
	"slices"

	"github.com/etnz/kil/date"
)

// ChangeKind identifies the kind of change a Store notifies.
type ChangeKind int

const (
	// Added is notified after a line item was appended.
	Added ChangeKind = iota
	// Removed is notified after a line item was deleted.
	Removed
	// Updated is notified after a line item was mutated in place.
	Updated
	// Reset is notified after many line items were appended at once (import).
	Reset
)

func (k ChangeKind) String() string {
	switch k {
	case Added:
		return "added"
	case Removed:
		return "removed"
	case Updated:
		return "updated"
	case Reset:
		return "reset"
	default:
		return "unknown"
	}
}

// Change describes a successful Store modification.
type Change struct {
	Kind ChangeKind
	Item *LineItem // Item is the line item concerned, nil for Reset.
}

// Observer receives the changes of a Store.
//
// StoreChanged is called synchronously, before the call that modified the
// Store returns.
type Observer interface {
	StoreChanged(Change)
}

// ObserverFunc adapts an ordinary function to the Observer interface.
type ObserverFunc func(Change)

func (f ObserverFunc) StoreChanged(c Change) { f(c) }

// Store is the authoritative collection of line items.
//
// In a Store line items are kept in insertion order and names are unique
// (case-sensitive).
type Store struct {
	items     []*LineItem
	index     map[string]*LineItem // index line items by name
	observers []*subscription
	today     func() date.Date
}

type subscription struct{ o Observer }

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		items: make([]*LineItem, 0),
		index: make(map[string]*LineItem),
		today: date.Today,
	}
}

// SetClock replaces the function used to date history events.
func (s *Store) SetClock(today func() date.Date) { s.today = today }

// Subscribe registers an observer. The returned function cancels the subscription.
func (s *Store) Subscribe(o Observer) (cancel func()) {
	sub := &subscription{o}
	s.observers = append(s.observers, sub)
	return func() {
		s.observers = slices.DeleteFunc(s.observers, func(x *subscription) bool { return x == sub })
	}
}

func (s *Store) notify(c Change) {
	for _, sub := range slices.Clone(s.observers) {
		sub.o.StoreChanged(c)
	}
}

// Len returns the number of line items.
func (s *Store) Len() int { return len(s.items) }

// All returns the line items in insertion order.
// The returned slice is a copy, the line items are not.
func (s *Store) All() []*LineItem { return slices.Clone(s.items) }

// Lookup returns the line item with this exact name.
func (s *Store) Lookup(name string) (*LineItem, bool) {
	item, ok := s.index[name]
	return item, ok
}

// Contains reports whether item is a current member of the store.
func (s *Store) Contains(item *LineItem) bool {
	if item == nil {
		return false
	}
	return s.index[item.name] == item
}

// Add appends a new line item at the end of the store.
func (s *Store) Add(name string, stock int) (*LineItem, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: line item name is empty", ErrInvalidInput)
	}
	if stock < 0 {
		return nil, fmt.Errorf("%w: initial stock of %q cannot be negative, got %d", ErrInvalidInput, name, stock)
	}
	if _, exists := s.index[name]; exists {
		return nil, fmt.Errorf("%w: line item %q already exists", ErrDuplicateName, name)
	}
	item := &LineItem{name: name, stock: stock}
	s.items = append(s.items, item)
	s.index[name] = item
	s.notify(Change{Kind: Added, Item: item})
	return item, nil
}

// Remove deletes a line item from the store.
func (s *Store) Remove(item *LineItem) error {
	if !s.Contains(item) {
		return fmt.Errorf("%w: line item %v is not in the store", ErrNotFound, item)
	}
	s.items = slices.DeleteFunc(s.items, func(x *LineItem) bool { return x == item })
	delete(s.index, item.name)
	s.notify(Change{Kind: Removed, Item: item})
	return nil
}

// Mutate applies m to a line item of the store and records it in its history.
// On error the line item is left unchanged.
func (s *Store) Mutate(item *LineItem, m Mutation) error {
	if !s.Contains(item) {
		return fmt.Errorf("%w: line item %v is not in the store", ErrNotFound, item)
	}
	if err := m.apply(item); err != nil {
		return fmt.Errorf("cannot %s %q: %w", m.What(), item.name, err)
	}
	if e, ok := m.event(s.today()); ok {
		item.history = append(item.history, e)
	}
	s.notify(Change{Kind: Updated, Item: item})
	return nil
}

// Receive records a delivery of 'amount' units. See [Receive].
func (s *Store) Receive(item *LineItem, amount int) error {
	return s.Mutate(item, Receive{Amount: amount})
}

// Use records the consumption of 'amount' units. See [Use].
func (s *Store) Use(item *LineItem, amount int) error {
	return s.Mutate(item, Use{Amount: amount})
}

// Order schedules a shipment of 'expected' units on a given day. See [Order].
func (s *Store) Order(item *LineItem, on date.Date, expected int) error {
	return s.Mutate(item, Order{Date: on, Expected: expected})
}

// SetUnitCost sets the unit cost of a line item. See [Price].
func (s *Store) SetUnitCost(item *LineItem, cost Money) error {
	return s.Mutate(item, Price{Cost: cost})
}

// appendAll appends line items that have already been validated, and notifies
// a single Reset change.
func (s *Store) appendAll(items []*LineItem) {
	for _, item := range items {
		s.items = append(s.items, item)
		s.index[item.name] = item
	}
	s.notify(Change{Kind: Reset})
}
