package kil

import (
	"fmt"
	"slices"

	"github.com/etnz/kil/date"
)

// Shipment is a pending delivery scheduled for a line item.
type Shipment struct {
	Date     date.Date // Date the shipment is expected on.
	Expected int       // Expected is the amount ordered, always positive.
}

// LineItem is a named stock of a single kind of goods.
//
// A LineItem is owned by a Store: it is read through its accessors and
// mutated only through the Store, so that every change is notified.
type LineItem struct {
	name    string
	stock   int
	next    *Shipment
	cost    *Money
	history []Event
}

// Name returns the line item name, unique within its Store.
func (item *LineItem) Name() string { return item.name }

// Stock returns the current stock, never negative.
func (item *LineItem) Stock() int { return item.stock }

// NextShipment returns the pending shipment, if any.
func (item *LineItem) NextShipment() (Shipment, bool) {
	if item.next == nil {
		return Shipment{}, false
	}
	return *item.next, true
}

// HasNextShipment reports whether a shipment is scheduled.
func (item *LineItem) HasNextShipment() bool { return item.next != nil }

// UnitCost returns the cost of a single unit, if known.
func (item *LineItem) UnitCost() (Money, bool) {
	if item.cost == nil {
		return Money{}, false
	}
	return *item.cost, true
}

// History returns a copy of the events applied to this line item, oldest first.
func (item *LineItem) History() []Event { return slices.Clone(item.history) }

func (item *LineItem) String() string { return item.name }

// receiveShipment adds 'amount' to the stock. Any pending shipment is
// considered fulfilled, whatever the amount actually received.
func (item *LineItem) receiveShipment(amount int) error {
	if amount <= 0 {
		return fmt.Errorf("%w: received amount must be positive, got %d", ErrInvalidInput, amount)
	}
	item.stock += amount
	item.next = nil
	return nil
}

// useAmount removes 'amount' from the stock.
func (item *LineItem) useAmount(amount int) error {
	if amount <= 0 {
		return fmt.Errorf("%w: used amount must be positive, got %d", ErrInvalidInput, amount)
	}
	if amount > item.stock {
		return fmt.Errorf("%w: cannot use %d of %q, only %d in stock", ErrInsufficientStock, amount, item.name, item.stock)
	}
	item.stock -= amount
	return nil
}

// scheduleOrder replaces the pending shipment.
func (item *LineItem) scheduleOrder(on date.Date, expected int) error {
	if expected <= 0 {
		return fmt.Errorf("%w: expected amount must be positive, got %d", ErrInvalidInput, expected)
	}
	if on.IsZero() {
		return fmt.Errorf("%w: shipment date is missing", ErrInvalidInput)
	}
	item.next = &Shipment{Date: on, Expected: expected}
	return nil
}

// setUnitCost replaces the unit cost.
func (item *LineItem) setUnitCost(cost Money) error {
	if err := cost.validate(); err != nil {
		return fmt.Errorf("invalid unit cost for %q: %w", item.name, err)
	}
	item.cost = &cost
	return nil
}
