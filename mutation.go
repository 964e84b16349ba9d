package kil

import (
	"fmt"

	"github.com/etnz/kil/date"
)

// CommandType is a typed string for identifying mutations.
type CommandType string

// Command types used for identifying mutations and history events.
const (
	CmdReceive CommandType = "receive"
	CmdUse     CommandType = "use"
	CmdOrder   CommandType = "order"
	CmdPrice   CommandType = "price"
)

// ParseCommandType parses a string into a CommandType.
func ParseCommandType(s string) (CommandType, error) {
	switch c := CommandType(s); c {
	case CmdReceive, CmdUse, CmdOrder, CmdPrice:
		return c, nil
	default:
		return "", fmt.Errorf("unknown command %q", s)
	}
}

// Mutation is a change applied to a single line item through [Store.Mutate].
type Mutation interface {
	What() CommandType // What returns the command type of the mutation (e.g., "receive", "use").
	apply(item *LineItem) error
	event(on date.Date) (Event, bool)
}

// Receive adds a delivered amount to the stock and clears the pending shipment.
type Receive struct {
	Amount int
}

func (Receive) What() CommandType                  { return CmdReceive }
func (m Receive) apply(item *LineItem) error       { return item.receiveShipment(m.Amount) }
func (m Receive) event(on date.Date) (Event, bool) { return Event{On: on, Command: CmdReceive, Amount: m.Amount}, true }

// Use removes a consumed amount from the stock.
type Use struct {
	Amount int
}

func (Use) What() CommandType                  { return CmdUse }
func (m Use) apply(item *LineItem) error       { return item.useAmount(m.Amount) }
func (m Use) event(on date.Date) (Event, bool) { return Event{On: on, Command: CmdUse, Amount: m.Amount}, true }

// Order schedules the next shipment, replacing any pending one.
type Order struct {
	Date     date.Date
	Expected int
}

func (Order) What() CommandType            { return CmdOrder }
func (m Order) apply(item *LineItem) error { return item.scheduleOrder(m.Date, m.Expected) }
func (m Order) event(on date.Date) (Event, bool) {
	return Event{On: on, Command: CmdOrder, Amount: m.Expected, Due: m.Date}, true
}

// Price sets the unit cost used for valuation. It is not recorded in the history.
type Price struct {
	Cost Money
}

func (Price) What() CommandType             { return CmdPrice }
func (m Price) apply(item *LineItem) error  { return item.setUnitCost(m.Cost) }
func (Price) event(date.Date) (Event, bool) { return Event{}, false }

// Event is an entry of a line item history.
type Event struct {
	On      date.Date   // On is the day the mutation was recorded.
	Command CommandType // Command is one of receive, use or order.
	Amount  int         // Amount received, used or ordered.
	Due     date.Date   // Due is the expected shipment date, for orders only.
}

// validate checks an event read from an untrusted source.
func (e Event) validate() error {
	if e.On.IsZero() {
		return fmt.Errorf("missing date")
	}
	if e.Amount <= 0 {
		return fmt.Errorf("amount must be positive, got %d", e.Amount)
	}
	switch e.Command {
	case CmdReceive, CmdUse:
		if !e.Due.IsZero() {
			return fmt.Errorf("%q event cannot have a due date", e.Command)
		}
	case CmdOrder:
		if e.Due.IsZero() {
			return fmt.Errorf("order event without a due date")
		}
	default:
		return fmt.Errorf("unknown command %q", e.Command)
	}
	return nil
}
