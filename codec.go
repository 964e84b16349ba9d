package kil

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/etnz/kil/date"
	"github.com/shopspring/decimal"
)

// this file contains functions to handle the import/export format.
//
// The format is a single JSON document:
//
//	{"format":"kildata","version":1,"lineItems":[
//	{"name":"Bolts","currentStock":5,"nextShipment":{"date":"2024-01-10","expectedAmount":20}},
//	{"name":"Screws","currentStock":3,"unitCost":{"amount":0.05,"currency":"EUR"},"history":[{"on":"2024-01-02","command":"use","amount":7}]}
//	]}
//
// Line items are written one per line, in Store order. A line item without a
// pending shipment has no "nextShipment" property.

const (
	// Extension is the file extension of the import/export format.
	Extension     = ".kildata"
	formatName    = "kildata"
	formatVersion = 1
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// MarshalJSON implements the json.Marshaler interface for Shipment.
func (s Shipment) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("date", s.Date)
	w.Append("expectedAmount", s.Expected)
	return w.MarshalJSON()
}

// MarshalJSON implements the json.Marshaler interface for Money.
func (m Money) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("amount", m.value)
	w.Append("currency", m.cur)
	return w.MarshalJSON()
}

// MarshalJSON implements the json.Marshaler interface for Event.
func (e Event) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("on", e.On)
	w.Append("command", e.Command)
	w.Append("amount", e.Amount)
	w.Optional("due", e.Due)
	return w.MarshalJSON()
}

// encodeLineItem marshals a single line item with a canonical key order.
func encodeLineItem(item *LineItem) ([]byte, error) {
	var w jsonObjectWriter
	w.Append("name", item.name)
	w.Append("currentStock", item.stock)
	w.Optional("nextShipment", item.next)
	w.Optional("unitCost", item.cost)
	w.Optional("history", item.history)
	return w.MarshalJSON()
}

// Export writes every line item of s, in order, to w.
func Export(w io.Writer, s *Store) error {
	if _, err := fmt.Fprintf(w, "{%q:%q,%q:%d,%q:[\n", "format", formatName, "version", formatVersion, "lineItems"); err != nil {
		return fmt.Errorf("cannot write export header: %w", err)
	}
	for i, item := range s.items {
		data, err := encodeLineItem(item)
		if err != nil {
			return fmt.Errorf("cannot marshal line item %q: %w", item.name, err)
		}
		if i < len(s.items)-1 {
			data = append(data, ',')
		}
		if _, err := w.Write(append(data, '\n')); err != nil {
			return fmt.Errorf("cannot write line item %q: %w", item.name, err)
		}
	}
	if _, err := io.WriteString(w, "]}\n"); err != nil {
		return fmt.Errorf("cannot write export footer: %w", err)
	}
	return nil
}

// Decoding side: the document is read into a dedicated set of local structs
// whose pointer fields let us tell a missing property from a zero one.

type jshipment struct {
	Date           *date.Date `json:"date"`
	ExpectedAmount *int       `json:"expectedAmount"`
}

type jcost struct {
	Amount   *decimal.Decimal `json:"amount"`
	Currency *string          `json:"currency"`
}

type jevent struct {
	On      *date.Date   `json:"on"`
	Command *CommandType `json:"command"`
	Amount  *int         `json:"amount"`
	Due     *date.Date   `json:"due"`
}

type jentry struct {
	Name         *string    `json:"name"`
	CurrentStock *int       `json:"currentStock"`
	NextShipment *jshipment `json:"nextShipment"`
	UnitCost     *jcost     `json:"unitCost"`
	History      []jevent   `json:"history"`
}

type jdocument struct {
	Format    *string   `json:"format"`
	Version   *int      `json:"version"`
	LineItems *[]jentry `json:"lineItems"`
}

func formatError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidFormat, fmt.Sprintf(format, args...))
}

// decodeDocument parses and validates a whole document, then builds its line
// items. No line item is built unless the whole document is valid.
func decodeDocument(r io.Reader) ([]*LineItem, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s document: %w", formatName, err)
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var doc jdocument
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: not a %s document: %w", ErrInvalidFormat, formatName, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, formatError("unexpected data after the document")
	}

	// encoding/json matches keys regardless of case, and keeps the last of
	// repeated keys.
	keys := json.NewDecoder(bytes.NewReader(data))
	keys.UseNumber()
	if err := checkProperties(keys); err != nil {
		return nil, err
	}

	switch {
	case doc.Format == nil || *doc.Format != formatName:
		return nil, formatError("property %q must be %q", "format", formatName)
	case doc.Version == nil || *doc.Version != formatVersion:
		return nil, formatError("property %q must be %d", "version", formatVersion)
	case doc.LineItems == nil:
		return nil, formatError("missing property %q", "lineItems")
	}

	entries := *doc.LineItems
	names := make(map[string]int, len(entries))
	for i, e := range entries {
		if err := e.validate(); err != nil {
			return nil, fmt.Errorf("line item #%d: %w", i+1, err)
		}
		if j, exists := names[*e.Name]; exists {
			return nil, fmt.Errorf("%w: %w: line item #%d %q is already defined at #%d", ErrInvalidFormat, ErrDuplicateName, i+1, *e.Name, j+1)
		}
		names[*e.Name] = i
	}

	items := make([]*LineItem, 0, len(entries))
	for _, e := range entries {
		items = append(items, e.lineItem())
	}
	return items, nil
}

// properties are the property names of the format, in their exact spelling.
var properties = map[string]bool{
	"format": true, "version": true, "lineItems": true,
	"name": true, "currentStock": true, "nextShipment": true, "unitCost": true, "history": true,
	"date": true, "expectedAmount": true,
	"amount": true, "currency": true,
	"on": true, "command": true, "due": true,
}

// checkProperties reads the next JSON value from dec and checks that every
// object in it uses known property names, each at most once.
func checkProperties(dec *json.Decoder) error {
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidFormat, err)
	}
	switch tok {
	case json.Delim('{'):
		seen := make(map[string]bool)
		for dec.More() {
			tok, err := dec.Token()
			if err != nil {
				return fmt.Errorf("%w: %w", ErrInvalidFormat, err)
			}
			key, _ := tok.(string)
			if !properties[key] {
				return formatError("unknown property %q", key)
			}
			if seen[key] {
				return formatError("property %q is repeated", key)
			}
			seen[key] = true
			if err := checkProperties(dec); err != nil {
				return err
			}
		}
	case json.Delim('['):
		for dec.More() {
			if err := checkProperties(dec); err != nil {
				return err
			}
		}
	default:
		return nil
	}
	// closing delimiter
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidFormat, err)
	}
	return nil
}

// validate checks an entry shape and the line item invariants.
func (e jentry) validate() error {
	switch {
	case e.Name == nil:
		return formatError("missing property %q", "name")
	case *e.Name == "":
		return formatError("property %q cannot be empty", "name")
	case e.CurrentStock == nil:
		return formatError("%q: missing property %q", *e.Name, "currentStock")
	case *e.CurrentStock < 0:
		return formatError("%q: property %q cannot be negative, got %d", *e.Name, "currentStock", *e.CurrentStock)
	}

	if s := e.NextShipment; s != nil {
		switch {
		case s.Date == nil:
			return formatError("%q: shipment without a %q", *e.Name, "date")
		case s.ExpectedAmount == nil:
			return formatError("%q: shipment without an %q", *e.Name, "expectedAmount")
		case *s.ExpectedAmount <= 0:
			return formatError("%q: shipment %q must be positive, got %d", *e.Name, "expectedAmount", *s.ExpectedAmount)
		}
	}

	if c := e.UnitCost; c != nil {
		if c.Amount == nil || c.Currency == nil {
			return formatError("%q: %q requires both %q and %q", *e.Name, "unitCost", "amount", "currency")
		}
		if err := (Money{value: *c.Amount, cur: *c.Currency}).validate(); err != nil {
			return fmt.Errorf("%w: %q: invalid %q: %w", ErrInvalidFormat, *e.Name, "unitCost", err)
		}
	}

	for i, je := range e.History {
		if je.On == nil || je.Command == nil || je.Amount == nil {
			return formatError("%q: history event #%d requires %q, %q and %q", *e.Name, i+1, "on", "command", "amount")
		}
		if err := je.event().validate(); err != nil {
			return formatError("%q: history event #%d: %v", *e.Name, i+1, err)
		}
	}
	return nil
}

func (je jevent) event() Event {
	e := Event{On: *je.On, Command: *je.Command, Amount: *je.Amount}
	if je.Due != nil {
		e.Due = *je.Due
	}
	return e
}

// lineItem builds the line item of a validated entry.
func (e jentry) lineItem() *LineItem {
	item := &LineItem{name: *e.Name, stock: *e.CurrentStock}
	if s := e.NextShipment; s != nil {
		item.next = &Shipment{Date: *s.Date, Expected: *s.ExpectedAmount}
	}
	if c := e.UnitCost; c != nil {
		item.cost = &Money{value: *c.Amount, cur: *c.Currency}
	}
	for _, je := range e.History {
		item.history = append(item.history, je.event())
	}
	return item
}

// Import reads a document into a new Store, preserving the document order.
func Import(r io.Reader) (*Store, error) {
	s := NewStore()
	if err := ImportInto(r, s); err != nil {
		return nil, err
	}
	return s, nil
}

// ImportInto appends the line items of a document at the end of s.
//
// Importing is all-or-nothing: if the document is invalid (ErrInvalidFormat)
// or if one of its names is already used in s (ErrDuplicateName), s is left
// unmodified.
func ImportInto(r io.Reader, s *Store) error {
	items, err := decodeDocument(r)
	if err != nil {
		return err
	}
	for _, item := range items {
		if _, exists := s.index[item.name]; exists {
			return fmt.Errorf("%w: imported line item %q already exists", ErrDuplicateName, item.name)
		}
	}
	s.appendAll(items)
	return nil
}
