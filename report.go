package kil

import (
	"cmp"
	"maps"
	"slices"

	"github.com/etnz/kil/date"
)

// Report is a snapshot of the stock and its valuation on a given day.
type Report struct {
	On       date.Date
	Lines    []ReportLine
	Totals   []Money // Totals holds the stock value per currency, sorted by currency.
	Units    int     // Units is the sum of all stocks.
	Pending  int     // Pending counts the scheduled shipments.
	Overdue  int     // Overdue counts the scheduled shipments dated before On.
	Unvalued int     // Unvalued counts the line items without unit cost.
}

// ReportLine is the valuation of a single line item.
type ReportLine struct {
	Name     string
	Stock    int
	UnitCost *Money
	Value    *Money // Value is Stock times UnitCost, nil when UnitCost is unknown.
	Next     *Shipment
	Overdue  bool
}

// NewReport computes the report of 'items' on a given day. Items are reported
// in the order given, typically a Projection order.
func NewReport(items []*LineItem, on date.Date) *Report {
	r := &Report{On: on, Lines: make([]ReportLine, 0, len(items))}
	totals := make(map[string]Money)
	for _, item := range items {
		line := ReportLine{Name: item.name, Stock: item.stock}
		r.Units += item.stock

		if cost, ok := item.UnitCost(); ok {
			value := cost.Times(item.stock)
			line.UnitCost, line.Value = &cost, &value
			if total, exists := totals[cost.cur]; exists {
				totals[cost.cur] = total.Add(value)
			} else {
				totals[cost.cur] = value
			}
		} else {
			r.Unvalued++
		}

		if next, ok := item.NextShipment(); ok {
			line.Next = &next
			line.Overdue = next.Date.Before(on)
			r.Pending++
			if line.Overdue {
				r.Overdue++
			}
		}
		r.Lines = append(r.Lines, line)
	}

	r.Totals = slices.SortedFunc(maps.Values(totals), func(a, b Money) int { return cmp.Compare(a.cur, b.cur) })
	return r
}
