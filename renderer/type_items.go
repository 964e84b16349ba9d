package renderer

import (
	"strconv"
	"strings"

	"github.com/etnz/kil"
)

// Items is a struct to represent the line item table in json.
type Items struct {
	// Filter is the active filter text, empty for none.
	Filter string `json:"filter,omitempty"`
	// Sort is the active sort, e.g. "name" or "stock:desc".
	Sort string `json:"sort"`
	// Shown is the number of rows, Total the number of line items in the store.
	Shown int `json:"shown"`
	Total int `json:"total"`
	// Rows are the line items in projection order.
	Rows []ItemRow `json:"rows"`
}

// ItemRow represents a single line item, with every cell already formatted.
type ItemRow struct {
	Name         string `json:"name"`
	Stock        int    `json:"stock"`
	NextShipment string `json:"nextShipment"` // "none" when unscheduled
	Expected     string `json:"expected,omitempty"`
	UnitCost     string `json:"unitCost,omitempty"`
}

// NewItems creates a new Items struct from the current state of a projection.
func NewItems(p *kil.Projection, total int) *Items {
	items := &Items{
		Filter: strings.TrimSpace(p.Filter()),
		Sort:   p.Sort().String(),
		Shown:  p.Len(),
		Total:  total,
		Rows:   make([]ItemRow, 0, p.Len()),
	}
	for _, item := range p.All() {
		items.Rows = append(items.Rows, newItemRow(item))
	}
	return items
}

func newItemRow(item *kil.LineItem) ItemRow {
	row := ItemRow{
		Name:         cell(item.Name()),
		Stock:        item.Stock(),
		NextShipment: "none",
	}
	if next, ok := item.NextShipment(); ok {
		row.NextShipment = next.Date.String()
		row.Expected = strconv.Itoa(next.Expected)
	}
	if cost, ok := item.UnitCost(); ok {
		row.UnitCost = cost.String()
	}
	return row
}

// cell escapes the pipes that would otherwise split a markdown table cell.
func cell(s string) string { return strings.ReplaceAll(s, "|", `\|`) }
