package renderer

import "github.com/etnz/kil"

// Valuation is a struct to represent the valuation report in json.
// Money values are formatted with their currency symbol.
type Valuation struct {
	On       string          `json:"on"`
	Units    int             `json:"units"`
	Pending  int             `json:"pending"`
	Overdue  int             `json:"overdue"`
	Unvalued int             `json:"unvalued"`
	Lines    []ValuationLine `json:"lines"`
	Totals   []string        `json:"totals"`
}

// ValuationLine represents the valuation of a single line item.
type ValuationLine struct {
	Name         string `json:"name"`
	Stock        int    `json:"stock"`
	UnitCost     string `json:"unitCost,omitempty"`
	Value        string `json:"value,omitempty"`
	NextShipment string `json:"nextShipment,omitempty"`
	Overdue      bool   `json:"overdue,omitempty"`
}

// NewValuation creates a new Valuation struct from a report.
func NewValuation(r *kil.Report) *Valuation {
	v := &Valuation{
		On:       r.On.String(),
		Units:    r.Units,
		Pending:  r.Pending,
		Overdue:  r.Overdue,
		Unvalued: r.Unvalued,
		Lines:    make([]ValuationLine, 0, len(r.Lines)),
		Totals:   make([]string, 0, len(r.Totals)),
	}
	for _, l := range r.Lines {
		line := ValuationLine{Name: cell(l.Name), Stock: l.Stock, Overdue: l.Overdue}
		if l.UnitCost != nil {
			line.UnitCost = l.UnitCost.String()
			line.Value = l.Value.String()
		}
		if l.Next != nil {
			line.NextShipment = l.Next.Date.String()
		}
		v.Lines = append(v.Lines, line)
	}
	for _, total := range r.Totals {
		v.Totals = append(v.Totals, total.String())
	}
	return v
}
