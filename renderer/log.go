package renderer

import (
	"bytes"
	"cmp"
	"slices"
	"strconv"

	"github.com/etnz/kil"
	md "github.com/nao1215/markdown"
)

// LogEntry is a history event of a line item, formatted for display.
type LogEntry struct {
	On      string `json:"on"`
	Name    string `json:"name"`
	Command string `json:"command"`
	Amount  int    `json:"amount"`
	Due     string `json:"due,omitempty"`
}

// NewLog merges the histories of the line items into a single log, oldest
// first. Events of the same day keep the order of the line items.
func NewLog(items []*kil.LineItem) []LogEntry {
	var log []LogEntry
	for _, item := range items {
		for _, e := range item.History() {
			entry := LogEntry{On: e.On.String(), Name: item.Name(), Command: string(e.Command), Amount: e.Amount}
			if !e.Due.IsZero() {
				entry.Due = e.Due.String()
			}
			log = append(log, entry)
		}
	}
	// dates are formatted YYYY-MM-DD so the string order is the date order.
	slices.SortStableFunc(log, func(a, b LogEntry) int { return cmp.Compare(a.On, b.On) })
	return log
}

// LogMarkdown renders a log under a title.
func LogMarkdown(title string, log []LogEntry) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(title)
	if len(log) == 0 {
		doc.PlainText("No history.")
		return doc.String()
	}

	rows := make([][]string, 0, len(log))
	for _, e := range log {
		rows = append(rows, []string{e.On, cell(e.Name), e.Command, strconv.Itoa(e.Amount), e.Due})
	}
	doc.Table(md.TableSet{
		Header: []string{"Date", "Line item", "Command", "Amount", "Due"},
		Rows:   rows,
	})
	return doc.String()
}
