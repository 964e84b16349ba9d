package kil

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/PaesslerAG/jsonpath"
	"github.com/google/go-cmp/cmp"
)

// sampleStore returns a store using every feature of the format.
func sampleStore(t *testing.T) *Store {
	t.Helper()
	s := newTestStore(t, "Bolts", 5, "Screws", 10, "Nuts", 0)
	bolts, screws := mustLookup(t, s, "Bolts"), mustLookup(t, s, "Screws")
	if err := s.Order(bolts, day("2024-01-10"), 20); err != nil {
		t.Fatal(err)
	}
	if err := s.Use(screws, 7); err != nil {
		t.Fatal(err)
	}
	if err := s.SetUnitCost(screws, EUR(0.05)); err != nil {
		t.Fatal(err)
	}
	return s
}

func export(t *testing.T, s *Store) string {
	t.Helper()
	var buf bytes.Buffer
	if err := Export(&buf, s); err != nil {
		t.Fatalf("Export() unexpected error: %v", err)
	}
	return buf.String()
}

func TestExport(t *testing.T) {
	got := export(t, sampleStore(t))
	want := `{"format":"kildata","version":1,"lineItems":[
{"name":"Bolts","currentStock":5,"nextShipment":{"date":"2024-01-10","expectedAmount":20},"history":[{"on":"2024-01-01","command":"order","amount":20,"due":"2024-01-10"}]},
{"name":"Screws","currentStock":3,"unitCost":{"amount":0.05,"currency":"EUR"},"history":[{"on":"2024-01-01","command":"use","amount":7}]},
{"name":"Nuts","currentStock":0}
]}
`
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Export() mismatch (-want +got):\n%s", diff)
	}
	if !json.Valid([]byte(got)) {
		t.Errorf("Export() is not valid JSON:\n%s", got)
	}
}

func TestExport_Empty(t *testing.T) {
	got := export(t, NewStore())
	if want := "{\"format\":\"kildata\",\"version\":1,\"lineItems\":[\n]}\n"; got != want {
		t.Errorf("Export() = %q, want %q", got, want)
	}
	s, err := Import(strings.NewReader(got))
	if err != nil {
		t.Fatalf("Import() unexpected error: %v", err)
	}
	if s.Len() != 0 {
		t.Errorf("Len() = %d, want 0", s.Len())
	}
}

func TestExport_Paths(t *testing.T) {
	var doc any
	if err := json.Unmarshal([]byte(export(t, sampleStore(t))), &doc); err != nil {
		t.Fatalf("json.Unmarshal() unexpected error: %v", err)
	}

	testCases := []struct {
		path string
		want any
	}{
		{path: "$.format", want: "kildata"},
		{path: "$.version", want: 1.0},
		{path: "$.lineItems[0].name", want: "Bolts"},
		{path: "$.lineItems[0].nextShipment.date", want: "2024-01-10"},
		{path: "$.lineItems[0].nextShipment.expectedAmount", want: 20.0},
		{path: "$.lineItems[1].currentStock", want: 3.0},
		{path: "$.lineItems[1].unitCost.currency", want: "EUR"},
		{path: "$.lineItems[1].history[0].command", want: "use"},
		{path: "$.lineItems[*].name", want: []any{"Bolts", "Screws", "Nuts"}},
	}
	for _, tc := range testCases {
		got, err := jsonpath.Get(tc.path, doc)
		if err != nil {
			t.Errorf("jsonpath.Get(%q) unexpected error: %v", tc.path, err)
			continue
		}
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Errorf("jsonpath.Get(%q) mismatch (-want +got):\n%s", tc.path, diff)
		}
	}

	// Unscheduled line items have no shipment property at all.
	if _, err := jsonpath.Get("$.lineItems[2].nextShipment", doc); err == nil {
		t.Errorf("jsonpath.Get(nextShipment) of Nuts succeeded, want an unknown key error")
	}
}

func TestImport_RoundTrip(t *testing.T) {
	want := sampleStore(t)
	data := export(t, want)

	got, err := Import(strings.NewReader(data))
	if err != nil {
		t.Fatalf("Import() unexpected error: %v", err)
	}
	if diff := cmp.Diff(want.All(), got.All(), cmpItems); diff != "" {
		t.Errorf("Import(Export()) mismatch (-want +got):\n%s", diff)
	}
	if again := export(t, got); again != data {
		t.Errorf("Export(Import(data)) differs from data:\n%s\nwant:\n%s", again, data)
	}
}

func TestImport_Invalid(t *testing.T) {
	testCases := []struct {
		name    string
		doc     string
		wantErr []error
	}{
		{
			name:    "not json",
			doc:     `lineItems: []`,
			wantErr: []error{ErrInvalidFormat},
		},
		{
			name:    "duplicate name",
			doc:     `{"format":"kildata","version":1,"lineItems":[{"name":"X","currentStock":1},{"name":"X","currentStock":2}]}`,
			wantErr: []error{ErrInvalidFormat, ErrDuplicateName},
		},
		{
			name:    "negative stock",
			doc:     `{"format":"kildata","version":1,"lineItems":[{"name":"X","currentStock":1},{"name":"Y","currentStock":-1}]}`,
			wantErr: []error{ErrInvalidFormat},
		},
		{
			name:    "zero shipment",
			doc:     `{"format":"kildata","version":1,"lineItems":[{"name":"X","currentStock":1,"nextShipment":{"date":"2024-01-10","expectedAmount":0}}]}`,
			wantErr: []error{ErrInvalidFormat},
		},
		{
			name:    "shipment without date",
			doc:     `{"format":"kildata","version":1,"lineItems":[{"name":"X","currentStock":1,"nextShipment":{"expectedAmount":3}}]}`,
			wantErr: []error{ErrInvalidFormat},
		},
		{
			name:    "invalid date",
			doc:     `{"format":"kildata","version":1,"lineItems":[{"name":"X","currentStock":1,"nextShipment":{"date":"2024-02-30x","expectedAmount":3}}]}`,
			wantErr: []error{ErrInvalidFormat},
		},
		{
			name:    "missing stock",
			doc:     `{"format":"kildata","version":1,"lineItems":[{"name":"X"}]}`,
			wantErr: []error{ErrInvalidFormat},
		},
		{
			name:    "empty name",
			doc:     `{"format":"kildata","version":1,"lineItems":[{"name":"","currentStock":1}]}`,
			wantErr: []error{ErrInvalidFormat},
		},
		{
			name:    "unknown property",
			doc:     `{"format":"kildata","version":1,"lineItems":[{"name":"X","currentStock":1,"color":"red"}]}`,
			wantErr: []error{ErrInvalidFormat},
		},
		{
			name:    "unknown currency",
			doc:     `{"format":"kildata","version":1,"lineItems":[{"name":"X","currentStock":1,"unitCost":{"amount":1,"currency":"ZZZ"}}]}`,
			wantErr: []error{ErrInvalidFormat},
		},
		{
			name:    "bad history",
			doc:     `{"format":"kildata","version":1,"lineItems":[{"name":"X","currentStock":1,"history":[{"on":"2024-01-01","command":"order","amount":3}]}]}`,
			wantErr: []error{ErrInvalidFormat},
		},
		{
			name:    "missing format",
			doc:     `{"version":1,"lineItems":[]}`,
			wantErr: []error{ErrInvalidFormat},
		},
		{
			name:    "wrong version",
			doc:     `{"format":"kildata","version":2,"lineItems":[]}`,
			wantErr: []error{ErrInvalidFormat},
		},
		{
			name:    "missing line items",
			doc:     `{"format":"kildata","version":1}`,
			wantErr: []error{ErrInvalidFormat},
		},
		{
			name:    "trailing data",
			doc:     `{"format":"kildata","version":1,"lineItems":[]} {}`,
			wantErr: []error{ErrInvalidFormat},
		},
		{
			name:    "property case",
			doc:     `{"FORMAT":"kildata","Version":1,"LINEITEMS":[{"name":"X","currentStock":4}]}`,
			wantErr: []error{ErrInvalidFormat},
		},
		{
			name:    "nested property case",
			doc:     `{"format":"kildata","version":1,"lineItems":[{"name":"X","CurrentStock":4}]}`,
			wantErr: []error{ErrInvalidFormat},
		},
		{
			name:    "repeated property",
			doc:     `{"format":"kildata","version":1,"lineItems":[{"name":"X","name":"Y","currentStock":4}]}`,
			wantErr: []error{ErrInvalidFormat},
		},
		{
			name:    "repeated shipment property",
			doc:     `{"format":"kildata","version":1,"lineItems":[{"name":"X","currentStock":4,"nextShipment":{"date":"2024-01-10","expectedAmount":2,"expectedAmount":3}}]}`,
			wantErr: []error{ErrInvalidFormat},
		},
		{
			name:    "name already in store",
			doc:     `{"format":"kildata","version":1,"lineItems":[{"name":"Anchors","currentStock":1},{"name":"Bolts","currentStock":1}]}`,
			wantErr: []error{ErrDuplicateName},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := sampleStore(t)
			before := export(t, s)

			var changes int
			s.Subscribe(ObserverFunc(func(Change) { changes++ }))

			err := ImportInto(strings.NewReader(tc.doc), s)
			for _, want := range tc.wantErr {
				if !errors.Is(err, want) {
					t.Errorf("ImportInto() error = %v, want %v", err, want)
				}
			}
			if after := export(t, s); after != before {
				t.Errorf("ImportInto() modified the store:\n%s\nwant:\n%s", after, before)
			}
			if changes != 0 {
				t.Errorf("ImportInto() notified %d changes, want 0", changes)
			}
		})
	}
}

func TestImportInto_Appends(t *testing.T) {
	s := newTestStore(t, "Bolts", 5)
	doc := `{"format":"kildata","version":1,"lineItems":[
{"name":"Washers","currentStock":100,"nextShipment":null},
{"name":"Anchors","currentStock":2,"nextShipment":{"date":"2024-06-01","expectedAmount":10}}
]}`
	var kinds []ChangeKind
	s.Subscribe(ObserverFunc(func(c Change) { kinds = append(kinds, c.Kind) }))

	if err := ImportInto(strings.NewReader(doc), s); err != nil {
		t.Fatalf("ImportInto() unexpected error: %v", err)
	}
	if diff := cmp.Diff([]string{"Bolts", "Washers", "Anchors"}, names(s.All())); diff != "" {
		t.Errorf("All() mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]ChangeKind{Reset}, kinds); diff != "" {
		t.Errorf("notifications mismatch (-want +got):\n%s", diff)
	}
	if mustLookup(t, s, "Washers").HasNextShipment() {
		t.Errorf("Washers has a shipment, want none")
	}
	next, ok := mustLookup(t, s, "Anchors").NextShipment()
	if want := (Shipment{Date: day("2024-06-01"), Expected: 10}); !ok || next != want {
		t.Errorf("Anchors NextShipment() = %v, %v, want %v", next, ok, want)
	}

	// Imported line items are regular members.
	if err := s.Use(mustLookup(t, s, "Washers"), 1); err != nil {
		t.Errorf("Use() on an imported line item unexpected error: %v", err)
	}
}
