package kil

import (
	"errors"
	"slices"
	"strings"
	"testing"
)

func TestProjection_Filter(t *testing.T) {
	s := newTestStore(t, "A", 5, "B", 50, "C", 1, "Washers", 12)
	if err := s.Order(mustLookup(t, s, "C"), day("2024-05-17"), 10); err != nil {
		t.Fatalf("Order() unexpected error: %v", err)
	}
	p := NewProjection(s)
	defer p.Close()

	testCases := []struct {
		filter string
		want   []string
	}{
		{filter: "", want: []string{"A", "B", "C", "Washers"}},
		{filter: "   ", want: []string{"A", "B", "C", "Washers"}},
		{filter: "5", want: []string{"A", "B", "C"}}, // C matches its shipment date
		{filter: "50", want: []string{"B"}},
		{filter: "wash", want: []string{"Washers"}},
		{filter: "WASH", want: []string{"Washers"}},
		{filter: "2024-05", want: []string{"C"}},
		{filter: "none", want: []string{"A", "B", "Washers"}},
		{filter: "NONE", want: []string{"A", "B", "Washers"}},
		{filter: " none ", want: []string{"A", "B", "Washers"}},
		{filter: "None\n", want: []string{"A", "B", "Washers"}},
		{filter: " wash\t", want: []string{"Washers"}},
		{filter: "non", want: []string{"A", "B", "Washers"}},
		{filter: "zzz", want: []string{}},
	}
	for _, tc := range testCases {
		p.SetFilter(tc.filter)
		if got := names(p.Items()); !slices.Equal(got, tc.want) {
			t.Errorf("SetFilter(%q) = %v, want %v", tc.filter, got, tc.want)
		}
	}
}

func TestProjection_FilterDigits(t *testing.T) {
	s := newTestStore(t, "A", 5, "B", 50, "C", 1)
	p := NewProjection(s)
	defer p.Close()

	p.SetFilter("5")
	if got, want := names(p.Items()), []string{"A", "B"}; !slices.Equal(got, want) {
		t.Errorf("SetFilter(5) = %v, want %v", got, want)
	}
}

func TestProjection_FilterNone(t *testing.T) {
	// "none" must select exactly the unscheduled line items, even when a name
	// contains the word.
	s := newTestStore(t, "None left", 0, "Nonex", 3, "Bolts", 7, "Anyone", 1)
	_ = s.Order(mustLookup(t, s, "Nonex"), day("2024-02-01"), 5)
	_ = s.Order(mustLookup(t, s, "Bolts"), day("2024-02-02"), 5)
	p := NewProjection(s)
	defer p.Close()

	p.SetFilter(" None ")
	for _, item := range s.All() {
		got := slices.Contains(p.Items(), item)
		if want := !item.HasNextShipment(); got != want {
			t.Errorf("%q in projection = %v, want %v", item.Name(), got, want)
		}
	}
}

func TestProjection_Sort(t *testing.T) {
	s := newTestStore(t, "b", 3, "C", 1, "a", 3, "d", 2)
	_ = s.Order(mustLookup(t, s, "d"), day("2024-03-01"), 1)
	_ = s.Order(mustLookup(t, s, "C"), day("2024-02-01"), 1)
	p := NewProjection(s)
	defer p.Close()

	testCases := []struct {
		sort Sort
		want []string
	}{
		{sort: Sort{}, want: []string{"b", "C", "a", "d"}},
		{sort: Sort{Column: ColumnName}, want: []string{"a", "b", "C", "d"}},
		{sort: Sort{Column: ColumnName, Desc: true}, want: []string{"d", "C", "b", "a"}},
		// ties keep the insertion order in both directions.
		{sort: Sort{Column: ColumnStock}, want: []string{"C", "d", "b", "a"}},
		{sort: Sort{Column: ColumnStock, Desc: true}, want: []string{"b", "a", "d", "C"}},
		{sort: Sort{Column: ColumnShipment}, want: []string{"C", "d", "b", "a"}},
		{sort: Sort{Column: ColumnShipment, Desc: true}, want: []string{"b", "a", "d", "C"}},
	}
	for _, tc := range testCases {
		p.SetSort(tc.sort)
		if got := names(p.Items()); !slices.Equal(got, tc.want) {
			t.Errorf("SetSort(%v) = %v, want %v", tc.sort, got, tc.want)
		}
	}
}

func TestProjection_Live(t *testing.T) {
	s := newTestStore(t, "Bolts", 5, "Screws", 15)
	p := NewProjection(s)
	p.SetFilter("5")
	p.SetSort(Sort{Column: ColumnStock, Desc: true})

	if got, want := names(p.Items()), []string{"Screws", "Bolts"}; !slices.Equal(got, want) {
		t.Fatalf("Items() = %v, want %v", got, want)
	}

	// Every mutation is visible on the very next read.
	bolts := mustLookup(t, s, "Bolts")
	_ = s.Receive(bolts, 20) // 25
	if got, want := names(p.Items()), []string{"Bolts", "Screws"}; !slices.Equal(got, want) {
		t.Errorf("after Receive() Items() = %v, want %v", got, want)
	}
	_ = s.Use(bolts, 24) // 1
	if got, want := names(p.Items()), []string{"Screws"}; !slices.Equal(got, want) {
		t.Errorf("after Use() Items() = %v, want %v", got, want)
	}
	nuts, _ := s.Add("Nuts", 500)
	if got, want := names(p.Items()), []string{"Nuts", "Screws"}; !slices.Equal(got, want) {
		t.Errorf("after Add() Items() = %v, want %v", got, want)
	}
	_ = s.Remove(nuts)
	if got, want := names(p.Items()), []string{"Screws"}; !slices.Equal(got, want) {
		t.Errorf("after Remove() Items() = %v, want %v", got, want)
	}
	if p.Len() != 1 || p.At(0).Name() != "Screws" {
		t.Errorf("Len(), At(0) = %d, %v, want 1, Screws", p.Len(), p.At(0))
	}

	var iterated []string
	for _, item := range p.All() {
		iterated = append(iterated, item.Name())
	}
	if want := []string{"Screws"}; !slices.Equal(iterated, want) {
		t.Errorf("All() = %v, want %v", iterated, want)
	}

	// A closed projection stops following the store.
	p.Close()
	_, _ = s.Add("Washers", 5)
	if got, want := names(p.Items()), []string{"Screws"}; !slices.Equal(got, want) {
		t.Errorf("after Close() Items() = %v, want %v", got, want)
	}
	p.Close()
}

func TestProjection_Import(t *testing.T) {
	s := newTestStore(t, "Bolts", 5)
	p := NewProjection(s)
	defer p.Close()
	p.SetSort(Sort{Column: ColumnName})

	if err := ImportInto(strings.NewReader(`{"format":"kildata","version":1,"lineItems":[{"name":"Anchors","currentStock":2}]}`), s); err != nil {
		t.Fatalf("ImportInto() unexpected error: %v", err)
	}
	if got, want := names(p.Items()), []string{"Anchors", "Bolts"}; !slices.Equal(got, want) {
		t.Errorf("Items() = %v, want %v", got, want)
	}
}

func TestParseSort(t *testing.T) {
	testCases := []struct {
		input   string
		want    Sort
		wantErr error
	}{
		{input: "", want: Sort{}},
		{input: "insertion", want: Sort{}},
		{input: "name", want: Sort{Column: ColumnName}},
		{input: "Name:ASC", want: Sort{Column: ColumnName}},
		{input: "stock:desc", want: Sort{Column: ColumnStock, Desc: true}},
		{input: " shipment:desc ", want: Sort{Column: ColumnShipment, Desc: true}},
		{input: "price", wantErr: ErrInvalidInput},
		{input: "name:up", wantErr: ErrInvalidInput},
	}
	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			got, err := ParseSort(tc.input)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("ParseSort(%q) error = %v, want %v", tc.input, err, tc.wantErr)
			}
			if got != tc.want {
				t.Errorf("ParseSort(%q) = %v, want %v", tc.input, got, tc.want)
			}
		})
	}

	for _, s := range []Sort{{}, {Column: ColumnStock, Desc: true}} {
		if got, err := ParseSort(s.String()); err != nil || got != s {
			t.Errorf("ParseSort(%q) = %v, %v, want %v", s.String(), got, err, s)
		}
	}
}
