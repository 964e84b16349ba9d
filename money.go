package kil

import (
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Money represents a monetary value, used as the unit cost of a line item.
type Money struct {
	value decimal.Decimal // as major unit value
	cur   string
}

// M creates a Money from a value in major units and an ISO 4217 currency code.
func M[T int | int64 | float64 | decimal.Decimal](value T, currency string) Money {
	var v decimal.Decimal
	switch x := any(value).(type) {
	case decimal.Decimal:
		v = x
	case int:
		v = decimal.NewFromInt(int64(x))
	case int64:
		v = decimal.NewFromInt(x)
	case float64:
		v = decimal.NewFromFloat(x)
	}
	return Money{value: v, cur: currency}
}

// ParseMoney parses an amount in major units such as "12.50" in the given currency.
func ParseMoney(amount, currency string) (Money, error) {
	v, err := decimal.NewFromString(strings.TrimSpace(amount))
	if err != nil {
		return Money{}, fmt.Errorf("%w: amount %q is not a number", ErrInvalidInput, amount)
	}
	m := Money{value: v, cur: strings.ToUpper(strings.TrimSpace(currency))}
	if err := m.validate(); err != nil {
		return Money{}, err
	}
	return m, nil
}

// validate checks that the currency is known and the amount is not negative.
func (m Money) validate() error {
	if money.GetCurrency(m.cur) == nil {
		return fmt.Errorf("%w: unknown currency %q", ErrInvalidInput, m.cur)
	}
	if m.value.IsNegative() {
		return fmt.Errorf("%w: negative amount %s", ErrInvalidInput, m.value)
	}
	return nil
}

// currency returns the money's currency
func (m Money) currency() money.Currency {
	// to get a never nil currency I need to call the Money constructor
	return *money.New(0, m.cur).Currency()
}

// String returns the string representation of the money value, e.g. "€12.50".
func (m Money) String() string {
	cur := m.currency()
	minor := m.value.Shift(int32(cur.Fraction)).Round(0)
	return cur.Formatter().Format(minor.IntPart())
}

func (m Money) Currency() string         { return m.cur }
func (m Money) Amount() decimal.Decimal  { return m.value }
func (m Money) IsZero() bool             { return m.value.IsZero() }
func (m Money) Equal(n Money) bool       { return m.value.Equal(n.value) && m.cur == n.cur }
func (m Money) Times(quantity int) Money { return Money{value: m.value.Mul(decimal.NewFromInt(int64(quantity))), cur: m.cur} }

// Add returns m+n. Both must share the same currency.
func (m Money) Add(n Money) Money {
	if m.cur != n.cur {
		panic("currency mismatch " + m.cur + "!=" + n.cur)
	}
	return Money{value: m.value.Add(n.value), cur: m.cur}
}
