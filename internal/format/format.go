// Package format renders amounts for display in the transaction list.
package format

import (
	"fmt"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"finboard/internal/core"
)

// Formatter turns an amount into its display string.
type Formatter interface {
	Format(m core.Money) string
}

// Currency formats amounts in one currency for one locale.
type Currency struct {
	tag     language.Tag
	unit    currency.Unit
	printer *message.Printer
	symbol  string
}

// NewCurrency validates locale (a BCP 47 tag) and code (ISO 4217).
func NewCurrency(locale, code string) (*Currency, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("parse locale %q: %w", locale, err)
	}
	unit, err := currency.ParseISO(code)
	if err != nil {
		return nil, fmt.Errorf("parse currency %q: %w", code, err)
	}

	p := message.NewPrinter(tag)
	return &Currency{
		tag:     tag,
		unit:    unit,
		printer: p,
		symbol:  p.Sprint(currency.Symbol(unit)),
	}, nil
}

// Format prints the symbol followed by the localized amount with two
// decimals, e.g. "€ 1.234,50" for Italian euros.
func (c *Currency) Format(m core.Money) string {
	sign := ""
	cents := m.Cents
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return sign + c.symbol + " " + c.printer.Sprintf("%.2f", float64(cents)/100)
}

// Symbol returns the localized currency symbol.
func (c *Currency) Symbol() string {
	return c.symbol
}

// Locale returns the locale tag used for digits and separators.
func (c *Currency) Locale() language.Tag {
	return c.tag
}

// Unit returns the currency.
func (c *Currency) Unit() currency.Unit {
	return c.unit
}

// Plain prints the amount with two decimals and no symbol.
type Plain struct{}

// Format implements Formatter.
func (Plain) Format(m core.Money) string {
	return fmt.Sprintf("%.2f", m.Units())
}
