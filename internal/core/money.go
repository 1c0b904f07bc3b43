// Package core holds the transaction model shown in the dashboard list and
// the analytics computed over a selection of transactions.
package core

import (
	"math"
	"strconv"
	"strings"
)

// ParseAmount parses a positive decimal amount written with either a dot or
// a comma ("12.50", "12,50"). A third decimal rounds half-up and later ones
// are ignored.
func ParseAmount(s string) (Money, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	whole, frac, _ := strings.Cut(s, ".")
	if strings.Contains(frac, ".") || !isDigits(whole) || !isDigits(frac) {
		return Money{}, ErrInvalidAmount
	}
	if whole == "" {
		whole = "0"
	}

	units, err := strconv.ParseInt(whole, 10, 64)
	if err != nil || units >= math.MaxInt64/100 {
		return Money{}, ErrInvalidAmount
	}

	frac += "000"
	cents := units*100 + int64(frac[0]-'0')*10 + int64(frac[1]-'0')
	if frac[2] >= '5' {
		cents++
	}
	if cents <= 0 {
		return Money{}, ErrInvalidAmount
	}
	return Money{Cents: cents}, nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Units returns the amount in major units, for display only.
func (m Money) Units() float64 {
	return float64(m.Cents) / 100.0
}

// Add returns the sum of two amounts.
func (m Money) Add(other Money) Money {
	return Money{Cents: m.Cents + other.Cents}
}
