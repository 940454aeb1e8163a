// Package core provides the payroll domain values shared by every other
// package: money in integer cents, the closed category set with its polarity
// table, paycheck kinds, and the record/report value objects.
package core

import (
	"fmt"
	"strings"
)

// Dollars returns the dollar value as a float64 for display purposes.
// Use cents for calculations to avoid floating-point precision issues.
func (m Money) Dollars() float64 {
	return float64(m.Cents) / 100.0
}

// Abs returns the magnitude of the amount.
func (m Money) Abs() Money {
	if m.Cents < 0 {
		return Money{Cents: -m.Cents}
	}
	return m
}

// Neg returns the amount with its sign flipped.
func (m Money) Neg() Money {
	return Money{Cents: -m.Cents}
}

// Add returns m + n.
func (m Money) Add(n Money) Money {
	return Money{Cents: m.Cents + n.Cents}
}

// Sub returns m - n.
func (m Money) Sub(n Money) Money {
	return Money{Cents: m.Cents - n.Cents}
}

// IsZero reports whether the amount is exactly zero.
func (m Money) IsZero() bool {
	return m.Cents == 0
}

// String formats the amount as a signed dollar figure, e.g. "-1,722.34".
func (m Money) String() string {
	cents := m.Cents
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%s.%02d", sign, groupThousands(cents/100), cents%100)
}

// FromParts builds an amount from a whole-dollar part and a cents part in
// [0, 99]. Used by tests and adapters; the tokenizer builds cents directly.
func FromParts(dollars int64, cents int64) Money {
	if dollars < 0 {
		return Money{Cents: dollars*100 - cents}
	}
	return Money{Cents: dollars*100 + cents}
}

func groupThousands(n int64) string {
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
