package core

import "testing"

func TestMoneyString(t *testing.T) {
	cases := []struct {
		cents int64
		want  string
	}{
		{0, "0.00"},
		{5, "0.05"},
		{162500, "1,625.00"},
		{-172234, "-1,722.34"},
		{354011, "3,540.11"},
		{123456789, "1,234,567.89"},
	}
	for _, tc := range cases {
		got := Money{Cents: tc.cents}.String()
		if got != tc.want {
			t.Errorf("Money{%d}.String() = %q, want %q", tc.cents, got, tc.want)
		}
	}
}

func TestMoneyArithmetic(t *testing.T) {
	a := FromParts(6218, 0)
	b := FromParts(-1722, 34)
	c := FromParts(-955, 55)

	net := a.Add(b).Add(c)
	if net.Cents != 354011 {
		t.Fatalf("expected 354011 cents, got %d", net.Cents)
	}
	if b.Abs().Cents != 172234 {
		t.Errorf("Abs: expected 172234, got %d", b.Abs().Cents)
	}
	if b.Neg().Cents != 172234 {
		t.Errorf("Neg: expected 172234, got %d", b.Neg().Cents)
	}
	if !(Money{}).IsZero() {
		t.Error("zero Money should report IsZero")
	}
}
