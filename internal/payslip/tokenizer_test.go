package payslip

import (
	"errors"
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []int64
	}{
		{"single amount", "1 625 00", []int64{162500}},
		{"two amounts", "221 16 221 16", []int64{22116, 22116}},
		{"no thousands group", "58 00", []int64{5800}},
		{"millions run", "1 234 567 89", []int64{123456789}},
		{"footnote marker skipped", "* 221 16 1 221 16", []int64{22116, 122116}},
		{"trailing star stripped", "58* 00 348 00", []int64{5800, 34800}},
		{"annotation text ends scan", "6 218 00 Your federal taxable wages this period are 5 000 00", []int64{621800}},
		{"third run is noise", "10 00 20 00 30 00", []int64{1000, 2000}},
		{"empty input", "", nil},
		{"pure annotation", "see note below", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := Tokenize(tt.input)
			if err != nil {
				t.Fatalf("Tokenize(%q): %v", tt.input, err)
			}
			if len(tokens) != len(tt.want) {
				t.Fatalf("Tokenize(%q) = %d tokens, want %d", tt.input, len(tokens), len(tt.want))
			}
			for i, w := range tt.want {
				if tokens[i].Amount.Cents != w {
					t.Errorf("token %d = %d cents, want %d", i, tokens[i].Amount.Cents, w)
				}
			}
		})
	}
}

func TestTokenizeSigns(t *testing.T) {
	tokens, err := Tokenize("-12 34 +5 00")
	if err != nil {
		t.Fatal(err)
	}
	if len(tokens) != 2 {
		t.Fatalf("got %d tokens, want 2", len(tokens))
	}
	if tokens[0].Sign != SignNegative || tokens[0].Amount.Cents != 1234 {
		t.Errorf("first token = %+v, want negative 1234 cents", tokens[0])
	}
	if tokens[1].Sign != SignPositive || tokens[1].Amount.Cents != 500 {
		t.Errorf("second token = %+v, want positive 500 cents", tokens[1])
	}
}

func TestTokenizeMalformedRun(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"single cluster, no cents", "58"},
		{"run never terminated", "1 625 000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Tokenize(tt.input)
			var parseErr *TokenParseError
			if !errors.As(err, &parseErr) {
				t.Fatalf("Tokenize(%q) err = %v, want TokenParseError", tt.input, err)
			}
		})
	}
}
