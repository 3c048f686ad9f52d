package core

import "testing"

func TestParseDecimalToCents(t *testing.T) {
	cases := []struct {
		in  string
		out int64
		ok  bool
	}{
		{"1", 100, true},
		{"1.0", 100, true},
		{"1.23", 123, true},
		{"1,23", 123, true},
		{"0.01", 1, true},
		{"1.005", 101, true}, // half-up rounding
		{" 2.50 ", 250, true},
		{".50", 50, true},
		{"-1", 0, false},
		{"+1", 0, false},
		{"0", 0, false},
		{"0.00", 0, false},
		{"abc", 0, false},
		{"1.2.3", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseDecimalToCents(tc.in)
		if tc.ok {
			if err != nil || got != tc.out {
				t.Fatalf("%q expected %d, got %d (err=%v)", tc.in, tc.out, got, err)
			}
		} else {
			if err == nil {
				t.Fatalf("%q expected error", tc.in)
			}
		}
	}
}

func TestMoneyString(t *testing.T) {
	cases := []struct {
		cents int64
		want  string
	}{
		{0, "$0.00"},
		{1, "$0.01"},
		{12345, "$123.45"},
		{123456, "$1,234.56"},
		{123456789, "$1,234,567.89"},
		{-5000, "-$50.00"},
	}
	for _, tc := range cases {
		if got := (Money{Cents: tc.cents}).String(); got != tc.want {
			t.Errorf("Money{%d}.String() = %q, want %q", tc.cents, got, tc.want)
		}
	}
}

func TestFormatPercent(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{12.34, "+12.3%"},
		{-5, "-5.0%"},
		{0, "+0.0%"},
	}
	for _, tc := range cases {
		if got := FormatPercent(tc.in); got != tc.want {
			t.Errorf("FormatPercent(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestAmountBand(t *testing.T) {
	cases := []struct {
		cents int64
		want  string
	}{
		{500, "Small (≤$10)"},
		{1000, "Small (≤$10)"},
		{1001, "Medium ($10-$50)"},
		{5000, "Medium ($10-$50)"},
		{20000, "Large ($50-$200)"},
		{20001, "Very Large (>$200)"},
	}
	for _, tc := range cases {
		if got := AmountBand(Money{Cents: tc.cents}); got != tc.want {
			t.Errorf("AmountBand(%d) = %q, want %q", tc.cents, got, tc.want)
		}
	}
}
