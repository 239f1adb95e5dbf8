package utils

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseFormattedDecimal(t *testing.T) {
	cases := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"20000", "20000", false},
		{"20,000", "20000", false},
		{"VND 20,000", "20000", false},
		{"vnd 1,234.56", "1234.56", false},
		{"đ -20,000", "-20000", false},
		{"  1,000,000  ", "1000000", false},
		{"", "", true},
		{"VND", "", true},
	}
	for _, tc := range cases {
		got, err := ParseFormattedDecimal(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("ParseFormattedDecimal(%q): expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseFormattedDecimal(%q): %v", tc.in, err)
		}
		want, _ := decimal.NewFromString(tc.want)
		if !got.Equal(want) {
			t.Fatalf("ParseFormattedDecimal(%q) = %s, want %s", tc.in, got, want)
		}
	}
}

func TestPercentOf(t *testing.T) {
	got := PercentOf(decimal.NewFromInt(250000), decimal.NewFromInt(10))
	if !got.Equal(decimal.NewFromInt(25000)) {
		t.Fatalf("PercentOf(250000, 10) = %s, want 25000", got)
	}

	got = PercentOf(decimal.NewFromInt(1000), decimal.NewFromFloat(2.5))
	if !got.Equal(decimal.NewFromInt(25)) {
		t.Fatalf("PercentOf(1000, 2.5) = %s, want 25", got)
	}
}

func TestUniqueSlice(t *testing.T) {
	got := UniqueSlice([]int{7, 7, 3, 7, 3})
	if len(got) != 2 || got[0] != 7 || got[1] != 3 {
		t.Fatalf("UniqueSlice = %v, want [7 3]", got)
	}
}

func TestContactPatterns(t *testing.T) {
	if !IsValidLocalPhone("0912345678") {
		t.Fatalf("0912345678 must be a valid phone")
	}
	for _, phone := range []string{"091234567", "09123456789", "9912345678", "091234567a"} {
		if IsValidLocalPhone(phone) {
			t.Fatalf("%q must be rejected", phone)
		}
	}

	if !IsValidIdentityNumber("012345678901") {
		t.Fatalf("012345678901 must be a valid identity number")
	}
	for _, id := range []string{"01234567890", "0123456789012", "01234567890a"} {
		if IsValidIdentityNumber(id) {
			t.Fatalf("%q must be rejected", id)
		}
	}

	if !IsValidEmail("a.nguyen@example.com") {
		t.Fatalf("a.nguyen@example.com must be a valid email")
	}
	if IsValidEmail("not-an-email") {
		t.Fatalf("not-an-email must be rejected")
	}
}
