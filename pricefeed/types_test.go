package pricefeed

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseNewPrice(t *testing.T) {
	cases := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{"plain number", `120000`, "120000", false},
		{"decimal number", `120000.5`, "120000.5", false},
		{"quoted number", `"120000"`, "120000", false},
		{"formatted string", `"VND 120,000"`, "120000", false},
		{"empty", ``, "", true},
		{"object", `{"v":1}`, "", true},
		{"empty string", `""`, "", true},
	}
	for _, tc := range cases {
		got, err := ParseNewPrice(json.RawMessage(tc.raw))
		if tc.wantErr {
			if err == nil {
				t.Fatalf("%s: expected error", tc.name)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
		want, _ := decimal.NewFromString(tc.want)
		if !got.Equal(want) {
			t.Fatalf("%s: ParseNewPrice = %s, want %s", tc.name, got, want)
		}
	}
}
