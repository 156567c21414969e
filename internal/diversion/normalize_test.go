package diversion

import (
	"math"
	"testing"
)

func TestNormalizeNumberTotality(t *testing.T) {
	cases := []struct {
		name string
		in   any
		want float64
	}{
		{"nil", nil, 0},
		{"empty string", "", 0},
		{"garbage", "abc", 0},
		{"thousands separator", "1,234", 1234},
		{"plain string", "250.5", 250.5},
		{"padded string", "  42 ", 42},
		{"float", 1234.0, 1234},
		{"int", 77, 77},
		{"nan", math.NaN(), 0},
		{"inf", math.Inf(1), 0},
		{"bool is not a number", true, 0},
	}
	for _, c := range cases {
		got := NormalizeNumber(c.in)
		if math.IsNaN(got) || math.IsInf(got, 0) {
			t.Fatalf("%s: result not finite: %v", c.name, got)
		}
		if got != c.want {
			t.Errorf("%s: NormalizeNumber(%v) = %v, want %v", c.name, c.in, got, c.want)
		}
	}
}
