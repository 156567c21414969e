package http

import (
	"io"
	"strings"
	"testing"
)

func TestSniffJSON(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want bool
	}{
		{"array", `[{"district":"Bayview USD"}]`, true},
		{"object", `{"district":"Bayview USD"}`, true},
		{"array with leading newline", "\n  [\n  {\"district\":\"Bayview USD\"}\n]", true},
		{"object with leading tabs", "\t\t{\"district\":\"Bayview USD\"}", true},
		{"csv header", "district,school,year,month\nBayview USD,Shoreline,2025,9\n", false},
		{"csv with leading blank line", "\ndistrict,school\n", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := strings.NewReader(tc.in)
			got, err := sniffJSON(r)
			if err != nil {
				t.Fatal(err)
			}
			if got != tc.want {
				t.Fatalf("sniffJSON = %v, want %v", got, tc.want)
			}
			rest, _ := io.ReadAll(r)
			if string(rest) != tc.in {
				t.Fatalf("reader not rewound: %q", rest)
			}
		})
	}
}

func TestSniffJSONEmptyFile(t *testing.T) {
	if _, err := sniffJSON(strings.NewReader("")); err == nil {
		t.Fatal("want error for empty file")
	}
}
