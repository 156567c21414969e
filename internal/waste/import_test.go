package waste

import (
	"strings"
	"testing"
)

func TestParseCSV(t *testing.T) {
	in := strings.Join([]string{
		"School,District,Year,Month,Enrollment,Recycle_Lbs,Compost_Lbs",
		"Shoreline Elementary,Bayview USD,2025,9,520,\"1,200\",340.5",
		"Shoreline Elementary,Bayview USD,2025,10,520,n/a,0",
	}, "\n")
	got, err := ParseCSV(strings.NewReader(in))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("want 2 rows, got %d", len(got))
	}
	r := got[0]
	if r.School != "Shoreline Elementary" || r.District != "Bayview USD" || r.Year != 2025 || r.Month != 9 {
		t.Fatalf("row 0 = %+v", r)
	}
	// Raw text survives import untouched; the engine normalizes later.
	if r.RecycleLbs != "1,200" || got[1].RecycleLbs != "n/a" {
		t.Fatalf("measures not kept raw: %q %q", r.RecycleLbs, got[1].RecycleLbs)
	}
}

func TestParseCSVMissingColumn(t *testing.T) {
	in := "district,school,year,month,enrollment,recycle_lbs\nA,B,2025,9,100,50"
	if _, err := ParseCSV(strings.NewReader(in)); err == nil {
		t.Fatal("want error for missing compost_lbs column")
	}
}

func TestParseCSVBadMonth(t *testing.T) {
	in := "district,school,year,month,enrollment,recycle_lbs,compost_lbs\nA,B,2025,13,100,50,0"
	if _, err := ParseCSV(strings.NewReader(in)); err == nil {
		t.Fatal("want error for month 13")
	}
}
