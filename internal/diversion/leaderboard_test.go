package diversion

import (
	"reflect"
	"testing"
)

func TestRankSchoolsOrdering(t *testing.T) {
	// Per-student scores: Cedar 3.0, Maple 5.0, Birch 1.0.
	records := []Record{
		{District: "North", School: "Cedar", Year: 2025, Month: 9, Enrollment: 100, RecycleLbs: "300", CompostLbs: "0"},
		{District: "North", School: "Maple", Year: 2025, Month: 9, Enrollment: 100, RecycleLbs: "250", CompostLbs: "250"},
		{District: "South", School: "Birch", Year: 2025, Month: 9, Enrollment: 100, RecycleLbs: "100", CompostLbs: "0"},
	}
	got := RankSchools(records)
	if len(got) != 3 {
		t.Fatalf("want 3 entries, got %d", len(got))
	}
	wantOrder := []string{"Maple", "Cedar", "Birch"}
	wantScore := []float64{5, 3, 1}
	for i, e := range got {
		if e.School != wantOrder[i] || e.Score != wantScore[i] || e.Rank != i+1 {
			t.Fatalf("entry %d = %+v, want school=%s score=%v rank=%d", i, e, wantOrder[i], wantScore[i], i+1)
		}
	}
}

func TestRankSchoolsAllTimeMaxEnrollment(t *testing.T) {
	// Enrollment dropped in the latest month; the board still divides by the
	// all-time max (600), unlike the per-school KPI view.
	records := []Record{
		{School: "Cedar", Year: 2024, Month: 9, Enrollment: 600, RecycleLbs: "300", CompostLbs: "0"},
		{School: "Cedar", Year: 2025, Month: 9, Enrollment: 500, RecycleLbs: "300", CompostLbs: "0"},
	}
	got := RankSchools(records)
	if got[0].Score != 1 {
		t.Fatalf("score = %v, want 600/600 = 1", got[0].Score)
	}
}

func TestRankSchoolsGroupsByNameOnly(t *testing.T) {
	// Same school name in two districts collapses into one entry; the entry
	// keeps the first-seen district.
	records := []Record{
		{District: "North", School: "Lincoln", Year: 2025, Month: 9, Enrollment: 100, RecycleLbs: "50", CompostLbs: "0"},
		{District: "South", School: "Lincoln", Year: 2025, Month: 9, Enrollment: 100, RecycleLbs: "50", CompostLbs: "0"},
	}
	got := RankSchools(records)
	if len(got) != 1 {
		t.Fatalf("want 1 conflated entry, got %d", len(got))
	}
	if got[0].TotalDivertedLbs != 100 || got[0].District != "North" {
		t.Fatalf("entry = %+v", got[0])
	}
}

func TestRankSchoolsTiesKeepInputOrder(t *testing.T) {
	records := []Record{
		{School: "Aspen", Year: 2025, Month: 9, Enrollment: 100, RecycleLbs: "200", CompostLbs: "0"},
		{School: "Willow", Year: 2025, Month: 9, Enrollment: 100, RecycleLbs: "200", CompostLbs: "0"},
	}
	got := RankSchools(records)
	if got[0].School != "Aspen" || got[1].School != "Willow" {
		t.Fatalf("tie order changed: %+v", got)
	}
}

func TestRankSchoolsZeroEnrollment(t *testing.T) {
	records := []Record{
		{School: "Ghost", Year: 2025, Month: 9, Enrollment: nil, RecycleLbs: "100", CompostLbs: "0"},
	}
	got := RankSchools(records)
	if got[0].Score != 0 {
		t.Fatalf("score with zero enrollment = %v, want 0", got[0].Score)
	}
}

func TestRankSchoolsEmptyAndIdempotent(t *testing.T) {
	if got := RankSchools(nil); len(got) != 0 {
		t.Fatalf("RankSchools(nil) = %+v, want empty", got)
	}
	records := []Record{
		{School: "Cedar", Year: 2025, Month: 9, Enrollment: 100, RecycleLbs: "10", CompostLbs: "20"},
		{School: "Maple", Year: 2025, Month: 9, Enrollment: 50, RecycleLbs: "5", CompostLbs: "5"},
	}
	if !reflect.DeepEqual(RankSchools(records), RankSchools(records)) {
		t.Fatal("same input produced different leaderboards")
	}
}
