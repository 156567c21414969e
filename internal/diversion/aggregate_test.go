package diversion

import (
	"reflect"
	"testing"
)

func rec(year, month int, recycle, compost any) Record {
	return Record{
		District:   "Bayview USD",
		School:     "Shoreline Elementary",
		Year:       year,
		Month:      month,
		RecycleLbs: recycle,
		CompostLbs: compost,
	}
}

func TestAggregateMonthlyGrouping(t *testing.T) {
	records := []Record{
		rec(2025, 9, "100", "50"),
		rec(2025, 9, "20", "0"),
		rec(2025, 10, "10", "10"),
	}
	got := AggregateMonthly(records)
	if len(got) != 2 {
		t.Fatalf("want 2 periods, got %d: %+v", len(got), got)
	}
	if got[0].Period != "2025-09" || got[0].DivertedLbs != 170 {
		t.Errorf("first period = %+v, want 2025-09 diverted 170", got[0])
	}
	if got[1].Period != "2025-10" || got[1].DivertedLbs != 20 {
		t.Errorf("second period = %+v, want 2025-10 diverted 20", got[1])
	}
}

func TestAggregateMonthlyDivertedAdditivity(t *testing.T) {
	records := []Record{
		rec(2024, 11, "1,200", "300.5"),
		rec(2024, 12, "garbage", "40"),
		rec(2025, 1, nil, nil),
	}
	for _, a := range AggregateMonthly(records) {
		if a.DivertedLbs != a.RecycleLbs+a.CompostLbs {
			t.Errorf("period %s: diverted %v != recycle %v + compost %v",
				a.Period, a.DivertedLbs, a.RecycleLbs, a.CompostLbs)
		}
	}
}

func TestAggregateMonthlyChronologicalOrder(t *testing.T) {
	records := []Record{
		rec(2025, 10, "1", "0"),
		rec(2025, 2, "1", "0"),
		rec(2024, 12, "1", "0"),
	}
	got := AggregateMonthly(records)
	want := []string{"2024-12", "2025-02", "2025-10"}
	for i, a := range got {
		if a.Period != want[i] {
			t.Fatalf("order = %v, want %v", periods(got), want)
		}
	}
}

func periods(aggs []MonthlyAggregate) []string {
	out := make([]string, len(aggs))
	for i, a := range aggs {
		out[i] = a.Period
	}
	return out
}

func TestResolveEnrollmentMaxNotSum(t *testing.T) {
	records := []Record{
		{Year: 2025, Month: 8, Enrollment: 480},
		{Year: 2025, Month: 9, Enrollment: 500},
		{Year: 2025, Month: 9, Enrollment: "520"},
	}
	if got := ResolveEnrollment(records); got != 520 {
		t.Fatalf("ResolveEnrollment = %v, want 520 (max over latest period)", got)
	}
}

func TestResolveEnrollmentEmpty(t *testing.T) {
	if got := ResolveEnrollment(nil); got != 0 {
		t.Fatalf("ResolveEnrollment(nil) = %v, want 0", got)
	}
}

func TestComputeKPIsDivisionByZero(t *testing.T) {
	if got := ComputeKPIs(nil, 0).DivertedPerStudent; got != 0 {
		t.Fatalf("divertedPerStudent = %v, want 0", got)
	}
	aggs := []MonthlyAggregate{{Period: "2025-09", RecycleLbs: 10, CompostLbs: 5, DivertedLbs: 15}}
	if got := ComputeKPIs(aggs, 0).DivertedPerStudent; got != 0 {
		t.Fatalf("divertedPerStudent with zero enrollment = %v, want 0", got)
	}
}

func TestComputeKPIsTotals(t *testing.T) {
	aggs := []MonthlyAggregate{
		{Period: "2025-09", RecycleLbs: 100, CompostLbs: 50, DivertedLbs: 150},
		{Period: "2025-10", RecycleLbs: 20, CompostLbs: 30, DivertedLbs: 50},
	}
	got := ComputeKPIs(aggs, 400)
	if got.TotalRecycleLbs != 120 || got.TotalCompostLbs != 80 || got.TotalDivertedLbs != 200 {
		t.Fatalf("totals = %+v", got)
	}
	if got.DivertedPerStudent != 0.5 {
		t.Fatalf("divertedPerStudent = %v, want 0.5", got.DivertedPerStudent)
	}
}

func TestAggregateMonthlyIdempotent(t *testing.T) {
	records := []Record{
		rec(2025, 9, "100", "50"),
		rec(2025, 10, "10", "10"),
	}
	first := AggregateMonthly(records)
	second := AggregateMonthly(records)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("same input produced different output:\n%+v\n%+v", first, second)
	}
}

func TestAggregateMonthlyEmpty(t *testing.T) {
	if got := AggregateMonthly(nil); len(got) != 0 {
		t.Fatalf("AggregateMonthly(nil) = %+v, want empty", got)
	}
}
