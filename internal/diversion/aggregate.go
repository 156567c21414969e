package diversion

import (
	"fmt"
	"sort"
)

// PeriodKey renders the canonical "YYYY-MM" grouping key. The month must be
// zero-padded to two digits or lexicographic order stops matching
// chronological order for October through December.
func PeriodKey(year, month int) string {
	return fmt.Sprintf("%d-%02d", year, month)
}

// AggregateMonthly groups one school's records by reporting month and sums
// the normalized weights. Output is ascending by period key. Months with no
// records simply have no entry; callers must not assume a contiguous series.
func AggregateMonthly(records []Record) []MonthlyAggregate {
	byPeriod := map[string]*MonthlyAggregate{}
	for _, r := range records {
		key := PeriodKey(r.Year, r.Month)
		agg, ok := byPeriod[key]
		if !ok {
			agg = &MonthlyAggregate{Period: key}
			byPeriod[key] = agg
		}
		agg.RecycleLbs += NormalizeNumber(r.RecycleLbs)
		agg.CompostLbs += NormalizeNumber(r.CompostLbs)
	}

	out := make([]MonthlyAggregate, 0, len(byPeriod))
	for _, agg := range byPeriod {
		agg.DivertedLbs = agg.RecycleLbs + agg.CompostLbs
		out = append(out, *agg)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Period < out[j].Period })
	return out
}

// ResolveEnrollment returns the enrollment to use for a school: the maximum
// value reported for the latest (year, month) present in the record set.
// Multiple sub-accounts can each report the school's full headcount for the
// same month, so summing would double count; max dedupes them. Returns 0 for
// an empty set.
func ResolveEnrollment(records []Record) float64 {
	if len(records) == 0 {
		return 0
	}
	latestYear, latestMonth := records[0].Year, records[0].Month
	for _, r := range records[1:] {
		if r.Year > latestYear || (r.Year == latestYear && r.Month > latestMonth) {
			latestYear, latestMonth = r.Year, r.Month
		}
	}
	var max float64
	for _, r := range records {
		if r.Year != latestYear || r.Month != latestMonth {
			continue
		}
		if e := NormalizeNumber(r.Enrollment); e > max {
			max = e
		}
	}
	return max
}

// ComputeKPIs sums the given aggregates into a summary. The caller chooses
// the window by choosing which aggregates to pass (e.g. last six periods).
func ComputeKPIs(aggregates []MonthlyAggregate, enrollment float64) KPISummary {
	s := KPISummary{Enrollment: enrollment}
	for _, a := range aggregates {
		s.TotalRecycleLbs += a.RecycleLbs
		s.TotalCompostLbs += a.CompostLbs
		s.TotalDivertedLbs += a.DivertedLbs
	}
	if enrollment > 0 {
		s.DivertedPerStudent = s.TotalDivertedLbs / enrollment
	}
	return s
}
