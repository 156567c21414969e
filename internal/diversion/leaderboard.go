package diversion

import "sort"

// RankSchools aggregates every record across all schools and returns the
// board ordered by rank, rank 1 being the highest diverted-per-student score.
//
// Grouping is by school name alone: two districts with an identically named
// school land in one entry. Enrollment is the all-time maximum seen in the
// group, unlike the per-school KPI view which scopes the max to the latest
// period. Both behaviors match the program's published dashboards and stay
// as-is pending product clarification.
func RankSchools(allRecords []Record) []LeaderboardEntry {
	type group struct {
		entry      LeaderboardEntry
		enrollment float64
	}
	groups := map[string]*group{}
	order := []string{}

	for _, r := range allRecords {
		g, ok := groups[r.School]
		if !ok {
			g = &group{entry: LeaderboardEntry{School: r.School, District: r.District}}
			groups[r.School] = g
			order = append(order, r.School)
		}
		g.entry.TotalDivertedLbs += NormalizeNumber(r.RecycleLbs) + NormalizeNumber(r.CompostLbs)
		if e := NormalizeNumber(r.Enrollment); e > g.enrollment {
			g.enrollment = e
		}
	}

	entries := make([]LeaderboardEntry, 0, len(groups))
	for _, school := range order {
		g := groups[school]
		if g.enrollment > 0 {
			g.entry.Score = g.entry.TotalDivertedLbs / g.enrollment
		}
		entries = append(entries, g.entry)
	}

	// Stable so equal scores keep first-seen input order; no secondary key.
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Score > entries[j].Score })
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}
