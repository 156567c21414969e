package diversion

// Record is one reported row: a school's waste weights for a single month.
// The measure fields are loosely typed because the reporting source hands
// back a mix of numbers and text with thousands separators ("1,234").
type Record struct {
	District   string `json:"district"`
	School     string `json:"school"`
	Year       int    `json:"year"`
	Month      int    `json:"month"` // 1-12
	Enrollment any    `json:"enrollment"`
	RecycleLbs any    `json:"recycle_lbs"`
	CompostLbs any    `json:"compost_lbs"`
}

// MonthlyAggregate is the per-period rollup for one school. Diverted is
// always recycle + compost.
type MonthlyAggregate struct {
	Period      string  `json:"period"` // "YYYY-MM", month zero-padded
	RecycleLbs  float64 `json:"recycle_lbs"`
	CompostLbs  float64 `json:"compost_lbs"`
	DivertedLbs float64 `json:"diverted_lbs"`
}

// KPISummary holds the headline numbers for one school over whatever window
// of aggregates the caller passed in.
type KPISummary struct {
	TotalRecycleLbs    float64 `json:"total_recycle_lbs"`
	TotalCompostLbs    float64 `json:"total_compost_lbs"`
	TotalDivertedLbs   float64 `json:"total_diverted_lbs"`
	Enrollment         float64 `json:"enrollment"`
	DivertedPerStudent float64 `json:"diverted_per_student"`
}

// LeaderboardEntry is one ranked school on the cross-school board.
type LeaderboardEntry struct {
	Rank             int     `json:"rank"`
	School           string  `json:"school"`
	District         string  `json:"district"`
	Score            float64 `json:"score"` // diverted lbs per student, all time
	TotalDivertedLbs float64 `json:"total_diverted_lbs"`
}
