package waste

import (
	"context"

	"github.com/eco-academy/ecoacademy/internal/diversion"
)

// Service runs the diversion engine over stored records. Every call
// recomputes from scratch: datasets are a few hundred rows per school and an
// always-fresh answer beats inventing an invalidation policy.
type Service struct {
	store Store
}

func NewService(store Store) *Service { return &Service{store: store} }

func (s *Service) Store() Store { return s.store }

// Trends returns the full monthly series for one school, ascending by period.
func (s *Service) Trends(ctx context.Context, district, school string) ([]diversion.MonthlyAggregate, error) {
	records, err := s.store.RecordsForSchool(ctx, district, school)
	if err != nil {
		return nil, err
	}
	return diversion.AggregateMonthly(toDiversion(records)), nil
}

// KPIs summarizes one school. window > 0 restricts the totals to the last
// window periods; enrollment always resolves from the full record set.
func (s *Service) KPIs(ctx context.Context, district, school string, window int) (diversion.KPISummary, error) {
	records, err := s.store.RecordsForSchool(ctx, district, school)
	if err != nil {
		return diversion.KPISummary{}, err
	}
	drecs := toDiversion(records)
	aggs := diversion.AggregateMonthly(drecs)
	if window > 0 && window < len(aggs) {
		aggs = aggs[len(aggs)-window:]
	}
	return diversion.ComputeKPIs(aggs, diversion.ResolveEnrollment(drecs)), nil
}

// Leaderboard ranks every school in the dataset by diverted pounds per
// student, all time.
func (s *Service) Leaderboard(ctx context.Context) ([]diversion.LeaderboardEntry, error) {
	records, err := s.store.AllRecords(ctx)
	if err != nil {
		return nil, err
	}
	return diversion.RankSchools(toDiversion(records)), nil
}
