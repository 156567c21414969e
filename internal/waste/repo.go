package waste

import "context"

type ListOpts struct {
	District string
	School   string
	Year     int
	Limit    int
	Offset   int
}

type Store interface {
	PutRecord(ctx context.Context, r Record) error
	GetRecord(ctx context.Context, id string) (Record, error)
	ListRecords(ctx context.Context, opts ListOpts) ([]Record, error)

	// RecordsForSchool returns every record for one (district, school) pair,
	// the per-school KPI/trends input.
	RecordsForSchool(ctx context.Context, district, school string) ([]Record, error)

	// AllRecords returns the whole dataset, the leaderboard input. Bounded in
	// practice: a few hundred rows per school.
	AllRecords(ctx context.Context) ([]Record, error)

	DeleteRecord(ctx context.Context, id string) error
}
