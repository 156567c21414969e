package waste

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("record not found")

type SQLStore struct {
	db     *sql.DB
	driver string // "sqlite" or "postgres"
}

func NewSQLStore(db *sql.DB, driver string) *SQLStore {
	return &SQLStore{db: db, driver: driver}
}

func (s *SQLStore) PutRecord(ctx context.Context, r Record) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.CreatedAt == 0 {
		r.CreatedAt = time.Now().Unix()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO waste_records (id,district,school,year,month,enrollment,recycle_lbs,compost_lbs,submitted_by,created_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		 ON CONFLICT (id) DO UPDATE SET
		   district=EXCLUDED.district, school=EXCLUDED.school,
		   year=EXCLUDED.year, month=EXCLUDED.month,
		   enrollment=EXCLUDED.enrollment, recycle_lbs=EXCLUDED.recycle_lbs,
		   compost_lbs=EXCLUDED.compost_lbs`,
		r.ID, r.District, r.School, r.Year, r.Month,
		r.Enrollment, r.RecycleLbs, r.CompostLbs, r.SubmittedBy, r.CreatedAt)
	return err
}

func (s *SQLStore) GetRecord(ctx context.Context, id string) (Record, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id,district,school,year,month,enrollment,recycle_lbs,compost_lbs,submitted_by,created_at
		 FROM waste_records WHERE id=$1`, id)
	return scanRecord(row)
}

func (s *SQLStore) ListRecords(ctx context.Context, opts ListOpts) ([]Record, error) {
	q := `SELECT id,district,school,year,month,enrollment,recycle_lbs,compost_lbs,submitted_by,created_at
	      FROM waste_records WHERE 1=1`
	args := []any{}
	n := 0
	add := func(clause string, v any) {
		n++
		q += clause + placeholder(n)
		args = append(args, v)
	}
	if opts.District != "" {
		add(` AND district=`, opts.District)
	}
	if opts.School != "" {
		add(` AND school=`, opts.School)
	}
	if opts.Year != 0 {
		add(` AND year=`, opts.Year)
	}
	q += ` ORDER BY year, month, school`
	limit := opts.Limit
	if limit <= 0 || limit > 500 {
		limit = 500
	}
	add(` LIMIT `, limit)
	if opts.Offset > 0 {
		add(` OFFSET `, opts.Offset)
	}

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRecords(rows)
}

func (s *SQLStore) RecordsForSchool(ctx context.Context, district, school string) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id,district,school,year,month,enrollment,recycle_lbs,compost_lbs,submitted_by,created_at
		 FROM waste_records WHERE district=$1 AND school=$2 ORDER BY year, month`,
		district, school)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRecords(rows)
}

func (s *SQLStore) AllRecords(ctx context.Context) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id,district,school,year,month,enrollment,recycle_lbs,compost_lbs,submitted_by,created_at
		 FROM waste_records ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRecords(rows)
}

func (s *SQLStore) DeleteRecord(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM waste_records WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface{ Scan(dest ...any) error }

func scanRecord(row rowScanner) (Record, error) {
	var r Record
	var submittedBy sql.NullString
	err := row.Scan(&r.ID, &r.District, &r.School, &r.Year, &r.Month,
		&r.Enrollment, &r.RecycleLbs, &r.CompostLbs, &submittedBy, &r.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, ErrNotFound
	}
	if err != nil {
		return Record{}, err
	}
	r.SubmittedBy = submittedBy.String
	return r, nil
}

func collectRecords(rows *sql.Rows) ([]Record, error) {
	out := []Record{}
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func placeholder(n int) string {
	// Both modernc sqlite and pgx accept $N.
	return "$" + strconv.Itoa(n)
}
