package events

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("event not found")

type SQLStore struct {
	db     *sql.DB
	driver string
}

func NewSQLStore(db *sql.DB, driver string) *SQLStore {
	return &SQLStore{db: db, driver: driver}
}

func (s *SQLStore) PutEvent(ctx context.Context, e Event) (Event, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt == 0 {
		e.CreatedAt = time.Now().Unix()
	}
	var endsAt any
	if e.EndsAt != 0 {
		endsAt = e.EndsAt
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO events (id,title,description,location,starts_at,ends_at,created_by,created_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		 ON CONFLICT (id) DO UPDATE SET
		   title=EXCLUDED.title, description=EXCLUDED.description,
		   location=EXCLUDED.location, starts_at=EXCLUDED.starts_at, ends_at=EXCLUDED.ends_at`,
		e.ID, e.Title, e.Description, e.Location, e.StartsAt, endsAt, e.CreatedBy, e.CreatedAt)
	return e, err
}

func (s *SQLStore) GetEvent(ctx context.Context, id string) (Event, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id,title,description,location,starts_at,ends_at,created_by,created_at
		 FROM events WHERE id=$1`, id)
	return scanEvent(row)
}

func (s *SQLStore) Upcoming(ctx context.Context, from int64, limit int) ([]Event, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id,title,description,location,starts_at,ends_at,created_by,created_at
		 FROM events WHERE starts_at >= $1 ORDER BY starts_at LIMIT $2`, from, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []Event{}
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *SQLStore) DeleteEvent(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM events WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface{ Scan(dest ...any) error }

func scanEvent(row rowScanner) (Event, error) {
	var e Event
	var endsAt sql.NullInt64
	err := row.Scan(&e.ID, &e.Title, &e.Description, &e.Location,
		&e.StartsAt, &endsAt, &e.CreatedBy, &e.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Event{}, ErrNotFound
	}
	if err != nil {
		return Event{}, err
	}
	e.EndsAt = endsAt.Int64
	return e, nil
}
