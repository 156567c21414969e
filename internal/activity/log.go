package activity

import (
	"context"
	"database/sql"
	"time"
)

// Entry types recorded by the gateway.
const (
	TypeRecordSubmitted = "RecordSubmitted"
	TypeRecordsImported = "RecordsImported"
	TypeEventCreated    = "EventCreated"
)

type Entry struct {
	Offset    int64
	Type      string
	Key       string // natural key: record id, event id, ...
	Actor     string
	DataJSON  string
	CreatedAt int64
}

// Repo appends to the activity_log table. Append-only; the log feeds admin
// audit views and is never read on the hot path.
type Repo struct{ db *sql.DB }

func NewRepo(db *sql.DB) *Repo { return &Repo{db: db} }

func (r *Repo) Append(ctx context.Context, e Entry) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO activity_log (typ, key, actor, data, created_at)
		 VALUES ($1,$2,$3,$4,$5)`,
		e.Type, e.Key, e.Actor, e.DataJSON, time.Now().Unix())
	return err
}

func (r *Repo) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT "offset", typ, key, actor, data, created_at FROM activity_log
		 ORDER BY "offset" DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []Entry{}
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Offset, &e.Type, &e.Key, &e.Actor, &e.DataJSON, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
