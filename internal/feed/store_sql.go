package feed

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound  = errors.New("post not found")
	ErrBadCursor = errors.New("bad cursor")
)

type SQLStore struct {
	db     *sql.DB
	driver string
}

func NewSQLStore(db *sql.DB, driver string) *SQLStore {
	return &SQLStore{db: db, driver: driver}
}

func (s *SQLStore) CreatePost(ctx context.Context, p Post) (Post, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.CreatedAt == 0 {
		p.CreatedAt = time.Now().Unix()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO posts (id,author,school,body,created_at) VALUES ($1,$2,$3,$4,$5)`,
		p.ID, p.Author, p.School, p.Body, p.CreatedAt)
	return p, err
}

func (s *SQLStore) List(ctx context.Context, cursor string, limit int) (Page, error) {
	if limit <= 0 || limit > 50 {
		limit = 20
	}

	var rows *sql.Rows
	var err error
	if cursor == "" {
		rows, err = s.db.QueryContext(ctx,
			`SELECT id,author,school,body,created_at FROM posts
			 ORDER BY created_at DESC, id DESC LIMIT $1`, limit+1)
	} else {
		createdAt, id, derr := decodeCursor(cursor)
		if derr != nil {
			return Page{}, ErrBadCursor
		}
		rows, err = s.db.QueryContext(ctx,
			`SELECT id,author,school,body,created_at FROM posts
			 WHERE created_at < $1 OR (created_at = $1 AND id < $2)
			 ORDER BY created_at DESC, id DESC LIMIT $3`, createdAt, id, limit+1)
	}
	if err != nil {
		return Page{}, err
	}
	defer rows.Close()

	posts := []Post{}
	for rows.Next() {
		var p Post
		if err := rows.Scan(&p.ID, &p.Author, &p.School, &p.Body, &p.CreatedAt); err != nil {
			return Page{}, err
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return Page{}, err
	}

	page := Page{Posts: posts}
	// Fetched limit+1 to learn whether another page exists.
	if len(posts) > limit {
		page.Posts = posts[:limit]
		last := page.Posts[limit-1]
		page.NextCursor = encodeCursor(last.CreatedAt, last.ID)
	}
	return page, nil
}

func (s *SQLStore) DeletePost(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM posts WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
