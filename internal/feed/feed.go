package feed

import "context"

// Post is one Green Leaders Network entry.
type Post struct {
	ID        string `json:"id"`
	Author    string `json:"author"`
	School    string `json:"school,omitempty"`
	Body      string `json:"body"`
	CreatedAt int64  `json:"created_at"`
}

// Page is one slice of the feed. NextCursor is empty on the last page.
type Page struct {
	Posts      []Post `json:"posts"`
	NextCursor string `json:"next_cursor,omitempty"`
}

type Store interface {
	CreatePost(ctx context.Context, p Post) (Post, error)
	// List pages through the feed newest-first. cursor is an opaque token
	// from a previous page ("" for the first page).
	List(ctx context.Context, cursor string, limit int) (Page, error)
	DeletePost(ctx context.Context, id string) error
}
