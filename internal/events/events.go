package events

import "context"

// Event is a program calendar entry: cleanup days, collection drives,
// assemblies.
type Event struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Location    string `json:"location,omitempty"`
	StartsAt    int64  `json:"starts_at"`
	EndsAt      int64  `json:"ends_at,omitempty"`
	CreatedBy   string `json:"created_by,omitempty"`
	CreatedAt   int64  `json:"created_at,omitempty"`
}

type Store interface {
	PutEvent(ctx context.Context, e Event) (Event, error)
	GetEvent(ctx context.Context, id string) (Event, error)
	// Upcoming lists events starting at or after the given unix time,
	// soonest first.
	Upcoming(ctx context.Context, from int64, limit int) ([]Event, error)
	DeleteEvent(ctx context.Context, id string) error
}
