package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/eco-academy/ecoacademy/internal/activity"
	authmw "github.com/eco-academy/ecoacademy/internal/auth/middleware"
	"github.com/eco-academy/ecoacademy/internal/events"

	"github.com/go-chi/chi/v5"
)

func CreateEventHandler(store events.Store, log *activity.Repo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var e events.Event
		if err := json.NewDecoder(r.Body).Decode(&e); err != nil {
			http.Error(w, "bad json", 400)
			return
		}
		if e.Title == "" || e.StartsAt == 0 {
			http.Error(w, "title and starts_at required", 400)
			return
		}
		e.CreatedBy = authmw.SubjectFromContext(r.Context())
		e, err := store.PutEvent(r.Context(), e)
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		_ = log.Append(r.Context(), activity.Entry{
			Type: activity.TypeEventCreated, Key: e.ID, Actor: e.CreatedBy, DataJSON: `{"title":` + strconv.Quote(e.Title) + `}`,
		})
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(e)
	}
}

func GetEventHandler(store events.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		e, err := store.GetEvent(r.Context(), chi.URLParam(r, "eventID"))
		if err != nil {
			if errors.Is(err, events.ErrNotFound) {
				http.Error(w, err.Error(), 404)
				return
			}
			http.Error(w, err.Error(), 500)
			return
		}
		_ = json.NewEncoder(w).Encode(e)
	}
}

// ListEventsHandler returns upcoming events; ?from= overrides "now" (unix
// seconds) so clients can page a calendar month.
func ListEventsHandler(store events.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		from := time.Now().Unix()
		if v := r.URL.Query().Get("from"); v != "" {
			n, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				http.Error(w, "bad from", 400)
				return
			}
			from = n
		}
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		out, err := store.Upcoming(r.Context(), from, limit)
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		_ = json.NewEncoder(w).Encode(out)
	}
}

func DeleteEventHandler(store events.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := store.DeleteEvent(r.Context(), chi.URLParam(r, "eventID"))
		if err != nil {
			if errors.Is(err, events.ErrNotFound) {
				http.Error(w, err.Error(), 404)
				return
			}
			http.Error(w, err.Error(), 500)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
