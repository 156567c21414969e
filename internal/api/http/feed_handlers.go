package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	authmw "github.com/eco-academy/ecoacademy/internal/auth/middleware"
	"github.com/eco-academy/ecoacademy/internal/feed"
)

func CreatePostHandler(store feed.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var p feed.Post
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			http.Error(w, "bad json", 400)
			return
		}
		p.Body = strings.TrimSpace(p.Body)
		if p.Body == "" {
			http.Error(w, "body required", 400)
			return
		}
		p.Author = authmw.SubjectFromContext(r.Context())
		p, err := store.CreatePost(r.Context(), p)
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(p)
	}
}

// ListFeedHandler pages the feed newest-first.
// GET /feed?cursor=...&limit=20
func ListFeedHandler(store feed.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		page, err := store.List(r.Context(), r.URL.Query().Get("cursor"), limit)
		if err != nil {
			if errors.Is(err, feed.ErrBadCursor) {
				http.Error(w, err.Error(), 400)
				return
			}
			http.Error(w, err.Error(), 500)
			return
		}
		_ = json.NewEncoder(w).Encode(page)
	}
}
