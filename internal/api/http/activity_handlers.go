package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/eco-academy/ecoacademy/internal/activity"
)

// RecentActivityHandler serves the admin audit feed.
// GET /activity?limit=50
func RecentActivityHandler(log *activity.Repo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		entries, err := log.Recent(r.Context(), limit)
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		_ = json.NewEncoder(w).Encode(entries)
	}
}
