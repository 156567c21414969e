package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/eco-academy/ecoacademy/internal/waste"
)

// TrendsHandler serves the monthly diversion series for one school.
// GET /trends?district=...&school=...
func TrendsHandler(svc *waste.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		district, school := r.URL.Query().Get("district"), r.URL.Query().Get("school")
		if district == "" || school == "" {
			http.Error(w, "district and school required", 400)
			return
		}
		aggs, err := svc.Trends(r.Context(), district, school)
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"district": district,
			"school":   school,
			"periods":  aggs,
		})
	}
}

// KPIHandler serves the per-school summary.
// GET /kpis?district=...&school=...&window=6
func KPIHandler(svc *waste.Service, defaultWindow int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		district, school := q.Get("district"), q.Get("school")
		if district == "" || school == "" {
			http.Error(w, "district and school required", 400)
			return
		}
		window := defaultWindow
		if v := q.Get("window"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 0 {
				http.Error(w, "bad window", 400)
				return
			}
			window = n
		}
		kpis, err := svc.KPIs(r.Context(), district, school, window)
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		_ = json.NewEncoder(w).Encode(kpis)
	}
}

// LeaderboardHandler serves the cross-school board, recomputed per request so
// clients always observe the current dataset.
// GET /leaderboard
func LeaderboardHandler(svc *waste.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries, err := svc.Leaderboard(r.Context())
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"generated_at": time.Now().UTC().Format(time.RFC3339),
			"entries":      entries,
		})
	}
}
