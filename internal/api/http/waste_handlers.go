package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/eco-academy/ecoacademy/internal/activity"
	authmw "github.com/eco-academy/ecoacademy/internal/auth/middleware"
	"github.com/eco-academy/ecoacademy/internal/waste"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func SubmitRecordHandler(svc *waste.Service, log *activity.Repo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var rec waste.Record
		if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
			http.Error(w, "bad json", 400)
			return
		}
		if rec.District == "" || rec.School == "" {
			http.Error(w, "district and school required", 400)
			return
		}
		if rec.Month < 1 || rec.Month > 12 {
			http.Error(w, "month must be 1-12", 400)
			return
		}
		if rec.ID == "" {
			rec.ID = uuid.NewString()
		}
		rec.SubmittedBy = authmw.SubjectFromContext(r.Context())
		if err := svc.Store().PutRecord(r.Context(), rec); err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		data, _ := json.Marshal(map[string]any{"district": rec.District, "school": rec.School, "year": rec.Year, "month": rec.Month})
		_ = log.Append(r.Context(), activity.Entry{
			Type: activity.TypeRecordSubmitted, Key: rec.ID,
			Actor: rec.SubmittedBy, DataJSON: string(data),
		})
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(rec)
	}
}

// ImportRecordsHandler accepts either multipart file= (CSV or JSON array) or
// a raw JSON array in the body, the same dual shape as the user roster
// importer. Rows land atomically per row, not per file.
func ImportRecordsHandler(svc *waste.Service, log *activity.Repo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var rows []waste.Record
		ct := r.Header.Get("Content-Type")
		if strings.HasPrefix(ct, "multipart/form-data") {
			f, _, err := r.FormFile("file")
			if err != nil {
				http.Error(w, "file required", 400)
				return
			}
			defer f.Close()
			isJSON, err := sniffJSON(f)
			if err != nil {
				http.Error(w, "empty file", 400)
				return
			}
			if isJSON {
				if err := json.NewDecoder(f).Decode(&rows); err != nil {
					http.Error(w, "bad json", 400)
					return
				}
			} else {
				rows, err = waste.ParseCSV(f)
				if err != nil {
					http.Error(w, "bad csv: "+err.Error(), 400)
					return
				}
			}
		} else {
			if err := json.NewDecoder(r.Body).Decode(&rows); err != nil {
				http.Error(w, "expected JSON array or multipart file", 400)
				return
			}
		}

		actor := authmw.SubjectFromContext(r.Context())
		imported := 0
		for _, rec := range rows {
			rec.SubmittedBy = actor
			if err := svc.Store().PutRecord(r.Context(), rec); err != nil {
				http.Error(w, err.Error(), 500)
				return
			}
			imported++
		}
		data, _ := json.Marshal(map[string]int{"count": imported})
		_ = log.Append(r.Context(), activity.Entry{
			Type: activity.TypeRecordsImported, Actor: actor, DataJSON: string(data),
		})
		_ = json.NewEncoder(w).Encode(map[string]int{"imported": imported})
	}
}

func ListRecordsHandler(svc *waste.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		year, _ := strconv.Atoi(q.Get("year"))
		limit, _ := strconv.Atoi(q.Get("limit"))
		offset, _ := strconv.Atoi(q.Get("offset"))
		records, err := svc.Store().ListRecords(r.Context(), waste.ListOpts{
			District: q.Get("district"),
			School:   q.Get("school"),
			Year:     year,
			Limit:    limit,
			Offset:   offset,
		})
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		_ = json.NewEncoder(w).Encode(records)
	}
}

func DeleteRecordHandler(svc *waste.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "recordID")
		if err := svc.Store().DeleteRecord(r.Context(), id); err != nil {
			if errors.Is(err, waste.ErrNotFound) {
				http.Error(w, err.Error(), 404)
				return
			}
			http.Error(w, err.Error(), 500)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
