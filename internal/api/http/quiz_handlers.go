package http

import (
	"encoding/json"
	"errors"
	"net/http"

	authmw "github.com/eco-academy/ecoacademy/internal/auth/middleware"
	"github.com/eco-academy/ecoacademy/internal/quiz"

	"github.com/go-chi/chi/v5"
)

func UploadQuizHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var q quiz.Quiz
		if err := json.NewDecoder(r.Body).Decode(&q); err != nil {
			http.Error(w, "bad json", 400)
			return
		}
		if q.Title == "" || len(q.Questions) == 0 {
			http.Error(w, "title and questions required", 400)
			return
		}
		if err := store.PutQuiz(r.Context(), q); err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(q)
	}
}

func GetQuizHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q, err := store.GetQuiz(r.Context(), chi.URLParam(r, "quizID"))
		if err != nil {
			if errors.Is(err, quiz.ErrNotFound) {
				http.Error(w, err.Error(), 404)
				return
			}
			http.Error(w, err.Error(), 500)
			return
		}
		_ = json.NewEncoder(w).Encode(q)
	}
}

func CreateQuizAttemptHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			QuizID string `json:"quiz_id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.QuizID == "" {
			http.Error(w, "quiz_id required", 400)
			return
		}
		a, err := store.NewAttempt(r.Context(), req.QuizID, authmw.SubjectFromContext(r.Context()))
		if err != nil {
			if errors.Is(err, quiz.ErrNotFound) {
				http.Error(w, err.Error(), 404)
				return
			}
			http.Error(w, err.Error(), 500)
			return
		}
		_ = json.NewEncoder(w).Encode(a)
	}
}

// OwnsAttempt reports whether the authenticated subject created the attempt
// named in the route. Pair it with rbac.RequireOwnerOr so teachers holding
// attempt:view-all can still read student work.
func OwnsAttempt(store quiz.Store) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		a, err := store.GetAttempt(r.Context(), chi.URLParam(r, "attemptID"))
		return err == nil && a.UserID == authmw.SubjectFromContext(r.Context())
	}
}

// requireAttemptOwner loads the attempt and verifies the caller is its
// author. Writes the error response itself; callers bail on !ok.
func requireAttemptOwner(w http.ResponseWriter, r *http.Request, store quiz.Store) (quiz.Attempt, bool) {
	a, err := store.GetAttempt(r.Context(), chi.URLParam(r, "attemptID"))
	if err != nil {
		if errors.Is(err, quiz.ErrNotFound) {
			http.Error(w, err.Error(), 404)
		} else {
			http.Error(w, err.Error(), 500)
		}
		return quiz.Attempt{}, false
	}
	if a.UserID != authmw.SubjectFromContext(r.Context()) {
		http.Error(w, "forbidden", http.StatusForbidden)
		return quiz.Attempt{}, false
	}
	return a, true
}

func SaveQuizResponsesHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := requireAttemptOwner(w, r, store); !ok {
			return
		}
		var resp map[string]any
		if err := json.NewDecoder(r.Body).Decode(&resp); err != nil {
			http.Error(w, "bad json", 400)
			return
		}
		a, err := store.SaveResponses(r.Context(), chi.URLParam(r, "attemptID"), resp)
		if err != nil {
			http.Error(w, err.Error(), 400)
			return
		}
		_ = json.NewEncoder(w).Encode(a)
	}
}

func SubmitQuizAttemptHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := requireAttemptOwner(w, r, store); !ok {
			return
		}
		a, err := store.Submit(r.Context(), chi.URLParam(r, "attemptID"))
		if err != nil {
			http.Error(w, err.Error(), 400)
			return
		}
		_ = json.NewEncoder(w).Encode(a)
	}
}

func GetQuizAttemptHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, err := store.GetAttempt(r.Context(), chi.URLParam(r, "attemptID"))
		if err != nil {
			http.Error(w, err.Error(), 404)
			return
		}
		_ = json.NewEncoder(w).Encode(a)
	}
}
