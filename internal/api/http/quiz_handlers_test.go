package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	authmw "github.com/eco-academy/ecoacademy/internal/auth/middleware"
	"github.com/eco-academy/ecoacademy/internal/quiz"
	"github.com/eco-academy/ecoacademy/internal/rbac"

	"github.com/go-chi/chi/v5"
)

type fakeQuizStore struct {
	quizzes  map[string]quiz.Quiz
	attempts map[string]quiz.Attempt
}

func (f *fakeQuizStore) PutQuiz(_ context.Context, q quiz.Quiz) error {
	f.quizzes[q.ID] = q
	return nil
}

func (f *fakeQuizStore) GetQuiz(_ context.Context, id string) (quiz.Quiz, error) {
	q, ok := f.quizzes[id]
	if !ok {
		return quiz.Quiz{}, quiz.ErrNotFound
	}
	return q, nil
}

func (f *fakeQuizStore) NewAttempt(_ context.Context, quizID, userID string) (quiz.Attempt, error) {
	a := quiz.Attempt{ID: "a-" + userID, QuizID: quizID, UserID: userID, Status: "in_progress"}
	f.attempts[a.ID] = a
	return a, nil
}

func (f *fakeQuizStore) SaveResponses(_ context.Context, attemptID string, resp map[string]any) (quiz.Attempt, error) {
	a, ok := f.attempts[attemptID]
	if !ok {
		return quiz.Attempt{}, quiz.ErrNotFound
	}
	a.Responses = resp
	f.attempts[attemptID] = a
	return a, nil
}

func (f *fakeQuizStore) Submit(_ context.Context, attemptID string) (quiz.Attempt, error) {
	a, ok := f.attempts[attemptID]
	if !ok {
		return quiz.Attempt{}, quiz.ErrNotFound
	}
	a.Status = "submitted"
	f.attempts[attemptID] = a
	return a, nil
}

func (f *fakeQuizStore) GetAttempt(_ context.Context, id string) (quiz.Attempt, error) {
	a, ok := f.attempts[id]
	if !ok {
		return quiz.Attempt{}, quiz.ErrNotFound
	}
	return a, nil
}

// attemptRouter mirrors the gateway's attempt routes, including the
// owner-or-view-all guard on reads.
func attemptRouter(store quiz.Store) *chi.Mux {
	r := chi.NewRouter()
	r.With(rbac.RequireOwnerOr("attempt:view-all", OwnsAttempt(store))).
		Get("/attempts/{attemptID}", GetQuizAttemptHandler(store))
	r.Post("/attempts/{attemptID}/responses", SaveQuizResponsesHandler(store))
	r.Post("/attempts/{attemptID}/submit", SubmitQuizAttemptHandler(store))
	return r
}

func attemptRequest(method, path, body, subject, role string) *http.Request {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	ctx := authmw.WithSubject(req.Context(), subject)
	ctx = rbac.WithRole(ctx, role)
	return req.WithContext(ctx)
}

func seedAttemptStore() *fakeQuizStore {
	return &fakeQuizStore{
		quizzes: map[string]quiz.Quiz{},
		attempts: map[string]quiz.Attempt{
			"att-1": {ID: "att-1", QuizID: "q1", UserID: "stu-1", Status: "in_progress",
				Responses: map[string]any{"q1": "a"}},
		},
	}
}

func TestGetAttemptOwnerAndTeacher(t *testing.T) {
	store := seedAttemptStore()
	r := attemptRouter(store)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, attemptRequest("GET", "/attempts/att-1", "", "stu-1", "student"))
	if w.Code != 200 {
		t.Fatalf("owner get: status %d", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, attemptRequest("GET", "/attempts/att-1", "", "teach-1", "teacher"))
	if w.Code != 200 {
		t.Fatalf("teacher get: status %d", w.Code)
	}
}

func TestGetAttemptOtherStudentForbidden(t *testing.T) {
	store := seedAttemptStore()
	r := attemptRouter(store)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, attemptRequest("GET", "/attempts/att-1", "", "stu-2", "student"))
	if w.Code != http.StatusForbidden {
		t.Fatalf("other student get: status %d, want 403", w.Code)
	}
}

func TestSaveResponsesOtherStudentForbidden(t *testing.T) {
	store := seedAttemptStore()
	r := attemptRouter(store)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, attemptRequest("POST", "/attempts/att-1/responses",
		`{"q1":"hijacked"}`, "stu-2", "student"))
	if w.Code != http.StatusForbidden {
		t.Fatalf("other student save: status %d, want 403", w.Code)
	}
	if got := store.attempts["att-1"].Responses["q1"]; got != "a" {
		t.Fatalf("responses overwritten by non-owner: %v", got)
	}
}

func TestSaveResponsesOwnerSucceeds(t *testing.T) {
	store := seedAttemptStore()
	r := attemptRouter(store)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, attemptRequest("POST", "/attempts/att-1/responses",
		`{"q1":"b"}`, "stu-1", "student"))
	if w.Code != 200 {
		t.Fatalf("owner save: status %d", w.Code)
	}
	if got := store.attempts["att-1"].Responses["q1"]; got != "b" {
		t.Fatalf("responses not saved: %v", got)
	}
}

func TestSubmitAttemptOtherStudentForbidden(t *testing.T) {
	store := seedAttemptStore()
	r := attemptRouter(store)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, attemptRequest("POST", "/attempts/att-1/submit", "", "stu-2", "student"))
	if w.Code != http.StatusForbidden {
		t.Fatalf("other student submit: status %d, want 403", w.Code)
	}
	if got := store.attempts["att-1"].Status; got != "in_progress" {
		t.Fatalf("attempt submitted by non-owner: status %q", got)
	}
}
