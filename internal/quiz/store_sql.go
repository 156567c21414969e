package quiz

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound  = errors.New("quiz not found")
	ErrSubmitted = errors.New("attempt already submitted")
)

type SQLStore struct {
	db     *sql.DB
	driver string
}

func NewSQLStore(db *sql.DB, driver string) *SQLStore {
	return &SQLStore{db: db, driver: driver}
}

func (s *SQLStore) PutQuiz(ctx context.Context, q Quiz) error {
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	qj, err := json.Marshal(q.Questions)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO quizzes (id,title,questions_json,created_at)
		 VALUES ($1,$2,$3,$4)
		 ON CONFLICT (id) DO UPDATE SET title=EXCLUDED.title, questions_json=EXCLUDED.questions_json`,
		q.ID, q.Title, string(qj), time.Now().Unix())
	return err
}

func (s *SQLStore) GetQuiz(ctx context.Context, id string) (Quiz, error) {
	q, err := s.getQuizFull(ctx, id)
	if err != nil {
		return Quiz{}, err
	}
	for i := range q.Questions {
		q.Questions[i].AnswerKey = nil
	}
	return q, nil
}

func (s *SQLStore) getQuizFull(ctx context.Context, id string) (Quiz, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id,title,questions_json,created_at FROM quizzes WHERE id=$1`, id)
	var q Quiz
	var qjson string
	if err := row.Scan(&q.ID, &q.Title, &qjson, &q.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Quiz{}, ErrNotFound
		}
		return Quiz{}, err
	}
	if err := json.Unmarshal([]byte(qjson), &q.Questions); err != nil {
		return Quiz{}, err
	}
	return q, nil
}

func (s *SQLStore) NewAttempt(ctx context.Context, quizID, userID string) (Attempt, error) {
	if _, err := s.getQuizFull(ctx, quizID); err != nil {
		return Attempt{}, err
	}
	id := uuid.NewString()
	resp := map[string]any{}
	respJSON, _ := json.Marshal(resp)
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO quiz_attempts (id,quiz_id,user_id,status,score,responses_json,started_at)
		 VALUES ($1,$2,$3,'in_progress',0,$4,$5)`,
		id, quizID, userID, string(respJSON), time.Now().Unix())
	if err != nil {
		return Attempt{}, err
	}
	return Attempt{ID: id, QuizID: quizID, UserID: userID, Status: "in_progress", Responses: resp}, nil
}

func (s *SQLStore) SaveResponses(ctx context.Context, attemptID string, resp map[string]any) (Attempt, error) {
	a, err := s.GetAttempt(ctx, attemptID)
	if err != nil {
		return Attempt{}, err
	}
	if a.Status == "submitted" {
		return Attempt{}, ErrSubmitted
	}
	if a.Responses == nil {
		a.Responses = map[string]any{}
	}
	for k, v := range resp {
		a.Responses[k] = v
	}
	buf, _ := json.Marshal(a.Responses)
	_, err = s.db.ExecContext(ctx, `UPDATE quiz_attempts SET responses_json=$1 WHERE id=$2`, string(buf), attemptID)
	if err != nil {
		return Attempt{}, err
	}
	return s.GetAttempt(ctx, attemptID)
}

func (s *SQLStore) Submit(ctx context.Context, attemptID string) (Attempt, error) {
	a, err := s.GetAttempt(ctx, attemptID)
	if err != nil {
		return Attempt{}, err
	}
	if a.Status == "submitted" {
		return a, nil
	}

	// Full quiz with keys for grading.
	q, err := s.getQuizFull(ctx, a.QuizID)
	if err != nil {
		return Attempt{}, err
	}
	a.Score = GradeResponses(q.Questions, a.Responses)
	a.Status = "submitted"

	buf, _ := json.Marshal(a.Responses)
	_, err = s.db.ExecContext(ctx,
		`UPDATE quiz_attempts SET status='submitted', score=$1, responses_json=$2, submitted_at=$3 WHERE id=$4`,
		a.Score, string(buf), time.Now().Unix(), attemptID)
	if err != nil {
		return Attempt{}, err
	}
	return s.GetAttempt(ctx, attemptID)
}

func (s *SQLStore) GetAttempt(ctx context.Context, id string) (Attempt, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id,quiz_id,user_id,status,score,responses_json FROM quiz_attempts WHERE id=$1`, id)
	var a Attempt
	var rjson string
	if err := row.Scan(&a.ID, &a.QuizID, &a.UserID, &a.Status, &a.Score, &rjson); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Attempt{}, errors.New("attempt not found")
		}
		return Attempt{}, err
	}
	if err := json.Unmarshal([]byte(rjson), &a.Responses); err != nil {
		a.Responses = map[string]any{}
	}
	return a, nil
}
