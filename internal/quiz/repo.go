package quiz

import "context"

type Store interface {
	PutQuiz(ctx context.Context, q Quiz) error
	// GetQuiz is student-safe: answer keys are stripped.
	GetQuiz(ctx context.Context, id string) (Quiz, error)
	NewAttempt(ctx context.Context, quizID, userID string) (Attempt, error)
	SaveResponses(ctx context.Context, attemptID string, resp map[string]any) (Attempt, error)
	Submit(ctx context.Context, attemptID string) (Attempt, error)
	GetAttempt(ctx context.Context, id string) (Attempt, error)
}
