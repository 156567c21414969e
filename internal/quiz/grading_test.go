package quiz

import "testing"

func TestGradeResponses(t *testing.T) {
	questions := []Question{
		{ID: "q1", Type: "mcq_single", AnswerKey: []string{"b"}, Points: 2},
		{ID: "q2", Type: "true_false", AnswerKey: []string{"true"}, Points: 1},
		{ID: "q3", Type: "mcq_multi", AnswerKey: []string{"a", "c"}, Points: 4},
		{ID: "q4", Type: "numeric", AnswerKey: []string{"100", "tol=1"}, Points: 3},
	}
	resp := map[string]any{
		"q1": "b",
		"q2": "false",
		"q3": []any{"a"}, // half the key, no wrong picks
		"q4": "100.5",
	}
	got := GradeResponses(questions, resp)
	// q1 2 + q2 0 + q3 2 (partial) + q4 3 (within tolerance)
	if got != 7 {
		t.Fatalf("score = %v, want 7", got)
	}
}

func TestGradeMultiWrongPickForfeits(t *testing.T) {
	q := Question{ID: "q", Type: "mcq_multi", AnswerKey: []string{"a", "b"}, Points: 4}
	if got := gradeOne(q, []any{"a", "z"}); got != 0 {
		t.Fatalf("wrong pick should forfeit credit, got %v", got)
	}
}

func TestGradeMalformedResponsesScoreZero(t *testing.T) {
	questions := []Question{
		{ID: "q1", Type: "mcq_single", AnswerKey: []string{"a"}, Points: 1},
		{ID: "q2", Type: "numeric", AnswerKey: []string{"5"}, Points: 1},
		{ID: "q3", Type: "hologram", AnswerKey: []string{"x"}, Points: 1},
	}
	resp := map[string]any{"q1": 42, "q2": []string{"5"}, "q3": "x"}
	if got := GradeResponses(questions, resp); got != 0 {
		t.Fatalf("malformed/unknown should score 0, got %v", got)
	}
}

func TestGradeNumericRelativeTolerance(t *testing.T) {
	q := Question{ID: "q", Type: "numeric", AnswerKey: []string{"200", "reltol=0.05"}, Points: 2}
	if got := gradeOne(q, "195"); got != 2 {
		t.Fatalf("195 within 5%% of 200, got %v", got)
	}
	if got := gradeOne(q, "150"); got != 0 {
		t.Fatalf("150 outside tolerance, got %v", got)
	}
}
