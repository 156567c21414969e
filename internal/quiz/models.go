package quiz

// Sustainability quizzes: short knowledge checks attached to lessons
// ("which bin does a milk carton go in?").

type Choice struct {
	ID    string `json:"id,omitempty"`
	Label string `json:"label,omitempty"`
}

type Question struct {
	ID        string   `json:"id"`
	Type      string   `json:"type"` // mcq_single, mcq_multi, true_false, numeric
	Prompt    string   `json:"prompt,omitempty"`
	Choices   []Choice `json:"choices,omitempty"`
	AnswerKey []string `json:"answer_key,omitempty"`
	Points    float64  `json:"points"`
}

type Quiz struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Questions []Question `json:"questions"`
	CreatedAt int64      `json:"created_at,omitempty"`
}

type Attempt struct {
	ID        string         `json:"id"`
	QuizID    string         `json:"quiz_id"`
	UserID    string         `json:"user_id"`
	Status    string         `json:"status"` // in_progress|submitted
	Score     float64        `json:"score"`
	Responses map[string]any `json:"responses"` // questionID -> response payload
}
