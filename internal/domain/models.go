package domain

import "time"

// Question is a catalog entry including the answer key.
// Only CatalogQuestion views are ever sent to clients.
type Question struct {
	ID           string   `json:"id"`
	Text         string   `json:"text"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correctIndex"`
	Order        int      `json:"order"`
}

// CatalogQuestion is the client-safe view of a Question.
type CatalogQuestion struct {
	ID      string   `json:"id"`
	Text    string   `json:"text"`
	Options []string `json:"options"`
	Order   int      `json:"order"`
}

// Public strips the answer key from a question.
func (q Question) Public() CatalogQuestion {
	return CatalogQuestion{
		ID:      q.ID,
		Text:    q.Text,
		Options: q.Options,
		Order:   q.Order,
	}
}

// Attempt is a user's single scored submission. At most one exists per user;
// the storage layer enforces that, not this type.
type Attempt struct {
	ID             string
	UserID         string
	Score          int
	TotalQuestions int
	CompletedAt    time.Time
}

// AttemptStatus reports whether a user has taken the quiz and with what result.
type AttemptStatus struct {
	Taken bool
	Score int
	Total int
}

// AttemptResult is the outcome of a successful submission.
type AttemptResult struct {
	Score int `json:"score"`
	Total int `json:"total"`
}
