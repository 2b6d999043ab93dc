package memory

import (
	"context"
	"sort"

	"onetime-quiz-service/internal/domain"
)

// StaticCatalog serves a fixed question set (useful for tests/demos and
// running the server with no Postgres configured).
type StaticCatalog struct {
	questions []domain.Question
}

func NewStaticCatalog(questions []domain.Question) *StaticCatalog {
	sorted := make([]domain.Question, len(questions))
	copy(sorted, questions)
	// Order ascending, ties broken by ID, so repeated calls always yield the
	// same sequence.
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Order != sorted[j].Order {
			return sorted[i].Order < sorted[j].Order
		}
		return sorted[i].ID < sorted[j].ID
	})
	return &StaticCatalog{questions: sorted}
}

func (c *StaticCatalog) ListQuestions(_ context.Context) ([]domain.Question, error) {
	out := make([]domain.Question, len(c.questions))
	copy(out, c.questions)
	return out, nil
}
