package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"

	"onetime-quiz-service/internal/domain"
)

// CatalogRepository reads the question catalog from Postgres.
type CatalogRepository struct {
	pool *pgxpool.Pool
}

func NewCatalogRepository(pool *pgxpool.Pool) *CatalogRepository {
	return &CatalogRepository{pool: pool}
}

// ListQuestions returns every question ordered by ("order", id) ascending.
// The secondary key keeps the sequence deterministic when orders collide,
// which positional scoring depends on.
func (r *CatalogRepository) ListQuestions(ctx context.Context) ([]domain.Question, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, text, options, correct_index, "order"
		FROM question
		ORDER BY "order" ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	defer rows.Close()

	var questions []domain.Question
	for rows.Next() {
		var q domain.Question
		if err := rows.Scan(&q.ID, &q.Text, &q.Options, &q.CorrectIndex, &q.Order); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	return questions, nil
}
