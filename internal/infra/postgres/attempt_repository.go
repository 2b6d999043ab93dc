package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"onetime-quiz-service/internal/domain"
)

// SQLSTATE for unique_violation.
const uniqueViolationCode = "23505"

// AttemptRepository stores quiz attempts in Postgres. The UNIQUE constraint
// on quiz_attempt.user_id is the authoritative one-attempt-per-user guard;
// its violation is translated into domain.ErrAlreadyAttempted here so racing
// duplicate submissions never surface as internal errors.
type AttemptRepository struct {
	pool *pgxpool.Pool
}

func NewAttemptRepository(pool *pgxpool.Pool) *AttemptRepository {
	return &AttemptRepository{pool: pool}
}

func (r *AttemptRepository) Insert(ctx context.Context, attempt domain.Attempt) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO quiz_attempt (id, user_id, score, total_questions, completed_at)
		VALUES ($1, $2, $3, $4, $5)`,
		attempt.ID, attempt.UserID, attempt.Score, attempt.TotalQuestions, attempt.CompletedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return domain.ErrAlreadyAttempted
		}
		return fmt.Errorf("insert attempt: %w", err)
	}
	return nil
}

func (r *AttemptRepository) FindByUserID(ctx context.Context, userID string) (domain.Attempt, bool, error) {
	var attempt domain.Attempt
	err := r.pool.QueryRow(ctx, `
		SELECT id, user_id, score, total_questions, completed_at
		FROM quiz_attempt
		WHERE user_id = $1`, userID).
		Scan(&attempt.ID, &attempt.UserID, &attempt.Score, &attempt.TotalQuestions, &attempt.CompletedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Attempt{}, false, nil
	}
	if err != nil {
		return domain.Attempt{}, false, fmt.Errorf("find attempt: %w", err)
	}
	return attempt, true, nil
}
