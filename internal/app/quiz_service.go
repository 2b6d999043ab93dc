package app

import (
	"context"
	"time"

	"github.com/google/uuid"

	"onetime-quiz-service/internal/domain"
)

// CatalogRepository loads the question catalog (from cache/backing store).
// Implementations must return questions ordered by (order, id) ascending so
// that retrieval and scoring see the same sequence.
type CatalogRepository interface {
	ListQuestions(ctx context.Context) ([]domain.Question, error)
}

// AttemptRepository abstracts how attempts are stored (Postgres, in-memory).
// Insert must enforce at-most-one attempt per user at the storage layer and
// return domain.ErrAlreadyAttempted on a duplicate, even under concurrent inserts.
type AttemptRepository interface {
	Insert(ctx context.Context, attempt domain.Attempt) error
	FindByUserID(ctx context.Context, userID string) (domain.Attempt, bool, error)
}

// SessionResolver maps opaque session tokens to verified user IDs. The
// external auth service owns session creation; this side only reads.
type SessionResolver interface {
	Resolve(ctx context.Context, token string) (string, error)
}

// QuizService contains the quiz attempt use cases.
type QuizService struct {
	catalog  CatalogRepository
	attempts AttemptRepository
	clock    func() time.Time
	newID    func() string
}

func NewQuizService(catalog CatalogRepository, attempts AttemptRepository) *QuizService {
	return &QuizService{
		catalog:  catalog,
		attempts: attempts,
		clock:    time.Now,
		newID:    uuid.NewString,
	}
}

// NewQuizServiceWithClock is test-only for deterministic timestamps and IDs.
func NewQuizServiceWithClock(catalog CatalogRepository, attempts AttemptRepository, now func() time.Time, newID func() string) *QuizService {
	return &QuizService{catalog: catalog, attempts: attempts, clock: now, newID: newID}
}

// ListQuestions returns the catalog in presentation order with answer keys
// stripped. Users who already hold an attempt are turned away so they cannot
// re-answer.
func (s *QuizService) ListQuestions(ctx context.Context, userID string) ([]domain.CatalogQuestion, error) {
	if userID == "" {
		return nil, domain.ErrUnauthenticated
	}

	if _, taken, err := s.attempts.FindByUserID(ctx, userID); err != nil {
		return nil, err
	} else if taken {
		return nil, domain.ErrAlreadyAttempted
	}

	questions, err := s.catalog.ListQuestions(ctx)
	if err != nil {
		return nil, err
	}

	public := make([]domain.CatalogQuestion, 0, len(questions))
	for _, q := range questions {
		public = append(public, q.Public())
	}
	return public, nil
}

// GetAttemptStatus reports whether the user has a recorded attempt. Side-effect free.
func (s *QuizService) GetAttemptStatus(ctx context.Context, userID string) (domain.AttemptStatus, error) {
	if userID == "" {
		return domain.AttemptStatus{}, domain.ErrUnauthenticated
	}

	attempt, taken, err := s.attempts.FindByUserID(ctx, userID)
	if err != nil {
		return domain.AttemptStatus{}, err
	}
	if !taken {
		return domain.AttemptStatus{Taken: false}, nil
	}
	return domain.AttemptStatus{
		Taken: true,
		Score: attempt.Score,
		Total: attempt.TotalQuestions,
	}, nil
}

// SubmitAttempt validates and scores a full answer vector, then durably
// records the attempt. Answers are matched to questions positionally, in
// catalog order; a nil entry never matches and scores zero.
//
// The existence pre-check only closes the common-case race early. The
// authoritative guard is the uniqueness constraint inside
// AttemptRepository.Insert: of two racing submissions exactly one insert
// succeeds and the other returns domain.ErrAlreadyAttempted.
func (s *QuizService) SubmitAttempt(ctx context.Context, userID string, answers []*int) (domain.AttemptResult, error) {
	if userID == "" {
		return domain.AttemptResult{}, domain.ErrUnauthenticated
	}

	if _, taken, err := s.attempts.FindByUserID(ctx, userID); err != nil {
		return domain.AttemptResult{}, err
	} else if taken {
		return domain.AttemptResult{}, domain.ErrAlreadyAttempted
	}

	questions, err := s.catalog.ListQuestions(ctx)
	if err != nil {
		return domain.AttemptResult{}, err
	}

	if len(answers) != len(questions) {
		return domain.AttemptResult{}, domain.ErrAnswerCountMismatch
	}

	score := 0
	for i, q := range questions {
		if answers[i] != nil && *answers[i] == q.CorrectIndex {
			score++
		}
	}

	attempt := domain.Attempt{
		ID:             s.newID(),
		UserID:         userID,
		Score:          score,
		TotalQuestions: len(questions),
		CompletedAt:    s.clock(),
	}
	if err := s.attempts.Insert(ctx, attempt); err != nil {
		return domain.AttemptResult{}, err
	}

	return domain.AttemptResult{Score: score, Total: len(questions)}, nil
}
