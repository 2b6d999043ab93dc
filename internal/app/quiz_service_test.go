package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"onetime-quiz-service/internal/app"
	"onetime-quiz-service/internal/domain"
	"onetime-quiz-service/internal/infra/memory"
)

func TestSubmitAllCorrect(t *testing.T) {
	ctx := context.Background()
	service := newTestService()

	result, err := service.SubmitAttempt(ctx, "u1", answers(1, 0, 2))
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if result.Score != 3 || result.Total != 3 {
		t.Fatalf("expected 3/3, got %d/%d", result.Score, result.Total)
	}
}

func TestSubmitScoresPositionally(t *testing.T) {
	ctx := context.Background()

	cases := []struct {
		name    string
		answers []*int
		score   int
	}{
		{"all correct", answers(1, 0, 2), 3},
		{"one correct", answers(1, 1, 1), 1},
		{"none correct", answers(0, 2, 0), 0},
		{"nil entries score zero", []*int{intPtr(1), nil, nil}, 1},
		{"all nil", []*int{nil, nil, nil}, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			service := newTestService()
			result, err := service.SubmitAttempt(ctx, "u1", tc.answers)
			if err != nil {
				t.Fatalf("submit failed: %v", err)
			}
			if result.Score != tc.score {
				t.Fatalf("expected score %d, got %d", tc.score, result.Score)
			}
			if result.Total != 3 {
				t.Fatalf("expected total 3, got %d", result.Total)
			}
		})
	}
}

func TestSubmitAnswerCountMismatch(t *testing.T) {
	ctx := context.Background()
	service := newTestService()

	if _, err := service.SubmitAttempt(ctx, "u1", answers(0, 0)); !errors.Is(err, domain.ErrAnswerCountMismatch) {
		t.Fatalf("expected count mismatch, got %v", err)
	}
	if _, err := service.SubmitAttempt(ctx, "u1", answers(0, 0, 0, 0)); !errors.Is(err, domain.ErrAnswerCountMismatch) {
		t.Fatalf("expected count mismatch, got %v", err)
	}

	// A failed submission must not consume the user's attempt.
	st, err := service.GetAttemptStatus(ctx, "u1")
	if err != nil {
		t.Fatalf("status failed: %v", err)
	}
	if st.Taken {
		t.Fatalf("expected no attempt recorded after rejected submission")
	}
}

func TestResubmitRejected(t *testing.T) {
	ctx := context.Background()
	service := newTestService()

	if _, err := service.SubmitAttempt(ctx, "u1", answers(1, 0, 2)); err != nil {
		t.Fatalf("first submit failed: %v", err)
	}
	if _, err := service.SubmitAttempt(ctx, "u1", answers(1, 0, 2)); !errors.Is(err, domain.ErrAlreadyAttempted) {
		t.Fatalf("expected already attempted, got %v", err)
	}
}

func TestStatusLifecycle(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	attempts := memory.NewAttemptStore()
	service := app.NewQuizServiceWithClock(
		memory.NewStaticCatalog(testCatalog()),
		attempts,
		func() time.Time { return now },
		func() string { return "attempt-1" },
	)

	st, err := service.GetAttemptStatus(ctx, "u1")
	if err != nil {
		t.Fatalf("status failed: %v", err)
	}
	if st.Taken {
		t.Fatalf("expected taken=false before submission")
	}

	if _, err := service.SubmitAttempt(ctx, "u1", answers(1, 1, 2)); err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	st, err = service.GetAttemptStatus(ctx, "u1")
	if err != nil {
		t.Fatalf("status failed: %v", err)
	}
	if !st.Taken || st.Score != 2 || st.Total != 3 {
		t.Fatalf("expected taken 2/3, got %+v", st)
	}

	attempt, ok, err := attempts.FindByUserID(ctx, "u1")
	if err != nil || !ok {
		t.Fatalf("expected persisted attempt, ok=%v err=%v", ok, err)
	}
	if attempt.ID != "attempt-1" || !attempt.CompletedAt.Equal(now) {
		t.Fatalf("unexpected persisted attempt %+v", attempt)
	}
}

func TestListQuestionsHidesAnswersAndOrders(t *testing.T) {
	ctx := context.Background()
	service := newTestService()

	first, err := service.ListQuestions(ctx, "u1")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(first) != 3 {
		t.Fatalf("expected 3 questions, got %d", len(first))
	}
	for i := 1; i < len(first); i++ {
		if first[i-1].Order > first[i].Order {
			t.Fatalf("questions out of order: %+v", first)
		}
	}

	// Stable across repeated calls against an unchanged catalog.
	second, err := service.ListQuestions(ctx, "u1")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	for i := range first {
		if first[i].ID != second[i].ID {
			t.Fatalf("ordering not deterministic: %v vs %v", first[i].ID, second[i].ID)
		}
	}
}

func TestListQuestionsRejectedAfterAttempt(t *testing.T) {
	ctx := context.Background()
	service := newTestService()

	if _, err := service.SubmitAttempt(ctx, "u1", answers(1, 0, 2)); err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if _, err := service.ListQuestions(ctx, "u1"); !errors.Is(err, domain.ErrAlreadyAttempted) {
		t.Fatalf("expected already attempted, got %v", err)
	}

	// A different user still gets the catalog.
	if _, err := service.ListQuestions(ctx, "u2"); err != nil {
		t.Fatalf("list for fresh user failed: %v", err)
	}
}

func TestUnauthenticatedCallsRejected(t *testing.T) {
	ctx := context.Background()
	service := newTestService()

	if _, err := service.ListQuestions(ctx, ""); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected unauthenticated, got %v", err)
	}
	if _, err := service.GetAttemptStatus(ctx, ""); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected unauthenticated, got %v", err)
	}
	if _, err := service.SubmitAttempt(ctx, "", answers(1, 0, 2)); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected unauthenticated, got %v", err)
	}
}

func newTestService() *app.QuizService {
	return app.NewQuizService(
		memory.NewStaticCatalog(testCatalog()),
		memory.NewAttemptStore(),
	)
}

// testCatalog has correct indexes [1, 0, 2] in presentation order.
func testCatalog() []domain.Question {
	return []domain.Question{
		{ID: "q3", Text: "How many continents are there?", Options: []string{"five", "six", "seven"}, CorrectIndex: 2, Order: 30},
		{ID: "q1", Text: "What is 2 + 2?", Options: []string{"3", "4", "5"}, CorrectIndex: 1, Order: 10},
		{ID: "q2", Text: "Which planet is closest to the sun?", Options: []string{"Mercury", "Venus", "Mars"}, CorrectIndex: 0, Order: 20},
	}
}

func answers(indexes ...int) []*int {
	out := make([]*int, 0, len(indexes))
	for _, idx := range indexes {
		out = append(out, intPtr(idx))
	}
	return out
}

func intPtr(v int) *int {
	return &v
}
