package memory

import (
	"context"
	"sync"

	"onetime-quiz-service/internal/domain"
)

// AttemptStore is an in-memory implementation of app.AttemptRepository.
// The mutex plays the role the UNIQUE constraint plays in Postgres: of two
// concurrent inserts for the same user exactly one wins.
type AttemptStore struct {
	mu     sync.RWMutex
	byUser map[string]domain.Attempt
}

func NewAttemptStore() *AttemptStore {
	return &AttemptStore{
		byUser: make(map[string]domain.Attempt),
	}
}

func (s *AttemptStore) Insert(_ context.Context, attempt domain.Attempt) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byUser[attempt.UserID]; ok {
		return domain.ErrAlreadyAttempted
	}
	s.byUser[attempt.UserID] = attempt
	return nil
}

func (s *AttemptStore) FindByUserID(_ context.Context, userID string) (domain.Attempt, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	attempt, ok := s.byUser[userID]
	return attempt, ok, nil
}
