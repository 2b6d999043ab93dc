package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"onetime-quiz-service/internal/domain"
)

const sessionKeyPrefix = "quiz:session:"

// SessionStore resolves session tokens against Redis. Sessions are written
// by the external auth service as: SET quiz:session:{token} {userID} EX ttl.
// This side is read-only; a missing key means the caller is unauthenticated.
type SessionStore struct {
	client *redis.Client
}

func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

func (s *SessionStore) Resolve(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", domain.ErrUnauthenticated
	}
	userID, err := s.client.Get(ctx, sessionKeyPrefix+token).Result()
	if errors.Is(err, redis.Nil) {
		return "", domain.ErrUnauthenticated
	}
	if err != nil {
		return "", fmt.Errorf("resolve session: %w", err)
	}
	if userID == "" {
		return "", domain.ErrUnauthenticated
	}
	return userID, nil
}
