package memory

import (
	"context"

	"onetime-quiz-service/internal/domain"
)

// StaticSessionResolver resolves session tokens from a fixed map. Dev/test
// stand-in for the Redis-backed resolver fed by the external auth service.
type StaticSessionResolver struct {
	tokens map[string]string
}

func NewStaticSessionResolver(tokens map[string]string) *StaticSessionResolver {
	if tokens == nil {
		tokens = make(map[string]string)
	}
	return &StaticSessionResolver{tokens: tokens}
}

func (r *StaticSessionResolver) Resolve(_ context.Context, token string) (string, error) {
	if token == "" {
		return "", domain.ErrUnauthenticated
	}
	userID, ok := r.tokens[token]
	if !ok {
		return "", domain.ErrUnauthenticated
	}
	return userID, nil
}
