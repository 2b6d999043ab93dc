package memory

import (
	"context"
	"errors"
	"testing"

	"onetime-quiz-service/internal/domain"
)

func TestStaticSessionResolver(t *testing.T) {
	resolver := NewStaticSessionResolver(map[string]string{"tok-1": "u1"})

	userID, err := resolver.Resolve(context.Background(), "tok-1")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if userID != "u1" {
		t.Fatalf("expected u1, got %s", userID)
	}

	if _, err := resolver.Resolve(context.Background(), "unknown"); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected unauthenticated, got %v", err)
	}
	if _, err := resolver.Resolve(context.Background(), ""); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected unauthenticated for empty token, got %v", err)
	}
}

func TestStaticSessionResolverNilMap(t *testing.T) {
	resolver := NewStaticSessionResolver(nil)
	if _, err := resolver.Resolve(context.Background(), "any"); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected unauthenticated, got %v", err)
	}
}
