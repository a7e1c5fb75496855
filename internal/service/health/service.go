package health

import (
	"context"

	"github.com/jwalitptl/siscec-api/internal/repository"
)

type Service struct {
	repo repository.HealthRepository
}

func NewService(repo repository.HealthRepository) *Service {
	return &Service{repo: repo}
}

// Check reports whether a database round trip succeeds. The returned error
// keeps its kind so callers can tell an absent connection from a failed query.
func (s *Service) Check(ctx context.Context) error {
	return s.repo.RoundTrip(ctx)
}
