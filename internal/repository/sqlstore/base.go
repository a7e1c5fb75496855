package sqlstore

import (
	"context"

	"github.com/jwalitptl/siscec-api/internal/database"
	apperrors "github.com/jwalitptl/siscec-api/pkg/errors"
	"github.com/jwalitptl/siscec-api/pkg/logger"
)

// BaseRepository provides session handling for all repositories
type BaseRepository struct {
	gw  database.Gateway
	log *logger.Logger
}

// NewBaseRepository creates a new base repository
func NewBaseRepository(gw database.Gateway, log *logger.Logger) BaseRepository {
	return BaseRepository{gw: gw, log: log.With("repository")}
}

// WithSession acquires one session, runs fn on it and always releases it.
// An acquire failure is reported as an Unavailable AppError.
func (r *BaseRepository) WithSession(ctx context.Context, fn func(database.Session) error) error {
	s, err := r.gw.Acquire(ctx)
	if err != nil {
		return apperrors.Unavailable(err)
	}
	defer func() {
		if cerr := s.Close(); cerr != nil {
			r.log.Warn(cerr, "failed to close database session")
		}
	}()

	return fn(s)
}
