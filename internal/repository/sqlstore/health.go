package sqlstore

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/siscec-api/internal/database"
	"github.com/jwalitptl/siscec-api/internal/repository"
	apperrors "github.com/jwalitptl/siscec-api/pkg/errors"
)

const roundTripQuery = `SELECT 'OK'`

type healthRepository struct {
	BaseRepository
}

func NewHealthRepository(base BaseRepository) repository.HealthRepository {
	return &healthRepository{base}
}

func (r *healthRepository) RoundTrip(ctx context.Context) error {
	return r.WithSession(ctx, func(s database.Session) error {
		var ok string
		if err := sqlx.GetContext(ctx, s, &ok, roundTripQuery); err != nil {
			return apperrors.Query("round trip failed", err)
		}
		return nil
	})
}
