package sqlstore

import (
	"context"

	"github.com/jwalitptl/siscec-api/internal/database"
	"github.com/jwalitptl/siscec-api/internal/model"
	"github.com/jwalitptl/siscec-api/internal/repository"
	apperrors "github.com/jwalitptl/siscec-api/pkg/errors"
)

// ProcRegistrarSignos persists a reading and may insert alerts as a side effect.
const ProcRegistrarSignos = "SP_Registrar_Signos"

const registerVitalsQuery = `CALL ` + ProcRegistrarSignos + `(?, ?, ?, ?, ?)`

type vitalSignsRepository struct {
	BaseRepository
}

func NewVitalSignsRepository(base BaseRepository) repository.VitalSignsRepository {
	return &vitalSignsRepository{base}
}

func (r *vitalSignsRepository) Register(ctx context.Context, v *model.VitalSigns) error {
	return r.WithSession(ctx, func(s database.Session) error {
		_, err := s.ExecContext(ctx, s.Rebind(registerVitalsQuery),
			v.PatientID,
			v.Presion,
			v.Glucosa,
			v.Frecuencia,
			v.Temperatura,
		)
		if err != nil {
			return apperrors.Query("failed to call "+ProcRegistrarSignos, err)
		}
		return nil
	})
}
