package sqlstore

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/siscec-api/internal/database"
	"github.com/jwalitptl/siscec-api/internal/model"
	"github.com/jwalitptl/siscec-api/internal/repository"
	apperrors "github.com/jwalitptl/siscec-api/pkg/errors"
)

const listAlertsQuery = `
	SELECT ID_Alerta AS id_alerta, Tipo AS tipo, Mensaje AS mensaje,
		Fecha_emision AS fecha_emision, Estado AS estado
	FROM Alerta
	WHERE ID_Paciente = ?
	ORDER BY Fecha_emision DESC
`

type alertRepository struct {
	BaseRepository
}

func NewAlertRepository(base BaseRepository) repository.AlertRepository {
	return &alertRepository{base}
}

func (r *alertRepository) ListByPatient(ctx context.Context, patientID int64) ([]*model.Alert, error) {
	alerts := []*model.Alert{}
	err := r.WithSession(ctx, func(s database.Session) error {
		if err := sqlx.SelectContext(ctx, s, &alerts, s.Rebind(listAlertsQuery), patientID); err != nil {
			return apperrors.Query("failed to list alerts", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return alerts, nil
}
