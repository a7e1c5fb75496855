package sqlstore

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/siscec-api/internal/database"
	"github.com/jwalitptl/siscec-api/internal/model"
	"github.com/jwalitptl/siscec-api/internal/repository"
	apperrors "github.com/jwalitptl/siscec-api/pkg/errors"
)

// FuncContarAlertas returns the number of active alerts for a patient.
const FuncContarAlertas = "FN_Contar_Alertas"

const (
	countActiveAlertsQuery = `SELECT ` + FuncContarAlertas + `(?)`

	latestVitalsQuery = `
		SELECT Fecha AS fecha
		FROM Signos_vitales
		WHERE ID_Paciente = ?
		ORDER BY Fecha DESC
		LIMIT 1
	`
)

type dashboardRepository struct {
	BaseRepository
}

func NewDashboardRepository(base BaseRepository) repository.DashboardRepository {
	return &dashboardRepository{base}
}

func (r *dashboardRepository) Summary(ctx context.Context, patientID int64) (*model.Dashboard, error) {
	var d model.Dashboard
	err := r.WithSession(ctx, func(s database.Session) error {
		var active sql.NullInt64
		if err := sqlx.GetContext(ctx, s, &active, s.Rebind(countActiveAlertsQuery), patientID); err != nil {
			return apperrors.Query("failed to count active alerts", err)
		}
		d.AlertasActivas = active.Int64

		err := sqlx.GetContext(ctx, s, &d.UltimoSignos.Fecha, s.Rebind(latestVitalsQuery), patientID)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return apperrors.Query("failed to read latest vital signs", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &d, nil
}
