package repository

import (
	"context"
	"errors"

	"github.com/jwalitptl/siscec-api/internal/model"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("not found")

// All repository interfaces in one file. Each method acquires its own
// session from the gateway and releases it before returning.
type (
	HealthRepository interface {
		// RoundTrip runs a trivial statement against the database.
		RoundTrip(ctx context.Context) error
	}

	UserRepository interface {
		FindByCredentials(ctx context.Context, username, password string) (*model.User, error)
	}

	VitalSignsRepository interface {
		// Register calls SP_Registrar_Signos; alert generation happens there.
		Register(ctx context.Context, v *model.VitalSigns) error
	}

	AlertRepository interface {
		ListByPatient(ctx context.Context, patientID int64) ([]*model.Alert, error)
	}

	DashboardRepository interface {
		// Summary runs both dashboard statements on a single session.
		Summary(ctx context.Context, patientID int64) (*model.Dashboard, error)
	}
)
