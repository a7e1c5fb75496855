package alert

import (
	"context"

	"github.com/jwalitptl/siscec-api/internal/model"
	"github.com/jwalitptl/siscec-api/internal/repository"
	"github.com/jwalitptl/siscec-api/pkg/logger"
)

// Result is either a real listing or a degraded one: on failure Alerts is
// empty, Degraded is set and Cause holds the error the client never sees.
type Result struct {
	Alerts   []*model.Alert
	Degraded bool
	Cause    error
}

type Service struct {
	repo repository.AlertRepository
	log  *logger.Logger
}

func NewService(repo repository.AlertRepository, log *logger.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log.With("alerts"),
	}
}

// List never fails; failures surface as a degraded Result.
func (s *Service) List(ctx context.Context, patientID int64) Result {
	alerts, err := s.repo.ListByPatient(ctx, patientID)
	if err != nil {
		s.log.Warn(err, "alerts unavailable, returning empty list", "patient_id", patientID)
		return Result{Alerts: []*model.Alert{}, Degraded: true, Cause: err}
	}

	s.log.Info("alerts fetched", "patient_id", patientID, "count", len(alerts))
	return Result{Alerts: alerts}
}
