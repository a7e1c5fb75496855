package dashboard

import (
	"context"

	"github.com/jwalitptl/siscec-api/internal/model"
	"github.com/jwalitptl/siscec-api/internal/repository"
	"github.com/jwalitptl/siscec-api/pkg/logger"
)

// Result carries the summary, or nil with Degraded set when it could not be built.
type Result struct {
	Dashboard *model.Dashboard
	Degraded  bool
	Cause     error
}

type Service struct {
	repo repository.DashboardRepository
	log  *logger.Logger
}

func NewService(repo repository.DashboardRepository, log *logger.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log.With("dashboard"),
	}
}

func (s *Service) Get(ctx context.Context, patientID int64) Result {
	d, err := s.repo.Summary(ctx, patientID)
	if err != nil {
		s.log.Warn(err, "dashboard unavailable, returning null", "patient_id", patientID)
		return Result{Degraded: true, Cause: err}
	}
	return Result{Dashboard: d}
}
