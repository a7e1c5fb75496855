package vitals

import (
	"context"

	"github.com/jwalitptl/siscec-api/internal/model"
	"github.com/jwalitptl/siscec-api/internal/repository"
	apperrors "github.com/jwalitptl/siscec-api/pkg/errors"
	"github.com/jwalitptl/siscec-api/pkg/logger"
	"github.com/jwalitptl/siscec-api/pkg/validator"
)

type Service struct {
	repo      repository.VitalSignsRepository
	validator validator.Validator
	log       *logger.Logger
}

func NewService(repo repository.VitalSignsRepository, v validator.Validator, log *logger.Logger) *Service {
	return &Service{
		repo:      repo,
		validator: v,
		log:       log.With("vitals"),
	}
}

// Register validates and coerces the reading, then hands it to the stored
// procedure. Nothing reaches the database unless every field coerces.
func (s *Service) Register(ctx context.Context, patientID int64, req *model.VitalSignsRequest) error {
	if err := s.validator.Validate(req); err != nil {
		s.log.Warn(err, "rejected vital signs", "patient_id", patientID)
		return err
	}

	v, err := coerce(patientID, req)
	if err != nil {
		s.log.Warn(err, "rejected vital signs", "patient_id", patientID)
		return err
	}

	s.log.Info("registering vital signs", "patient_id", patientID)
	if err := s.repo.Register(ctx, v); err != nil {
		s.log.Error(err, "failed to register vital signs", "patient_id", patientID)
		return err
	}

	s.log.Info("vital signs registered", "patient_id", patientID)
	return nil
}

func coerce(patientID int64, req *model.VitalSignsRequest) (*model.VitalSigns, error) {
	var fields []apperrors.FieldError

	glucosa, err := req.Glucosa.Float()
	if err != nil {
		fields = append(fields, apperrors.FieldError{Field: "glucosa", Message: "debe ser numérico"})
	}
	frecuencia, err := req.Frecuencia.Int()
	if err != nil {
		fields = append(fields, apperrors.FieldError{Field: "frecuencia", Message: "debe ser un número entero"})
	}
	temperatura, err := req.Temperatura.Float()
	if err != nil {
		fields = append(fields, apperrors.FieldError{Field: "temperatura", Message: "debe ser numérico"})
	}
	if len(fields) > 0 {
		return nil, apperrors.Validation(fields...)
	}

	return &model.VitalSigns{
		PatientID:   patientID,
		Presion:     req.Presion.Ptr(),
		Glucosa:     glucosa,
		Frecuencia:  frecuencia,
		Temperatura: temperatura,
	}, nil
}
