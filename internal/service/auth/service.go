package auth

import (
	"context"
	"errors"

	"github.com/jwalitptl/siscec-api/internal/model"
	"github.com/jwalitptl/siscec-api/internal/repository"
	apperrors "github.com/jwalitptl/siscec-api/pkg/errors"
	"github.com/jwalitptl/siscec-api/pkg/logger"
)

// MsgInvalidCredentials is returned to clients on a failed login.
const MsgInvalidCredentials = "Usuario o contraseña incorrectos"

type Service struct {
	userRepo repository.UserRepository
	log      *logger.Logger
}

func NewService(userRepo repository.UserRepository, log *logger.Logger) *Service {
	return &Service{
		userRepo: userRepo,
		log:      log.With("auth"),
	}
}

// Login matches username and password exactly. There is no hashing, lockout
// or rate limiting.
func (s *Service) Login(ctx context.Context, req *model.LoginRequest) (*model.User, error) {
	s.log.Info("login attempt", "username", req.Username)

	user, err := s.userRepo.FindByCredentials(ctx, req.Username, req.Password)
	if errors.Is(err, repository.ErrNotFound) {
		s.log.Info("invalid credentials", "username", req.Username)
		return nil, apperrors.Unauthorized(MsgInvalidCredentials)
	}
	if err != nil {
		s.log.Error(err, "login failed", "username", req.Username)
		return nil, err
	}

	s.log.Info("login successful", "username", user.Username, "id_usuario", user.IDUsuario)
	return user, nil
}
