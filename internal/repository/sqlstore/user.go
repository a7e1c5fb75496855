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

// Passwords are stored and compared as plaintext; the comparison is exact.
const findByCredentialsQuery = `
	SELECT u.ID_Usuario AS id_usuario, u.Nombre_usuario AS username, u.Rol AS rol,
		p.ID_Paciente AS id_paciente, p.Nombres AS nombres, p.Apellidos AS apellidos
	FROM Usuario_Sistema u
	LEFT JOIN Paciente p ON u.ID_Usuario = p.ID_Usuario
	WHERE u.Nombre_usuario = ? AND u.Contraseña = ?
`

type userRepository struct {
	BaseRepository
}

func NewUserRepository(base BaseRepository) repository.UserRepository {
	return &userRepository{base}
}

func (r *userRepository) FindByCredentials(ctx context.Context, username, password string) (*model.User, error) {
	var user model.User
	err := r.WithSession(ctx, func(s database.Session) error {
		err := sqlx.GetContext(ctx, s, &user, s.Rebind(findByCredentialsQuery), username, password)
		if errors.Is(err, sql.ErrNoRows) {
			return repository.ErrNotFound
		}
		if err != nil {
			return apperrors.Query("failed to look up user", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &user, nil
}
