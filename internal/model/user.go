package model

// User is a row of Usuario_Sistema, optionally joined to its Paciente.
type User struct {
	IDUsuario  int64   `db:"id_usuario" json:"id_usuario"`
	Username   string  `db:"username" json:"username"`
	Rol        string  `db:"rol" json:"rol"`
	IDPaciente *int64  `db:"id_paciente" json:"id_paciente"`
	Nombres    *string `db:"nombres" json:"nombres"`
	Apellidos  *string `db:"apellidos" json:"apellidos"`
}

// LoginRequest fields are intentionally unvalidated: a missing value binds as
// "" and simply fails to match.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
