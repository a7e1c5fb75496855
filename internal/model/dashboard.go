package model

// Dashboard is recomputed on every request and never stored.
type Dashboard struct {
	AlertasActivas int64        `json:"alertas_activas"`
	UltimoSignos   UltimoSignos `json:"ultimo_signos"`
	// ProximaCita is always null; appointments are not tracked yet.
	ProximaCita *string `json:"proxima_cita"`
}

type UltimoSignos struct {
	Fecha Timestamp `json:"fecha"`
}
