package model

// Alert is produced by the database; this service only reads it.
type Alert struct {
	IDAlerta     int64     `db:"id_alerta" json:"id_alerta"`
	Tipo         *string   `db:"tipo" json:"tipo"`
	Mensaje      *string   `db:"mensaje" json:"mensaje"`
	FechaEmision Timestamp `db:"fecha_emision" json:"fecha_emision"`
	Estado       *string   `db:"estado" json:"estado"`
}
