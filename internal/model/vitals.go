package model

// VitalSignsRequest is the body of POST /signos/:patientId.
type VitalSignsRequest struct {
	Presion     FlexString `json:"presion"`
	Glucosa     FlexString `json:"glucosa" validate:"required,numeric"`
	Frecuencia  FlexString `json:"frecuencia" validate:"required,numeric"`
	Temperatura FlexString `json:"temperatura" validate:"required,numeric"`
}

// VitalSigns is a coerced reading ready for SP_Registrar_Signos.
type VitalSigns struct {
	PatientID   int64
	Presion     *string
	Glucosa     float64
	Frecuencia  int64
	Temperatura float64
}
