package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "github.com/jwalitptl/siscec-api/pkg/errors"
)

// Messages shared by more than one endpoint.
const (
	MsgConnectionError = "Error de conexión a base de datos"
	PrefixInternal     = "Error interno: "
	PrefixError        = "Error: "
)

// Response is the envelope used by the login and vital-sign endpoints.
type Response struct {
	Exito   bool                   `json:"exito"`
	Mensaje string                 `json:"mensaje"`
	Errores []apperrors.FieldError `json:"errores,omitempty"`
}

func NewSuccessResponse(message string) *Response {
	return &Response{
		Exito:   true,
		Mensaje: message,
	}
}

func NewErrorResponse(message string) *Response {
	return &Response{
		Exito:   false,
		Mensaje: message,
	}
}

// RespondWithError writes err in the legacy envelope. An unavailable
// database gets the fixed connection message; anything else is reported as
// prefix followed by the underlying error text.
func RespondWithError(c *gin.Context, prefix string, err error) {
	var appErr *apperrors.AppError
	if !apperrors.As(err, &appErr) {
		c.JSON(http.StatusInternalServerError, NewErrorResponse(prefix+err.Error()))
		return
	}

	switch appErr.Kind {
	case apperrors.KindUnavailable:
		c.JSON(appErr.StatusCode(), NewErrorResponse(MsgConnectionError))
	case apperrors.KindUnauthorized:
		c.JSON(appErr.StatusCode(), NewErrorResponse(appErr.Message))
	case apperrors.KindValidation:
		resp := NewErrorResponse(prefix + appErr.Cause())
		resp.Errores = apperrors.Fields(err)
		c.JSON(appErr.StatusCode(), resp)
	default:
		c.JSON(appErr.StatusCode(), NewErrorResponse(prefix+appErr.Cause()))
	}
}

// PatientID reads the :patientId path segment. Only unsigned decimal
// integers match; anything else gets the router's plain 404 so the route
// behaves as if it never matched.
func PatientID(c *gin.Context) (int64, bool) {
	raw := c.Param("patientId")
	for i := 0; i < len(raw); i++ {
		if raw[i] < '0' || raw[i] > '9' {
			raw = ""
			break
		}
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		c.String(http.StatusNotFound, "404 page not found")
		c.Abort()
		return 0, false
	}
	return id, true
}
