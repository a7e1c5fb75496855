package health

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/siscec-api/internal/service/health"
	apperrors "github.com/jwalitptl/siscec-api/pkg/errors"
	"github.com/jwalitptl/siscec-api/pkg/logger"
)

type Handler struct {
	svc   *health.Service
	label string
	log   *logger.Logger
}

// NewHandler takes the database label reported on success, e.g. "PostgreSQL 16".
func NewHandler(svc *health.Service, label string, log *logger.Logger) *Handler {
	return &Handler{
		svc:   svc,
		label: label,
		log:   log.With("health"),
	}
}

func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.GET("/health", h.HealthCheck)
}

func (h *Handler) HealthCheck(c *gin.Context) {
	err := h.svc.Check(c.Request.Context())
	if err == nil {
		c.JSON(http.StatusOK, gin.H{
			"status":   "OK",
			"conexion": "Conectado",
			"database": h.label,
			"docker":   "Funcionando",
		})
		return
	}

	h.log.Error(err, "health check failed")

	var appErr *apperrors.AppError
	if apperrors.As(err, &appErr) && appErr.Kind == apperrors.KindUnavailable {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":   "ERROR",
			"conexion": "No disponible",
			"docker":   "Verificar contenedor",
		})
		return
	}

	msg := err.Error()
	if appErr != nil {
		msg = appErr.Cause()
	}
	c.JSON(http.StatusInternalServerError, gin.H{
		"status": "ERROR",
		"error":  msg,
	})
}
