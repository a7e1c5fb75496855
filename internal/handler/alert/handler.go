package alert

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/siscec-api/internal/handler"
	"github.com/jwalitptl/siscec-api/internal/service/alert"
	"github.com/jwalitptl/siscec-api/pkg/metrics"
)

const endpoint = "alertas"

type Handler struct {
	svc     *alert.Service
	metrics *metrics.Metrics
}

// NewHandler accepts a nil m when monitoring is off.
func NewHandler(svc *alert.Service, m *metrics.Metrics) *Handler {
	return &Handler{svc: svc, metrics: m}
}

func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.GET("/alertas/:patientId", h.List)
}

func (h *Handler) List(c *gin.Context) {
	patientID, ok := handler.PatientID(c)
	if !ok {
		return
	}

	res := h.svc.List(c.Request.Context(), patientID)
	if res.Degraded {
		h.metrics.Degraded(endpoint)
	}
	c.JSON(http.StatusOK, gin.H{"alertas": res.Alerts})
}
