package dashboard

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/siscec-api/internal/handler"
	"github.com/jwalitptl/siscec-api/internal/service/dashboard"
	"github.com/jwalitptl/siscec-api/pkg/metrics"
)

const endpoint = "dashboard"

type Handler struct {
	svc     *dashboard.Service
	metrics *metrics.Metrics
}

func NewHandler(svc *dashboard.Service, m *metrics.Metrics) *Handler {
	return &Handler{svc: svc, metrics: m}
}

func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.GET("/dashboard/:patientId", h.Get)
}

func (h *Handler) Get(c *gin.Context) {
	patientID, ok := handler.PatientID(c)
	if !ok {
		return
	}

	res := h.svc.Get(c.Request.Context(), patientID)
	if res.Degraded {
		h.metrics.Degraded(endpoint)
	}
	c.JSON(http.StatusOK, gin.H{"dashboard": res.Dashboard})
}
