package vitals

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/siscec-api/internal/handler"
	"github.com/jwalitptl/siscec-api/internal/model"
	"github.com/jwalitptl/siscec-api/internal/repository/sqlstore"
	"github.com/jwalitptl/siscec-api/internal/service/vitals"
)

type Handler struct {
	svc *vitals.Service
}

func NewHandler(svc *vitals.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.POST("/signos/:patientId", h.Register)
}

type registerResponse struct {
	handler.Response
	AlertasGeneradas bool   `json:"alertas_generadas"`
	Procedimiento    string `json:"procedimiento"`
}

func (h *Handler) Register(c *gin.Context) {
	patientID, ok := handler.PatientID(c)
	if !ok {
		return
	}

	var req model.VitalSignsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(handler.PrefixError+err.Error()))
		return
	}

	if err := h.svc.Register(c.Request.Context(), patientID, &req); err != nil {
		handler.RespondWithError(c, handler.PrefixError, err)
		return
	}

	// Alerts are raised inside the procedure; the flag only confirms it ran.
	c.JSON(http.StatusOK, registerResponse{
		Response:         *handler.NewSuccessResponse("Signos vitales registrados correctamente"),
		AlertasGeneradas: true,
		Procedimiento:    sqlstore.ProcRegistrarSignos + " ejecutado",
	})
}
