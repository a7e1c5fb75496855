package auth

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/jwalitptl/siscec-api/internal/handler"
	"github.com/jwalitptl/siscec-api/internal/model"
	"github.com/jwalitptl/siscec-api/internal/service/auth"
)

// errNullBody rejects a literal null, which would otherwise bind to an
// empty request and look like a failed login.
var errNullBody = errors.New("request body must be a JSON object, got null")

type Handler struct {
	svc *auth.Service
}

func NewHandler(svc *auth.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.POST("/login", h.Login)
}

type loginResponse struct {
	handler.Response
	Usuario *model.User `json:"usuario"`
}

func (h *Handler) Login(c *gin.Context) {
	req, err := bindLogin(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(handler.PrefixInternal+err.Error()))
		return
	}

	user, err := h.svc.Login(c.Request.Context(), req)
	if err != nil {
		handler.RespondWithError(c, handler.PrefixInternal, err)
		return
	}

	c.JSON(http.StatusOK, loginResponse{
		Response: *handler.NewSuccessResponse("Login exitoso"),
		Usuario:  user,
	})
}

func bindLogin(c *gin.Context) (*model.LoginRequest, error) {
	body, err := c.GetRawData()
	if err != nil {
		return nil, err
	}
	if bytes.Equal(bytes.TrimSpace(body), []byte("null")) {
		return nil, errNullBody
	}

	var req model.LoginRequest
	if err := binding.JSON.BindBody(body, &req); err != nil {
		return nil, err
	}
	return &req, nil
}
