package admin

import (
	"net/http"

	"equiptrack/internal/middleware"
	"equiptrack/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(admin *gin.RouterGroup) {
	admin.POST("/inventory/reload", h.Reload)
}

func (h *Handler) Reload(c *gin.Context) {
	result, err := h.service.Reload(c.Request.Context(), middleware.ActorFrom(c))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}
