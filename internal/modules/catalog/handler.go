package catalog

import (
	"net/http"

	"equiptrack/internal/domain"
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

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/equipment", h.List)
	rg.GET("/equipment/:id", h.Get)
	rg.POST("/equipment", h.Create)
	rg.PATCH("/equipment/:id", h.Update)
	rg.DELETE("/equipment/:id", h.Delete)
}

// List handles GET /api/v1/equipment?category=&status=&q=
func (h *Handler) List(c *gin.Context) {
	var f ListFilter
	if err := c.ShouldBindQuery(&f); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid query")
		return
	}
	items := h.service.List(f)
	response.Success(c, http.StatusOK, gin.H{"equipment": items, "total": len(items)})
}

func (h *Handler) Get(c *gin.Context) {
	eq, err := h.service.Get(c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"equipment": eq})
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateEquipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", err.Error())
		return
	}

	result, err := h.service.Add(c.Request.Context(), middleware.ActorFrom(c), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{
		"equipment": result.Equipment,
		"warnings":  response.Warnings(result.Warnings),
	})
}

func (h *Handler) Update(c *gin.Context) {
	var patch domain.EquipmentPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", err.Error())
		return
	}

	result, err := h.service.Update(c.Request.Context(), middleware.ActorFrom(c), c.Param("id"), patch)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"equipment": result.Equipment,
		"warnings":  response.Warnings(result.Warnings),
	})
}

func (h *Handler) Delete(c *gin.Context) {
	warnings, err := h.service.Delete(c.Request.Context(), middleware.ActorFrom(c), c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"deleted":  c.Param("id"),
		"warnings": response.Warnings(warnings),
	})
}
