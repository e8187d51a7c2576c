package requests

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

// RegisterRoutes expects rg to be behind JWTAuth.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/requests", h.List)
	rg.GET("/requests/:id", h.Get)
	rg.POST("/requests", h.Submit)
	rg.PATCH("/requests/:id/status", h.UpdateStatus)
	rg.GET("/equipment/:id/requests", h.ForEquipment)
	rg.GET("/users/:id/requests", h.ForUser)
	rg.GET("/dashboard/stats", h.Stats)
}

func (h *Handler) List(c *gin.Context) {
	list, err := h.service.Visible(middleware.ActorFrom(c))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"requests": list})
}

func (h *Handler) Get(c *gin.Context) {
	req, err := h.service.Get(middleware.ActorFrom(c), c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"request": req})
}

func (h *Handler) Submit(c *gin.Context) {
	var in SubmitRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", err.Error())
		return
	}

	result, err := h.service.Submit(c.Request.Context(), middleware.ActorFrom(c), in)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"requests": result.Requests,
		"warnings": response.Warnings(result.Warnings),
	})
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	var in UpdateStatusRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", err.Error())
		return
	}
	if !in.Status.Valid() {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Unknown status "+string(in.Status))
		return
	}

	result, err := h.service.Transition(c.Request.Context(), middleware.ActorFrom(c), c.Param("id"), in.Status)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"request":   result.Request,
		"equipment": result.Equipment,
		"warnings":  response.Warnings(result.Warnings),
	})
}

func (h *Handler) ForEquipment(c *gin.Context) {
	list, err := h.service.ForEquipment(middleware.ActorFrom(c), c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"requests": list})
}

func (h *Handler) ForUser(c *gin.Context) {
	list, err := h.service.ForUser(middleware.ActorFrom(c), c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"requests": list})
}

func (h *Handler) Stats(c *gin.Context) {
	stats, err := h.service.Stats(middleware.ActorFrom(c))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, stats)
}
