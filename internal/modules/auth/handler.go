package auth

import (
	"net/http"

	"equiptrack/internal/middleware"
	"equiptrack/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// Handler manages all HTTP interactions for authentication
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(v1 *gin.RouterGroup) {
	authGroup := v1.Group("/auth")
	{
		authGroup.POST("/signup", h.SignUp)
		authGroup.POST("/signin", h.SignIn)
	}
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	authGroup := protected.Group("/auth")
	{
		authGroup.POST("/signout", h.SignOut)
		authGroup.GET("/me", h.GetMe)
	}

	userGroup := protected.Group("/users", middleware.AdminOnly())
	{
		userGroup.GET("", h.ListUsers)
		userGroup.POST("", h.AddUser)
	}
}

func (h *Handler) SignUp(c *gin.Context) {
	var req SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", err.Error())
		return
	}

	session, err := h.service.SignUp(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{
		"user":     session.User,
		"token":    session.Token,
		"warnings": response.Warnings(session.Warnings),
	})
}

func (h *Handler) SignIn(c *gin.Context) {
	var req SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", err.Error())
		return
	}

	session, err := h.service.SignIn(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": session.User, "token": session.Token})
}

func (h *Handler) SignOut(c *gin.Context) {
	if err := h.service.SignOut(c.Request.Context(), middleware.ClaimsFrom(c)); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"signed_out": true})
}

func (h *Handler) GetMe(c *gin.Context) {
	user, err := h.service.CurrentSession(c.Request.Context(), middleware.ActorFrom(c))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": user})
}

func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.service.ListUsers(middleware.ActorFrom(c))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"users": users})
}

func (h *Handler) AddUser(c *gin.Context) {
	var req AddUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", err.Error())
		return
	}

	user, warnings, err := h.service.AddUser(c.Request.Context(), middleware.ActorFrom(c), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{
		"user":     user,
		"warnings": response.Warnings(warnings),
	})
}
