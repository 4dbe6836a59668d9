package users

import (
	"errors"
	"net/http"
	"strconv"

	"userboard/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// Handler exposes the admin user-management surface: an HTML list page
// plus the JSON create/update/delete endpoints.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the management endpoints under the dashboard
// group. The admin gate is applied by the caller.
func (h *Handler) RegisterRoutes(g *gin.RouterGroup) {
	g.GET("", h.GetUsers)
	g.POST("", h.CreateUser)
	g.PUT("/:id", h.UpdateUser)
	g.DELETE("/:id", h.DeleteUser)
}

func (h *Handler) GetUsers(c *gin.Context) {
	list, err := h.service.List(c.Request.Context())
	if err != nil {
		c.Error(err)
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{
			"message": "Failed to load users",
			"user":    currentIdentity(c),
		})
		return
	}

	c.HTML(http.StatusOK, "users.html", gin.H{
		"user":      currentIdentity(c),
		"users":     list,
		"pageTitle": "User Management",
	})
}

func (h *Handler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "User created successfully", gin.H{
		"user": UserPublic{
			ID:       user.ID,
			Username: user.Username,
			Email:    user.Email,
			Role:     string(user.Role),
		},
	})
}

func (h *Handler) UpdateUser(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid user ID")
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.service.Update(c.Request.Context(), c.GetInt64("user_id"), id, req); err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "User updated successfully", nil)
}

func (h *Handler) DeleteUser(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid user ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), c.GetInt64("user_id"), id); err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "User deleted successfully", nil)
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrMissingFields):
		response.Error(c, http.StatusBadRequest, "All fields are required")
	case errors.Is(err, ErrInvalidRole):
		response.Error(c, http.StatusBadRequest, "Invalid role")
	case errors.Is(err, ErrPasswordTooShort):
		response.Error(c, http.StatusBadRequest, "Password must be at least 6 characters")
	case errors.Is(err, ErrSelfManagement):
		response.Error(c, http.StatusBadRequest, "Cannot manage your own account")
	case errors.Is(err, ErrUserExists):
		response.Error(c, http.StatusBadRequest, "Username or email already in use")
	case errors.Is(err, ErrUserNotFound):
		response.Error(c, http.StatusNotFound, "User not found")
	default:
		c.Error(err)
		response.Error(c, http.StatusInternalServerError, "Something went wrong")
	}
}

func currentIdentity(c *gin.Context) gin.H {
	return gin.H{
		"id":   c.GetInt64("user_id"),
		"role": c.GetString("role"),
	}
}
