package auth

import (
	"errors"
	"net/http"
	"time"

	"userboard/internal/pkg/authcookie"
	"userboard/internal/pkg/response"
	"userboard/internal/pkg/token"

	"github.com/gin-gonic/gin"
)

// Handler manages all HTTP interactions for authentication: the login
// and register pages, the token-issuing form posts, the JSON refresh
// endpoint and logout.
type Handler struct {
	service    *Service
	cookies    *authcookie.Setter
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewHandler takes the cookie lifetimes from the token service so a
// cookie can never outlive the token it carries.
func NewHandler(service *Service, cookies *authcookie.Setter, tokens *token.Service) *Handler {
	return &Handler{
		service:    service,
		cookies:    cookies,
		accessTTL:  tokens.AccessTTL(),
		refreshTTL: tokens.RefreshTTL(),
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/login", h.GetLogin)
	r.GET("/register", h.GetRegister)
	r.POST("/login", h.PostLogin)
	r.POST("/register", h.PostRegister)
	r.POST("/refresh", h.Refresh)
	r.POST("/logout", h.Logout)
}

func (h *Handler) GetLogin(c *gin.Context) {
	if cookie, err := c.Cookie(authcookie.AccessName); err == nil && cookie != "" {
		c.Redirect(http.StatusFound, "/dashboard")
		return
	}
	c.HTML(http.StatusOK, "login.html", gin.H{
		"error":      nil,
		"registered": c.Query("registered") == "true",
	})
}

func (h *Handler) GetRegister(c *gin.Context) {
	if cookie, err := c.Cookie(authcookie.AccessName); err == nil && cookie != "" {
		c.Redirect(http.StatusFound, "/dashboard")
		return
	}
	c.HTML(http.StatusOK, "register.html", gin.H{"error": nil})
}

func (h *Handler) PostLogin(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		h.renderLogin(c, "A valid email and password are required")
		return
	}

	result, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrMissingFields):
			h.renderLogin(c, "Email and password are required")
		case errors.Is(err, ErrInvalidCredentials):
			h.renderLogin(c, "Invalid email or password")
		default:
			c.Error(err)
			h.renderLogin(c, "Something went wrong, please try again")
		}
		return
	}

	h.cookies.Set(c, authcookie.AccessName, result.AccessToken, h.accessTTL)
	h.cookies.Set(c, authcookie.RefreshName, result.RefreshToken, h.refreshTTL)

	c.Redirect(http.StatusFound, "/dashboard")
}

func (h *Handler) PostRegister(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		h.renderRegister(c, "All fields are required and the email must be valid")
		return
	}

	if err := h.service.Register(c.Request.Context(), req); err != nil {
		switch {
		case errors.Is(err, ErrMissingFields):
			h.renderRegister(c, "All fields are required")
		case errors.Is(err, ErrPasswordMismatch):
			h.renderRegister(c, "Passwords do not match")
		case errors.Is(err, ErrPasswordTooShort):
			h.renderRegister(c, "Password must be at least 6 characters")
		case errors.Is(err, ErrUserExists):
			h.renderRegister(c, "Username or email already registered")
		default:
			c.Error(err)
			h.renderRegister(c, "Something went wrong, please try again")
		}
		return
	}

	c.Redirect(http.StatusFound, "/login?registered=true")
}

// Refresh is the JSON endpoint the client-side timer calls. Failure
// never mutates cookies; the client is expected to redirect to login.
func (h *Handler) Refresh(c *gin.Context) {
	refreshRaw, err := c.Cookie(authcookie.RefreshName)
	if err != nil || refreshRaw == "" {
		response.Error(c, http.StatusUnauthorized, "Refresh token not found")
		return
	}

	accessToken, err := h.service.Refresh(c.Request.Context(), refreshRaw)
	if err != nil {
		if errors.Is(err, ErrInvalidRefreshToken) {
			response.Error(c, http.StatusForbidden, "Invalid refresh token")
			return
		}
		c.Error(err)
		response.Error(c, http.StatusInternalServerError, "Something went wrong")
		return
	}

	h.cookies.Set(c, authcookie.AccessName, accessToken, h.accessTTL)

	response.Success(c, http.StatusOK, "Token refreshed successfully", nil)
}

func (h *Handler) Logout(c *gin.Context) {
	if refreshRaw, err := c.Cookie(authcookie.RefreshName); err == nil && refreshRaw != "" {
		if err := h.service.Logout(c.Request.Context(), refreshRaw); err != nil {
			c.Error(err)
		}
	}

	h.cookies.ClearAuth(c)
	c.Redirect(http.StatusFound, "/login")
}

// Dashboard renders the landing page for any authenticated role.
func (h *Handler) Dashboard(c *gin.Context) {
	user, err := h.service.CurrentUser(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		c.Error(err)
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{
			"message": "Something went wrong",
			"user":    nil,
		})
		return
	}

	c.HTML(http.StatusOK, "dashboard.html", gin.H{
		"user":      user,
		"pageTitle": "Dashboard",
	})
}

func (h *Handler) renderLogin(c *gin.Context, message string) {
	c.HTML(http.StatusOK, "login.html", gin.H{"error": message, "registered": false})
}

func (h *Handler) renderRegister(c *gin.Context, message string) {
	c.HTML(http.StatusOK, "register.html", gin.H{"error": message})
}
