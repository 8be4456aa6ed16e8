package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"lirik/internal/service"
)

// authCookieName must match the one in middleware.go
const authCookieName = "lirik_auth"

type AuthHandler struct {
	service service.AuthService
}

func NewAuthHandler(service service.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

// Request/Response types

type authStatusResponse struct {
	Exists bool `json:"exists"`
}

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string        `json:"token"`
	User  *userResponse `json:"user"`
}

type userResponse struct {
	Username string `json:"username"`
}

// RegisterPublicRoutes registers routes that don't require authentication.
func (h *AuthHandler) RegisterPublicRoutes(g *echo.Group) {
	g.GET("/auth/status", h.GetStatus)
	g.POST("/auth/register", h.Register)
	g.POST("/auth/login", h.Login)
}

// RegisterProtectedRoutes registers routes that require authentication.
func (h *AuthHandler) RegisterProtectedRoutes(g *echo.Group) {
	g.GET("/auth/me", h.GetCurrentUser)
	g.POST("/auth/logout", h.Logout)
}

// GetStatus checks if a user has been registered.
// @Summary Check user status
// @Description Check if a user has been registered
// @Tags auth
// @Produce json
// @Success 200 {object} authStatusResponse
// @Failure 500 {object} errorResponse
// @Router /auth/status [get]
func (h *AuthHandler) GetStatus(c echo.Context) error {
	exists, err := h.service.CheckUserExists(c.Request().Context())
	if err != nil {
		c.Logger().Error(err)
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "failed to check status"})
	}

	return c.JSON(http.StatusOK, authStatusResponse{Exists: exists})
}

// Register creates a new user.
// @Summary Register user
// @Description Register a new user (only if none exists)
// @Tags auth
// @Accept json
// @Produce json
// @Param request body registerRequest true "Registration info"
// @Success 200 {object} authResponse
// @Failure 400 {object} errorResponse
// @Failure 409 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
	}

	resp, err := h.service.Register(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return h.handleAuthError(c, err)
	}

	setAuthCookie(c, resp.Token)

	return c.JSON(http.StatusOK, authResponse{
		Token: resp.Token,
		User:  toUserResponse(resp.User),
	})
}

// Login authenticates a user.
// @Summary Login
// @Description Authenticate a user and get a JWT token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body loginRequest true "Login credentials"
// @Success 200 {object} authResponse
// @Failure 400 {object} errorResponse
// @Failure 401 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
	}

	resp, err := h.service.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return h.handleAuthError(c, err)
	}

	setAuthCookie(c, resp.Token)

	return c.JSON(http.StatusOK, authResponse{
		Token: resp.Token,
		User:  toUserResponse(resp.User),
	})
}

// GetCurrentUser returns the current authenticated user.
// @Summary Get current user
// @Description Get the currently authenticated user's info
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} userResponse
// @Failure 401 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /auth/me [get]
func (h *AuthHandler) GetCurrentUser(c echo.Context) error {
	user, err := h.service.GetCurrentUser(c.Request().Context())
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return c.JSON(http.StatusUnauthorized, errorResponse{Error: "not authenticated"})
		}
		c.Logger().Error(err)
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "failed to get user"})
	}

	return c.JSON(http.StatusOK, toUserResponse(user))
}

// Logout clears the authentication cookie.
// @Summary Logout
// @Description Clear authentication cookie and log out the user
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} messageResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	clearAuthCookie(c)
	return c.JSON(http.StatusOK, messageResponse{Message: "logged out"})
}

func (h *AuthHandler) handleAuthError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrUserExists):
		return c.JSON(http.StatusConflict, errorResponse{Error: "user already exists"})
	case errors.Is(err, service.ErrUserNotFound):
		return c.JSON(http.StatusUnauthorized, errorResponse{Error: "user not found"})
	case errors.Is(err, service.ErrInvalidPassword):
		return c.JSON(http.StatusUnauthorized, errorResponse{Error: "invalid credentials"})
	case errors.Is(err, service.ErrUsernameRequired):
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "username is required"})
	case errors.Is(err, service.ErrPasswordRequired):
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "password is required"})
	case errors.Is(err, service.ErrPasswordTooShort):
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "password must be at least 6 characters"})
	default:
		c.Logger().Error(err)
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func toUserResponse(user *service.User) *userResponse {
	if user == nil {
		return nil
	}
	return &userResponse{Username: user.Username}
}

// setAuthCookie sets the authentication cookie so the browser can load
// shared pages and static assets without the Authorization header.
func setAuthCookie(c echo.Context, token string) {
	cookie := &http.Cookie{
		Name:     authCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   c.Request().TLS != nil, // Secure if HTTPS
		SameSite: http.SameSiteLaxMode,
		MaxAge:   30 * 24 * 60 * 60, // 30 days (same as JWT expiry)
	}
	c.SetCookie(cookie)
}

// clearAuthCookie clears the authentication cookie.
func clearAuthCookie(c echo.Context) {
	cookie := &http.Cookie{
		Name:     authCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1, // Delete cookie
	}
	c.SetCookie(cookie)
}
