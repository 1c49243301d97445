package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"clubmanager_backend/internal/services"
)

// AuthHandler serves login and logout. Login issues a signed access
// token; logout revokes it for the remainder of its lifetime.
type AuthHandler struct {
	users  *services.UserService
	tokens *services.TokenService
}

func NewAuthHandler(users *services.UserService, tokens *services.TokenService) *AuthHandler {
	return &AuthHandler{users: users, tokens: tokens}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login verifies the credentials and returns the access token both in
// the Authorization header and in the response body.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body")
	}
	if req.Username == "" || req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "username and password are required")
	}

	user, err := h.users.FindByUsername(req.Username)
	if err != nil {
		if services.IsNotFound(err) {
			return services.ErrBadCredentials
		}
		return err
	}
	if !user.Enabled || !h.users.CheckPassword(user, req.Password) {
		return services.ErrBadCredentials
	}

	token, err := h.tokens.Issue(user.Username, user.RolesAndAuthorities())
	if err != nil {
		return err
	}

	c.Response().Header().Set("Authorization", "Bearer "+token)
	return c.JSON(http.StatusOK, map[string]string{"access_token": token})
}

// Logout revokes the token presented in the Authorization header.
func (h *AuthHandler) Logout(c echo.Context) error {
	header := c.Request().Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing or malformed authorization header")
	}

	claims, err := h.tokens.Parse(c.Request().Context(), strings.TrimPrefix(header, "Bearer "))
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
	}

	if err := h.tokens.Revoke(c.Request().Context(), claims); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "logged out"})
}
