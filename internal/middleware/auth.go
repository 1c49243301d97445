package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"clubmanager_backend/internal/services"
)

const (
	authorizationHeader = "Authorization"
	bearerPrefix        = "Bearer "

	// Context keys set for downstream handlers.
	ContextUsername    = "username"
	ContextAuthorities = "authorities"
	ContextClaims      = "claims"
)

// RequireAuth returns a middleware that validates the Bearer token on
// the request and stashes the subject and its authorities in the
// request context.
func RequireAuth(tokens *services.TokenService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(authorizationHeader)
			if !strings.HasPrefix(header, bearerPrefix) {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing or malformed authorization header")
			}

			claims, err := tokens.Parse(c.Request().Context(), strings.TrimPrefix(header, bearerPrefix))
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
			}

			c.Set(ContextUsername, claims.Username)
			c.Set(ContextAuthorities, claims.Authorities)
			c.Set(ContextClaims, claims)

			return next(c)
		}
	}
}

// RequireRoles returns a middleware that rejects requests whose token
// carries none of the given role names. It must run after RequireAuth.
func RequireRoles(roles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authorities, ok := c.Get(ContextAuthorities).([]string)
			if !ok {
				return echo.NewHTTPError(http.StatusForbidden, "no authorities present")
			}
			for _, name := range authorities {
				if _, found := allowed[name]; found {
					return next(c)
				}
			}
			return echo.NewHTTPError(http.StatusForbidden, "insufficient role")
		}
	}
}
