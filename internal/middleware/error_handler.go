package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"clubmanager_backend/internal/services"
)

// CustomErrorHandler translates the domain error taxonomy into JSON
// responses. Services propagate errors unmodified; the mapping to HTTP
// statuses happens only here.
func CustomErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := "internal server error"

	var he *echo.HTTPError
	var roleErr *services.RoleRetrievalError
	var deleteErr *services.ClubDeletingError

	switch {
	case errors.As(err, &he):
		code = he.Code
		if msg, ok := he.Message.(string); ok && msg != "" {
			message = msg
		} else {
			message = http.StatusText(code)
		}
	// Checked before the not-found branch: a RoleRetrievalError wraps the
	// directory lookup's NotFoundError, but a missing default role is a
	// broken deployment, not a client error.
	case errors.As(err, &roleErr), errors.As(err, &deleteErr):
		message = err.Error()
	case services.IsNotFound(err):
		code = http.StatusNotFound
		message = err.Error()
	case services.IsConflict(err), errors.Is(err, gorm.ErrDuplicatedKey):
		code = http.StatusConflict
		message = err.Error()
	case errors.Is(err, services.ErrBadCredentials):
		code = http.StatusUnauthorized
		message = err.Error()
	case errors.Is(err, services.ErrTokenRevoked):
		code = http.StatusUnauthorized
		message = err.Error()
	}

	c.Logger().Error(err)

	if jsonErr := c.JSON(code, map[string]any{
		"status":  code,
		"message": message,
	}); jsonErr != nil {
		c.Logger().Error(jsonErr)
	}
}
