package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/labstack/echo/v4"
)

// ApiResponse is the envelope used by endpoints that can return either
// a payload or a field-to-message validation error map.
type ApiResponse struct {
	Data   any               `json:"data,omitempty"`
	Errors map[string]string `json:"errors,omitempty"`
}

// pageResponse wraps paginated listings with their total count.
type pageResponse struct {
	Content []any `json:"content"`
	Page    int   `json:"page"`
	Size    int   `json:"size"`
	Total   int64 `json:"total"`
}

func newPageResponse[T any](items []T, page int, size int, total int64) pageResponse {
	content := make([]any, len(items))
	for i := range items {
		content[i] = items[i]
	}
	return pageResponse{Content: content, Page: page, Size: size, Total: total}
}

func parseIDParam(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return uint(id), nil
}

func validationError(c echo.Context, errs map[string]string) error {
	return c.JSON(http.StatusBadRequest, ApiResponse{Errors: errs})
}

func requireFields(fields map[string]string) map[string]string {
	errs := make(map[string]string)
	for field, value := range fields {
		if strings.TrimSpace(value) == "" {
			errs[field] = field + " field: must not be blank"
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// validUsername enforces the account naming rules: 6-20 characters,
// letters and digits only. Length counts runes so multibyte letters do
// not inflate it.
func validUsername(username string) bool {
	if n := utf8.RuneCountInString(username); n < 6 || n > 20 {
		return false
	}
	for _, r := range username {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// validPassword enforces minimal password strength: at least six
// characters mixing letters and digits.
func validPassword(password string) bool {
	if utf8.RuneCountInString(password) < 6 {
		return false
	}
	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	return hasLetter && hasDigit
}
