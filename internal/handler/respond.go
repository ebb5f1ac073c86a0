package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	apperr "raone/internal/errors"
)

// respond writes the uniform success envelope.
func respond(c echo.Context, status int, message string, data interface{}) error {
	return c.JSON(status, apperr.OK(message, data))
}

// pathID parses a numeric path parameter.
func pathID(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, apperr.Validation("invalid " + name)
	}
	return uint(id), nil
}

// cookieValue returns a named cookie's value, or "" when absent.
func cookieValue(c echo.Context, name string) string {
	cookie, err := c.Cookie(name)
	if err != nil {
		return ""
	}
	return cookie.Value
}
