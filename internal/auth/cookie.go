package auth

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// Cookie names carrying the signed credentials.
const (
	CookieActivation = "activation_token"
	CookieAccess     = "access_token"
	CookieRefresh    = "refresh_token"
	CookieUpdate     = "update_token"
)

// SetCookie writes an HTTP-only cookie. Expires and MaxAge are derived from
// the same TTL so the absolute and relative expiries cannot drift apart.
func SetCookie(c echo.Context, name, value string, ttl time.Duration, secure bool) {
	c.SetCookie(&http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		Expires:  time.Now().Add(ttl),
		MaxAge:   int(ttl.Seconds()),
	})
}

// ClearCookie overwrites a cookie with an already-expired empty value.
func ClearCookie(c echo.Context, name string, secure bool) {
	c.SetCookie(&http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
	})
}
