package middleware

import (
	"github.com/labstack/echo/v4"

	apperr "raone/internal/errors"
	"raone/internal/model"
)

// RequireRole passes requests whose resolved identity has one of the allowed
// roles. The check runs against the identity attached by Session, not against
// token claims, so a role change takes effect immediately.
func RequireRole(roles ...model.Role) echo.MiddlewareFunc {
	allowed := make(map[model.Role]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := CurrentUser(c)
			if user == nil {
				return apperr.Unauthorized("unauthorized user")
			}
			if _, ok := allowed[user.Role]; !ok {
				return apperr.Forbidden("you are not allowed to perform this action")
			}
			return next(c)
		}
	}
}
