package middleware

import (
	"context"
	"errors"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"raone/internal/auth"
	apperr "raone/internal/errors"
	"raone/internal/model"
	"raone/internal/repository"
)

// ContextUserKey is where Session attaches the resolved *model.User.
const ContextUserKey = "user"

// SessionConfig carries the collaborators of the session middleware. Store
// and cache are injected as interfaces so tests can substitute fakes.
type SessionConfig struct {
	Tokens *auth.TokenService
	Users  repository.UserRepository
	Cache  auth.UserCache
	Secure bool
}

// Session resolves a validated user identity from the request's cookie pair,
// transparently rotating an expired access token from a still-valid refresh
// token.
//
// An access token that verifies resolves identity directly. One that is
// absent, expired or invalid falls through to the refresh token: if that
// verifies, a brand new access+refresh pair is minted from its claims and
// set on the response (full rotation; concurrent requests may each mint
// their own valid pair, which is what keeps multi-device sessions alive).
// Identity resolution is cache-first and never repopulates the cache; writes
// happen only at login, activation and profile update.
func Session(cfg SessionConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()

			if cookie, err := c.Cookie(auth.CookieAccess); err == nil && cookie.Value != "" {
				if claims, err := cfg.Tokens.VerifyAccess(cookie.Value); err == nil {
					user, err := resolveUser(ctx, cfg, claims.User.ID)
					if err != nil {
						return err
					}
					c.Set(ContextUserKey, user)
					return next(c)
				}
				// expired or invalid access token: fall through to refresh
			}

			refreshCookie, err := c.Cookie(auth.CookieRefresh)
			if err != nil || refreshCookie.Value == "" {
				return apperr.SessionExpired("session expired")
			}
			claims, err := cfg.Tokens.VerifyRefresh(refreshCookie.Value)
			if err != nil {
				return apperr.SessionExpired("session expired")
			}

			access, refresh, err := cfg.Tokens.IssuePair(claims.User)
			if err != nil {
				return apperr.Internal("couldn't refresh session")
			}
			auth.SetCookie(c, auth.CookieAccess, access, cfg.Tokens.AccessTTL(), cfg.Secure)
			auth.SetCookie(c, auth.CookieRefresh, refresh, cfg.Tokens.RefreshTTL(), cfg.Secure)

			user, err := resolveUser(ctx, cfg, claims.User.ID)
			if err != nil {
				return err
			}
			c.Set(ContextUserKey, user)
			return next(c)
		}
	}
}

// resolveUser loads the identity for a verified token subject: cache first,
// then the credential store. A subject that is missing from both is a
// dangling token and resolves to Unauthorized, never a crash.
func resolveUser(ctx context.Context, cfg SessionConfig, id uint) (*model.User, error) {
	if user, err := cfg.Cache.Get(ctx, id); err == nil && user != nil {
		return user, nil
	}

	user, err := cfg.Users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Unauthorized("couldn't get user")
		}
		return nil, apperr.Internal("couldn't get user")
	}
	return user, nil
}

// CurrentUser returns the identity attached by Session, or nil.
func CurrentUser(c echo.Context) *model.User {
	user, _ := c.Get(ContextUserKey).(*model.User)
	return user
}
