package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"raone/internal/auth"
	apperr "raone/internal/errors"
	"raone/internal/middleware"
	"raone/internal/service"
)

// AuthHandler handles the registration, activation and session endpoints.
type AuthHandler struct {
	authService service.AuthService
	tokens      *auth.TokenService
	secure      bool
}

// NewAuthHandler creates a new auth handler. secure controls the Secure flag
// on session cookies and should be true in production.
func NewAuthHandler(authService service.AuthService, tokens *auth.TokenService, secure bool) *AuthHandler {
	return &AuthHandler{authService: authService, tokens: tokens, secure: secure}
}

// RegisterRequest represents a user registration request.
type RegisterRequest struct {
	FullName string `json:"fullName" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Phone    string `json:"phone" validate:"required"`
	IsVendor bool   `json:"isVendor"`
}

// ActivateRequest carries the OTP typed by the user.
type ActivateRequest struct {
	OTP string `json:"otp" validate:"required"`
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Register godoc
// @Summary Start registration and mail an OTP
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Candidate account"
// @Success 200 {object} errors.Envelope
// @Failure 400 {object} errors.Envelope
// @Router /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return apperr.Validation(err.Error())
	}

	token, err := h.authService.Register(c.Request().Context(), service.RegisterInput{
		FullName: req.FullName,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
		IsVendor: req.IsVendor,
	})
	if err != nil {
		return err
	}

	auth.SetCookie(c, auth.CookieActivation, token, h.tokens.ActivationTTL(), h.secure)
	return respond(c, http.StatusOK, "OTP sent to your email", nil)
}

// Activate godoc
// @Summary Verify the OTP and create the account
// @Tags auth
// @Accept json
// @Produce json
// @Param request body ActivateRequest true "OTP"
// @Success 201 {object} errors.Envelope
// @Failure 400 {object} errors.Envelope
// @Router /auth/activate [post]
func (h *AuthHandler) Activate(c echo.Context) error {
	var req ActivateRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("invalid request body")
	}

	token := cookieValue(c, auth.CookieActivation)
	user, access, refresh, err := h.authService.Activate(c.Request().Context(), token, req.OTP)
	if err != nil {
		return err
	}

	auth.ClearCookie(c, auth.CookieActivation, h.secure)
	auth.SetCookie(c, auth.CookieAccess, access, h.tokens.AccessTTL(), h.secure)
	auth.SetCookie(c, auth.CookieRefresh, refresh, h.tokens.RefreshTTL(), h.secure)
	return respond(c, http.StatusCreated, "registered successfully", user)
}

// Login godoc
// @Summary Login with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} errors.Envelope
// @Failure 400 {object} errors.Envelope
// @Failure 404 {object} errors.Envelope
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return apperr.Validation(err.Error())
	}

	user, access, refresh, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	auth.SetCookie(c, auth.CookieAccess, access, h.tokens.AccessTTL(), h.secure)
	auth.SetCookie(c, auth.CookieRefresh, refresh, h.tokens.RefreshTTL(), h.secure)
	return respond(c, http.StatusOK, "logged in successfully", user)
}

// Logout godoc
// @Summary End the current session
// @Tags auth
// @Produce json
// @Success 200 {object} errors.Envelope
// @Failure 401 {object} errors.Envelope
// @Router /auth/logout [delete]
func (h *AuthHandler) Logout(c echo.Context) error {
	user := middleware.CurrentUser(c)
	if err := h.authService.Logout(c.Request().Context(), user.ID); err != nil {
		return apperr.Internal("couldn't log out")
	}

	auth.ClearCookie(c, auth.CookieAccess, h.secure)
	auth.ClearCookie(c, auth.CookieRefresh, h.secure)
	return respond(c, http.StatusOK, "logged out successfully", nil)
}

// Me godoc
// @Summary Get the authenticated user
// @Tags auth
// @Produce json
// @Success 200 {object} errors.Envelope
// @Failure 401 {object} errors.Envelope
// @Router /users/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	return respond(c, http.StatusOK, "user fetched successfully", middleware.CurrentUser(c))
}
