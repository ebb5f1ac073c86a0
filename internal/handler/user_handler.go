package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"raone/internal/auth"
	apperr "raone/internal/errors"
	"raone/internal/middleware"
	"raone/internal/service"
)

// UserHandler handles profile update endpoints.
type UserHandler struct {
	userService service.UserService
	tokens      *auth.TokenService
	secure      bool
}

// NewUserHandler creates a new user handler.
func NewUserHandler(userService service.UserService, tokens *auth.TokenService, secure bool) *UserHandler {
	return &UserHandler{userService: userService, tokens: tokens, secure: secure}
}

// UpdateRequest represents a profile update request. All fields optional.
type UpdateRequest struct {
	FullName    string `json:"fullName"`
	Email       string `json:"email" validate:"omitempty,email"`
	Phone       string `json:"phone"`
	Password    string `json:"password" validate:"omitempty,min=6"`
	OldPassword string `json:"oldPassword"`
}

// ConfirmUpdateRequest carries the OTP confirming an email change.
type ConfirmUpdateRequest struct {
	OTP string `json:"otp" validate:"required"`
}

// Update godoc
// @Summary Update the authenticated user's profile
// @Tags users
// @Accept json
// @Produce json
// @Param request body UpdateRequest true "Fields to change"
// @Success 200 {object} errors.Envelope
// @Failure 400 {object} errors.Envelope
// @Failure 401 {object} errors.Envelope
// @Router /users/me [patch]
func (h *UserHandler) Update(c echo.Context) error {
	var req UpdateRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return apperr.Validation(err.Error())
	}

	user := middleware.CurrentUser(c)
	result, err := h.userService.Update(c.Request().Context(), user, service.UpdateInput{
		FullName:    req.FullName,
		Email:       req.Email,
		Phone:       req.Phone,
		Password:    req.Password,
		OldPassword: req.OldPassword,
	})
	if err != nil {
		return err
	}

	if result.PendingToken != "" {
		auth.SetCookie(c, auth.CookieUpdate, result.PendingToken, h.tokens.ActivationTTL(), h.secure)
		return respond(c, http.StatusOK, result.Message, nil)
	}
	return respond(c, http.StatusOK, result.Message, result.User)
}

// ConfirmUpdate godoc
// @Summary Confirm a pending email change with the mailed OTP
// @Tags users
// @Accept json
// @Produce json
// @Param request body ConfirmUpdateRequest true "OTP"
// @Success 200 {object} errors.Envelope
// @Failure 400 {object} errors.Envelope
// @Router /users/me/confirm [post]
func (h *UserHandler) ConfirmUpdate(c echo.Context) error {
	var req ConfirmUpdateRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("invalid request body")
	}

	token := cookieValue(c, auth.CookieUpdate)
	user, err := h.userService.ConfirmUpdate(c.Request().Context(), token, req.OTP)
	if err != nil {
		return err
	}

	auth.ClearCookie(c, auth.CookieUpdate, h.secure)
	return respond(c, http.StatusOK, "updated profile successfully", user)
}

// UpdateAvatar godoc
// @Summary Replace the authenticated user's avatar
// @Tags users
// @Accept mpfd
// @Produce json
// @Param avatar formData file true "Avatar image"
// @Success 200 {object} errors.Envelope
// @Failure 400 {object} errors.Envelope
// @Failure 401 {object} errors.Envelope
// @Router /users/me/avatar [put]
func (h *UserHandler) UpdateAvatar(c echo.Context) error {
	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		return apperr.Validation("avatar file is required")
	}
	file, err := fileHeader.Open()
	if err != nil {
		return apperr.Validation("couldn't read avatar file")
	}
	defer file.Close()

	user := middleware.CurrentUser(c)
	updated, err := h.userService.UpdateAvatar(c.Request().Context(), user, file)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "avatar updated successfully", updated)
}
