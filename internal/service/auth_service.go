package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"raone/internal/auth"
	apperr "raone/internal/errors"
	"raone/internal/mailer"
	"raone/internal/model"
	"raone/internal/repository"
)

const bcryptCost = 10

// RegisterInput is the candidate account submitted at registration.
type RegisterInput struct {
	FullName string
	Email    string
	Password string
	Phone    string
	IsVendor bool
}

// AuthService drives the registration-by-OTP lifecycle and login sessions.
//
// Registration is a two-state machine keyed by the activation token; nothing
// is persisted until the correct OTP arrives before the token expires:
//
//	UNVERIFIED --(correct OTP before expiry)--> ACTIVE
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (activationToken string, err error)
	Activate(ctx context.Context, activationToken, otp string) (user *model.User, access, refresh string, err error)
	Login(ctx context.Context, email, password string) (user *model.User, access, refresh string, err error)
	Logout(ctx context.Context, userID uint) error
}

type authService struct {
	users  repository.UserRepository
	tokens *auth.TokenService
	cache  auth.UserCache
	mail   mailer.Mailer
}

// NewAuthService creates an authentication service.
func NewAuthService(users repository.UserRepository, tokens *auth.TokenService, cache auth.UserCache, mail mailer.Mailer) AuthService {
	return &authService{users: users, tokens: tokens, cache: cache, mail: mail}
}

// Register validates the candidate, checks for an existing account and hands
// back a signed activation token embedding the OTP and all candidate fields.
// The OTP goes out by mail best-effort: a delivery failure is logged, the
// token is still issued and the client can retry delivery by other means.
func (s *authService) Register(ctx context.Context, input RegisterInput) (string, error) {
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	input.FullName = strings.TrimSpace(input.FullName)
	input.Phone = strings.TrimSpace(input.Phone)

	if input.FullName == "" || input.Email == "" || input.Password == "" || input.Phone == "" {
		return "", apperr.Validation("all input fields are required")
	}
	if len(input.Password) < 6 {
		return "", apperr.Validation("password must be at least 6 characters long")
	}

	existing, err := s.users.FindByEmailOrPhone(ctx, input.Email, input.Phone)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", fmt.Errorf("check existing user: %w", err)
	}
	if existing != nil {
		return "", apperr.Conflict("user with this email or phone already exists")
	}

	otp, err := auth.GenerateOTP()
	if err != nil {
		return "", fmt.Errorf("generate otp: %w", err)
	}

	token, err := s.tokens.IssueActivationToken(otp, auth.PendingUser{
		FullName: input.FullName,
		Email:    input.Email,
		Password: input.Password,
		Phone:    input.Phone,
		IsVendor: input.IsVendor,
	})
	if err != nil {
		return "", fmt.Errorf("issue activation token: %w", err)
	}

	s.sendMail(ctx, mailer.Mail{
		To:       input.Email,
		Subject:  "Activate your RA.one account",
		Template: mailer.TemplateActivation,
		Data:     map[string]interface{}{"FullName": input.FullName, "OTP": otp},
	})

	return token, nil
}

// Activate consumes the activation token: on an exact OTP match it persists
// the user, caches the password-less snapshot and issues a session pair. A
// wrong OTP leaves no side effect.
func (s *authService) Activate(ctx context.Context, activationToken, otp string) (*model.User, string, string, error) {
	if otp == "" {
		return nil, "", "", apperr.Validation("please enter your OTP")
	}
	if activationToken == "" {
		return nil, "", "", apperr.Validation("your OTP has expired, register again")
	}

	claims, err := s.tokens.VerifyActivation(activationToken)
	if err != nil {
		return nil, "", "", apperr.Validation("OTP expired, register again")
	}
	if otp != claims.OTP {
		return nil, "", "", apperr.InvalidOTP("incorrect OTP")
	}

	pending := claims.User
	hash, err := bcrypt.GenerateFromPassword([]byte(pending.Password), bcryptCost)
	if err != nil {
		return nil, "", "", fmt.Errorf("hash password: %w", err)
	}

	role := model.RoleCustomer
	if pending.IsVendor {
		role = model.RoleVendor
	}
	user := &model.User{
		FullName:     pending.FullName,
		Email:        pending.Email,
		Phone:        pending.Phone,
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", "", fmt.Errorf("create user: %w", err)
	}

	if err := s.cache.Put(ctx, user); err != nil {
		log.Printf("auth: cache user %d after activation: %v", user.ID, err)
	}

	s.sendMail(ctx, mailer.Mail{
		To:       user.Email,
		Subject:  "Registration successful on RA.one",
		Template: mailer.TemplateWelcome,
		Data:     map[string]interface{}{"FullName": user.FullName},
	})

	access, refresh, err := s.tokens.IssuePair(auth.TokenUserFrom(user))
	if err != nil {
		return nil, "", "", fmt.Errorf("issue session tokens: %w", err)
	}
	return user, access, refresh, nil
}

// Login verifies credentials, repopulates the session cache and issues a
// fresh session pair.
func (s *authService) Login(ctx context.Context, email, password string) (*model.User, string, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, "", "", apperr.Validation("all input fields are required")
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", "", apperr.NotFound(fmt.Sprintf("%s is not registered", email))
		}
		return nil, "", "", fmt.Errorf("find user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, "", "", apperr.Validation("invalid password")
	}

	if err := s.cache.Put(ctx, user); err != nil {
		log.Printf("auth: cache user %d after login: %v", user.ID, err)
	}

	s.sendMail(ctx, mailer.Mail{
		To:       user.Email,
		Subject:  "Login successful - RA.one",
		Template: mailer.TemplateLogin,
		Data:     map[string]interface{}{"FullName": user.FullName},
	})

	access, refresh, err := s.tokens.IssuePair(auth.TokenUserFrom(user))
	if err != nil {
		return nil, "", "", fmt.Errorf("issue session tokens: %w", err)
	}
	return user, access, refresh, nil
}

// Logout drops the cached snapshot. The tokens themselves stay valid until
// expiry; the cookies are cleared at the handler.
func (s *authService) Logout(ctx context.Context, userID uint) error {
	return s.cache.Delete(ctx, userID)
}

// sendMail applies the uniform notification policy: mail is best-effort
// everywhere, a failure is logged and never fails the request.
func (s *authService) sendMail(ctx context.Context, m mailer.Mail) {
	if s.mail == nil {
		return
	}
	if err := s.mail.Send(ctx, m); err != nil {
		log.Printf("auth: couldn't send mail: %v", err)
	}
}
