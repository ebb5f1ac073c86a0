package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"raone/internal/model"
)

// ErrTokenInvalid is returned for any token that fails signature, shape or
// expiry checks.
var ErrTokenInvalid = errors.New("token is invalid or expired")

// PendingUser is the candidate account captured at registration time. It is
// never persisted; its only store is the signed activation token handed back
// to the client.
type PendingUser struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
	IsVendor bool   `json:"is_vendor"`
}

// TokenUser is the claim payload shared by access and refresh tokens.
// Deliberately minimal: no role and no password, so authorization always goes
// back to the cache or database and a role change takes effect without
// waiting for token expiry.
type TokenUser struct {
	ID       uint        `json:"id"`
	FullName string      `json:"full_name"`
	Email    string      `json:"email"`
	Avatar   model.Image `json:"avatar"`
}

// TokenUserFrom extracts the claim payload from a user record.
func TokenUserFrom(u *model.User) TokenUser {
	return TokenUser{ID: u.ID, FullName: u.FullName, Email: u.Email, Avatar: u.Avatar}
}

// SessionClaims are the claims of access and refresh tokens.
type SessionClaims struct {
	User TokenUser `json:"user"`
	jwt.RegisteredClaims
}

// ActivationClaims carry a pending registration and its OTP.
type ActivationClaims struct {
	OTP  string      `json:"otp"`
	User PendingUser `json:"user_data"`
	jwt.RegisteredClaims
}

// UpdateClaims carry a pending profile update awaiting OTP confirmation.
// Fields maps column names to their new values.
type UpdateClaims struct {
	OTP    string            `json:"otp"`
	UserID uint              `json:"user_id"`
	Fields map[string]string `json:"fields"`
	jwt.RegisteredClaims
}

// TokenService signs and verifies the three token classes with distinct
// secrets. Separate secrets isolate blast radius: a leaked activation secret
// cannot forge a session and vice versa.
type TokenService struct {
	activationSecret []byte
	accessSecret     []byte
	refreshSecret    []byte
	activationTTL    time.Duration
	accessTTL        time.Duration
	refreshTTL       time.Duration
}

// NewTokenService creates a token service. TTLs follow the deployment
// convention: activation and access in minutes, refresh in days.
func NewTokenService(activationSecret, accessSecret, refreshSecret string, activationTTLMin, accessTTLMin, refreshTTLDays int) *TokenService {
	return &TokenService{
		activationSecret: []byte(activationSecret),
		accessSecret:     []byte(accessSecret),
		refreshSecret:    []byte(refreshSecret),
		activationTTL:    time.Duration(activationTTLMin) * time.Minute,
		accessTTL:        time.Duration(accessTTLMin) * time.Minute,
		refreshTTL:       time.Duration(refreshTTLDays) * 24 * time.Hour,
	}
}

// ActivationTTL returns the activation token lifetime.
func (s *TokenService) ActivationTTL() time.Duration { return s.activationTTL }

// AccessTTL returns the access token lifetime.
func (s *TokenService) AccessTTL() time.Duration { return s.accessTTL }

// RefreshTTL returns the refresh token lifetime.
func (s *TokenService) RefreshTTL() time.Duration { return s.refreshTTL }

// IssueActivationToken signs the OTP and the full candidate user fields into
// a short-lived token. The token is the only store of the pending
// registration.
func (s *TokenService) IssueActivationToken(otp string, pending PendingUser) (string, error) {
	claims := &ActivationClaims{
		OTP:              otp,
		User:             pending,
		RegisteredClaims: registered(s.activationTTL),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.activationSecret)
}

// IssueUpdateToken signs a pending profile update with its confirmation OTP.
// It shares the activation secret and TTL: both are one-shot OTP carriers.
func (s *TokenService) IssueUpdateToken(otp string, userID uint, fields map[string]string) (string, error) {
	claims := &UpdateClaims{
		OTP:              otp,
		UserID:           userID,
		Fields:           fields,
		RegisteredClaims: registered(s.activationTTL),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.activationSecret)
}

// IssueAccessToken signs a short-lived access token for the user.
func (s *TokenService) IssueAccessToken(u TokenUser) (string, error) {
	claims := &SessionClaims{User: u, RegisteredClaims: registered(s.accessTTL)}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.accessSecret)
}

// IssueRefreshToken signs a long-lived refresh token for the user.
func (s *TokenService) IssueRefreshToken(u TokenUser) (string, error) {
	claims := &SessionClaims{User: u, RegisteredClaims: registered(s.refreshTTL)}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.refreshSecret)
}

// IssuePair issues a fresh access and refresh token for the same user.
func (s *TokenService) IssuePair(u TokenUser) (access, refresh string, err error) {
	if access, err = s.IssueAccessToken(u); err != nil {
		return "", "", err
	}
	if refresh, err = s.IssueRefreshToken(u); err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

// VerifyActivation checks an activation token and returns its claims.
func (s *TokenService) VerifyActivation(token string) (*ActivationClaims, error) {
	claims := &ActivationClaims{}
	if err := s.verify(token, s.activationSecret, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

// VerifyUpdate checks an update token and returns its claims.
func (s *TokenService) VerifyUpdate(token string) (*UpdateClaims, error) {
	claims := &UpdateClaims{}
	if err := s.verify(token, s.activationSecret, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

// VerifyAccess checks an access token and returns its claims.
func (s *TokenService) VerifyAccess(token string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	if err := s.verify(token, s.accessSecret, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

// VerifyRefresh checks a refresh token and returns its claims.
func (s *TokenService) VerifyRefresh(token string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	if err := s.verify(token, s.refreshSecret, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

func (s *TokenService) verify(token string, secret []byte, claims jwt.Claims) error {
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return secret, nil
	})
	if err != nil || !parsed.Valid {
		return ErrTokenInvalid
	}
	return nil
}

func registered(ttl time.Duration) jwt.RegisteredClaims {
	now := time.Now()
	return jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
	}
}
