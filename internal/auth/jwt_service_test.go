package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestTokenService() *TokenService {
	return NewTokenService("activation-secret", "access-secret", "refresh-secret", 5, 15, 10)
}

func TestTokenService_ActivationRoundTrip(t *testing.T) {
	svc := newTestTokenService()
	pending := PendingUser{
		FullName: "Test User",
		Email:    "test@example.com",
		Password: "password123",
		Phone:    "9999999999",
		IsVendor: true,
	}

	token, err := svc.IssueActivationToken("123456", pending)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := svc.VerifyActivation(token)
	assert.NoError(t, err)
	assert.Equal(t, "123456", claims.OTP)
	assert.Equal(t, pending, claims.User)
}

func TestTokenService_SessionRoundTrip(t *testing.T) {
	svc := newTestTokenService()
	user := TokenUser{ID: 7, FullName: "Test User", Email: "test@example.com"}

	access, refresh, err := svc.IssuePair(user)
	assert.NoError(t, err)
	assert.NotEmpty(t, access)
	assert.NotEmpty(t, refresh)

	accessClaims, err := svc.VerifyAccess(access)
	assert.NoError(t, err)
	assert.Equal(t, user, accessClaims.User)

	refreshClaims, err := svc.VerifyRefresh(refresh)
	assert.NoError(t, err)
	assert.Equal(t, user, refreshClaims.User)
}

func TestTokenService_SecretsAreNotInterchangeable(t *testing.T) {
	svc := newTestTokenService()
	user := TokenUser{ID: 7, Email: "test@example.com"}

	access, refresh, err := svc.IssuePair(user)
	assert.NoError(t, err)

	// an access token must not verify as a refresh token and vice versa
	_, err = svc.VerifyRefresh(access)
	assert.ErrorIs(t, err, ErrTokenInvalid)
	_, err = svc.VerifyAccess(refresh)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	activation, err := svc.IssueActivationToken("123456", PendingUser{Email: "test@example.com"})
	assert.NoError(t, err)
	_, err = svc.VerifyAccess(activation)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestTokenService_WrongSecret(t *testing.T) {
	svc := newTestTokenService()
	other := NewTokenService("a", "b", "c", 5, 15, 10)

	access, err := svc.IssueAccessToken(TokenUser{ID: 1})
	assert.NoError(t, err)

	_, err = other.VerifyAccess(access)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestTokenService_ExpiredToken(t *testing.T) {
	svc := NewTokenService("activation-secret", "access-secret", "refresh-secret", 0, 0, 0)

	access, err := svc.IssueAccessToken(TokenUser{ID: 1})
	assert.NoError(t, err)

	time.Sleep(10 * time.Millisecond)
	_, err = svc.VerifyAccess(access)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestTokenService_GarbageToken(t *testing.T) {
	svc := newTestTokenService()
	_, err := svc.VerifyAccess("not-a-token")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestTokenService_UpdateRoundTrip(t *testing.T) {
	svc := newTestTokenService()
	fields := map[string]string{"email": "new@example.com", "full_name": "New Name"}

	token, err := svc.IssueUpdateToken("654321", 42, fields)
	assert.NoError(t, err)

	claims, err := svc.VerifyUpdate(token)
	assert.NoError(t, err)
	assert.Equal(t, "654321", claims.OTP)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, fields, claims.Fields)
}

func TestGenerateOTP(t *testing.T) {
	for i := 0; i < 50; i++ {
		otp, err := GenerateOTP()
		assert.NoError(t, err)
		assert.Len(t, otp, 6)
		for _, r := range otp {
			assert.True(t, r >= '0' && r <= '9')
		}
	}
}
