package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apperr "raone/internal/errors"
	"raone/internal/model"
)

func TestUserService_Update_SimpleFields(t *testing.T) {
	repo := new(MockUserRepository)
	cache := new(MockUserCache)
	user := &model.User{ID: 1, FullName: "Old Name", Email: "test@example.com"}
	updated := &model.User{ID: 1, FullName: "New Name", Email: "test@example.com"}

	repo.On("UpdateFields", mock.Anything, uint(1), map[string]interface{}{"full_name": "New Name"}).Return(nil)
	repo.On("FindByID", mock.Anything, uint(1)).Return(updated, nil)
	cache.On("Put", mock.Anything, updated).Return(nil)

	svc := NewUserService(repo, newTestTokens(), cache, nil, nil, "")
	result, err := svc.Update(context.Background(), user, UpdateInput{FullName: "New Name"})

	assert.NoError(t, err)
	assert.Equal(t, updated, result.User)
	assert.Empty(t, result.PendingToken)
	repo.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestUserService_Update_NothingToUpdate(t *testing.T) {
	user := &model.User{ID: 1, Email: "test@example.com"}

	svc := NewUserService(new(MockUserRepository), newTestTokens(), new(MockUserCache), nil, nil, "")
	result, err := svc.Update(context.Background(), user, UpdateInput{})

	assert.NoError(t, err)
	assert.Equal(t, user, result.User)
	assert.Equal(t, "nothing to update", result.Message)
}

func TestUserService_Update_PasswordChange(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("old-password"), 10)
	stored := &model.User{ID: 1, Email: "test@example.com", PasswordHash: string(hash)}

	t.Run("requires the correct old password", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("FindByID", mock.Anything, uint(1)).Return(stored, nil)

		svc := NewUserService(repo, newTestTokens(), new(MockUserCache), nil, nil, "")
		_, err := svc.Update(context.Background(), stored, UpdateInput{
			Password:    "new-password",
			OldPassword: "wrong-password",
		})
		assert.Error(t, err)
		assert.Equal(t, apperr.KindUnauthorized, apperr.AsAPIError(err).Kind)
	})

	t.Run("stores a hash, never the raw password", func(t *testing.T) {
		repo := new(MockUserRepository)
		cache := new(MockUserCache)
		repo.On("FindByID", mock.Anything, uint(1)).Return(stored, nil)
		repo.On("UpdateFields", mock.Anything, uint(1), mock.MatchedBy(func(fields map[string]interface{}) bool {
			hashed, ok := fields["password_hash"].(string)
			return ok && strings.HasPrefix(hashed, "$2") &&
				bcrypt.CompareHashAndPassword([]byte(hashed), []byte("new-password")) == nil
		})).Return(nil)
		cache.On("Put", mock.Anything, stored).Return(nil)

		svc := NewUserService(repo, newTestTokens(), cache, nil, nil, "")
		_, err := svc.Update(context.Background(), stored, UpdateInput{
			Password:    "new-password",
			OldPassword: "old-password",
		})
		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("rejects reusing the old password", func(t *testing.T) {
		svc := NewUserService(new(MockUserRepository), newTestTokens(), new(MockUserCache), nil, nil, "")
		_, err := svc.Update(context.Background(), stored, UpdateInput{
			Password:    "old-password",
			OldPassword: "old-password",
		})
		assert.Error(t, err)
		assert.Equal(t, apperr.KindValidation, apperr.AsAPIError(err).Kind)
	})
}

func TestUserService_Update_EmailChangeIsTwoPhase(t *testing.T) {
	tokens := newTestTokens()
	user := &model.User{ID: 1, FullName: "Test User", Email: "old@example.com"}

	repo := new(MockUserRepository)
	mail := new(MockMailer)
	repo.On("FindByEmail", mock.Anything, "new@example.com").Return(nil, gorm.ErrRecordNotFound)
	mail.On("Send", mock.Anything, mock.AnythingOfType("mailer.Mail")).Return(nil)

	svc := NewUserService(repo, tokens, new(MockUserCache), mail, nil, "https://shop.example.com")
	result, err := svc.Update(context.Background(), user, UpdateInput{Email: "new@example.com"})

	assert.NoError(t, err)
	assert.Nil(t, result.User)
	assert.NotEmpty(t, result.PendingToken)

	// nothing written yet: the pending change lives only in the token
	repo.AssertNotCalled(t, "UpdateFields", mock.Anything, mock.Anything, mock.Anything)

	claims, err := tokens.VerifyUpdate(result.PendingToken)
	assert.NoError(t, err)
	assert.Equal(t, uint(1), claims.UserID)
	assert.Equal(t, "new@example.com", claims.Fields["email"])

	// phase two: the OTP applies the pending fields
	updated := &model.User{ID: 1, FullName: "Test User", Email: "new@example.com"}
	cache := new(MockUserCache)
	repo.On("FindByID", mock.Anything, uint(1)).Return(updated, nil)
	repo.On("UpdateFields", mock.Anything, uint(1), map[string]interface{}{"email": "new@example.com"}).Return(nil)
	cache.On("Put", mock.Anything, updated).Return(nil)

	svc = NewUserService(repo, tokens, cache, mail, nil, "")
	confirmed, err := svc.ConfirmUpdate(context.Background(), result.PendingToken, claims.OTP)
	assert.NoError(t, err)
	assert.Equal(t, "new@example.com", confirmed.Email)
	repo.AssertExpectations(t)
}

func TestUserService_Update_EmailConflict(t *testing.T) {
	repo := new(MockUserRepository)
	repo.On("FindByEmail", mock.Anything, "taken@example.com").
		Return(&model.User{ID: 2, Email: "taken@example.com"}, nil)

	svc := NewUserService(repo, newTestTokens(), new(MockUserCache), nil, nil, "")
	_, err := svc.Update(context.Background(), &model.User{ID: 1, Email: "old@example.com"}, UpdateInput{
		Email: "taken@example.com",
	})
	assert.Error(t, err)
	assert.Equal(t, apperr.KindConflict, apperr.AsAPIError(err).Kind)
}

func TestUserService_ConfirmUpdate_WrongOTP(t *testing.T) {
	tokens := newTestTokens()
	token, err := tokens.IssueUpdateToken("123456", 1, map[string]string{"email": "new@example.com"})
	assert.NoError(t, err)

	repo := new(MockUserRepository)
	svc := NewUserService(repo, tokens, new(MockUserCache), nil, nil, "")

	_, err = svc.ConfirmUpdate(context.Background(), token, "654321")
	assert.Error(t, err)
	assert.Equal(t, apperr.KindInvalidOTP, apperr.AsAPIError(err).Kind)
	repo.AssertNotCalled(t, "UpdateFields", mock.Anything, mock.Anything, mock.Anything)
}

func TestUserService_ConfirmUpdate_MissingToken(t *testing.T) {
	svc := NewUserService(new(MockUserRepository), newTestTokens(), new(MockUserCache), nil, nil, "")
	_, err := svc.ConfirmUpdate(context.Background(), "", "123456")
	assert.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.AsAPIError(err).Kind)
}
