package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"raone/internal/auth"
	apperr "raone/internal/errors"
	"raone/internal/mailer"
	"raone/internal/model"
	"raone/internal/repository"
	"raone/internal/storage"
)

// UpdateInput carries the profile fields a user may change. Empty strings
// mean "leave unchanged".
type UpdateInput struct {
	FullName    string
	Email       string
	Phone       string
	Password    string
	OldPassword string
}

// UpdateResult is the outcome of an Update call. Either User is the updated
// record, or PendingToken is a signed update token awaiting OTP confirmation
// (email changes only).
type UpdateResult struct {
	User         *model.User
	PendingToken string
	Message      string
}

// UserService covers profile reads and updates for an authenticated user.
type UserService interface {
	Update(ctx context.Context, user *model.User, input UpdateInput) (*UpdateResult, error)
	ConfirmUpdate(ctx context.Context, updateToken, otp string) (*model.User, error)
	UpdateAvatar(ctx context.Context, user *model.User, file io.Reader) (*model.User, error)
}

type userService struct {
	users     repository.UserRepository
	tokens    *auth.TokenService
	cache     auth.UserCache
	mail      mailer.Mailer
	images    storage.ImageStore
	clientURL string
}

// NewUserService creates a user profile service.
func NewUserService(users repository.UserRepository, tokens *auth.TokenService, cache auth.UserCache, mail mailer.Mailer, images storage.ImageStore, clientURL string) UserService {
	return &userService{users: users, tokens: tokens, cache: cache, mail: mail, images: images, clientURL: clientURL}
}

// Update applies profile changes. A password change requires the correct old
// password; an email change is two-phase and returns a pending update token
// whose OTP goes to the new address.
func (s *userService) Update(ctx context.Context, user *model.User, input UpdateInput) (*UpdateResult, error) {
	fields := map[string]string{}
	if v := strings.TrimSpace(input.FullName); v != "" {
		fields["full_name"] = v
	}
	if v := strings.TrimSpace(input.Phone); v != "" {
		fields["phone"] = v
	}
	if v := strings.ToLower(strings.TrimSpace(input.Email)); v != "" && v != user.Email {
		fields["email"] = v
	}
	if input.Password != "" {
		fields["password"] = input.Password
	}

	if len(fields) == 0 {
		return &UpdateResult{User: user, Message: "nothing to update"}, nil
	}

	if newPass, ok := fields["password"]; ok {
		if input.OldPassword == "" {
			return nil, apperr.Validation("old password is required to update password")
		}
		if newPass == input.OldPassword {
			return nil, apperr.Validation("please enter a different password")
		}
		stored, err := s.users.FindByID(ctx, user.ID)
		if err != nil {
			return nil, fmt.Errorf("load user: %w", err)
		}
		if bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte(input.OldPassword)) != nil {
			return nil, apperr.Unauthorized("invalid old password")
		}
	}

	if newEmail, ok := fields["email"]; ok {
		if _, err := s.users.FindByEmail(ctx, newEmail); err == nil {
			return nil, apperr.Conflict(fmt.Sprintf("%s is already registered", newEmail))
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("check email: %w", err)
		}

		otp, err := auth.GenerateOTP()
		if err != nil {
			return nil, fmt.Errorf("generate otp: %w", err)
		}
		token, err := s.tokens.IssueUpdateToken(otp, user.ID, fields)
		if err != nil {
			return nil, fmt.Errorf("issue update token: %w", err)
		}

		s.sendMail(ctx, mailer.Mail{
			To:       newEmail,
			Subject:  "Confirm your RA.one profile update",
			Template: mailer.TemplateUpdateOTP,
			Data: map[string]interface{}{
				"FullName":   user.FullName,
				"OTP":        otp,
				"ConfirmURL": s.clientURL,
			},
		})

		return &UpdateResult{
			PendingToken: token,
			Message:      fmt.Sprintf("check your email %s to get a 6 digit OTP", newEmail),
		}, nil
	}

	updated, err := s.apply(ctx, user.ID, fields)
	if err != nil {
		return nil, err
	}
	return &UpdateResult{User: updated, Message: "updated profile successfully"}, nil
}

// ConfirmUpdate finishes a two-phase update once the OTP matches.
func (s *userService) ConfirmUpdate(ctx context.Context, updateToken, otp string) (*model.User, error) {
	if updateToken == "" {
		return nil, apperr.Validation("update token not found")
	}
	claims, err := s.tokens.VerifyUpdate(updateToken)
	if err != nil {
		return nil, apperr.Validation("update token expired, try again")
	}
	if otp == "" || otp != claims.OTP {
		return nil, apperr.InvalidOTP("invalid OTP")
	}

	if _, err := s.users.FindByID(ctx, claims.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, fmt.Errorf("load user: %w", err)
	}
	return s.apply(ctx, claims.UserID, claims.Fields)
}

// UpdateAvatar replaces the avatar asset: the previous image is destroyed
// first, then the new one uploaded and the record and cache refreshed.
func (s *userService) UpdateAvatar(ctx context.Context, user *model.User, file io.Reader) (*model.User, error) {
	if s.images == nil {
		return nil, apperr.Internal("image storage is not configured")
	}

	if !user.Avatar.Empty() {
		if err := s.images.Destroy(ctx, user.Avatar.PublicID); err != nil {
			return nil, apperr.Internal("couldn't delete previous avatar")
		}
	}

	avatar, err := s.images.Upload(ctx, file, "avatars")
	if err != nil {
		return nil, apperr.Internal("couldn't upload new avatar")
	}

	err = s.users.UpdateFields(ctx, user.ID, map[string]interface{}{
		"avatar_public_id": avatar.PublicID,
		"avatar_url":       avatar.URL,
	})
	if err != nil {
		return nil, fmt.Errorf("update avatar: %w", err)
	}
	return s.reload(ctx, user.ID)
}

// apply writes the pending fields (hashing a password if present), reloads
// the record and refreshes the session cache.
func (s *userService) apply(ctx context.Context, userID uint, fields map[string]string) (*model.User, error) {
	updates := make(map[string]interface{}, len(fields))
	for column, value := range fields {
		if column == "password" {
			hash, err := bcrypt.GenerateFromPassword([]byte(value), bcryptCost)
			if err != nil {
				return nil, fmt.Errorf("hash password: %w", err)
			}
			updates["password_hash"] = string(hash)
			continue
		}
		updates[column] = value
	}

	if err := s.users.UpdateFields(ctx, userID, updates); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return s.reload(ctx, userID)
}

func (s *userService) reload(ctx context.Context, userID uint) (*model.User, error) {
	updated, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("reload user: %w", err)
	}
	if err := s.cache.Put(ctx, updated); err != nil {
		log.Printf("user: cache user %d after update: %v", updated.ID, err)
	}
	return updated, nil
}

func (s *userService) sendMail(ctx context.Context, m mailer.Mail) {
	if s.mail == nil {
		return
	}
	if err := s.mail.Send(ctx, m); err != nil {
		log.Printf("user: couldn't send mail: %v", err)
	}
}
