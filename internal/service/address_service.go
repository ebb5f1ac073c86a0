package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	apperr "raone/internal/errors"
	"raone/internal/model"
	"raone/internal/repository"
)

// AddressInput carries a new delivery address.
type AddressInput struct {
	Phone   string
	Pin     string
	Country string
	State   string
	City    string
	Line1   string
	Line2   string
}

// AddressService manages a user's delivery addresses.
type AddressService interface {
	Add(ctx context.Context, user *model.User, input AddressInput) (*model.Address, error)
	Remove(ctx context.Context, user *model.User, addressID uint) error
	List(ctx context.Context, user *model.User) ([]model.Address, error)
}

type addressService struct {
	addresses repository.AddressRepository
}

// NewAddressService creates an address service.
func NewAddressService(addresses repository.AddressRepository) AddressService {
	return &addressService{addresses: addresses}
}

func (s *addressService) Add(ctx context.Context, user *model.User, input AddressInput) (*model.Address, error) {
	if input.Phone == "" || input.Pin == "" || input.Country == "" || input.State == "" || input.City == "" || input.Line1 == "" {
		return nil, apperr.Validation("all input fields are required")
	}

	address := &model.Address{
		UserID:  user.ID,
		Phone:   input.Phone,
		Pin:     input.Pin,
		Country: input.Country,
		State:   input.State,
		City:    input.City,
		Line1:   input.Line1,
		Line2:   input.Line2,
	}
	if err := s.addresses.Create(ctx, address); err != nil {
		return nil, fmt.Errorf("add address: %w", err)
	}
	return address, nil
}

func (s *addressService) Remove(ctx context.Context, user *model.User, addressID uint) error {
	address, err := s.addresses.FindByID(ctx, addressID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("address not found")
		}
		return fmt.Errorf("load address: %w", err)
	}
	if address.UserID != user.ID {
		return apperr.Forbidden("you cannot perform this action")
	}
	if err := s.addresses.Delete(ctx, addressID); err != nil {
		return fmt.Errorf("delete address: %w", err)
	}
	return nil
}

func (s *addressService) List(ctx context.Context, user *model.User) ([]model.Address, error) {
	return s.addresses.ListByUser(ctx, user.ID)
}
