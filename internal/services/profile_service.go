package services

import (
	"strings"

	apperrors "pocketledger/internal/errors"
	"pocketledger/internal/localstore"
	"pocketledger/internal/models"
	"pocketledger/internal/validator"
)

// profileService handles the user profile.
type profileService struct {
	store *localstore.Store
}

// NewProfileService creates a new ProfileServicer.
func NewProfileService(store *localstore.Store) ProfileServicer {
	return &profileService{store: store}
}

// GetProfile returns the profile of phone.
func (s *profileService) GetProfile(phone string) (*models.UserProfile, error) {
	profile, err := s.store.GetProfile(phone)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, apperrors.ErrProfileNotFound
	}
	return profile, nil
}

// SaveProfile creates or replaces the profile of phone.
func (s *profileService) SaveProfile(phone string, input ProfileInput) (*models.UserProfile, error) {
	if phone == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "phone is required")
	}
	if err := validateEmail(input.Email); err != nil {
		return nil, err
	}

	return s.store.SaveProfile(models.UserProfile{
		Phone:    phone,
		Name:     strings.TrimSpace(input.Name),
		FullName: strings.TrimSpace(input.FullName),
		Gender:   input.Gender,
		Email:    strings.TrimSpace(input.Email),
	}, phone)
}

// UpdateProfile merges patch into the existing profile.
func (s *profileService) UpdateProfile(phone string, patch models.ProfilePatch) (*models.UserProfile, error) {
	if patch.Email != nil {
		if err := validateEmail(*patch.Email); err != nil {
			return nil, err
		}
	}

	profile, err := s.store.UpdateProfile(patch, phone)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, apperrors.ErrProfileNotFound
	}
	return profile, nil
}

func validateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil
	}
	if !validator.IsEmail(email) {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid email address")
	}
	return nil
}
