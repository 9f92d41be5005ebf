package services

import (
	"strings"

	apperrors "pocketledger/internal/errors"
	"pocketledger/internal/localstore"
	"pocketledger/internal/logger"
	"pocketledger/internal/models"
	"pocketledger/internal/validator"
)

// authService handles session, PIN and onboarding state.
type authService struct {
	store *localstore.Store
}

// NewAuthService creates a new AuthServicer.
func NewAuthService(store *localstore.Store) AuthServicer {
	return &authService{store: store}
}

// StartSession makes phone the current user of the store.
func (s *authService) StartSession(phone string) (*models.AuthSession, error) {
	phone = strings.TrimSpace(phone)
	if !validator.IsPhone(phone) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "a valid phone number is required")
	}

	session, err := s.store.SaveSession(phone)
	if err != nil {
		return nil, err
	}

	logger.Get().Infow("session started", "user", localstore.NormalizeUserID(phone))
	return session, nil
}

// EndSession clears the stored session. User data is kept.
func (s *authService) EndSession() error {
	return s.store.ClearSession()
}

// CurrentSession returns the stored session or ErrUnauthorized.
func (s *authService) CurrentSession() (*models.AuthSession, error) {
	session, err := s.store.GetSession()
	if err != nil {
		return nil, err
	}
	if session == nil || session.Phone == "" {
		return nil, apperrors.ErrUnauthorized
	}
	return session, nil
}

// SetPIN stores a 4 to 6 digit PIN for the user.
func (s *authService) SetPIN(phone, pin string) error {
	if !validator.IsPIN(pin) {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "PIN must be 4 to 6 digits")
	}
	return s.store.SavePIN(pin, phone)
}

// VerifyPIN checks pin against the stored one.
func (s *authService) VerifyPIN(phone, pin string) error {
	has, err := s.store.HasPIN(phone)
	if err != nil {
		return err
	}
	if !has {
		return apperrors.ErrPINNotSet
	}

	ok, err := s.store.VerifyPIN(pin, phone)
	if err != nil {
		return err
	}
	if !ok {
		logger.Get().Warnw("PIN verification failed", "user", localstore.NormalizeUserID(phone))
		return apperrors.ErrInvalidPIN
	}
	return nil
}

// HasPIN reports whether the user has a PIN.
func (s *authService) HasPIN(phone string) (bool, error) {
	return s.store.HasPIN(phone)
}

// RemovePIN deletes the user's PIN.
func (s *authService) RemovePIN(phone string) error {
	return s.store.RemovePIN(phone)
}

// IsOnboarded reports the global onboarding flag.
func (s *authService) IsOnboarded() (bool, error) {
	return s.store.IsOnboarded()
}

// CompleteOnboarding sets the global onboarding flag.
func (s *authService) CompleteOnboarding() error {
	return s.store.SetOnboarded(true)
}

// ResetUser wipes every per-user record of phone.
func (s *authService) ResetUser(phone string) error {
	if err := s.store.ClearUserData(phone); err != nil {
		return err
	}
	logger.Get().Infow("user data cleared", "user", localstore.NormalizeUserID(phone))
	return nil
}
