package localstore

import (
	"crypto/subtle"

	"pocketledger/internal/models"
)

// GetSession returns the global auth session, or nil.
func (s *Store) GetSession() (*models.AuthSession, error) {
	var session models.AuthSession
	found, err := s.read(KeySession, &session)
	if err != nil || !found {
		return nil, err
	}
	return &session, nil
}

// SaveSession makes phone the current user.
func (s *Store) SaveSession(phone string) (*models.AuthSession, error) {
	session := models.AuthSession{Phone: phone, Timestamp: s.now().UTC()}
	if err := s.write(KeySession, session); err != nil {
		return nil, err
	}
	return &session, nil
}

// ClearSession forgets the current user.
func (s *Store) ClearSession() error {
	return s.remove(KeySession)
}

// IsAuthenticated reports whether a session with a phone is stored.
func (s *Store) IsAuthenticated() (bool, error) {
	session, err := s.GetSession()
	if err != nil {
		return false, err
	}
	return session != nil && session.Phone != "", nil
}

// CurrentUserID returns the normalized phone of the session, or "" when
// there is no session.
func (s *Store) CurrentUserID() (string, error) {
	session, err := s.GetSession()
	if err != nil || session == nil {
		return "", err
	}
	return NormalizeUserID(session.Phone), nil
}

// GetPIN returns the stored PIN. ok is false when none is set.
func (s *Store) GetPIN(userID string) (pin string, ok bool, err error) {
	key, err := s.Key(KeyPIN, userID)
	if err != nil {
		return "", false, err
	}
	ok, err = s.read(key, &pin)
	return pin, ok, err
}

// SavePIN stores pin as given.
func (s *Store) SavePIN(pin, userID string) error {
	key, err := s.Key(KeyPIN, userID)
	if err != nil {
		return err
	}
	return s.write(key, pin)
}

// HasPIN reports whether a PIN is set.
func (s *Store) HasPIN(userID string) (bool, error) {
	_, ok, err := s.GetPIN(userID)
	return ok, err
}

// VerifyPIN compares pin with the stored one. It is false when no PIN is set.
func (s *Store) VerifyPIN(pin, userID string) (bool, error) {
	stored, ok, err := s.GetPIN(userID)
	if err != nil || !ok {
		return false, err
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(pin)) == 1, nil
}

// RemovePIN deletes the stored PIN.
func (s *Store) RemovePIN(userID string) error {
	key, err := s.Key(KeyPIN, userID)
	if err != nil {
		return err
	}
	return s.remove(key)
}

// IsOnboarded reports the global onboarding flag.
func (s *Store) IsOnboarded() (bool, error) {
	var done bool
	_, err := s.read(KeyOnboarding, &done)
	return done, err
}

// SetOnboarded stores the global onboarding flag.
func (s *Store) SetOnboarded(done bool) error {
	return s.write(KeyOnboarding, done)
}
