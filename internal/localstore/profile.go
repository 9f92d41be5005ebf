package localstore

import "pocketledger/internal/models"

// GetProfile returns the stored profile, or nil when none exists.
func (s *Store) GetProfile(userID string) (*models.UserProfile, error) {
	key, err := s.Key(KeyProfile, userID)
	if err != nil {
		return nil, err
	}

	var profile models.UserProfile
	found, err := s.read(key, &profile)
	if err != nil || !found {
		return nil, err
	}
	return &profile, nil
}

// SaveProfile stores profile, replacing any previous one. CreatedAt is kept
// from the stored profile when there is one; UpdatedAt is always refreshed.
func (s *Store) SaveProfile(profile models.UserProfile, userID string) (*models.UserProfile, error) {
	existing, err := s.GetProfile(userID)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	switch {
	case existing != nil && !existing.CreatedAt.IsZero():
		profile.CreatedAt = existing.CreatedAt
	case profile.CreatedAt.IsZero():
		profile.CreatedAt = now
	}
	profile.UpdatedAt = now

	key, err := s.Key(KeyProfile, userID)
	if err != nil {
		return nil, err
	}
	if err := s.write(key, profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpdateProfile merges patch into the stored profile. It returns nil without
// writing when no profile exists.
func (s *Store) UpdateProfile(patch models.ProfilePatch, userID string) (*models.UserProfile, error) {
	key, err := s.Key(KeyProfile, userID)
	if err != nil {
		return nil, err
	}

	var profile models.UserProfile
	found, err := s.read(key, &profile)
	if err != nil || !found {
		return nil, err
	}

	patch.Apply(&profile)
	profile.UpdatedAt = s.now().UTC()

	if err := s.write(key, profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// DeleteProfile removes the stored profile.
func (s *Store) DeleteProfile(userID string) error {
	key, err := s.Key(KeyProfile, userID)
	if err != nil {
		return err
	}
	return s.remove(key)
}
