// Package localstore is the data-access layer of the client: namespaced,
// JSON-encoded CRUD for profiles, transactions, categories, PINs, download
// history, the auth session and the onboarding flag, on top of a kv.Store.
//
// Every per-user record lives under "<base>_<user>", where <user> is the
// phone number with '+' and punctuation stripped. Callers pass the user
// explicitly; an empty user falls back to the phone of the stored session,
// and failing that to the bare base key.
//
// Each mutation reads the whole collection, changes it in memory and writes
// it back. Nothing serializes that sequence, so concurrent writers to the
// same key race and the last write wins.
package localstore

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	apperrors "pocketledger/internal/errors"
	"pocketledger/internal/kv"
)

// Base key names of the persisted layout.
const (
	KeyProfile      = "user_profile"
	KeyTransactions = "transactions"
	KeyCategories   = "categories"
	KeyPIN          = "user_pin"
	KeyDownloads    = "downloads"

	// Global keys, never namespaced.
	KeySession    = "auth_session"
	KeyOnboarding = "onboarding_complete"
)

// MaxDownloads bounds the download history of a user.
const MaxDownloads = 50

// namespacedKeys lists the base keys owned by a single user.
var namespacedKeys = []string{KeyProfile, KeyTransactions, KeyCategories, KeyPIN, KeyDownloads}

// Store is the record store. A Store over a nil kv.Store behaves like a
// client without persistent storage: reads return empty results and writes
// do nothing.
type Store struct {
	kv  kv.Store
	now func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source used for record timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New creates a record store over backend. backend may be nil.
func New(backend kv.Store, opts ...Option) *Store {
	s := &Store{kv: backend, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Available reports whether a persistent backend is attached.
func (s *Store) Available() bool {
	return s.kv != nil
}

// NormalizeUserID strips '+' and phone punctuation from a user identifier.
func NormalizeUserID(id string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '+', ' ', '-', '(', ')', '.':
			return -1
		}
		return r
	}, strings.TrimSpace(id))
}

// Key derives the storage key for base. Resolution order: the explicit
// userID, then the session phone, then the bare base key. An explicit userID
// with nothing left after normalization is rejected.
func (s *Store) Key(base, userID string) (string, error) {
	if strings.TrimSpace(userID) != "" {
		id := NormalizeUserID(userID)
		if id == "" {
			return "", apperrors.WithMessage(apperrors.ErrInvalidInput, fmt.Sprintf("invalid user id %q", userID))
		}
		return base + "_" + id, nil
	}

	current, err := s.CurrentUserID()
	if err != nil {
		return "", err
	}
	if current != "" {
		return base + "_" + current, nil
	}
	return base, nil
}

// read decodes the value under key into dst. It reports false when the key
// is absent or no backend is attached.
func (s *Store) read(key string, dst any) (bool, error) {
	if s.kv == nil {
		return false, nil
	}

	raw, ok, err := s.kv.GetItem(key)
	if err != nil {
		return false, apperrors.Wrap(apperrors.ErrStorage, err)
	}
	if !ok {
		return false, nil
	}

	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return false, apperrors.Wrap(apperrors.ErrCorruptRecord, fmt.Errorf("key %q: %w", key, err))
	}
	return true, nil
}

func (s *Store) write(key string, v any) error {
	if s.kv == nil {
		return nil
	}

	data, err := json.Marshal(v)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if err := s.kv.SetItem(key, string(data)); err != nil {
		return apperrors.Wrap(apperrors.ErrStorage, err)
	}
	return nil
}

func (s *Store) remove(key string) error {
	if s.kv == nil {
		return nil
	}
	if err := s.kv.RemoveItem(key); err != nil {
		return apperrors.Wrap(apperrors.ErrStorage, err)
	}
	return nil
}

// readList loads the collection stored under base for userID. An absent key
// yields an empty, non-nil slice.
func readList[T any](s *Store, base, userID string) ([]T, string, error) {
	key, err := s.Key(base, userID)
	if err != nil {
		return nil, "", err
	}

	var items []T
	if _, err := s.read(key, &items); err != nil {
		return nil, key, err
	}
	if items == nil {
		items = []T{}
	}
	return items, key, nil
}

// ClearUserData removes every per-user record of userID. The session and
// the onboarding flag are left alone.
func (s *Store) ClearUserData(userID string) error {
	for _, base := range namespacedKeys {
		key, err := s.Key(base, userID)
		if err != nil {
			return err
		}
		if err := s.remove(key); err != nil {
			return err
		}
	}
	return nil
}
