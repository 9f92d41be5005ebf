package localstore

import (
	"strings"

	apperrors "pocketledger/internal/errors"
	"pocketledger/internal/models"
)

// GetCategories returns the user's categories in insertion order.
func (s *Store) GetCategories(userID string) ([]models.Category, error) {
	cats, _, err := readList[models.Category](s, KeyCategories, userID)
	return cats, err
}

// SaveCategories replaces the whole collection.
func (s *Store) SaveCategories(cats []models.Category, userID string) error {
	key, err := s.Key(KeyCategories, userID)
	if err != nil {
		return err
	}
	if cats == nil {
		cats = []models.Category{}
	}
	return s.write(key, cats)
}

// AddCategory stores a category named name unless one with the same name,
// compared without case, already exists. It returns the stored category and
// whether it was newly added.
func (s *Store) AddCategory(name, userID string) (models.Category, bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Category{}, false, apperrors.WithMessage(apperrors.ErrInvalidInput, "category name is required")
	}

	cats, key, err := readList[models.Category](s, KeyCategories, userID)
	if err != nil {
		return models.Category{}, false, err
	}

	for _, c := range cats {
		if strings.EqualFold(c.Name, name) {
			return c, false, nil
		}
	}

	cat := models.Category{Name: name, CreatedAt: s.now().UTC()}
	if err := s.write(key, append(cats, cat)); err != nil {
		return models.Category{}, false, err
	}
	return cat, true, nil
}

// DeleteCategory removes the category named name, ignoring case, and reports
// whether one was removed. Transactions that reference it are not touched.
func (s *Store) DeleteCategory(name, userID string) (bool, error) {
	cats, key, err := readList[models.Category](s, KeyCategories, userID)
	if err != nil {
		return false, err
	}

	kept := cats[:0]
	for _, c := range cats {
		if !strings.EqualFold(c.Name, name) {
			kept = append(kept, c)
		}
	}
	if len(kept) == len(cats) {
		return false, nil
	}
	return true, s.write(key, kept)
}
