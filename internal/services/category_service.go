package services

import (
	"strings"

	apperrors "pocketledger/internal/errors"
	"pocketledger/internal/localstore"
	"pocketledger/internal/models"
)

// categoryService handles category-related business logic.
type categoryService struct {
	store *localstore.Store
}

// NewCategoryService creates a new CategoryServicer.
func NewCategoryService(store *localstore.Store) CategoryServicer {
	return &categoryService{store: store}
}

// ListCategories returns the user's categories.
func (s *categoryService) ListCategories(phone string) ([]models.Category, error) {
	return s.store.GetCategories(phone)
}

// AddCategory adds a category unless one with the same name exists, in which
// case the existing one is returned with created=false.
func (s *categoryService) AddCategory(phone, name string) (*models.Category, bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, false, apperrors.WithMessage(apperrors.ErrInvalidInput, "category name is required")
	}
	if len(name) > 100 {
		return nil, false, apperrors.WithMessage(apperrors.ErrInvalidInput, "category name is too long")
	}

	cat, created, err := s.store.AddCategory(name, phone)
	if err != nil {
		return nil, false, err
	}
	return &cat, created, nil
}

// DeleteCategory removes a category by name. Transactions keep their
// category text.
func (s *categoryService) DeleteCategory(phone, name string) error {
	removed, err := s.store.DeleteCategory(name, phone)
	if err != nil {
		return err
	}
	if !removed {
		return apperrors.ErrCategoryNotFound
	}
	return nil
}
