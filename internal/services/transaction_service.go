package services

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	apperrors "pocketledger/internal/errors"
	"pocketledger/internal/localstore"
	"pocketledger/internal/models"
	"pocketledger/internal/pagination"
)

// DefaultCategory labels transactions added without a category.
const DefaultCategory = "Other"

// transactionService handles transaction-related business logic.
type transactionService struct {
	store *localstore.Store
	now   func() time.Time
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(store *localstore.Store) TransactionServicer {
	return &transactionService{store: store, now: time.Now}
}

// ListTransactions returns the filtered transactions of phone, newest first.
func (s *transactionService) ListTransactions(phone string, filter TransactionFilter, page pagination.PageRequest) (*pagination.PageResponse[models.Transaction], error) {
	txs, err := filterTransactions(s.store, phone, filter)
	if err != nil {
		return nil, err
	}

	sortByDateDesc(txs)
	result := pagination.Paginate(txs, page)
	return &result, nil
}

// GetTransaction returns a single transaction.
func (s *transactionService) GetTransaction(phone, id string) (*models.Transaction, error) {
	tx, err := s.store.GetTransaction(id, phone)
	if err != nil {
		return nil, err
	}
	if tx == nil {
		return nil, apperrors.ErrTransactionNotFound
	}
	return tx, nil
}

// AddTransaction validates input and appends a new transaction.
func (s *transactionService) AddTransaction(phone string, input TransactionInput) (*models.Transaction, error) {
	description := strings.TrimSpace(input.Description)
	if description == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "description is required")
	}
	if input.Amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}
	if err := validateType(input.Type); err != nil {
		return nil, err
	}

	date := strings.TrimSpace(input.Date)
	if date == "" {
		date = s.now().UTC().Format(time.RFC3339)
	} else if _, err := models.ParseDate(date); err != nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "date must be ISO-8601")
	}

	category := strings.TrimSpace(input.Category)
	if category == "" {
		category = DefaultCategory
	}

	tx, err := s.store.AddTransaction(models.Transaction{
		Description: description,
		Amount:      input.Amount,
		Category:    category,
		Date:        date,
		Recipient:   strings.TrimSpace(input.Recipient),
		Type:        input.Type,
	}, phone)
	if err != nil {
		return nil, err
	}
	return &tx, nil
}

// UpdateTransaction applies patch to the transaction with id.
func (s *transactionService) UpdateTransaction(phone, id string, patch models.TransactionPatch) (*models.Transaction, error) {
	if patch.Amount != nil && *patch.Amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}
	if patch.Type != nil {
		if err := validateType(*patch.Type); err != nil {
			return nil, err
		}
	}
	if patch.Date != nil {
		if _, err := models.ParseDate(*patch.Date); err != nil {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "date must be ISO-8601")
		}
	}
	if patch.Description != nil && strings.TrimSpace(*patch.Description) == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "description cannot be empty")
	}

	tx, err := s.store.UpdateTransaction(id, patch, phone)
	if err != nil {
		return nil, err
	}
	if tx == nil {
		return nil, apperrors.ErrTransactionNotFound
	}
	return tx, nil
}

// DeleteTransaction removes the transaction with id.
func (s *transactionService) DeleteTransaction(phone, id string) error {
	removed, err := s.store.DeleteTransaction(id, phone)
	if err != nil {
		return err
	}
	if !removed {
		return apperrors.ErrTransactionNotFound
	}
	return nil
}

// Summarize totals the filtered transactions per category. Amounts are
// summed as decimals; transactions without a type count as debits.
func (s *transactionService) Summarize(phone string, filter TransactionFilter) (*TransactionSummary, error) {
	txs, err := filterTransactions(s.store, phone, filter)
	if err != nil {
		return nil, err
	}

	summary := &TransactionSummary{
		TotalDebit:  decimal.Zero,
		TotalCredit: decimal.Zero,
		Categories:  []CategorySummary{},
	}
	byCategory := make(map[string]*CategorySummary)
	var order []string

	for _, tx := range txs {
		key := strings.ToLower(tx.Category)
		cs, ok := byCategory[key]
		if !ok {
			cs = &CategorySummary{Category: tx.Category, TotalDebit: decimal.Zero, TotalCredit: decimal.Zero}
			byCategory[key] = cs
			order = append(order, key)
		}

		amount := decimal.NewFromFloat(tx.Amount)
		cs.TransactionCount++
		if tx.Type == models.TransactionTypeCredit {
			cs.TotalCredit = cs.TotalCredit.Add(amount)
			summary.TotalCredit = summary.TotalCredit.Add(amount)
		} else {
			cs.TotalDebit = cs.TotalDebit.Add(amount)
			summary.TotalDebit = summary.TotalDebit.Add(amount)
		}
	}

	for _, key := range order {
		cs := byCategory[key]
		cs.Net = cs.TotalCredit.Sub(cs.TotalDebit)
		summary.Categories = append(summary.Categories, *cs)
	}
	sort.SliceStable(summary.Categories, func(i, j int) bool {
		return summary.Categories[i].TotalDebit.GreaterThan(summary.Categories[j].TotalDebit)
	})

	summary.TransactionCount = len(txs)
	summary.Net = summary.TotalCredit.Sub(summary.TotalDebit)
	return summary, nil
}

// filterTransactions loads the user's transactions and applies filter. The
// date bounds go through the store's range read.
func filterTransactions(store *localstore.Store, phone string, filter TransactionFilter) ([]models.Transaction, error) {
	var (
		txs []models.Transaction
		err error
	)

	switch {
	case filter.FromDate != nil || filter.ToDate != nil:
		start := time.Time{}
		end := time.Date(9999, 12, 31, 23, 59, 59, 0, time.UTC)
		if filter.FromDate != nil {
			start = *filter.FromDate
		}
		if filter.ToDate != nil {
			end = *filter.ToDate
		}
		txs, err = store.GetTransactionsByDateRange(start, end, phone)
	case filter.Category != "":
		txs, err = store.GetTransactionsByCategory(filter.Category, phone)
	default:
		txs, err = store.GetTransactions(phone)
	}
	if err != nil {
		return nil, err
	}

	filtered := txs[:0]
	for _, tx := range txs {
		if filter.Category != "" && !strings.EqualFold(tx.Category, filter.Category) {
			continue
		}
		if filter.Type != nil && tx.Type != *filter.Type {
			continue
		}
		filtered = append(filtered, tx)
	}
	return filtered, nil
}

// sortByDateDesc orders transactions newest first; unparseable dates sink to
// the end in their stored order.
func sortByDateDesc(txs []models.Transaction) {
	sort.SliceStable(txs, func(i, j int) bool {
		ti, errI := txs[i].Time()
		tj, errJ := txs[j].Time()
		switch {
		case errI != nil:
			return false
		case errJ != nil:
			return true
		}
		return ti.After(tj)
	})
}

func validateType(t models.TransactionType) error {
	switch t {
	case "", models.TransactionTypeDebit, models.TransactionTypeCredit:
		return nil
	}
	return apperrors.WithMessage(apperrors.ErrInvalidInput, "type must be debit or credit")
}
