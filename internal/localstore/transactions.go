package localstore

import (
	"strings"
	"time"

	"pocketledger/internal/models"
	"pocketledger/internal/uuid"
)

// GetTransactions returns the user's transactions in stored order.
func (s *Store) GetTransactions(userID string) ([]models.Transaction, error) {
	txs, _, err := readList[models.Transaction](s, KeyTransactions, userID)
	return txs, err
}

// SaveTransactions replaces the whole collection.
func (s *Store) SaveTransactions(txs []models.Transaction, userID string) error {
	key, err := s.Key(KeyTransactions, userID)
	if err != nil {
		return err
	}
	if txs == nil {
		txs = []models.Transaction{}
	}
	return s.write(key, txs)
}

// AddTransaction appends tx, or replaces the stored transaction with the
// same ID. A transaction without an ID gets a fresh one.
func (s *Store) AddTransaction(tx models.Transaction, userID string) (models.Transaction, error) {
	txs, key, err := readList[models.Transaction](s, KeyTransactions, userID)
	if err != nil {
		return tx, err
	}

	if tx.ID == "" {
		tx.ID = uuid.New()
	}

	replaced := false
	for i := range txs {
		if txs[i].ID == tx.ID {
			txs[i] = tx
			replaced = true
			break
		}
	}
	if !replaced {
		txs = append(txs, tx)
	}

	return tx, s.write(key, txs)
}

// GetTransaction returns the transaction with id, or nil.
func (s *Store) GetTransaction(id, userID string) (*models.Transaction, error) {
	txs, err := s.GetTransactions(userID)
	if err != nil {
		return nil, err
	}
	for i := range txs {
		if txs[i].ID == id {
			return &txs[i], nil
		}
	}
	return nil, nil
}

// UpdateTransaction merges patch into the transaction with id and rewrites
// the collection. It returns nil, and writes nothing, when id is unknown.
func (s *Store) UpdateTransaction(id string, patch models.TransactionPatch, userID string) (*models.Transaction, error) {
	txs, key, err := readList[models.Transaction](s, KeyTransactions, userID)
	if err != nil {
		return nil, err
	}

	for i := range txs {
		if txs[i].ID != id {
			continue
		}
		patch.Apply(&txs[i])
		if err := s.write(key, txs); err != nil {
			return nil, err
		}
		updated := txs[i]
		return &updated, nil
	}
	return nil, nil
}

// DeleteTransaction removes the transaction with id and reports whether one
// was removed. An unknown id leaves the collection untouched.
func (s *Store) DeleteTransaction(id, userID string) (bool, error) {
	txs, key, err := readList[models.Transaction](s, KeyTransactions, userID)
	if err != nil {
		return false, err
	}

	kept := txs[:0]
	for _, tx := range txs {
		if tx.ID != id {
			kept = append(kept, tx)
		}
	}
	if len(kept) == len(txs) {
		return false, nil
	}
	return true, s.write(key, kept)
}

// ClearTransactions removes the whole collection.
func (s *Store) ClearTransactions(userID string) error {
	key, err := s.Key(KeyTransactions, userID)
	if err != nil {
		return err
	}
	return s.remove(key)
}

// GetTransactionsByCategory returns the transactions whose category matches,
// ignoring case.
func (s *Store) GetTransactionsByCategory(category, userID string) ([]models.Transaction, error) {
	txs, err := s.GetTransactions(userID)
	if err != nil {
		return nil, err
	}

	matched := []models.Transaction{}
	for _, tx := range txs {
		if strings.EqualFold(tx.Category, category) {
			matched = append(matched, tx)
		}
	}
	return matched, nil
}

// GetTransactionsByDateRange returns the transactions dated within
// [start, end]. Transactions with an unparseable date never match.
func (s *Store) GetTransactionsByDateRange(start, end time.Time, userID string) ([]models.Transaction, error) {
	txs, err := s.GetTransactions(userID)
	if err != nil {
		return nil, err
	}

	matched := []models.Transaction{}
	for _, tx := range txs {
		at, err := tx.Time()
		if err != nil {
			continue
		}
		if !at.Before(start) && !at.After(end) {
			matched = append(matched, tx)
		}
	}
	return matched, nil
}
