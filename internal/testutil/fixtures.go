package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"pocketledger/internal/kv"
	"pocketledger/internal/localstore"
	"pocketledger/internal/models"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// NewTestStore creates a record store over a fresh in-memory backend.
func NewTestStore(t *testing.T) *localstore.Store {
	t.Helper()
	return localstore.New(kv.NewMemoryStore())
}

// NewTestPhone returns a unique phone number in +91 format.
func NewTestPhone() string {
	return fmt.Sprintf("+91%010d", 9000000000+nextID())
}

// CreateTestSession stores a session for a fresh phone and returns it.
func CreateTestSession(t *testing.T, store *localstore.Store) string {
	t.Helper()

	phone := NewTestPhone()
	if _, err := store.SaveSession(phone); err != nil {
		t.Fatalf("failed to create test session: %v", err)
	}
	return phone
}

// CreateTestProfile stores a profile for phone.
func CreateTestProfile(t *testing.T, store *localstore.Store, phone string) *models.UserProfile {
	t.Helper()

	profile, err := store.SaveProfile(models.UserProfile{
		Phone: phone,
		Name:  fmt.Sprintf("User %d", nextID()),
	}, phone)
	if err != nil {
		t.Fatalf("failed to create test profile: %v", err)
	}
	return profile
}

// CreateTestTransaction stores a transaction of the given type, amount and
// category dated date (YYYY-MM-DD).
func CreateTestTransaction(t *testing.T, store *localstore.Store, phone string, txType models.TransactionType, amount float64, category, date string) models.Transaction {
	t.Helper()

	tx, err := store.AddTransaction(models.Transaction{
		Description: fmt.Sprintf("Test Transaction %d", nextID()),
		Amount:      amount,
		Category:    category,
		Date:        date,
		Type:        txType,
	}, phone)
	if err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return tx
}

// CreateTestCategory stores a uniquely named category.
func CreateTestCategory(t *testing.T, store *localstore.Store, phone string) models.Category {
	t.Helper()

	cat, _, err := store.AddCategory(fmt.Sprintf("Test Category %d", nextID()), phone)
	if err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}
	return cat
}

// CreateTestDownload stores a CSV download record.
func CreateTestDownload(t *testing.T, store *localstore.Store, phone string) models.DownloadRecord {
	t.Helper()

	n := nextID()
	rec, err := store.AddDownload(models.DownloadRecord{
		Filename:     fmt.Sprintf("transactions_%d.csv", n),
		Format:       models.DownloadFormatCSV,
		FileContent:  "ID,Date\n",
		FileSize:     8,
		MimeType:     "text/csv",
		DownloadDate: time.Now().UTC(),
	}, phone)
	if err != nil {
		t.Fatalf("failed to create test download: %v", err)
	}
	return rec
}
