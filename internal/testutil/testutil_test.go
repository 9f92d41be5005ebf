package testutil_test

import (
	"testing"

	"pocketledger/internal/errors"
	"pocketledger/internal/models"
	"pocketledger/internal/testutil"
)

func TestSetupTestDB(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	var count int64
	if err := db.Table("kv_entries").Count(&count).Error; err != nil {
		t.Errorf("table kv_entries should exist after migration: %v", err)
	}
}

func TestFixtures(t *testing.T) {
	store := testutil.NewTestStore(t)

	phone := testutil.CreateTestSession(t, store)
	if phone == "" {
		t.Fatal("expected a phone number")
	}

	profile := testutil.CreateTestProfile(t, store, phone)
	if profile.Phone != phone {
		t.Errorf("expected profile phone %s, got %s", phone, profile.Phone)
	}

	tx := testutil.CreateTestTransaction(t, store, phone, models.TransactionTypeDebit, 12.5, "Food", "2026-01-01")
	if tx.ID == "" {
		t.Error("expected transaction ID to be assigned")
	}

	cat := testutil.CreateTestCategory(t, store, phone)
	if cat.Name == "" {
		t.Error("expected category name")
	}

	rec := testutil.CreateTestDownload(t, store, phone)
	if rec.ID == "" {
		t.Error("expected download ID to be assigned")
	}
}

func TestAssertAppError(t *testing.T) {
	err := errors.WithMessage(errors.ErrTransactionNotFound, "custom message")
	testutil.AssertAppError(t, err, "TRANSACTION_NOT_FOUND")
}

func TestAssertNoError(t *testing.T) {
	testutil.AssertNoError(t, nil)
}
