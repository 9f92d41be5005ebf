package services

import (
	"testing"

	"pocketledger/internal/testutil"
)

func TestStartSession(t *testing.T) {
	t.Run("valid_phone", func(t *testing.T) {
		store := testutil.NewTestStore(t)
		svc := NewAuthService(store)

		session, err := svc.StartSession(" +91 98765 43210 ")
		testutil.AssertNoError(t, err)

		if session.Phone != "+91 98765 43210" {
			t.Errorf("expected trimmed phone, got %q", session.Phone)
		}

		current, err := svc.CurrentSession()
		testutil.AssertNoError(t, err)
		if current.Phone != session.Phone {
			t.Errorf("expected current session for %s, got %s", session.Phone, current.Phone)
		}
	})

	t.Run("invalid_phone", func(t *testing.T) {
		svc := NewAuthService(testutil.NewTestStore(t))

		_, err := svc.StartSession("not-a-phone")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestEndSession(t *testing.T) {
	store := testutil.NewTestStore(t)
	svc := NewAuthService(store)
	phone := testutil.CreateTestSession(t, store)
	testutil.CreateTestTransaction(t, store, phone, "", 5, "Food", "2026-01-01")

	testutil.AssertNoError(t, svc.EndSession())

	_, err := svc.CurrentSession()
	testutil.AssertAppError(t, err, "UNAUTHORIZED")

	txs, err := store.GetTransactions(phone)
	testutil.AssertNoError(t, err)
	if len(txs) != 1 {
		t.Errorf("expected user data to survive logout, got %d transactions", len(txs))
	}
}

func TestPIN(t *testing.T) {
	t.Run("set_and_verify", func(t *testing.T) {
		svc := NewAuthService(testutil.NewTestStore(t))
		phone := testutil.NewTestPhone()

		err := svc.VerifyPIN(phone, "1234")
		testutil.AssertAppError(t, err, "PIN_NOT_SET")

		testutil.AssertNoError(t, svc.SetPIN(phone, "1234"))

		has, err := svc.HasPIN(phone)
		testutil.AssertNoError(t, err)
		if !has {
			t.Error("expected HasPIN to be true")
		}

		testutil.AssertNoError(t, svc.VerifyPIN(phone, "1234"))
		testutil.AssertAppError(t, svc.VerifyPIN(phone, "4321"), "INVALID_PIN")
	})

	t.Run("rejects_bad_format", func(t *testing.T) {
		svc := NewAuthService(testutil.NewTestStore(t))

		for _, pin := range []string{"", "123", "1234567", "12a4"} {
			testutil.AssertAppError(t, svc.SetPIN("u1", pin), "INVALID_INPUT")
		}
	})

	t.Run("remove", func(t *testing.T) {
		svc := NewAuthService(testutil.NewTestStore(t))
		testutil.AssertNoError(t, svc.SetPIN("u1", "123456"))

		testutil.AssertNoError(t, svc.RemovePIN("u1"))

		has, err := svc.HasPIN("u1")
		testutil.AssertNoError(t, err)
		if has {
			t.Error("expected PIN to be removed")
		}
	})
}

func TestOnboarding(t *testing.T) {
	svc := NewAuthService(testutil.NewTestStore(t))

	done, err := svc.IsOnboarded()
	testutil.AssertNoError(t, err)
	if done {
		t.Fatal("expected a fresh store not to be onboarded")
	}

	testutil.AssertNoError(t, svc.CompleteOnboarding())

	done, err = svc.IsOnboarded()
	testutil.AssertNoError(t, err)
	if !done {
		t.Error("expected onboarding to be complete")
	}
}

func TestResetUser(t *testing.T) {
	store := testutil.NewTestStore(t)
	svc := NewAuthService(store)
	phone := testutil.NewTestPhone()
	other := testutil.NewTestPhone()

	testutil.CreateTestProfile(t, store, phone)
	testutil.CreateTestTransaction(t, store, phone, "", 5, "Food", "2026-01-01")
	testutil.CreateTestTransaction(t, store, other, "", 7, "Food", "2026-01-01")

	testutil.AssertNoError(t, svc.ResetUser(phone))

	profile, err := store.GetProfile(phone)
	testutil.AssertNoError(t, err)
	if profile != nil {
		t.Error("expected profile to be removed")
	}

	txs, err := store.GetTransactions(other)
	testutil.AssertNoError(t, err)
	if len(txs) != 1 {
		t.Errorf("expected other user's data to survive, got %d transactions", len(txs))
	}
}
