package services

import (
	"testing"

	"pocketledger/internal/models"
	"pocketledger/internal/testutil"
)

func TestGetProfile(t *testing.T) {
	store := testutil.NewTestStore(t)
	svc := NewProfileService(store)
	phone := testutil.NewTestPhone()

	_, err := svc.GetProfile(phone)
	testutil.AssertAppError(t, err, "PROFILE_NOT_FOUND")

	created := testutil.CreateTestProfile(t, store, phone)

	profile, err := svc.GetProfile(phone)
	testutil.AssertNoError(t, err)
	if profile.Name != created.Name {
		t.Errorf("expected name %q, got %q", created.Name, profile.Name)
	}
}

func TestSaveProfile(t *testing.T) {
	t.Run("stamps_timestamps", func(t *testing.T) {
		svc := NewProfileService(testutil.NewTestStore(t))
		phone := testutil.NewTestPhone()

		profile, err := svc.SaveProfile(phone, ProfileInput{Name: " Asha ", Email: "asha@example.com"})
		testutil.AssertNoError(t, err)

		if profile.Phone != phone || profile.Name != "Asha" {
			t.Errorf("unexpected profile %+v", profile)
		}
		if profile.CreatedAt.IsZero() || profile.UpdatedAt.IsZero() {
			t.Error("expected timestamps to be set")
		}
	})

	t.Run("invalid_email", func(t *testing.T) {
		svc := NewProfileService(testutil.NewTestStore(t))

		_, err := svc.SaveProfile("u1", ProfileInput{Email: "nope"})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("missing_phone", func(t *testing.T) {
		svc := NewProfileService(testutil.NewTestStore(t))

		_, err := svc.SaveProfile("", ProfileInput{Name: "x"})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestUpdateProfile(t *testing.T) {
	t.Run("merges_patch", func(t *testing.T) {
		store := testutil.NewTestStore(t)
		svc := NewProfileService(store)
		phone := testutil.NewTestPhone()
		created := testutil.CreateTestProfile(t, store, phone)

		gender := "female"
		updated, err := svc.UpdateProfile(phone, models.ProfilePatch{Gender: &gender})
		testutil.AssertNoError(t, err)

		if updated.Gender != "female" || updated.Name != created.Name {
			t.Errorf("unexpected merge result %+v", updated)
		}
	})

	t.Run("absent_profile", func(t *testing.T) {
		svc := NewProfileService(testutil.NewTestStore(t))
		name := "x"

		_, err := svc.UpdateProfile("u1", models.ProfilePatch{Name: &name})
		testutil.AssertAppError(t, err, "PROFILE_NOT_FOUND")
	})
}
