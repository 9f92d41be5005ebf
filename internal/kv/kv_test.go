package kv_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"pocketledger/internal/kv"
	"pocketledger/internal/testutil"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func eachBackend(t *testing.T, fn func(t *testing.T, s kv.Store)) {
	t.Run("memory", func(t *testing.T) {
		fn(t, kv.NewMemoryStore())
	})
	t.Run("gorm_sqlite", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		fn(t, kv.NewGormStore(db))
	})
}

func TestGetMissing(t *testing.T) {
	eachBackend(t, func(t *testing.T, s kv.Store) {
		v, ok, err := s.GetItem("nope")
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Empty(t, v)
	})
}

func TestSetGetOverwrite(t *testing.T) {
	eachBackend(t, func(t *testing.T, s kv.Store) {
		require.NoError(t, s.SetItem("k", `{"a":1}`))
		require.NoError(t, s.SetItem("k", `{"a":2}`))

		v, ok, err := s.GetItem("k")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, `{"a":2}`, v)
	})
}

func TestRemoveAndKeys(t *testing.T) {
	eachBackend(t, func(t *testing.T, s kv.Store) {
		require.NoError(t, s.SetItem("b", "2"))
		require.NoError(t, s.SetItem("a", "1"))
		require.NoError(t, s.SetItem("c", "3"))

		require.NoError(t, s.RemoveItem("b"))
		require.NoError(t, s.RemoveItem("missing"))

		keys, err := s.Keys()
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "c"}, keys)
	})
}

func TestClear(t *testing.T) {
	eachBackend(t, func(t *testing.T, s kv.Store) {
		require.NoError(t, s.SetItem("a", "1"))
		require.NoError(t, s.SetItem("b", "2"))
		require.NoError(t, s.Clear())

		keys, err := s.Keys()
		require.NoError(t, err)
		assert.Empty(t, keys)
	})
}
