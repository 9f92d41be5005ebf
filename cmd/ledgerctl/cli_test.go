package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pocketledger/internal/config"
	"pocketledger/internal/kv"
	"pocketledger/internal/localstore"
	"pocketledger/internal/logger"
)

func init() {
	logger.Init("test")
}

// harness runs commands against one shared in-memory store.
type harness struct {
	backend *kv.MemoryStore
}

func newHarness() *harness {
	return &harness{backend: kv.NewMemoryStore()}
}

func (h *harness) run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	c := &cli{openStore: func(*config.Config) (*localstore.Store, func() error, error) {
		return localstore.New(h.backend), nil, nil
	}}
	root := newRootCmd(c)

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)

	err := root.Execute()
	return out.String(), err
}

func TestSessionCommands(t *testing.T) {
	h := newHarness()

	out, err := h.run(t, "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "Not logged in")

	out, err = h.run(t, "login", "+911234567890")
	require.NoError(t, err)
	assert.Contains(t, out, "Logged in as +911234567890")

	out, err = h.run(t, "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "+911234567890")

	_, err = h.run(t, "logout")
	require.NoError(t, err)

	out, err = h.run(t, "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "Not logged in")
}

func TestTransactionCommands(t *testing.T) {
	h := newHarness()
	_, err := h.run(t, "login", "+911234567890")
	require.NoError(t, err)

	out, err := h.run(t, "tx", "add", "Groceries", "42.50", "--category", "Food", "--date", "2026-03-02")
	require.NoError(t, err)
	id := strings.TrimSpace(strings.TrimPrefix(out, "Added "))
	require.NotEmpty(t, id)

	_, err = h.run(t, "tx", "add", "Salary", "1000", "--type", "credit", "--date", "2026-03-01")
	require.NoError(t, err)

	out, err = h.run(t, "tx", "list", "--category", "food")
	require.NoError(t, err)
	assert.Contains(t, out, "Groceries")
	assert.NotContains(t, out, "Salary")
	assert.Contains(t, out, "1 of 1 transactions")

	// Records live under the session user.
	store := localstore.New(h.backend)
	txs, err := store.GetTransactions("911234567890")
	require.NoError(t, err)
	assert.Len(t, txs, 2)

	_, err = h.run(t, "tx", "rm", id)
	require.NoError(t, err)

	_, err = h.run(t, "tx", "rm", id)
	assert.Error(t, err)

	_, err = h.run(t, "tx", "add", "Bad", "abc")
	assert.Error(t, err)

	_, err = h.run(t, "tx", "list", "--type", "refund")
	assert.Error(t, err)
}

func TestUserFlagOverridesSession(t *testing.T) {
	h := newHarness()
	_, err := h.run(t, "login", "+911111111111")
	require.NoError(t, err)

	_, err = h.run(t, "--user", "+922222222222", "category", "add", "Travel")
	require.NoError(t, err)

	out, err := h.run(t, "category", "list")
	require.NoError(t, err)
	assert.NotContains(t, out, "Travel")

	out, err = h.run(t, "-u", "+922222222222", "category", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Travel")
}

func TestCategoryCommands(t *testing.T) {
	h := newHarness()
	_, err := h.run(t, "login", "+911234567890")
	require.NoError(t, err)

	out, err := h.run(t, "category", "add", "Travel")
	require.NoError(t, err)
	assert.Contains(t, out, `Added category "Travel"`)

	out, err = h.run(t, "category", "add", "travel")
	require.NoError(t, err)
	assert.Contains(t, out, "already exists")

	_, err = h.run(t, "category", "rm", "TRAVEL")
	require.NoError(t, err)

	out, err = h.run(t, "category", "list")
	require.NoError(t, err)
	assert.Empty(t, strings.TrimSpace(out))
}

func TestExportCommand(t *testing.T) {
	h := newHarness()
	_, err := h.run(t, "login", "+911234567890")
	require.NoError(t, err)
	_, err = h.run(t, "tx", "add", "Groceries", "42.5", "--date", "2026-03-02")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "out.csv")
	out, err := h.run(t, "export", "--format", "csv", "--out", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote 1 transactions")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "ID,Date,Description"))
	assert.Contains(t, string(data), "42.50")

	out, err = h.run(t, "downloads", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "csv")

	_, err = h.run(t, "export", "--format", "pdf", "--out", path)
	assert.Error(t, err)
}

func TestTxListLimitBounds(t *testing.T) {
	h := newHarness()
	_, err := h.run(t, "login", "+911234567890")
	require.NoError(t, err)
	_, err = h.run(t, "tx", "add", "Groceries", "42.5", "--date", "2026-03-02")
	require.NoError(t, err)

	for _, limit := range []string{"-1", "0", "101"} {
		_, err := h.run(t, "tx", "list", "--limit", limit)
		assert.Error(t, err, "--limit %s", limit)
	}

	out, err := h.run(t, "tx", "list", "--limit", "100", "--to", "2026-03-02")
	require.NoError(t, err)
	assert.Contains(t, out, "1 of 1 transactions", "a bare --to date covers the whole day")
}

func TestPunctuationOnlyUserRejected(t *testing.T) {
	h := newHarness()
	_, err := h.run(t, "login", "+911234567890")
	require.NoError(t, err)

	_, err = h.run(t, "--user", "+", "category", "add", "Travel")
	assert.Error(t, err)

	out, err := h.run(t, "category", "list")
	require.NoError(t, err)
	assert.NotContains(t, out, "Travel")
}
