// Command ledgerctl manages the PocketLedger record store from a terminal. It
// opens the same backend as the API server and scopes records by --user or,
// when omitted, by the stored session.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"pocketledger/internal/config"
	"pocketledger/internal/database"
	"pocketledger/internal/localstore"
	"pocketledger/internal/logger"
	"pocketledger/internal/services"
)

// cli holds the state shared by every subcommand.
type cli struct {
	user        string
	storeDriver string
	sqlitePath  string

	// openStore is replaced in tests.
	openStore func(cfg *config.Config) (*localstore.Store, func() error, error)

	store   *localstore.Store
	closeFn func() error

	auth         services.AuthServicer
	transactions services.TransactionServicer
	categories   services.CategoryServicer
	exports      services.ExportServicer
}

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := newRootCmd(&cli{openStore: openConfiguredStore}).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(c *cli) *cobra.Command {
	root := &cobra.Command{
		Use:           "ledgerctl",
		Short:         "Manage PocketLedger records from the command line",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.open()
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return c.close()
		},
	}

	root.PersistentFlags().StringVarP(&c.user, "user", "u", "", "phone of the user to act for (default: current session)")
	root.PersistentFlags().StringVar(&c.storeDriver, "store", "", "store driver: sqlite, postgres or memory (default: STORE_DRIVER)")
	root.PersistentFlags().StringVar(&c.sqlitePath, "sqlite-path", "", "SQLite file (default: SQLITE_PATH)")

	root.AddCommand(
		newLoginCmd(c),
		newLogoutCmd(c),
		newWhoamiCmd(c),
		newTxCmd(c),
		newCategoryCmd(c),
		newExportCmd(c),
		newDownloadsCmd(c),
	)
	return root
}

func (c *cli) open() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if c.storeDriver != "" {
		cfg.StoreDriver = c.storeDriver
	}
	if c.sqlitePath != "" {
		cfg.SQLitePath = c.sqlitePath
	}

	store, closeFn, err := c.openStore(cfg)
	if err != nil {
		return err
	}

	c.store = store
	c.closeFn = closeFn
	c.auth = services.NewAuthService(store)
	c.transactions = services.NewTransactionService(store)
	c.categories = services.NewCategoryService(store)
	c.exports = services.NewExportService(store)
	return nil
}

func (c *cli) close() error {
	if c.closeFn == nil {
		return nil
	}
	return c.closeFn()
}

func openConfiguredStore(cfg *config.Config) (*localstore.Store, func() error, error) {
	manager, err := database.NewManager(cfg)
	if err != nil {
		return nil, nil, err
	}
	if err := manager.Migrate(); err != nil {
		_ = manager.Close()
		return nil, nil, err
	}
	return localstore.New(manager.Store()), manager.Close, nil
}
