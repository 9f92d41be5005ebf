package main

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"pocketledger/internal/models"
	"pocketledger/internal/pagination"
	"pocketledger/internal/services"
)

func newTxCmd(c *cli) *cobra.Command {
	tx := &cobra.Command{
		Use:   "tx",
		Short: "List, add and remove transactions",
	}
	tx.AddCommand(newTxListCmd(c), newTxAddCmd(c), newTxRemoveCmd(c))
	return tx
}

func newTxListCmd(c *cli) *cobra.Command {
	var (
		category, from, to, txType string
		limit                      int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if limit < 1 || limit > 100 {
				return fmt.Errorf("invalid --limit %d: must be between 1 and 100", limit)
			}
			filter, err := buildFilter(category, from, to, txType)
			if err != nil {
				return err
			}

			page, err := c.transactions.ListTransactions(c.user, filter, pagination.PageRequest{Page: 1, PageSize: limit})
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tDATE\tTYPE\tAMOUNT\tCATEGORY\tDESCRIPTION")
			for _, t := range page.Data {
				fmt.Fprintf(w, "%s\t%s\t%s\t%.2f\t%s\t%s\n", t.ID, t.Date, t.Type, t.Amount, t.Category, t.Description)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d of %d transactions\n", len(page.Data), page.TotalItems)
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "only this category")
	cmd.Flags().StringVar(&from, "from", "", "earliest date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "latest date, inclusive (YYYY-MM-DD)")
	cmd.Flags().StringVar(&txType, "type", "", "debit or credit")
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum rows to show (1-100)")
	return cmd
}

func newTxAddCmd(c *cli) *cobra.Command {
	var input services.TransactionInput
	var txType string

	cmd := &cobra.Command{
		Use:   "add <description> <amount>",
		Short: "Add a transaction",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("invalid amount %q", args[1])
			}
			input.Description = args[0]
			input.Amount = amount
			input.Type = models.TransactionType(txType)

			tx, err := c.transactions.AddTransaction(c.user, input)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s\n", tx.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&input.Category, "category", "", "category (default \"Other\")")
	cmd.Flags().StringVar(&input.Date, "date", "", "ISO-8601 date (default now)")
	cmd.Flags().StringVar(&input.Recipient, "recipient", "", "recipient or payee")
	cmd.Flags().StringVar(&txType, "type", string(models.TransactionTypeDebit), "debit or credit")
	return cmd
}

func newTxRemoveCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"remove"},
		Short:   "Remove a transaction",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.transactions.DeleteTransaction(c.user, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", args[0])
			return nil
		},
	}
}

// buildFilter turns flag values into a transaction filter.
func buildFilter(category, from, to, txType string) (services.TransactionFilter, error) {
	filter := services.TransactionFilter{Category: category}

	if from != "" {
		t, err := models.ParseDateBound(from, false)
		if err != nil {
			return filter, fmt.Errorf("invalid --from %q: %w", from, err)
		}
		filter.FromDate = &t
	}
	if to != "" {
		t, err := models.ParseDateBound(to, true)
		if err != nil {
			return filter, fmt.Errorf("invalid --to %q: %w", to, err)
		}
		filter.ToDate = &t
	}
	if txType != "" {
		t := models.TransactionType(txType)
		if t != models.TransactionTypeDebit && t != models.TransactionTypeCredit {
			return filter, fmt.Errorf("invalid --type %q: must be debit or credit", txType)
		}
		filter.Type = &t
	}
	return filter, nil
}
