package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCategoryCmd(c *cli) *cobra.Command {
	category := &cobra.Command{
		Use:     "category",
		Aliases: []string{"categories"},
		Short:   "List, add and remove categories",
	}

	category.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List categories",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				cats, err := c.categories.ListCategories(c.user)
				if err != nil {
					return err
				}
				for _, cat := range cats {
					fmt.Fprintln(cmd.OutOrStdout(), cat.Name)
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "add <name>",
			Short: "Add a category unless one with the same name exists",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				cat, created, err := c.categories.AddCategory(c.user, args[0])
				if err != nil {
					return err
				}
				if !created {
					fmt.Fprintf(cmd.OutOrStdout(), "Category %q already exists\n", cat.Name)
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added category %q\n", cat.Name)
				return nil
			},
		},
		&cobra.Command{
			Use:     "rm <name>",
			Aliases: []string{"remove"},
			Short:   "Remove a category; transactions keep their category text",
			Args:    cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := c.categories.DeleteCategory(c.user, args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed category %q\n", args[0])
				return nil
			},
		},
	)
	return category
}
