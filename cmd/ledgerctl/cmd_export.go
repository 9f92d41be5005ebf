package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"pocketledger/internal/export"
	"pocketledger/internal/models"
)

func newExportCmd(c *cli) *cobra.Command {
	var format, category, from, to, out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export transactions and record the file in the download history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			filter, err := buildFilter(category, from, to, "")
			if err != nil {
				return err
			}

			rec, err := c.exports.Export(c.user, models.DownloadFormat(format), filter)
			if err != nil {
				return err
			}

			if out == "" {
				out = rec.Filename
			}
			payload, err := export.Payload(*rec)
			if err != nil {
				return err
			}
			if err := os.WriteFile(out, payload, 0o600); err != nil {
				return fmt.Errorf("failed to write %s: %w", out, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d transactions to %s (%d bytes)\n", rec.TransactionCount, out, rec.FileSize)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", string(models.DownloadFormatCSV), "csv, json or xlsx")
	cmd.Flags().StringVar(&category, "category", "", "only this category")
	cmd.Flags().StringVar(&from, "from", "", "earliest date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "latest date, inclusive (YYYY-MM-DD)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default: generated file name)")
	return cmd
}

func newDownloadsCmd(c *cli) *cobra.Command {
	downloads := &cobra.Command{
		Use:   "downloads",
		Short: "Inspect the download history",
	}

	downloads.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List past exports, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			records, err := c.exports.ListDownloads(c.user)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tDATE\tFORMAT\tTRANSACTIONS\tSIZE\tFILE")
			for _, r := range records {
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%s\n",
					r.ID, r.DownloadDate.Format("2006-01-02 15:04"), r.Format, r.TransactionCount, r.FileSize, r.Filename)
			}
			return w.Flush()
		},
	})
	return downloads
}
