package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"finboard/internal/core"
	"finboard/internal/finance"
	"finboard/internal/ui"
)

func transactionsCmd(a *app) *cobra.Command {
	var f finance.TransactionFilter

	cmd := &cobra.Command{
		Use:   "transactions",
		Short: "List transactions, optionally filtered",
		Long: `List transactions. --search matches description or category, case-insensitive.
--category and --type match exactly; "all" disables them.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := a.dashboard(cmd.Context(), finance.FilterAll)
			if err != nil {
				return err
			}
			txs, err := svc.Transactions(cmd.Context(), f)
			if err != nil {
				return err
			}
			printTransactions(cmd.OutOrStdout(), txs)
			return nil
		},
	}

	cmd.Flags().StringVar(&f.Search, "search", "", "text to look for in description or category")
	cmd.Flags().StringVar(&f.Category, "category", finance.AllCategories, "category to keep")
	cmd.Flags().StringVar(&f.Type, "type", finance.AllCategories, "transaction type to keep (income, expense, transfer)")
	return cmd
}

func printTransactions(w io.Writer, txs []core.Transaction) {
	if len(txs) == 0 {
		fmt.Fprintln(w, "  No transactions.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, t := range txs {
		fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\n", t.Date, t.Description, t.Category, ui.Signed(t.SignedAmount(), t.Currency))
	}
	tw.Flush()
}
