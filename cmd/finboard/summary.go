package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"finboard/internal/finance"
	"finboard/internal/services"
	"finboard/internal/ui"
)

func summaryCmd(a *app) *cobra.Command {
	var asJSON bool
	var filter string

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show the full dashboard",
		Long:  `Show account, asset and debt summaries, cash flow, net worth, recent transactions and ranked insights.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := finance.ParseInsightFilter(filter)
			if err != nil {
				return err
			}
			svc, err := a.dashboard(cmd.Context(), f)
			if err != nil {
				return err
			}
			d, err := svc.Load(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(d)
			}
			printDashboard(out, d)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the dashboard as JSON")
	cmd.Flags().StringVar(&filter, "filter", "all", "insight filter (all, high, action-required)")
	return cmd
}

func printDashboard(w io.Writer, d services.Dashboard) {
	const cur = "USD"

	ui.Header(w, "Accounts")
	ui.Line(w, "Total assets", ui.FormatMoney(d.AccountsSummary.TotalAssets, cur))
	ui.Line(w, "Total liabilities", ui.FormatMoney(d.AccountsSummary.TotalLiabilities, cur))
	ui.Line(w, "Net worth", ui.FormatMoney(d.AccountsSummary.NetWorth, cur))

	ui.Header(w, "Assets")
	ui.Line(w, "Current value", ui.FormatMoney(d.AssetsSummary.TotalCurrentValue, cur))
	ui.Line(w, "Purchase value", ui.FormatMoney(d.AssetsSummary.TotalPurchaseValue, cur))
	ui.Line(w, "Gain/loss", ui.Signed(d.AssetsSummary.TotalGainLoss, cur))
	ui.Line(w, "Avg appreciation", ui.FormatPercent(d.AssetsSummary.AverageAppreciation))

	ui.Header(w, "Debts")
	ui.Line(w, "Total debt", ui.FormatMoney(d.DebtSummary.TotalDebt, cur))
	ui.Line(w, "Monthly payments", ui.FormatMoney(d.DebtSummary.TotalMonthlyPayments, cur))
	ui.Line(w, "Avg interest rate", ui.FormatPercent(d.DebtSummary.AverageInterestRate))
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, debt := range d.Debts {
		fmt.Fprintf(tw, "  %s\t%s\t%s paid\t%s\n",
			debt.Name, ui.FormatMoney(debt.CurrentBalance, debt.Currency), ui.FormatPercent(debt.Progress), debt.Payoff)
	}
	tw.Flush()

	ui.Header(w, "Cash flow")
	ui.Line(w, "Income", ui.FormatMoney(d.CashFlow.Income, cur))
	ui.Line(w, "Expenses", ui.FormatMoney(d.CashFlow.Expenses, cur))
	ui.Line(w, "Net", ui.Signed(d.CashFlow.Net, cur))
	for _, c := range d.Spending {
		ui.Line(w, c.Category, ui.FormatMoney(c.Amount, cur))
	}

	ui.Header(w, "Net worth")
	ui.Line(w, "Assets", ui.FormatMoney(d.NetWorth.Assets, cur))
	ui.Line(w, "Liabilities", ui.FormatMoney(d.NetWorth.Liabilities, cur))
	ui.Line(w, "Net worth", ui.Signed(d.NetWorth.NetWorth, cur))

	ui.Header(w, "Recent transactions")
	printTransactions(w, d.Recent)

	ui.Header(w, fmt.Sprintf("Insights (%d total, %d high priority, %d need action)",
		d.InsightsSummary.Total, d.InsightsSummary.HighPriority, d.InsightsSummary.ActionRequired))
	printInsights(w, d.Insights)
}
