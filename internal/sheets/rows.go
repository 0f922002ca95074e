// Package sheets turns finance data into spreadsheet rows and defines the
// exporter port the Google and in-memory adapters implement.
package sheets

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"finboard/internal/core"
	"finboard/internal/services"
)

// TransactionHeader is the first row of a transactions export.
var TransactionHeader = []any{"Date", "Description", "Category", "Type", "Amount", "Currency", "Account", "Status"}

// DashboardHeader is the first row of a dashboard export.
var DashboardHeader = []any{"Section", "Item", "Value"}

// Text reaches the sheet as USER_ENTERED, where a leading = + - or @ starts a
// formula. textCell quotes such values so they stay literal text.
func textCell(s string) string {
	if s != "" && strings.ContainsRune("=+-@", rune(s[0])) {
		return "'" + s
	}
	return s
}

// TransactionRows returns a header and one row per transaction. Amounts are
// signed: income positive, expenses and transfers negative.
func TransactionRows(txs []core.Transaction) [][]any {
	rows := make([][]any, 0, len(txs)+1)
	rows = append(rows, slices.Clone(TransactionHeader))
	for _, t := range txs {
		status := t.Status
		if status == "" {
			status = core.StatusCompleted
		}
		rows = append(rows, []any{
			t.Date.String(),
			textCell(t.Description),
			textCell(t.Category),
			string(t.Type),
			t.SignedAmount().StringFixed(2),
			t.Currency,
			textCell(t.AccountID),
			string(status),
		})
	}
	return rows
}

// DashboardRows flattens the dashboard into section/item/value rows.
func DashboardRows(d services.Dashboard) [][]any {
	rows := [][]any{slices.Clone(DashboardHeader)}
	add := func(section, item string, v any) {
		rows = append(rows, []any{section, item, v})
	}
	money := func(v decimal.Decimal) string { return v.StringFixed(2) }
	pct := func(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) + "%" }

	add("Accounts", "Total assets", money(d.AccountsSummary.TotalAssets))
	add("Accounts", "Total liabilities", money(d.AccountsSummary.TotalLiabilities))
	add("Accounts", "Net worth", money(d.AccountsSummary.NetWorth))

	add("Assets", "Current value", money(d.AssetsSummary.TotalCurrentValue))
	add("Assets", "Purchase value", money(d.AssetsSummary.TotalPurchaseValue))
	add("Assets", "Gain/loss", money(d.AssetsSummary.TotalGainLoss))
	add("Assets", "Average appreciation", pct(d.AssetsSummary.AverageAppreciation))

	add("Debts", "Total debt", money(d.DebtSummary.TotalDebt))
	add("Debts", "Monthly payments", money(d.DebtSummary.TotalMonthlyPayments))
	add("Debts", "Average interest rate", pct(d.DebtSummary.AverageInterestRate))
	for _, debt := range d.Debts {
		add("Payoff", textCell(debt.Name), fmt.Sprintf("%s (%s paid)", debt.Payoff, pct(debt.Progress)))
	}

	add("Cash flow", "Income", money(d.CashFlow.Income))
	add("Cash flow", "Expenses", money(d.CashFlow.Expenses))
	add("Cash flow", "Transfers", money(d.CashFlow.Transfers))
	add("Cash flow", "Net", money(d.CashFlow.Net))
	for _, c := range d.Spending {
		add("Spending", textCell(c.Category), money(c.Amount))
	}

	add("Net worth", "Assets", money(d.NetWorth.Assets))
	add("Net worth", "Liabilities", money(d.NetWorth.Liabilities))
	add("Net worth", "Net worth", money(d.NetWorth.NetWorth))

	add("Insights", "Total", d.InsightsSummary.Total)
	add("Insights", "High priority", d.InsightsSummary.HighPriority)
	add("Insights", "Action required", d.InsightsSummary.ActionRequired)
	return rows
}
