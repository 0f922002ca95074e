// Package finance computes the derived figures shown on the dashboard:
// totals, net worth, gain/loss, payoff projections and insight ordering.
//
// Every function is a pure transformation of the records passed in. Inputs are
// treated as read-only and results are freshly allocated, so callers may share
// snapshots across goroutines.
package finance

import (
	"github.com/shopspring/decimal"

	"finboard/internal/core"
)

// AccountsSummary splits account balances into assets and liabilities.
type AccountsSummary struct {
	TotalAssets      decimal.Decimal `json:"total_assets"`
	TotalLiabilities decimal.Decimal `json:"total_liabilities"`
	NetWorth         decimal.Decimal `json:"net_worth"`
}

// AssetsSummary aggregates the asset register.
type AssetsSummary struct {
	TotalCurrentValue   decimal.Decimal `json:"total_current_value"`
	TotalPurchaseValue  decimal.Decimal `json:"total_purchase_value"`
	TotalGainLoss       decimal.Decimal `json:"total_gain_loss"`
	AverageAppreciation float64         `json:"average_appreciation"`
}

// DebtSummary aggregates outstanding debts.
type DebtSummary struct {
	TotalDebt            decimal.Decimal `json:"total_debt"`
	TotalMonthlyPayments decimal.Decimal `json:"total_monthly_payments"`
	AverageInterestRate  float64         `json:"average_interest_rate"`
}

// CashFlow totals settled transactions by type.
type CashFlow struct {
	Income    decimal.Decimal `json:"income"`
	Expenses  decimal.Decimal `json:"expenses"`
	Transfers decimal.Decimal `json:"transfers"`
	Net       decimal.Decimal `json:"net"`
	Count     int             `json:"count"`
}

// NetWorthBreakdown combines accounts, the asset register and debts.
type NetWorthBreakdown struct {
	Assets      decimal.Decimal `json:"assets"`
	Liabilities decimal.Decimal `json:"liabilities"`
	NetWorth    decimal.Decimal `json:"net_worth"`
}

// SummarizeAccounts sums positive balances as assets and the magnitude of
// negative balances as liabilities. An empty slice yields all zeros.
func SummarizeAccounts(accounts []core.Account) AccountsSummary {
	assets, liabilities := decimal.Zero, decimal.Zero
	for _, a := range accounts {
		switch a.Balance.Sign() {
		case 1:
			assets = assets.Add(a.Balance)
		case -1:
			liabilities = liabilities.Add(a.Balance.Abs())
		}
	}
	return AccountsSummary{
		TotalAssets:      assets,
		TotalLiabilities: liabilities,
		NetWorth:         assets.Sub(liabilities),
	}
}

// SummarizeAssets totals current and purchase values. The average
// appreciation only considers assets that define a rate; when none do it is 0.
func SummarizeAssets(assets []core.Asset) AssetsSummary {
	current, purchase := decimal.Zero, decimal.Zero
	var rateSum float64
	var rated int
	for _, a := range assets {
		current = current.Add(a.CurrentValue)
		purchase = purchase.Add(a.PurchasePrice)
		if a.AppreciationRate != nil {
			rateSum += *a.AppreciationRate
			rated++
		}
	}
	return AssetsSummary{
		TotalCurrentValue:   current,
		TotalPurchaseValue:  purchase,
		TotalGainLoss:       current.Sub(purchase),
		AverageAppreciation: mean(rateSum, rated),
	}
}

// SummarizeDebts totals balances and minimum payments and averages the rate.
func SummarizeDebts(debts []core.Debt) DebtSummary {
	total, payments := decimal.Zero, decimal.Zero
	var rateSum float64
	for _, d := range debts {
		total = total.Add(d.CurrentBalance)
		payments = payments.Add(d.MinimumPayment)
		rateSum += d.InterestRate
	}
	return DebtSummary{
		TotalDebt:            total,
		TotalMonthlyPayments: payments,
		AverageInterestRate:  mean(rateSum, len(debts)),
	}
}

// SummarizeTransactions totals settled transactions. Net is income minus
// expenses; transfers move money between accounts and do not change it.
func SummarizeTransactions(txs []core.Transaction) CashFlow {
	var cf CashFlow
	for _, t := range txs {
		if !t.Settled() {
			continue
		}
		cf.Count++
		switch t.Type {
		case core.Income:
			cf.Income = cf.Income.Add(t.Amount)
		case core.Expense:
			cf.Expenses = cf.Expenses.Add(t.Amount)
		case core.Transfer:
			cf.Transfers = cf.Transfers.Add(t.Amount)
		}
	}
	cf.Net = cf.Income.Sub(cf.Expenses)
	return cf
}

// NetWorth folds the asset register and debts into the account view.
func NetWorth(accounts []core.Account, assets []core.Asset, debts []core.Debt) NetWorthBreakdown {
	acc := SummarizeAccounts(accounts)
	ast := SummarizeAssets(assets)
	dbt := SummarizeDebts(debts)

	totalAssets := acc.TotalAssets.Add(ast.TotalCurrentValue)
	totalLiabilities := acc.TotalLiabilities.Add(dbt.TotalDebt)
	return NetWorthBreakdown{
		Assets:      totalAssets,
		Liabilities: totalLiabilities,
		NetWorth:    totalAssets.Sub(totalLiabilities),
	}
}

func mean(sum float64, n int) float64 {
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}
