package finance

import (
	"math"
	"math/rand"
	"testing"
	"testing/quick"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finboard/internal/core"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func accountsFromCents(cents []int32) []core.Account {
	out := make([]core.Account, len(cents))
	for i, c := range cents {
		out[i] = core.Account{Name: "acc", Type: core.Checking, Balance: decimal.New(int64(c), -2)}
	}
	return out
}

func TestSummarizeAccounts(t *testing.T) {
	got := SummarizeAccounts([]core.Account{
		{Name: "Main Checking", Type: core.Checking, Balance: d("5420.50")},
		{Name: "Savings", Type: core.Savings, Balance: d("12500")},
		{Name: "Credit Card", Type: core.Credit, Balance: d("-1250.75")},
		{Name: "Empty", Type: core.Checking, Balance: decimal.Zero},
	})
	assert.Equal(t, "17920.5", got.TotalAssets.String())
	assert.Equal(t, "1250.75", got.TotalLiabilities.String())
	assert.Equal(t, "16669.75", got.NetWorth.String())
}

func TestSummarizeAccountsEmpty(t *testing.T) {
	got := SummarizeAccounts(nil)
	assert.True(t, got.TotalAssets.IsZero())
	assert.True(t, got.TotalLiabilities.IsZero())
	assert.True(t, got.NetWorth.IsZero())
}

func TestSummarizeAccountsProperties(t *testing.T) {
	prop := func(cents []int32) bool {
		s := SummarizeAccounts(accountsFromCents(cents))
		return s.NetWorth.Equal(s.TotalAssets.Sub(s.TotalLiabilities)) &&
			!s.TotalAssets.IsNegative() &&
			!s.TotalLiabilities.IsNegative()
	}
	require.NoError(t, quick.Check(prop, nil))
}

func TestSummarizeAccountsDoesNotMutateInput(t *testing.T) {
	in := accountsFromCents([]int32{100, -50})
	_ = SummarizeAccounts(in)
	assert.Equal(t, "1", in[0].Balance.String())
	assert.Equal(t, "-0.5", in[1].Balance.String())
}

func TestSummarizeAssets(t *testing.T) {
	got := SummarizeAssets([]core.Asset{
		{Name: "House", Type: core.RealEstate, CurrentValue: d("450000"), PurchasePrice: d("380000"), AppreciationRate: core.Float(3.5)},
		{Name: "Car", Type: core.Vehicle, CurrentValue: d("18000"), PurchasePrice: d("28000"), AppreciationRate: core.Float(-12.5)},
		{Name: "Art", Type: core.OtherAsset, CurrentValue: d("5000"), PurchasePrice: d("4000")},
	})
	assert.Equal(t, "473000", got.TotalCurrentValue.String())
	assert.Equal(t, "412000", got.TotalPurchaseValue.String())
	assert.Equal(t, "61000", got.TotalGainLoss.String())
	assert.InDelta(t, -4.5, got.AverageAppreciation, 1e-9)
}

func TestSummarizeAssetsWithoutRates(t *testing.T) {
	got := SummarizeAssets([]core.Asset{
		{Name: "Art", Type: core.OtherAsset, CurrentValue: d("5000"), PurchasePrice: d("4000")},
	})
	assert.Equal(t, 0.0, got.AverageAppreciation)
	assert.False(t, math.IsNaN(got.AverageAppreciation))

	empty := SummarizeAssets(nil)
	assert.Equal(t, 0.0, empty.AverageAppreciation)
	assert.True(t, empty.TotalGainLoss.IsZero())
}

func TestSummarizeAssetsOrderInvariant(t *testing.T) {
	prop := func(values []uint16, seed int64) bool {
		assets := make([]core.Asset, len(values))
		for i, v := range values {
			a := core.Asset{CurrentValue: decimal.NewFromInt(int64(v)), PurchasePrice: decimal.NewFromInt(int64(v%97) + 1)}
			if v%3 == 0 {
				// Integral rates keep float sums exact regardless of order.
				a.AppreciationRate = core.Float(float64(v % 11))
			}
			assets[i] = a
		}
		shuffled := make([]core.Asset, len(assets))
		copy(shuffled, assets)
		rand.New(rand.NewSource(seed)).Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})

		a, b := SummarizeAssets(assets), SummarizeAssets(shuffled)
		return a.TotalCurrentValue.Equal(b.TotalCurrentValue) &&
			a.TotalPurchaseValue.Equal(b.TotalPurchaseValue) &&
			a.TotalGainLoss.Equal(b.TotalGainLoss) &&
			a.AverageAppreciation == b.AverageAppreciation
	}
	require.NoError(t, quick.Check(prop, nil))
}

func TestSummarizeDebts(t *testing.T) {
	debts := []core.Debt{
		{Name: "Credit Card", Type: core.CreditCard, CurrentBalance: d("1200"), MinimumPayment: d("35"), InterestRate: 18.99},
		{Name: "Car Loan", Type: core.AutoLoan, CurrentBalance: d("15000"), MinimumPayment: d("350"), InterestRate: 4.5},
	}
	got := SummarizeDebts(debts)
	assert.Equal(t, "16200", got.TotalDebt.String())
	assert.Equal(t, "385", got.TotalMonthlyPayments.String())
	assert.InDelta(t, 11.745, got.AverageInterestRate, 1e-9)

	// Re-adding the parts reproduces the totals.
	var balances, payments []decimal.Decimal
	for _, debt := range debts {
		balances = append(balances, debt.CurrentBalance)
		payments = append(payments, debt.MinimumPayment)
	}
	assert.True(t, core.Sum(balances...).Equal(got.TotalDebt))
	assert.True(t, core.Sum(payments...).Equal(got.TotalMonthlyPayments))
	assert.Equal(t, got, SummarizeDebts(debts))

	empty := SummarizeDebts(nil)
	assert.True(t, empty.TotalDebt.IsZero())
	assert.Equal(t, 0.0, empty.AverageInterestRate)
}

func TestSummarizeTransactions(t *testing.T) {
	txs := []core.Transaction{
		{Type: core.Income, Amount: d("5000")},
		{Type: core.Expense, Amount: d("85.50"), Status: core.StatusCompleted},
		{Type: core.Expense, Amount: d("1200")},
		{Type: core.Transfer, Amount: d("500")},
		{Type: core.Expense, Amount: d("999"), Status: core.StatusPending},
		{Type: core.Income, Amount: d("10"), Status: core.StatusCancelled},
	}
	got := SummarizeTransactions(txs)
	assert.Equal(t, "5000", got.Income.String())
	assert.Equal(t, "1285.5", got.Expenses.String())
	assert.Equal(t, "500", got.Transfers.String())
	assert.Equal(t, "3714.5", got.Net.String())
	assert.Equal(t, 4, got.Count)
}

func TestNetWorth(t *testing.T) {
	got := NetWorth(
		[]core.Account{{Balance: d("1000")}, {Balance: d("-200")}},
		[]core.Asset{{CurrentValue: d("5000"), PurchasePrice: d("1")}},
		[]core.Debt{{CurrentBalance: d("800")}},
	)
	assert.Equal(t, "6000", got.Assets.String())
	assert.Equal(t, "1000", got.Liabilities.String())
	assert.Equal(t, "5000", got.NetWorth.String())
}
