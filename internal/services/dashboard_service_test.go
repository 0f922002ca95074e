package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finboard/internal/core"
	"finboard/internal/datasource/cached"
	"finboard/internal/datasource/memory"
	"finboard/internal/finance"
)

type failingDebts struct {
	*memory.Store
}

func (failingDebts) ListDebts(context.Context) ([]core.Debt, error) {
	return nil, errors.New("upstream down")
}

// staticAssets serves assets the store itself would reject.
type staticAssets struct {
	*memory.Store
	assets []core.Asset
}

func (s staticAssets) ListAssets(context.Context) ([]core.Asset, error) {
	return s.assets, nil
}

type countingAccounts struct {
	*memory.Store
	calls atomic.Int32
}

func (c *countingAccounts) ListAccounts(ctx context.Context) ([]core.Account, error) {
	c.calls.Add(1)
	return c.Store.ListAccounts(ctx)
}

func TestDashboardLoad_Demo(t *testing.T) {
	svc := NewDashboardService(memory.NewDemo(), DashboardOptions{RecentLimit: 2})

	d, err := svc.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "63080.8", d.AccountsSummary.TotalAssets.String())
	assert.Equal(t, "1200", d.AccountsSummary.TotalLiabilities.String())
	assert.Equal(t, "61880.8", d.AccountsSummary.NetWorth.String())

	assert.Equal(t, "7500", d.CashFlow.Income.String())
	assert.Equal(t, "130.32", d.CashFlow.Expenses.String())
	assert.Equal(t, "7369.68", d.CashFlow.Net.String())
	assert.Equal(t, 4, d.CashFlow.Count)

	assert.Equal(t, "544080.8", d.NetWorth.Assets.String())
	assert.Equal(t, "42900", d.NetWorth.Liabilities.String())
	assert.Equal(t, "501180.8", d.NetWorth.NetWorth.String())

	require.Len(t, d.Recent, 2)
	assert.Equal(t, "1", d.Recent[0].ID)
	assert.Equal(t, "2", d.Recent[1].ID)
	assert.Len(t, d.Transactions, 4)

	require.Len(t, d.Spending, 2)
	assert.Equal(t, "Food & Dining", d.Spending[0].Category)

	ids := make([]string, len(d.Insights))
	for i, in := range d.Insights {
		ids[i] = in.ID
	}
	assert.Equal(t, []string{"3", "2", "1", "4"}, ids)
	assert.Equal(t, finance.FilterAll, d.InsightFilter)
	assert.Equal(t, 2, d.InsightsSummary.ActionRequired)
}

func TestDashboardLoad_DebtAndAssetViews(t *testing.T) {
	d, err := NewDashboardService(memory.NewDemo(), DashboardOptions{}).Load(context.Background())
	require.NoError(t, err)

	require.Len(t, d.Debts, 3)
	card := d.Debts[0]
	assert.Equal(t, "Capital One Credit Card", card.Name)
	assert.Equal(t, finance.PayoffAmortizes, card.Payoff.Status)
	assert.Equal(t, 28, card.Payoff.Months)
	assert.InDelta(t, 76.0, card.Progress, 1e-9)

	require.Len(t, d.Assets, 3)
	require.NotNil(t, d.Assets[1].GainLoss)
	assert.Equal(t, "-6500", d.Assets[1].GainLoss.Amount.String())
	assert.InDelta(t, -26.0, d.Assets[1].GainLoss.Percentage, 1e-9)
}

func TestDashboardLoad_ZeroPurchasePriceHasNoGainLoss(t *testing.T) {
	src := staticAssets{Store: memory.New(), assets: []core.Asset{
		{ID: "g", Name: "Gift", Type: core.OtherAsset, CurrentValue: decimal.NewFromInt(100)},
	}}

	d, err := NewDashboardService(src, DashboardOptions{}).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, d.Assets, 1)
	assert.Nil(t, d.Assets[0].GainLoss)
	assert.Equal(t, "100", d.AssetsSummary.TotalGainLoss.String())
}

func TestDashboardLoad_EmptySource(t *testing.T) {
	d, err := NewDashboardService(memory.New(), DashboardOptions{}).Load(context.Background())
	require.NoError(t, err)
	assert.True(t, d.NetWorth.NetWorth.IsZero())
	assert.Empty(t, d.Insights)
	assert.Empty(t, d.Recent)
	assert.Zero(t, d.InsightsSummary.AverageImpact)
}

func TestDashboardLoad_FilterApplied(t *testing.T) {
	svc := NewDashboardService(memory.NewDemo(), DashboardOptions{InsightFilter: finance.FilterActionRequired})
	d, err := svc.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, d.Insights, 2)
	for _, in := range d.Insights {
		assert.True(t, in.ActionRequired)
	}
	// The summary still counts every insight.
	assert.Equal(t, 4, d.InsightsSummary.Total)
}

func TestDashboardLoad_SourceError(t *testing.T) {
	svc := NewDashboardService(failingDebts{memory.NewDemo()}, DashboardOptions{})
	_, err := svc.Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load debts")
}

func TestDashboardLoad_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewDashboardService(memory.NewDemo(), DashboardOptions{}).Load(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDashboardLoad_MemoizedUntilMutation(t *testing.T) {
	ctx := context.Background()
	up := &countingAccounts{Store: memory.NewDemo()}
	src := cached.New(up, cached.Options{TTL: time.Minute})
	svc := NewDashboardService(src, DashboardOptions{})

	first, err := svc.Load(ctx)
	require.NoError(t, err)
	first.Accounts[0].Name = "scribbled"

	second, err := svc.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, int32(1), up.calls.Load())
	assert.Equal(t, "Main Checking", second.Accounts[0].Name)

	_, err = src.CreateDebt(ctx, core.Debt{Name: "Loan", Type: core.PersonalLoan, CurrentBalance: decimal.NewFromInt(100)})
	require.NoError(t, err)

	third, err := svc.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, third.Debts, 4)
}

func TestDashboardTransactionsAndInsights(t *testing.T) {
	svc := NewDashboardService(memory.NewDemo(), DashboardOptions{})

	txs, err := svc.Transactions(context.Background(), finance.TransactionFilter{Type: "expense"})
	require.NoError(t, err)
	require.Len(t, txs, 2)
	assert.Equal(t, "2", txs[0].ID)
	assert.Equal(t, "3", txs[1].ID)

	insights, err := svc.Insights(context.Background(), finance.FilterHighPriority)
	require.NoError(t, err)
	require.Len(t, insights, 2)
	assert.Equal(t, "3", insights[0].ID)
}
