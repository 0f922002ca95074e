package services

import (
	"context"
	"fmt"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"

	"finboard/internal/core"
	"finboard/internal/datasource"
	"finboard/internal/datasource/cached"
	"finboard/internal/finance"
	"finboard/internal/log"
)

const defaultRecentLimit = 5

// Memoizer is implemented by caching sources that can hold a computed value
// until the next mutation.
type Memoizer interface {
	Memo(ctx context.Context, key string, fn func(context.Context) (any, error)) (any, error)
}

// AssetView is an asset with its gain or loss. GainLoss is nil when the
// purchase price is not positive.
type AssetView struct {
	core.Asset
	GainLoss *finance.GainLoss `json:"gain_loss,omitempty"`
}

// DebtView is a debt with its payoff estimate and repayment progress.
type DebtView struct {
	core.Debt
	Payoff   finance.Payoff `json:"payoff"`
	Progress float64        `json:"progress"`
}

// Dashboard is everything the summary screens show.
type Dashboard struct {
	GeneratedAt time.Time `json:"generated_at"`

	Accounts        []core.Account          `json:"accounts"`
	AccountsSummary finance.AccountsSummary `json:"accounts_summary"`

	Assets        []AssetView           `json:"assets"`
	AssetsSummary finance.AssetsSummary `json:"assets_summary"`

	Debts       []DebtView          `json:"debts"`
	DebtSummary finance.DebtSummary `json:"debt_summary"`

	Transactions []core.Transaction       `json:"-"`
	Recent       []core.Transaction       `json:"recent_transactions"`
	CashFlow     finance.CashFlow         `json:"cash_flow"`
	Spending     []finance.CategoryAmount `json:"spending_by_category"`

	NetWorth finance.NetWorthBreakdown `json:"net_worth"`

	Insights        []core.Insight          `json:"insights"`
	InsightFilter   finance.InsightFilter   `json:"insight_filter"`
	InsightsSummary finance.InsightsSummary `json:"insights_summary"`
}

func (d Dashboard) clone() Dashboard {
	d.Accounts = slices.Clone(d.Accounts)
	d.Assets = slices.Clone(d.Assets)
	d.Debts = slices.Clone(d.Debts)
	d.Transactions = slices.Clone(d.Transactions)
	d.Recent = slices.Clone(d.Recent)
	d.Spending = slices.Clone(d.Spending)
	d.Insights = slices.Clone(d.Insights)
	return d
}

// DashboardOptions tune what Load returns.
type DashboardOptions struct {
	RecentLimit   int
	InsightFilter finance.InsightFilter
	Logger        *log.Logger
}

// DashboardService assembles the dashboard from a data source.
type DashboardService struct {
	source datasource.Source
	recent int
	filter finance.InsightFilter
	logger *log.Logger
	now    func() time.Time
}

func NewDashboardService(source datasource.Source, opts DashboardOptions) *DashboardService {
	if opts.RecentLimit <= 0 {
		opts.RecentLimit = defaultRecentLimit
	}
	if opts.InsightFilter == "" {
		opts.InsightFilter = finance.FilterAll
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Discard()
	}
	return &DashboardService{
		source: source,
		recent: opts.RecentLimit,
		filter: opts.InsightFilter,
		logger: logger.WithComponent(log.ComponentDashboard),
		now:    time.Now,
	}
}

// Load fetches every record kind concurrently and computes all summaries.
// With a caching source the computed snapshot is reused until a mutation.
func (s *DashboardService) Load(ctx context.Context) (Dashboard, error) {
	var (
		d   Dashboard
		err error
	)
	if m, ok := s.source.(Memoizer); ok {
		var v any
		v, err = m.Memo(ctx, cached.KeyDashboard, func(ctx context.Context) (any, error) {
			return s.build(ctx)
		})
		if err == nil {
			d = v.(Dashboard).clone()
		}
	} else {
		d, err = s.build(ctx)
	}
	if err != nil {
		return Dashboard{}, err
	}

	// Presentation choices are applied on top of the shared snapshot.
	d.Insights = finance.RankInsights(d.Insights, s.filter)
	d.InsightFilter = s.filter
	d.Recent = finance.RecentTransactions(d.Transactions, s.recent)
	return d, nil
}

type snapshot struct {
	accounts     []core.Account
	transactions []core.Transaction
	assets       []core.Asset
	debts        []core.Debt
	insights     []core.Insight
}

func (s *DashboardService) fetch(ctx context.Context) (snapshot, error) {
	var snap snapshot
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		snap.accounts, err = s.source.ListAccounts(gctx)
		return wrap("accounts", err)
	})
	g.Go(func() (err error) {
		snap.transactions, err = s.source.ListTransactions(gctx)
		return wrap("transactions", err)
	})
	g.Go(func() (err error) {
		snap.assets, err = s.source.ListAssets(gctx)
		return wrap("assets", err)
	})
	g.Go(func() (err error) {
		snap.debts, err = s.source.ListDebts(gctx)
		return wrap("debts", err)
	})
	g.Go(func() (err error) {
		snap.insights, err = s.source.ListInsights(gctx)
		return wrap("insights", err)
	})

	if err := g.Wait(); err != nil {
		return snapshot{}, err
	}
	return snap, nil
}

func wrap(kind string, err error) error {
	if err != nil {
		return fmt.Errorf("load %s: %w", kind, err)
	}
	return nil
}

func (s *DashboardService) build(ctx context.Context) (Dashboard, error) {
	start := s.now()
	snap, err := s.fetch(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "Dashboard load failed",
			log.NewFields().WithOperation(log.OpLoad).WithError(err).ToSlice()...)
		return Dashboard{}, err
	}

	assets := make([]AssetView, len(snap.assets))
	for i, a := range snap.assets {
		assets[i] = AssetView{Asset: a}
		if gl, err := finance.AssetGainLoss(a); err == nil {
			assets[i].GainLoss = &gl
		}
	}

	debts := make([]DebtView, len(snap.debts))
	for i, debt := range snap.debts {
		debts[i] = DebtView{
			Debt:     debt,
			Payoff:   finance.DebtPayoff(debt),
			Progress: finance.DebtProgress(debt),
		}
	}

	d := Dashboard{
		GeneratedAt:     start,
		Accounts:        snap.accounts,
		AccountsSummary: finance.SummarizeAccounts(snap.accounts),
		Assets:          assets,
		AssetsSummary:   finance.SummarizeAssets(snap.assets),
		Debts:           debts,
		DebtSummary:     finance.SummarizeDebts(snap.debts),
		Transactions:    snap.transactions,
		CashFlow:        finance.SummarizeTransactions(snap.transactions),
		Spending:        finance.SpendingByCategory(snap.transactions),
		NetWorth:        finance.NetWorth(snap.accounts, snap.assets, snap.debts),
		Insights:        snap.insights,
		InsightsSummary: finance.SummarizeInsights(snap.insights),
	}

	s.logger.InfoContext(ctx, "Dashboard computed",
		log.FieldOperation, log.OpLoad,
		"accounts", len(snap.accounts),
		"transactions", len(snap.transactions),
		"assets", len(snap.assets),
		"debts", len(snap.debts),
		"insights", len(snap.insights),
		log.FieldDuration, s.now().Sub(start).Milliseconds())
	return d, nil
}

// Transactions returns the transactions matching f, in source order.
func (s *DashboardService) Transactions(ctx context.Context, f finance.TransactionFilter) ([]core.Transaction, error) {
	txs, err := s.source.ListTransactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("load transactions: %w", err)
	}
	out := finance.FilterTransactions(txs, f)
	s.logger.DebugContext(ctx, "Transactions filtered",
		log.FieldFilter, f, log.FieldCount, len(out))
	return out, nil
}

// Insights returns insights ranked for display under f.
func (s *DashboardService) Insights(ctx context.Context, f finance.InsightFilter) ([]core.Insight, error) {
	insights, err := s.source.ListInsights(ctx)
	if err != nil {
		return nil, fmt.Errorf("load insights: %w", err)
	}
	return finance.RankInsights(insights, f), nil
}
