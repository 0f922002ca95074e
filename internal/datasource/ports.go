// Package datasource defines the ports through which records are read and
// mutated. Adapters live in subpackages.
package datasource

import (
	"context"
	"errors"

	"finboard/internal/core"
)

var (
	// ErrNotFound is returned when a record id does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrConflict is returned when creating a record whose id is taken.
	ErrConflict = errors.New("record already exists")
)

// Ports for outbound adapters.
type (
	AccountStore interface {
		ListAccounts(ctx context.Context) ([]core.Account, error)
		GetAccount(ctx context.Context, id string) (core.Account, error)
		// CreateAccount stores a and returns it with its assigned id.
		CreateAccount(ctx context.Context, a core.Account) (core.Account, error)
		UpdateAccount(ctx context.Context, a core.Account) (core.Account, error)
		DeleteAccount(ctx context.Context, id string) error
	}

	TransactionStore interface {
		ListTransactions(ctx context.Context) ([]core.Transaction, error)
		GetTransaction(ctx context.Context, id string) (core.Transaction, error)
		CreateTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error)
		UpdateTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error)
		DeleteTransaction(ctx context.Context, id string) error
	}

	AssetStore interface {
		ListAssets(ctx context.Context) ([]core.Asset, error)
		GetAsset(ctx context.Context, id string) (core.Asset, error)
		CreateAsset(ctx context.Context, a core.Asset) (core.Asset, error)
		UpdateAsset(ctx context.Context, a core.Asset) (core.Asset, error)
		DeleteAsset(ctx context.Context, id string) error
	}

	DebtStore interface {
		ListDebts(ctx context.Context) ([]core.Debt, error)
		GetDebt(ctx context.Context, id string) (core.Debt, error)
		CreateDebt(ctx context.Context, d core.Debt) (core.Debt, error)
		UpdateDebt(ctx context.Context, d core.Debt) (core.Debt, error)
		DeleteDebt(ctx context.Context, id string) error
	}

	// InsightReader lists generated insights. Insights are produced upstream
	// and are read-only here.
	InsightReader interface {
		ListInsights(ctx context.Context) ([]core.Insight, error)
	}

	// Source is everything the dashboard needs.
	Source interface {
		AccountStore
		TransactionStore
		AssetStore
		DebtStore
		InsightReader
	}
)
