// Package cached wraps a datasource.Source with a read-through query cache.
//
// Reads are cached under query keys; single records live under "<kind>/<id>".
// Concurrent misses on one key share a single upstream call, but a read that
// starts after a mutation has returned never joins a call that started
// before it. Every mutation invalidates the keys whose results it can change,
// following the same dependency map the dashboard screens use. Invalidating a
// kind also drops all of its records.
package cached

import (
	"context"
	"slices"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"finboard/internal/cache"
	"finboard/internal/core"
	"finboard/internal/datasource"
	"finboard/internal/log"
)

// Query keys.
const (
	KeyAccounts     = "accounts"
	KeyTransactions = "transactions"
	KeyAssets       = "assets"
	KeyDebts        = "debts"
	KeyInsights     = "insights"
	KeyDashboard    = "dashboard"
)

func recordKey(kind, id string) string { return kind + "/" + id }

// Source is a caching datasource.Source.
type Source struct {
	next   datasource.Source
	cache  *cache.LRUCache[any]
	group  singleflight.Group
	logger *log.Logger

	// mu orders cache fills against invalidation. gen counts invalidations.
	mu  sync.Mutex
	gen uint64
}

var _ datasource.Source = (*Source)(nil)

// Options tune the cache.
type Options struct {
	TTL     time.Duration
	MaxSize int
	Logger  *log.Logger
}

// New wraps next.
func New(next datasource.Source, opts Options) *Source {
	logger := opts.Logger
	if logger == nil {
		logger = log.Discard()
	}
	return &Source{
		next:   next,
		cache:  cache.NewLRUCache[any](opts.MaxSize, opts.TTL),
		logger: logger.WithComponent(log.ComponentCache),
	}
}

// Cache exposes the underlying cache so a manager can sweep it.
func (s *Source) Cache() *cache.LRUCache[any] { return s.cache }

// Memo caches the result of fn under key. Mutations that invalidate key
// (KeyDashboard is invalidated by every mutation) force a recompute.
func (s *Source) Memo(ctx context.Context, key string, fn func(context.Context) (any, error)) (any, error) {
	return load(ctx, s, key, fn)
}

// Invalidate drops the given keys and every record key below them, so
// invalidating "accounts" also drops "accounts/1".
func (s *Source) Invalidate(keys ...string) {
	s.mu.Lock()
	s.gen++
	dropped := 0
	for _, k := range keys {
		s.cache.Delete(k)
		dropped += s.cache.DeletePrefix(k + "/")
	}
	s.mu.Unlock()
	s.logger.Debug("Cache invalidated", log.FieldCacheKey, keys, "records", dropped)
}

func (s *Source) generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gen
}

func load[T any](ctx context.Context, s *Source, key string, fetch func(context.Context) (T, error)) (T, error) {
	if v, ok := s.cache.Get(key); ok {
		if t, ok := v.(T); ok {
			s.logger.DebugContext(ctx, "Cache hit", log.NewFields().WithCache(key, true).ToSlice()...)
			return t, nil
		}
	}
	s.logger.DebugContext(ctx, "Cache miss", log.NewFields().WithCache(key, false).ToSlice()...)

	// Calls share a flight only within one generation.
	gen := s.generation()
	v, err, _ := s.group.Do(key+"@"+strconv.FormatUint(gen, 10), func() (any, error) {
		res, err := fetch(ctx)
		if err != nil {
			return nil, err
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		// A mutation while fetching may have made res stale.
		if s.gen == gen {
			s.cache.Set(key, res)
		}
		return res, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	t, _ := v.(T)
	return t, nil
}

// Accounts

func (s *Source) ListAccounts(ctx context.Context) ([]core.Account, error) {
	v, err := load(ctx, s, KeyAccounts, s.next.ListAccounts)
	return slices.Clone(v), err
}

func (s *Source) GetAccount(ctx context.Context, id string) (core.Account, error) {
	return load(ctx, s, recordKey(KeyAccounts, id), func(ctx context.Context) (core.Account, error) {
		return s.next.GetAccount(ctx, id)
	})
}

func (s *Source) CreateAccount(ctx context.Context, a core.Account) (core.Account, error) {
	out, err := s.next.CreateAccount(ctx, a)
	if err == nil {
		s.Invalidate(KeyAccounts, KeyDashboard)
	}
	return out, err
}

func (s *Source) UpdateAccount(ctx context.Context, a core.Account) (core.Account, error) {
	out, err := s.next.UpdateAccount(ctx, a)
	if err == nil {
		s.Invalidate(KeyAccounts, recordKey(KeyAccounts, a.ID), KeyDashboard)
	}
	return out, err
}

// DeleteAccount also drops transactions, which reference the account.
func (s *Source) DeleteAccount(ctx context.Context, id string) error {
	err := s.next.DeleteAccount(ctx, id)
	if err == nil {
		s.Invalidate(KeyAccounts, recordKey(KeyAccounts, id), KeyTransactions, KeyDashboard)
	}
	return err
}

// Transactions change account balances, so they invalidate accounts too.

func (s *Source) ListTransactions(ctx context.Context) ([]core.Transaction, error) {
	v, err := load(ctx, s, KeyTransactions, s.next.ListTransactions)
	return slices.Clone(v), err
}

func (s *Source) GetTransaction(ctx context.Context, id string) (core.Transaction, error) {
	return load(ctx, s, recordKey(KeyTransactions, id), func(ctx context.Context) (core.Transaction, error) {
		return s.next.GetTransaction(ctx, id)
	})
}

func (s *Source) CreateTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error) {
	out, err := s.next.CreateTransaction(ctx, t)
	if err == nil {
		s.Invalidate(KeyTransactions, KeyAccounts, KeyDashboard)
	}
	return out, err
}

func (s *Source) UpdateTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error) {
	out, err := s.next.UpdateTransaction(ctx, t)
	if err == nil {
		s.Invalidate(KeyTransactions, recordKey(KeyTransactions, t.ID), KeyAccounts, KeyDashboard)
	}
	return out, err
}

func (s *Source) DeleteTransaction(ctx context.Context, id string) error {
	err := s.next.DeleteTransaction(ctx, id)
	if err == nil {
		s.Invalidate(KeyTransactions, recordKey(KeyTransactions, id), KeyAccounts, KeyDashboard)
	}
	return err
}

// Assets

func (s *Source) ListAssets(ctx context.Context) ([]core.Asset, error) {
	v, err := load(ctx, s, KeyAssets, s.next.ListAssets)
	return slices.Clone(v), err
}

func (s *Source) GetAsset(ctx context.Context, id string) (core.Asset, error) {
	return load(ctx, s, recordKey(KeyAssets, id), func(ctx context.Context) (core.Asset, error) {
		return s.next.GetAsset(ctx, id)
	})
}

func (s *Source) CreateAsset(ctx context.Context, a core.Asset) (core.Asset, error) {
	out, err := s.next.CreateAsset(ctx, a)
	if err == nil {
		s.Invalidate(KeyAssets, KeyDashboard)
	}
	return out, err
}

func (s *Source) UpdateAsset(ctx context.Context, a core.Asset) (core.Asset, error) {
	out, err := s.next.UpdateAsset(ctx, a)
	if err == nil {
		s.Invalidate(KeyAssets, recordKey(KeyAssets, a.ID), KeyDashboard)
	}
	return out, err
}

func (s *Source) DeleteAsset(ctx context.Context, id string) error {
	err := s.next.DeleteAsset(ctx, id)
	if err == nil {
		s.Invalidate(KeyAssets, recordKey(KeyAssets, id), KeyDashboard)
	}
	return err
}

// Debts

func (s *Source) ListDebts(ctx context.Context) ([]core.Debt, error) {
	v, err := load(ctx, s, KeyDebts, s.next.ListDebts)
	return slices.Clone(v), err
}

func (s *Source) GetDebt(ctx context.Context, id string) (core.Debt, error) {
	return load(ctx, s, recordKey(KeyDebts, id), func(ctx context.Context) (core.Debt, error) {
		return s.next.GetDebt(ctx, id)
	})
}

func (s *Source) CreateDebt(ctx context.Context, d core.Debt) (core.Debt, error) {
	out, err := s.next.CreateDebt(ctx, d)
	if err == nil {
		s.Invalidate(KeyDebts, KeyDashboard)
	}
	return out, err
}

func (s *Source) UpdateDebt(ctx context.Context, d core.Debt) (core.Debt, error) {
	out, err := s.next.UpdateDebt(ctx, d)
	if err == nil {
		s.Invalidate(KeyDebts, recordKey(KeyDebts, d.ID), KeyDashboard)
	}
	return out, err
}

func (s *Source) DeleteDebt(ctx context.Context, id string) error {
	err := s.next.DeleteDebt(ctx, id)
	if err == nil {
		s.Invalidate(KeyDebts, recordKey(KeyDebts, id), KeyDashboard)
	}
	return err
}

// Insights

func (s *Source) ListInsights(ctx context.Context) ([]core.Insight, error) {
	v, err := load(ctx, s, KeyInsights, s.next.ListInsights)
	return slices.Clone(v), err
}
