// Package memory is an in-process datasource used for demos, tests and
// offline runs.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"finboard/internal/core"
	"finboard/internal/datasource"
)

// table keeps records in insertion order. clone, when set, detaches
// pointer fields so callers never share storage with the table.
type table[T any] struct {
	items []T
	id    func(T) string
	clone func(T) T
}

func (t *table[T]) copyOf(v T) T {
	if t.clone == nil {
		return v
	}
	return t.clone(v)
}

func (t *table[T]) list() []T {
	out := make([]T, len(t.items))
	for i, it := range t.items {
		out[i] = t.copyOf(it)
	}
	return out
}

func (t *table[T]) add(v T) (T, error) {
	if t.index(t.id(v)) >= 0 {
		var zero T
		return zero, fmt.Errorf("%w: %s", datasource.ErrConflict, t.id(v))
	}
	t.items = append(t.items, t.copyOf(v))
	return v, nil
}

func (t *table[T]) index(id string) int {
	for i, it := range t.items {
		if t.id(it) == id {
			return i
		}
	}
	return -1
}

func (t *table[T]) get(id string) (T, error) {
	if i := t.index(id); i >= 0 {
		return t.copyOf(t.items[i]), nil
	}
	var zero T
	return zero, fmt.Errorf("%w: %s", datasource.ErrNotFound, id)
}

func (t *table[T]) put(v T) error {
	i := t.index(t.id(v))
	if i < 0 {
		return fmt.Errorf("%w: %s", datasource.ErrNotFound, t.id(v))
	}
	t.items[i] = t.copyOf(v)
	return nil
}

func (t *table[T]) remove(id string) error {
	i := t.index(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", datasource.ErrNotFound, id)
	}
	t.items = append(t.items[:i], t.items[i+1:]...)
	return nil
}

// Store is a mutex-guarded datasource.Source. Records are validated on the
// way in and copied on the way out.
type Store struct {
	mu           sync.RWMutex
	accounts     table[core.Account]
	transactions table[core.Transaction]
	assets       table[core.Asset]
	debts        table[core.Debt]
	insights     []core.Insight

	now   func() time.Time
	newID func() string
}

var _ datasource.Source = (*Store)(nil)

// New returns an empty store.
func New() *Store {
	return &Store{
		accounts: table[core.Account]{
			id: func(a core.Account) string { return a.ID },
			clone: func(a core.Account) core.Account {
				a.InterestRate = cloneFloat(a.InterestRate)
				return a
			},
		},
		transactions: table[core.Transaction]{id: func(t core.Transaction) string { return t.ID }},
		assets: table[core.Asset]{
			id: func(a core.Asset) string { return a.ID },
			clone: func(a core.Asset) core.Asset {
				a.AppreciationRate = cloneFloat(a.AppreciationRate)
				return a
			},
		},
		debts: table[core.Debt]{id: func(d core.Debt) string { return d.ID }},
		now:   time.Now,
		newID: uuid.NewString,
	}
}

func cloneFloat(f *float64) *float64 {
	if f == nil {
		return nil
	}
	v := *f
	return &v
}

func (s *Store) assignID(id string) string {
	if id != "" {
		return id
	}
	return s.newID()
}

func requireID(id string) error {
	if id == "" {
		return core.ErrEmptyID
	}
	return nil
}

// Accounts

func (s *Store) ListAccounts(ctx context.Context) ([]core.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accounts.list(), nil
}

func (s *Store) GetAccount(ctx context.Context, id string) (core.Account, error) {
	if err := ctx.Err(); err != nil {
		return core.Account{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accounts.get(id)
}

func (s *Store) CreateAccount(ctx context.Context, a core.Account) (core.Account, error) {
	if err := ctx.Err(); err != nil {
		return core.Account{}, err
	}
	if err := a.Validate(); err != nil {
		return core.Account{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	a.ID = s.assignID(a.ID)
	a.LastUpdated = s.now().UTC()
	return s.accounts.add(a)
}

func (s *Store) UpdateAccount(ctx context.Context, a core.Account) (core.Account, error) {
	if err := ctx.Err(); err != nil {
		return core.Account{}, err
	}
	if err := requireID(a.ID); err != nil {
		return core.Account{}, err
	}
	if err := a.Validate(); err != nil {
		return core.Account{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	a.LastUpdated = s.now().UTC()
	if err := s.accounts.put(a); err != nil {
		return core.Account{}, err
	}
	return a, nil
}

func (s *Store) DeleteAccount(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accounts.remove(id)
}

// Transactions

func (s *Store) ListTransactions(ctx context.Context) ([]core.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.transactions.list(), nil
}

func (s *Store) GetTransaction(ctx context.Context, id string) (core.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return core.Transaction{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.transactions.get(id)
}

func (s *Store) CreateTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return core.Transaction{}, err
	}
	if err := t.Validate(); err != nil {
		return core.Transaction{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	t.ID = s.assignID(t.ID)
	return s.transactions.add(t)
}

func (s *Store) UpdateTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return core.Transaction{}, err
	}
	if err := requireID(t.ID); err != nil {
		return core.Transaction{}, err
	}
	if err := t.Validate(); err != nil {
		return core.Transaction{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.transactions.put(t); err != nil {
		return core.Transaction{}, err
	}
	return t, nil
}

func (s *Store) DeleteTransaction(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.transactions.remove(id)
}

// Assets

func (s *Store) ListAssets(ctx context.Context) ([]core.Asset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.assets.list(), nil
}

func (s *Store) GetAsset(ctx context.Context, id string) (core.Asset, error) {
	if err := ctx.Err(); err != nil {
		return core.Asset{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.assets.get(id)
}

func (s *Store) CreateAsset(ctx context.Context, a core.Asset) (core.Asset, error) {
	if err := ctx.Err(); err != nil {
		return core.Asset{}, err
	}
	if err := a.Validate(); err != nil {
		return core.Asset{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	a.ID = s.assignID(a.ID)
	a.LastUpdated = s.now().UTC()
	return s.assets.add(a)
}

func (s *Store) UpdateAsset(ctx context.Context, a core.Asset) (core.Asset, error) {
	if err := ctx.Err(); err != nil {
		return core.Asset{}, err
	}
	if err := requireID(a.ID); err != nil {
		return core.Asset{}, err
	}
	if err := a.Validate(); err != nil {
		return core.Asset{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	a.LastUpdated = s.now().UTC()
	if err := s.assets.put(a); err != nil {
		return core.Asset{}, err
	}
	return a, nil
}

func (s *Store) DeleteAsset(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.assets.remove(id)
}

// Debts

func (s *Store) ListDebts(ctx context.Context) ([]core.Debt, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.debts.list(), nil
}

func (s *Store) GetDebt(ctx context.Context, id string) (core.Debt, error) {
	if err := ctx.Err(); err != nil {
		return core.Debt{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.debts.get(id)
}

func (s *Store) CreateDebt(ctx context.Context, d core.Debt) (core.Debt, error) {
	if err := ctx.Err(); err != nil {
		return core.Debt{}, err
	}
	if err := d.Validate(); err != nil {
		return core.Debt{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	d.ID = s.assignID(d.ID)
	d.LastUpdated = s.now().UTC()
	return s.debts.add(d)
}

func (s *Store) UpdateDebt(ctx context.Context, d core.Debt) (core.Debt, error) {
	if err := ctx.Err(); err != nil {
		return core.Debt{}, err
	}
	if err := requireID(d.ID); err != nil {
		return core.Debt{}, err
	}
	if err := d.Validate(); err != nil {
		return core.Debt{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	d.LastUpdated = s.now().UTC()
	if err := s.debts.put(d); err != nil {
		return core.Debt{}, err
	}
	return d, nil
}

func (s *Store) DeleteDebt(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.debts.remove(id)
}

// Insights

func (s *Store) ListInsights(ctx context.Context) ([]core.Insight, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]core.Insight(nil), s.insights...), nil
}

// AddInsight appends a generated insight.
func (s *Store) AddInsight(i core.Insight) error {
	if err := i.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i.ID = s.assignID(i.ID)
	s.insights = append(s.insights, i)
	return nil
}
