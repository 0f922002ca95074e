package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"finboard/internal/core"
	"finboard/internal/datasource"
	"finboard/internal/log"
)

// Resource paths.
const (
	pathAccounts     = "/accounts"
	pathTransactions = "/transactions"
	pathAssets       = "/assets"
	pathDebts        = "/debts"
	pathInsights     = "/insights"
)

// pageLimit is the page size requested when listing.
const pageLimit = 100

// Client implements datasource.Source over the REST API.
type Client struct {
	session *Session
	logger  *log.Logger
}

var _ datasource.Source = (*Client)(nil)

// NewClient returns a client that authenticates with session.
func NewClient(session *Session) *Client {
	return &Client{
		session: session,
		logger:  session.logger.WithComponent(log.ComponentDatasource),
	}
}

// Session returns the session the client uses.
func (c *Client) Session() *Session { return c.session }

type page[T any] struct {
	Items      []T `json:"items"`
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"total_pages"`
}

// listAll walks every page of a list endpoint. Endpoints that return a bare
// array are accepted too.
func listAll[T any](ctx context.Context, c *Client, path string) ([]T, error) {
	var out []T
	for n := 1; ; n++ {
		q := url.Values{"page": {strconv.Itoa(n)}, "limit": {strconv.Itoa(pageLimit)}}
		var raw json.RawMessage
		if err := c.session.do(ctx, http.MethodGet, path, q, nil, &raw); err != nil {
			return nil, err
		}
		raw = bytes.TrimSpace(raw)
		if len(raw) == 0 {
			return out, nil
		}
		if raw[0] == '[' {
			var items []T
			if err := json.Unmarshal(raw, &items); err != nil {
				return nil, fmt.Errorf("decode list: %w", err)
			}
			return items, nil
		}

		var p page[T]
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, fmt.Errorf("decode page: %w", err)
		}
		out = append(out, p.Items...)
		if len(p.Items) == 0 || n >= p.TotalPages {
			return out, nil
		}
	}
}

func getOne[T any](ctx context.Context, c *Client, path, id string) (T, error) {
	var out T
	err := c.session.do(ctx, http.MethodGet, path+"/"+url.PathEscape(id), nil, nil, &out)
	return out, err
}

func send[T any](ctx context.Context, c *Client, method, path string, in T) (T, error) {
	var out T
	if err := c.session.do(ctx, method, path, nil, in, &out); err != nil {
		return out, err
	}
	return out, nil
}

func (c *Client) remove(ctx context.Context, path, id string) error {
	return c.session.do(ctx, http.MethodDelete, path+"/"+url.PathEscape(id), nil, nil, nil)
}

func (c *Client) logResult(ctx context.Context, op, kind, id string, n int, err error) {
	fields := log.NewFields().WithOperation(op).WithRecord(kind, id)
	if err != nil {
		c.logger.ErrorContext(ctx, "Datasource call failed", fields.WithError(err).ToSlice()...)
		return
	}
	if op == log.OpList {
		fields = fields.WithCount(n)
	}
	c.logger.DebugContext(ctx, "Datasource call succeeded", fields.ToSlice()...)
}

func requireID(id string) error {
	if id == "" {
		return core.ErrEmptyID
	}
	return nil
}

// Accounts

func (c *Client) ListAccounts(ctx context.Context) ([]core.Account, error) {
	out, err := listAll[core.Account](ctx, c, pathAccounts)
	c.logResult(ctx, log.OpList, "accounts", "", len(out), err)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	return out, nil
}

func (c *Client) GetAccount(ctx context.Context, id string) (core.Account, error) {
	out, err := getOne[core.Account](ctx, c, pathAccounts, id)
	if err != nil {
		return core.Account{}, fmt.Errorf("get account %s: %w", id, err)
	}
	return out, nil
}

func (c *Client) CreateAccount(ctx context.Context, a core.Account) (core.Account, error) {
	if err := a.Validate(); err != nil {
		return core.Account{}, err
	}
	out, err := send(ctx, c, http.MethodPost, pathAccounts, a)
	c.logResult(ctx, log.OpCreate, "accounts", out.ID, 0, err)
	if err != nil {
		return core.Account{}, fmt.Errorf("create account: %w", err)
	}
	return out, nil
}

func (c *Client) UpdateAccount(ctx context.Context, a core.Account) (core.Account, error) {
	if err := requireID(a.ID); err != nil {
		return core.Account{}, err
	}
	if err := a.Validate(); err != nil {
		return core.Account{}, err
	}
	out, err := send(ctx, c, http.MethodPut, pathAccounts+"/"+url.PathEscape(a.ID), a)
	c.logResult(ctx, log.OpUpdate, "accounts", a.ID, 0, err)
	if err != nil {
		return core.Account{}, fmt.Errorf("update account %s: %w", a.ID, err)
	}
	return out, nil
}

func (c *Client) DeleteAccount(ctx context.Context, id string) error {
	err := c.remove(ctx, pathAccounts, id)
	c.logResult(ctx, log.OpDelete, "accounts", id, 0, err)
	if err != nil {
		return fmt.Errorf("delete account %s: %w", id, err)
	}
	return nil
}

// Transactions

func (c *Client) ListTransactions(ctx context.Context) ([]core.Transaction, error) {
	out, err := listAll[core.Transaction](ctx, c, pathTransactions)
	c.logResult(ctx, log.OpList, "transactions", "", len(out), err)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return out, nil
}

func (c *Client) GetTransaction(ctx context.Context, id string) (core.Transaction, error) {
	out, err := getOne[core.Transaction](ctx, c, pathTransactions, id)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("get transaction %s: %w", id, err)
	}
	return out, nil
}

func (c *Client) CreateTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error) {
	if err := t.Validate(); err != nil {
		return core.Transaction{}, err
	}
	out, err := send(ctx, c, http.MethodPost, pathTransactions, t)
	c.logResult(ctx, log.OpCreate, "transactions", out.ID, 0, err)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("create transaction: %w", err)
	}
	return out, nil
}

func (c *Client) UpdateTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error) {
	if err := requireID(t.ID); err != nil {
		return core.Transaction{}, err
	}
	if err := t.Validate(); err != nil {
		return core.Transaction{}, err
	}
	out, err := send(ctx, c, http.MethodPut, pathTransactions+"/"+url.PathEscape(t.ID), t)
	c.logResult(ctx, log.OpUpdate, "transactions", t.ID, 0, err)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("update transaction %s: %w", t.ID, err)
	}
	return out, nil
}

func (c *Client) DeleteTransaction(ctx context.Context, id string) error {
	err := c.remove(ctx, pathTransactions, id)
	c.logResult(ctx, log.OpDelete, "transactions", id, 0, err)
	if err != nil {
		return fmt.Errorf("delete transaction %s: %w", id, err)
	}
	return nil
}

// Assets

func (c *Client) ListAssets(ctx context.Context) ([]core.Asset, error) {
	out, err := listAll[core.Asset](ctx, c, pathAssets)
	c.logResult(ctx, log.OpList, "assets", "", len(out), err)
	if err != nil {
		return nil, fmt.Errorf("list assets: %w", err)
	}
	return out, nil
}

func (c *Client) GetAsset(ctx context.Context, id string) (core.Asset, error) {
	out, err := getOne[core.Asset](ctx, c, pathAssets, id)
	if err != nil {
		return core.Asset{}, fmt.Errorf("get asset %s: %w", id, err)
	}
	return out, nil
}

func (c *Client) CreateAsset(ctx context.Context, a core.Asset) (core.Asset, error) {
	if err := a.Validate(); err != nil {
		return core.Asset{}, err
	}
	out, err := send(ctx, c, http.MethodPost, pathAssets, a)
	c.logResult(ctx, log.OpCreate, "assets", out.ID, 0, err)
	if err != nil {
		return core.Asset{}, fmt.Errorf("create asset: %w", err)
	}
	return out, nil
}

func (c *Client) UpdateAsset(ctx context.Context, a core.Asset) (core.Asset, error) {
	if err := requireID(a.ID); err != nil {
		return core.Asset{}, err
	}
	if err := a.Validate(); err != nil {
		return core.Asset{}, err
	}
	out, err := send(ctx, c, http.MethodPut, pathAssets+"/"+url.PathEscape(a.ID), a)
	c.logResult(ctx, log.OpUpdate, "assets", a.ID, 0, err)
	if err != nil {
		return core.Asset{}, fmt.Errorf("update asset %s: %w", a.ID, err)
	}
	return out, nil
}

func (c *Client) DeleteAsset(ctx context.Context, id string) error {
	err := c.remove(ctx, pathAssets, id)
	c.logResult(ctx, log.OpDelete, "assets", id, 0, err)
	if err != nil {
		return fmt.Errorf("delete asset %s: %w", id, err)
	}
	return nil
}

// Debts

func (c *Client) ListDebts(ctx context.Context) ([]core.Debt, error) {
	out, err := listAll[core.Debt](ctx, c, pathDebts)
	c.logResult(ctx, log.OpList, "debts", "", len(out), err)
	if err != nil {
		return nil, fmt.Errorf("list debts: %w", err)
	}
	return out, nil
}

func (c *Client) GetDebt(ctx context.Context, id string) (core.Debt, error) {
	out, err := getOne[core.Debt](ctx, c, pathDebts, id)
	if err != nil {
		return core.Debt{}, fmt.Errorf("get debt %s: %w", id, err)
	}
	return out, nil
}

func (c *Client) CreateDebt(ctx context.Context, d core.Debt) (core.Debt, error) {
	if err := d.Validate(); err != nil {
		return core.Debt{}, err
	}
	out, err := send(ctx, c, http.MethodPost, pathDebts, d)
	c.logResult(ctx, log.OpCreate, "debts", out.ID, 0, err)
	if err != nil {
		return core.Debt{}, fmt.Errorf("create debt: %w", err)
	}
	return out, nil
}

func (c *Client) UpdateDebt(ctx context.Context, d core.Debt) (core.Debt, error) {
	if err := requireID(d.ID); err != nil {
		return core.Debt{}, err
	}
	if err := d.Validate(); err != nil {
		return core.Debt{}, err
	}
	out, err := send(ctx, c, http.MethodPut, pathDebts+"/"+url.PathEscape(d.ID), d)
	c.logResult(ctx, log.OpUpdate, "debts", d.ID, 0, err)
	if err != nil {
		return core.Debt{}, fmt.Errorf("update debt %s: %w", d.ID, err)
	}
	return out, nil
}

func (c *Client) DeleteDebt(ctx context.Context, id string) error {
	err := c.remove(ctx, pathDebts, id)
	c.logResult(ctx, log.OpDelete, "debts", id, 0, err)
	if err != nil {
		return fmt.Errorf("delete debt %s: %w", id, err)
	}
	return nil
}

// Insights

func (c *Client) ListInsights(ctx context.Context) ([]core.Insight, error) {
	out, err := listAll[core.Insight](ctx, c, pathInsights)
	c.logResult(ctx, log.OpList, "insights", "", len(out), err)
	if err != nil {
		return nil, fmt.Errorf("list insights: %w", err)
	}
	return out, nil
}
