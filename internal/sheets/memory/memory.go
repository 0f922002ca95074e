// Package memory is an in-process sheets.Exporter. It keeps exported rows per
// tab, which backs dry runs and tests.
package memory

import (
	"context"
	"fmt"
	"sync"

	"finboard/internal/core"
	"finboard/internal/services"
	"finboard/internal/sheets"
)

type Exporter struct {
	mu   sync.Mutex
	tabs map[string][][]any
}

var _ sheets.Exporter = (*Exporter)(nil)

func New() *Exporter {
	return &Exporter{tabs: map[string][][]any{}}
}

// ExportTransactions stores the rows and returns a synthetic range reference.
func (e *Exporter) ExportTransactions(ctx context.Context, txs []core.Transaction) (string, error) {
	return e.append(ctx, "Transactions", sheets.TransactionRows(txs))
}

// ExportDashboard stores the dashboard rows.
func (e *Exporter) ExportDashboard(ctx context.Context, d services.Dashboard) (string, error) {
	return e.append(ctx, "Dashboard", sheets.DashboardRows(d))
}

func (e *Exporter) append(ctx context.Context, tab string, rows [][]any) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	first := len(e.tabs[tab]) + 1
	e.tabs[tab] = append(e.tabs[tab], rows...)
	return fmt.Sprintf("mem:%s!%d:%d", tab, first, len(e.tabs[tab])), nil
}

// Rows returns a copy of everything written to tab.
func (e *Exporter) Rows(tab string) [][]any {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([][]any(nil), e.tabs[tab]...)
}
