package sheets

import (
	"context"

	"finboard/internal/core"
	"finboard/internal/services"
)

// Ports for outbound adapters.
type (
	// Exporter writes finance data to a spreadsheet and returns a reference
	// to the written range.
	Exporter interface {
		ExportTransactions(ctx context.Context, txs []core.Transaction) (rangeRef string, err error)
		ExportDashboard(ctx context.Context, d services.Dashboard) (rangeRef string, err error)
	}
)
