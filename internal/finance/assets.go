package finance

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"finboard/internal/core"
)

// ErrUnknownSortField is returned by SortAssets for a column it cannot order by.
var ErrUnknownSortField = errors.New("unknown sort field")

var hundred = decimal.NewFromInt(100)

// GainLoss is the change in value of a single asset since purchase.
type GainLoss struct {
	Amount     decimal.Decimal `json:"amount"`
	Percentage float64         `json:"percentage"`
}

// AssetGainLoss compares the current value with the purchase price.
// A non-positive purchase price is rejected instead of producing an infinite
// percentage.
func AssetGainLoss(a core.Asset) (GainLoss, error) {
	if !a.PurchasePrice.IsPositive() {
		return GainLoss{}, core.ErrInvalidPurchasePrice
	}
	amount := a.CurrentValue.Sub(a.PurchasePrice)
	pct, _ := amount.Div(a.PurchasePrice).Mul(hundred).Float64()
	return GainLoss{Amount: amount, Percentage: pct}, nil
}

// DebtProgress reports how much of the original amount has been repaid, as a
// percentage clamped to [0, 100].
func DebtProgress(d core.Debt) float64 {
	if !d.OriginalAmount.IsPositive() {
		return 0
	}
	paid := d.OriginalAmount.Sub(d.CurrentBalance)
	pct, _ := paid.Div(d.OriginalAmount).Mul(hundred).Float64()
	switch {
	case pct < 0:
		return 0
	case pct > 100:
		return 100
	}
	return pct
}

// AssetSortField names a sortable asset column.
type AssetSortField string

const (
	SortByName          AssetSortField = "name"
	SortByCurrentValue  AssetSortField = "current_value"
	SortByPurchasePrice AssetSortField = "purchase_price"
	SortByPurchaseDate  AssetSortField = "purchase_date"
	SortByType          AssetSortField = "type"
)

// SortAssets returns a copy of assets ordered by field. Equal keys keep
// their input order.
func SortAssets(assets []core.Asset, field AssetSortField, descending bool) ([]core.Asset, error) {
	var compare func(a, b core.Asset) int
	switch field {
	case SortByName:
		compare = func(a, b core.Asset) int { return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name)) }
	case SortByCurrentValue:
		compare = func(a, b core.Asset) int { return a.CurrentValue.Cmp(b.CurrentValue) }
	case SortByPurchasePrice:
		compare = func(a, b core.Asset) int { return a.PurchasePrice.Cmp(b.PurchasePrice) }
	case SortByPurchaseDate:
		compare = func(a, b core.Asset) int { return a.PurchaseDate.Compare(b.PurchaseDate.Time) }
	case SortByType:
		compare = func(a, b core.Asset) int { return strings.Compare(string(a.Type), string(b.Type)) }
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSortField, field)
	}

	out := make([]core.Asset, len(assets))
	copy(out, assets)
	sort.SliceStable(out, func(i, j int) bool {
		c := compare(out[i], out[j])
		if descending {
			return c > 0
		}
		return c < 0
	})
	return out, nil
}
