package finance

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finboard/internal/core"
)

func TestAssetGainLoss(t *testing.T) {
	got, err := AssetGainLoss(core.Asset{CurrentValue: d("450000"), PurchasePrice: d("380000")})
	require.NoError(t, err)
	assert.Equal(t, "70000", got.Amount.String())
	assert.InDelta(t, 18.421052631578947, got.Percentage, 1e-9)

	loss, err := AssetGainLoss(core.Asset{CurrentValue: d("18000"), PurchasePrice: d("24000")})
	require.NoError(t, err)
	assert.Equal(t, "-6000", loss.Amount.String())
	assert.InDelta(t, -25.0, loss.Percentage, 1e-9)

	_, err = AssetGainLoss(core.Asset{CurrentValue: d("10"), PurchasePrice: decimal.Zero})
	assert.ErrorIs(t, err, core.ErrInvalidPurchasePrice)
}

func TestSortAssets(t *testing.T) {
	in := []core.Asset{
		{ID: "house", Name: "House", Type: core.RealEstate, CurrentValue: d("450000"), PurchasePrice: d("380000"), PurchaseDate: core.NewDate(2019, 6, 1)},
		{ID: "car", Name: "car", Type: core.Vehicle, CurrentValue: d("18000"), PurchasePrice: d("28000"), PurchaseDate: core.NewDate(2021, 3, 10)},
		{ID: "fund", Name: "Index Fund", Type: core.InvestmentAsset, CurrentValue: d("18000"), PurchasePrice: d("15000"), PurchaseDate: core.NewDate(2020, 1, 5)},
	}
	ids := func(as []core.Asset) []string {
		out := make([]string, len(as))
		for i, a := range as {
			out[i] = a.ID
		}
		return out
	}

	cases := []struct {
		field AssetSortField
		desc  bool
		want  []string
	}{
		{SortByName, false, []string{"car", "house", "fund"}},
		{SortByCurrentValue, false, []string{"car", "fund", "house"}},
		{SortByCurrentValue, true, []string{"house", "car", "fund"}},
		{SortByPurchasePrice, true, []string{"house", "car", "fund"}},
		{SortByPurchaseDate, false, []string{"house", "fund", "car"}},
		{SortByType, false, []string{"fund", "house", "car"}},
	}
	for _, tc := range cases {
		got, err := SortAssets(in, tc.field, tc.desc)
		require.NoError(t, err)
		assert.Equal(t, tc.want, ids(got), "%s desc=%v", tc.field, tc.desc)
	}
	assert.Equal(t, []string{"house", "car", "fund"}, ids(in))

	_, err := SortAssets(in, "color", false)
	assert.ErrorIs(t, err, ErrUnknownSortField)
}
