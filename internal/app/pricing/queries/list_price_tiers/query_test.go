package list_price_tiers

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/pricing-service/internal/app/pricing/pricingtest"
)

func TestListPriceTiers(t *testing.T) {
	catalog := pricingtest.NewCatalog()
	catalog.HalfProducts["half-1"] = pricingtest.HalfProduct()
	tiers := pricingtest.NewTiers()
	upper := int64(9)
	tiers.ByHalfProduct["half-1"] = []domain.PriceTier{
		{TierID: "b", MinQuantity: 10, DiscountRate: decimal.RequireFromString("0.9")},
		{TierID: "a", MinQuantity: 1, MaxQuantity: &upper, DiscountRate: decimal.NewFromInt(1)},
	}
	q := NewQuery(catalog, tiers)

	got, err := q.Execute(context.Background(), &Request{HalfProductID: "half-1"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].TierID)

	_, err = q.Execute(context.Background(), &Request{HalfProductID: "missing"})
	assert.ErrorIs(t, err, domain.ErrHalfProductNotFound)
}
