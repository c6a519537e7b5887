package calculate_half_product_price

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/light-bringer/pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/pricing-service/internal/app/pricing/pricingtest"
)

type fixture struct {
	catalog   *pricingtest.Catalog
	clients   *pricingtest.Clients
	overrides *pricingtest.Overrides
	tiers     *pricingtest.Tiers
	metrics   *pricingtest.Metrics
	uc        *Interactor
}

func qty(n int64) *int64 { return &n }

func newFixture() *fixture {
	f := &fixture{
		catalog:   pricingtest.NewCatalog(),
		clients:   pricingtest.NewClients(),
		overrides: pricingtest.NewOverrides(),
		tiers:     pricingtest.NewTiers(),
		metrics:   pricingtest.NewMetrics(),
	}
	f.catalog.HalfProducts["half-1"] = pricingtest.HalfProduct()
	f.tiers.ByHalfProduct["half-1"] = []domain.PriceTier{
		{TierID: "t-2", MinQuantity: 50, DiscountRate: decimal.RequireFromString("0.85")},
		{TierID: "t-1", MinQuantity: 1, MaxQuantity: qty(49), DiscountRate: decimal.NewFromInt(1)},
	}
	f.uc = NewInteractor(f.catalog, f.clients, f.overrides, f.tiers, f.metrics, zerolog.Nop())
	return f
}

func TestCalculateHalfProductPrice_ScenarioC(t *testing.T) {
	f := newFixture()

	result, err := f.uc.Execute(context.Background(), &Request{HalfProductID: "half-1", Quantity: 60})
	require.NoError(t, err)

	assert.True(t, result.DiscountRate.Equal(decimal.RequireFromString("0.85")))
	assert.Equal(t, "quantity discount (≥50 units)", result.AppliedPolicy)
	assert.Equal(t, "4250", result.FinalUnitPrice.String())
	assert.Equal(t, "255000", result.TotalPrice.String())
	require.NotNil(t, result.MatchedTier)
	assert.Equal(t, "t-2", result.MatchedTier.TierID)
	assert.Equal(t, 1, f.metrics.Calculations["half_product/quantity discount (≥50 units)"])
}

func TestCalculateHalfProductPrice_Options(t *testing.T) {
	f := newFixture()

	result, err := f.uc.Execute(context.Background(), &Request{
		HalfProductID:   "half-1",
		Quantity:        1,
		SpecificationID: pricingtest.StringPtr("a4"),
		Selections: []domain.CustomSelection{
			{OptionID: "engraving", Value: "name"},
			{OptionID: "engraving", Value: "unknown"},
			{OptionID: "missing", Value: "name"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "1700", result.OptionPrice.String())
	assert.Equal(t, "6700", result.UnitPrice.String())
	assert.Equal(t, "quantity discount (≥1 units)", result.AppliedPolicy)
}

func TestCalculateHalfProductPrice_NoTier(t *testing.T) {
	f := newFixture()
	f.tiers.ByHalfProduct["half-1"] = []domain.PriceTier{
		{TierID: "t-1", MinQuantity: 10, MaxQuantity: qty(20), DiscountRate: decimal.RequireFromString("0.9")},
	}

	result, err := f.uc.Execute(context.Background(), &Request{HalfProductID: "half-1", Quantity: 5})
	require.NoError(t, err)
	assert.Equal(t, domain.PolicyStandard, result.AppliedPolicy)
	assert.Nil(t, result.MatchedTier)
}

func TestCalculateHalfProductPrice_TierFirstMatch(t *testing.T) {
	f := newFixture()
	f.tiers.ByHalfProduct["half-1"] = []domain.PriceTier{
		{TierID: "c", MinQuantity: 50, DiscountRate: decimal.RequireFromString("0.8")},
		{TierID: "a", MinQuantity: 1, MaxQuantity: qty(9), DiscountRate: decimal.RequireFromString("0.95")},
		{TierID: "b", MinQuantity: 10, MaxQuantity: qty(49), DiscountRate: decimal.RequireFromString("0.9")},
	}

	result, err := f.uc.Execute(context.Background(), &Request{HalfProductID: "half-1", Quantity: 10})
	require.NoError(t, err)
	assert.Equal(t, "0.9", result.DiscountRate.String())
}

func TestCalculateHalfProductPrice_GroupWithoutOverrideKeepsTier(t *testing.T) {
	f := newFixture()
	f.clients.Join("client-1", pricingtest.Group("g-1", 40, 40, 40))

	result, err := f.uc.Execute(context.Background(), &Request{
		HalfProductID: "half-1",
		ClientID:      pricingtest.StringPtr("client-1"),
		Quantity:      60,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.QuantityPolicy(50), result.AppliedPolicy)
}

func TestCalculateHalfProductPrice_OverrideWinsOverTier(t *testing.T) {
	f := newFixture()
	f.clients.Join("client-1", pricingtest.Group("g-1", 0, 0, 0))
	f.overrides.Prices[contracts.OverrideKey{GroupID: "g-1", ItemKind: domain.ItemHalfProduct, ItemID: "half-1"}] = domain.NewMoney(4000)

	result, err := f.uc.Execute(context.Background(), &Request{
		HalfProductID: "half-1",
		ClientID:      pricingtest.StringPtr("client-1"),
		Quantity:      60,
	})
	require.NoError(t, err)

	assert.Equal(t, "0.8", result.DiscountRate.String())
	assert.Equal(t, domain.PolicyGroupOverride, result.AppliedPolicy)
	assert.Equal(t, "240000", result.TotalPrice.String())
}

func TestCalculateHalfProductPrice_ZeroUnitPriceOverride(t *testing.T) {
	f := newFixture()
	f.catalog.HalfProducts["free"] = &domain.HalfProductCatalog{HalfProductID: "free", BasePrice: domain.Zero()}
	f.clients.Join("client-1", pricingtest.Group("g-1", 0, 0, 0))
	f.overrides.Prices[contracts.OverrideKey{GroupID: "g-1", ItemKind: domain.ItemHalfProduct, ItemID: "free"}] = domain.NewMoney(300)

	result, err := f.uc.Execute(context.Background(), &Request{
		HalfProductID: "free",
		ClientID:      pricingtest.StringPtr("client-1"),
		Quantity:      2,
	})
	require.NoError(t, err)

	assert.True(t, result.DiscountRate.IsZero())
	assert.True(t, result.TotalPrice.IsZero())
	assert.Equal(t, domain.AnomalyZeroUnitOverride, result.Anomaly)
}

func TestCalculateHalfProductPrice_Errors(t *testing.T) {
	t.Run("unknown half product", func(t *testing.T) {
		f := newFixture()
		_, err := f.uc.Execute(context.Background(), &Request{HalfProductID: "missing", Quantity: 1})
		assert.ErrorIs(t, err, domain.ErrHalfProductNotFound)
	})

	t.Run("negative quantity", func(t *testing.T) {
		f := newFixture()
		_, err := f.uc.Execute(context.Background(), &Request{HalfProductID: "half-1", Quantity: -1})
		assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
	})

	t.Run("tier store failure", func(t *testing.T) {
		f := newFixture()
		f.tiers.Err = pricingtest.ErrInjected
		_, err := f.uc.Execute(context.Background(), &Request{HalfProductID: "half-1", Quantity: 1})
		assert.ErrorIs(t, err, pricingtest.ErrInjected)
	})
}

func TestCalculateHalfProductPrice_FailedSpans(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	previous := otel.GetTracerProvider()
	otel.SetTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder)))
	t.Cleanup(func() { otel.SetTracerProvider(previous) })

	f := newFixture()
	_, err := f.uc.Execute(context.Background(), &Request{HalfProductID: "half-1", Quantity: 0})
	require.ErrorIs(t, err, domain.ErrInvalidQuantity)
	f.tiers.Err = pricingtest.ErrInjected
	_, err = f.uc.Execute(context.Background(), &Request{HalfProductID: "half-1", Quantity: 1})
	require.ErrorIs(t, err, pricingtest.ErrInjected)

	spans := recorder.Ended()
	require.Len(t, spans, 2)
	for _, span := range spans {
		assert.Equal(t, codes.Error, span.Status().Code)
		assert.Len(t, span.Events(), 1)
	}
}
