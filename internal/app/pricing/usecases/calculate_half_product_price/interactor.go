package calculate_half_product_price

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/light-bringer/pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/pricing-service/internal/app/pricing/domain"
)

// Request contains the half-product order line to price.
type Request struct {
	HalfProductID   string
	ClientID        *string
	Quantity        int64
	SpecificationID *string
	Selections      []domain.CustomSelection
}

// Interactor handles the half-product price calculation use case.
type Interactor struct {
	catalog   contracts.CatalogLookup
	clients   contracts.ClientDirectory
	overrides contracts.OverrideRepository
	tiers     contracts.PriceTierRepository
	metrics   contracts.PricingMetrics
	logger    zerolog.Logger
}

// NewInteractor creates a new calculate half product price interactor.
func NewInteractor(
	catalog contracts.CatalogLookup,
	clients contracts.ClientDirectory,
	overrides contracts.OverrideRepository,
	tiers contracts.PriceTierRepository,
	metrics contracts.PricingMetrics,
	logger zerolog.Logger,
) *Interactor {
	return &Interactor{
		catalog:   catalog,
		clients:   clients,
		overrides: overrides,
		tiers:     tiers,
		metrics:   metrics,
		logger:    logger,
	}
}

// Execute prices one half-product line. The quantity tier is evaluated first and a
// group override, when present, replaces it.
func (i *Interactor) Execute(ctx context.Context, req *Request) (*domain.CalculationResult, error) {
	ctx, span := otel.Tracer("pricing.CalculateHalfProductPrice").Start(ctx, "CalculateHalfProductPrice.Execute")
	defer span.End()
	start := time.Now()

	if err := domain.ValidateQuantity(req.Quantity); err != nil {
		return nil, failSpan(span, err)
	}

	halfProduct, err := i.catalog.GetHalfProduct(ctx, req.HalfProductID)
	if err != nil {
		return nil, failSpan(span, err)
	}

	quote := halfProduct.ResolveOptions(req.SpecificationID, req.Selections)
	optionPrice := quote.OptionPrice()
	unitPrice := halfProduct.BasePrice.Add(optionPrice)

	tiers, err := i.tiers.ListByHalfProduct(ctx, req.HalfProductID)
	if err != nil {
		return nil, failSpan(span, err)
	}
	var matched *domain.PriceTier
	if tier, ok := domain.MatchTier(tiers, req.Quantity); ok {
		matched = &tier
	}

	group, override, err := i.lookupGroupOverride(ctx, req.ClientID, req.HalfProductID)
	if err != nil {
		return nil, failSpan(span, err)
	}

	decision := domain.ResolveHalfProductDiscount(domain.HalfProductDiscountInput{
		UnitPrice: unitPrice,
		Group:     group,
		Override:  override,
		Tier:      matched,
	})

	result := domain.NewCalculationResult(halfProduct.BasePrice, optionPrice, req.Quantity, decision)
	result.MatchedTier = matched

	span.SetAttributes(
		attribute.String("pricing.half_product_id", req.HalfProductID),
		attribute.Int64("pricing.quantity", req.Quantity),
		attribute.String("pricing.applied_policy", result.AppliedPolicy),
	)
	if i.metrics != nil {
		i.metrics.ObserveCalculation(string(domain.ItemHalfProduct), result.AppliedPolicy, time.Since(start))
	}

	i.logger.Debug().
		Str("half_product_id", req.HalfProductID).
		Int64("quantity", req.Quantity).
		Bool("tier_matched", matched != nil).
		Str("applied_policy", result.AppliedPolicy).
		Str("total_price", result.TotalPrice.String()).
		Msg("half product price calculated")

	return &result, nil
}

// lookupGroupOverride returns a nil group for anonymous or ungrouped clients and a nil
// override when the group has no row for the half product.
func (i *Interactor) lookupGroupOverride(ctx context.Context, clientID *string, halfProductID string) (*domain.ClientGroup, *domain.Money, error) {
	if clientID == nil || *clientID == "" {
		return nil, nil, nil
	}
	group, ok, err := i.clients.GroupForClient(ctx, *clientID)
	if err != nil || !ok {
		return nil, nil, err
	}

	price, ok, err := i.overrides.Find(ctx, contracts.OverrideKey{
		GroupID:  group.GroupID,
		ItemKind: domain.ItemHalfProduct,
		ItemID:   halfProductID,
	})
	if err != nil {
		return nil, nil, err
	}
	if !ok {
		return group, nil, nil
	}
	return group, &price, nil
}

func failSpan(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}
