package calculate_product_price

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

// Request contains the order line to price.
// ClientID nil (or empty) prices the line for an anonymous buyer.
type Request struct {
	ProductID  string
	ClientID   *string
	Quantity   int64
	Selections []domain.ProductSelection
}

// Interactor handles the product price calculation use case.
type Interactor struct {
	catalog   contracts.CatalogLookup
	clients   contracts.ClientDirectory
	overrides contracts.OverrideRepository
	metrics   contracts.PricingMetrics
	logger    zerolog.Logger
}

// NewInteractor creates a new calculate product price interactor.
func NewInteractor(
	catalog contracts.CatalogLookup,
	clients contracts.ClientDirectory,
	overrides contracts.OverrideRepository,
	metrics contracts.PricingMetrics,
	logger zerolog.Logger,
) *Interactor {
	return &Interactor{
		catalog:   catalog,
		clients:   clients,
		overrides: overrides,
		metrics:   metrics,
		logger:    logger,
	}
}

// Execute prices one product line. Only a missing product is an error; a missing
// client, group or override falls back to the next rule of the discount chain.
func (i *Interactor) Execute(ctx context.Context, req *Request) (*domain.CalculationResult, error) {
	ctx, span := otel.Tracer("pricing.CalculateProductPrice").Start(ctx, "CalculateProductPrice.Execute")
	defer span.End()
	start := time.Now()

	if err := domain.ValidateQuantity(req.Quantity); err != nil {
		return nil, failSpan(span, err)
	}

	// 1. Load catalog snapshot
	product, err := i.catalog.GetProduct(ctx, req.ProductID)
	if err != nil {
		return nil, failSpan(span, err)
	}

	// 2. Resolve options
	quote := product.ResolveOptions(req.Selections)
	unitPrice := product.BasePrice.Add(quote.OptionPrice)

	// 3. Resolve group and override
	group, err := i.lookupGroup(ctx, req.ClientID)
	if err != nil {
		return nil, failSpan(span, err)
	}
	var override *domain.Money
	if group != nil {
		override, err = i.lookupOverride(ctx, group.GroupID, req.ProductID)
		if err != nil {
			return nil, failSpan(span, err)
		}
	}

	// 4. Discount chain
	decision := domain.ResolveProductDiscount(domain.ProductDiscountInput{
		UnitPrice: unitPrice,
		Group:     group,
		Override:  override,
		PaperType: quote.PaperType,
	})

	// 5. Derive amounts
	result := domain.NewCalculationResult(product.BasePrice, quote.OptionPrice, req.Quantity, decision)
	result.PaperType = quote.PaperType

	span.SetAttributes(
		attribute.String("pricing.product_id", req.ProductID),
		attribute.Int64("pricing.quantity", req.Quantity),
		attribute.String("pricing.applied_policy", result.AppliedPolicy),
	)
	if i.metrics != nil {
		i.metrics.ObserveCalculation(string(domain.ItemProduct), result.AppliedPolicy, time.Since(start))
	}

	evt := i.logger.Debug().
		Str("product_id", req.ProductID).
		Int64("quantity", req.Quantity).
		Str("paper_type", string(quote.PaperType)).
		Str("applied_policy", result.AppliedPolicy).
		Str("total_price", result.TotalPrice.String())
	if result.Anomaly != "" {
		evt = evt.Str("anomaly", result.Anomaly)
	}
	evt.Msg("product price calculated")

	return &result, nil
}

func (i *Interactor) lookupGroup(ctx context.Context, clientID *string) (*domain.ClientGroup, error) {
	if clientID == nil || *clientID == "" {
		return nil, nil
	}
	group, ok, err := i.clients.GroupForClient(ctx, *clientID)
	if err != nil || !ok {
		return nil, err
	}
	return group, nil
}

func (i *Interactor) lookupOverride(ctx context.Context, groupID, productID string) (*domain.Money, error) {
	price, ok, err := i.overrides.Find(ctx, contracts.OverrideKey{
		GroupID:  groupID,
		ItemKind: domain.ItemProduct,
		ItemID:   productID,
	})
	if err != nil || !ok {
		return nil, err
	}
	return &price, nil
}

func failSpan(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}
