package list_price_tiers

import (
	"context"

	"github.com/light-bringer/pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/pricing-service/internal/app/pricing/domain"
)

// Request contains the half product whose tiers are listed.
type Request struct {
	HalfProductID string
}

// Query handles the list price tiers query use case.
type Query struct {
	catalog contracts.CatalogLookup
	repo    contracts.PriceTierRepository
}

// NewQuery creates a new list price tiers query.
func NewQuery(catalog contracts.CatalogLookup, repo contracts.PriceTierRepository) *Query {
	return &Query{catalog: catalog, repo: repo}
}

// Execute returns the tiers in ascending minimum quantity. An unknown half product
// returns domain.ErrHalfProductNotFound rather than an empty list.
func (q *Query) Execute(ctx context.Context, req *Request) ([]domain.PriceTier, error) {
	if _, err := q.catalog.GetHalfProduct(ctx, req.HalfProductID); err != nil {
		return nil, err
	}
	tiers, err := q.repo.ListByHalfProduct(ctx, req.HalfProductID)
	if err != nil {
		return nil, err
	}
	return domain.SortTiers(tiers), nil
}
