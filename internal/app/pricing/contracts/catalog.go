package contracts

import (
	"context"

	"github.com/light-bringer/pricing-service/internal/app/pricing/domain"
)

// CatalogLookup loads immutable catalog snapshots for pricing.
// Implementations return domain.ErrProductNotFound / domain.ErrHalfProductNotFound
// when the item does not exist.
type CatalogLookup interface {
	GetProduct(ctx context.Context, productID string) (*domain.ProductCatalog, error)
	GetHalfProduct(ctx context.Context, halfProductID string) (*domain.HalfProductCatalog, error)
}
