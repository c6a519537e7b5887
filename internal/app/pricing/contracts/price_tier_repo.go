package contracts

import (
	"context"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/pricing-service/internal/app/pricing/domain"
)

// PriceTierRepository defines persistence for half-product quantity tiers.
type PriceTierRepository interface {
	// ListByHalfProduct returns the tiers ordered by minimum quantity.
	ListByHalfProduct(ctx context.Context, halfProductID string) ([]domain.PriceTier, error)

	// ReplaceMuts removes every tier of the half product and writes the given ones.
	// Every tier must carry a TierID.
	ReplaceMuts(halfProductID string, tiers []domain.PriceTier) ([]*spanner.Mutation, error)
}
