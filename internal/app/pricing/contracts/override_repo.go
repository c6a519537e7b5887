package contracts

import (
	"context"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/pricing-service/internal/app/pricing/domain"
)

// OverrideKey identifies one override row. At most one row exists per key.
type OverrideKey struct {
	GroupID  string
	ItemKind domain.ItemKind
	ItemID   string
}

// OverrideRepository defines persistence for group override prices.
// Repositories return mutations, they don't apply them (Golden Mutation Pattern).
type OverrideRepository interface {
	// Find returns ok=false when no override exists for the key.
	Find(ctx context.Context, key OverrideKey) (domain.Money, bool, error)

	// UpsertMut creates or replaces the override for the key.
	UpsertMut(key OverrideKey, price domain.Money) *spanner.Mutation

	// DeleteMut removes the override for the key.
	DeleteMut(key OverrideKey) *spanner.Mutation
}
