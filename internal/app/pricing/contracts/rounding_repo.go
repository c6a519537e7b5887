package contracts

import (
	"context"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/pricing-service/internal/pkg/committer"
)

// RoundingTableRepository defines persistence for rounding tables.
type RoundingTableRepository interface {
	// Get returns ok=false when the category has never been stored.
	Get(ctx context.Context, category domain.RoundingCategory) (*domain.RoundingTable, bool, error)

	// ReplaceMuts rewrites the stored tiers of the table's category at table.Version.
	ReplaceMuts(table *domain.RoundingTable) ([]*spanner.Mutation, error)

	// VersionCheck guards a rewrite of the category against a stored version other than expected.
	VersionCheck(category domain.RoundingCategory, expected int64) committer.VersionCheck
}
