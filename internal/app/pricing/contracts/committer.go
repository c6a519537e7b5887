package contracts

import (
	"context"
	"time"

	"github.com/light-bringer/pricing-service/internal/pkg/committer"
)

// Committer applies a commit plan atomically.
type Committer interface {
	Apply(ctx context.Context, plan *committer.CommitPlan) error
	ApplyWithVersionCheck(ctx context.Context, check committer.VersionCheck, plan *committer.CommitPlan) error
}

// PricingMetrics records calculation and rounding activity.
type PricingMetrics interface {
	ObserveCalculation(kind, policy string, elapsed time.Duration)
	ObserveRounding(category string)
}
