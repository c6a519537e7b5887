package replace_price_tiers

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/light-bringer/pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/pricing-service/internal/pkg/clock"
	"github.com/light-bringer/pricing-service/internal/pkg/committer"
)

// Request contains the complete new tier configuration of a half product.
// An empty Tiers slice removes every tier.
type Request struct {
	HalfProductID string
	Tiers         []domain.PriceTier
}

// Interactor handles the replace price tiers use case.
type Interactor struct {
	catalog    contracts.CatalogLookup
	repo       contracts.PriceTierRepository
	outboxRepo contracts.OutboxRepository
	committer  contracts.Committer
	clock      clock.Clock
	logger     zerolog.Logger
}

// NewInteractor creates a new replace price tiers interactor.
func NewInteractor(
	catalog contracts.CatalogLookup,
	repo contracts.PriceTierRepository,
	outboxRepo contracts.OutboxRepository,
	committer contracts.Committer,
	clock clock.Clock,
	logger zerolog.Logger,
) *Interactor {
	return &Interactor{
		catalog:    catalog,
		repo:       repo,
		outboxRepo: outboxRepo,
		committer:  committer,
		clock:      clock,
		logger:     logger,
	}
}

// Execute validates the tiers and rewrites them in one commit. The stored tiers are
// returned in ascending order with fresh ids.
func (i *Interactor) Execute(ctx context.Context, req *Request) ([]domain.PriceTier, error) {
	if err := domain.ValidateTiers(req.Tiers); err != nil {
		return nil, err
	}
	if _, err := i.catalog.GetHalfProduct(ctx, req.HalfProductID); err != nil {
		return nil, err
	}

	tiers := domain.SortTiers(req.Tiers)
	for idx := range tiers {
		tiers[idx].TierID = uuid.New().String()
	}

	muts, err := i.repo.ReplaceMuts(req.HalfProductID, tiers)
	if err != nil {
		return nil, err
	}
	plan := committer.NewPlan()
	plan.AddMultiple(muts)

	outboxEvent, err := i.outboxRepo.NewEvent(&domain.PriceTiersReplacedEvent{
		HalfProductID: req.HalfProductID,
		Tiers:         tiers,
		ReplacedAt:    i.clock.Now(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to serialize event: %w", err)
	}
	plan.Add(i.outboxRepo.InsertMut(outboxEvent))

	if err := i.committer.Apply(ctx, plan); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	i.logger.Info().
		Str("half_product_id", req.HalfProductID).
		Int("tiers", len(tiers)).
		Msg("price tiers replaced")
	return tiers, nil
}
