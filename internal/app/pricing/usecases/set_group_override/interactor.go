package set_group_override

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/light-bringer/pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/pricing-service/internal/pkg/clock"
	"github.com/light-bringer/pricing-service/internal/pkg/committer"
)

// Request contains the override to create or replace.
type Request struct {
	GroupID  string
	ItemKind domain.ItemKind
	ItemID   string
	Price    domain.Money
}

// Interactor handles the set group override use case.
type Interactor struct {
	clients    contracts.ClientDirectory
	catalog    contracts.CatalogLookup
	repo       contracts.OverrideRepository
	outboxRepo contracts.OutboxRepository
	committer  contracts.Committer
	clock      clock.Clock
	logger     zerolog.Logger
}

// NewInteractor creates a new set group override interactor.
func NewInteractor(
	clients contracts.ClientDirectory,
	catalog contracts.CatalogLookup,
	repo contracts.OverrideRepository,
	outboxRepo contracts.OutboxRepository,
	committer contracts.Committer,
	clock clock.Clock,
	logger zerolog.Logger,
) *Interactor {
	return &Interactor{
		clients:    clients,
		catalog:    catalog,
		repo:       repo,
		outboxRepo: outboxRepo,
		committer:  committer,
		clock:      clock,
		logger:     logger,
	}
}

// Execute upserts the override of one (group, item) pair following the Golden Mutation Pattern.
func (i *Interactor) Execute(ctx context.Context, req *Request) error {
	// 1. Validate
	if req.Price.IsNegative() {
		return domain.ErrInvalidOverride
	}
	if _, err := i.clients.GetGroup(ctx, req.GroupID); err != nil {
		return err
	}
	if err := i.ensureItem(ctx, req.ItemKind, req.ItemID); err != nil {
		return err
	}

	key := contracts.OverrideKey{GroupID: req.GroupID, ItemKind: req.ItemKind, ItemID: req.ItemID}

	// 2. Create commit plan
	plan := committer.NewPlan()
	plan.Add(i.repo.UpsertMut(key, req.Price))

	// 3. Add outbox event
	outboxEvent, err := i.outboxRepo.NewEvent(&domain.GroupOverrideSetEvent{
		GroupID:  req.GroupID,
		ItemKind: req.ItemKind,
		ItemID:   req.ItemID,
		Price:    req.Price,
		SetAt:    i.clock.Now(),
	})
	if err != nil {
		return fmt.Errorf("failed to serialize event: %w", err)
	}
	plan.Add(i.outboxRepo.InsertMut(outboxEvent))

	// 4. Apply plan
	if err := i.committer.Apply(ctx, plan); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	i.logger.Info().
		Str("group_id", req.GroupID).
		Str("item_kind", string(req.ItemKind)).
		Str("item_id", req.ItemID).
		Str("price", req.Price.String()).
		Msg("group override price set")
	return nil
}

func (i *Interactor) ensureItem(ctx context.Context, kind domain.ItemKind, id string) error {
	switch kind {
	case domain.ItemProduct:
		_, err := i.catalog.GetProduct(ctx, id)
		return err
	case domain.ItemHalfProduct:
		_, err := i.catalog.GetHalfProduct(ctx, id)
		return err
	default:
		return domain.ErrUnknownItemKind
	}
}
