package delete_group_override

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/light-bringer/pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/pricing-service/internal/pkg/clock"
	"github.com/light-bringer/pricing-service/internal/pkg/committer"
)

// Request identifies the override to remove.
type Request struct {
	GroupID  string
	ItemKind domain.ItemKind
	ItemID   string
}

// Interactor handles the delete group override use case.
type Interactor struct {
	repo       contracts.OverrideRepository
	outboxRepo contracts.OutboxRepository
	committer  contracts.Committer
	clock      clock.Clock
	logger     zerolog.Logger
}

// NewInteractor creates a new delete group override interactor.
func NewInteractor(
	repo contracts.OverrideRepository,
	outboxRepo contracts.OutboxRepository,
	committer contracts.Committer,
	clock clock.Clock,
	logger zerolog.Logger,
) *Interactor {
	return &Interactor{
		repo:       repo,
		outboxRepo: outboxRepo,
		committer:  committer,
		clock:      clock,
		logger:     logger,
	}
}

// Execute removes the override. Deleting a key that has no row returns
// domain.ErrOverrideNotFound.
func (i *Interactor) Execute(ctx context.Context, req *Request) error {
	if _, err := domain.ParseItemKind(string(req.ItemKind)); err != nil {
		return err
	}
	key := contracts.OverrideKey{GroupID: req.GroupID, ItemKind: req.ItemKind, ItemID: req.ItemID}

	_, ok, err := i.repo.Find(ctx, key)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrOverrideNotFound
	}

	plan := committer.NewPlan()
	plan.Add(i.repo.DeleteMut(key))

	outboxEvent, err := i.outboxRepo.NewEvent(&domain.GroupOverrideDeletedEvent{
		GroupID:   req.GroupID,
		ItemKind:  req.ItemKind,
		ItemID:    req.ItemID,
		DeletedAt: i.clock.Now(),
	})
	if err != nil {
		return fmt.Errorf("failed to serialize event: %w", err)
	}
	plan.Add(i.outboxRepo.InsertMut(outboxEvent))

	if err := i.committer.Apply(ctx, plan); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	i.logger.Info().
		Str("group_id", req.GroupID).
		Str("item_kind", string(req.ItemKind)).
		Str("item_id", req.ItemID).
		Msg("group override price deleted")
	return nil
}
