package edit_rounding_table

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/light-bringer/pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/pricing-service/internal/pkg/clock"
	"github.com/light-bringer/pricing-service/internal/pkg/committer"
)

// Action is the kind of table edit.
type Action string

const (
	ActionInsert Action = "insert"
	ActionUpdate Action = "update"
	ActionRemove Action = "remove"
)

// ErrUnknownAction is returned for an Action outside insert/update/remove.
var ErrUnknownAction = errors.New("unknown rounding table action")

// Request describes one edit of a category's rounding table.
//
//	insert: MaxPrice and Unit are required, Index is ignored
//	update: Index and Unit are required, MaxPrice must be nil only for the last tier
//	remove: Index is required
type Request struct {
	Category domain.RoundingCategory
	Action   Action
	Index    int
	MaxPrice *domain.Money
	Unit     domain.Money
}

// Interactor handles the edit rounding table use case.
type Interactor struct {
	repo       contracts.RoundingTableRepository
	outboxRepo contracts.OutboxRepository
	committer  contracts.Committer
	clock      clock.Clock
	logger     zerolog.Logger
}

// NewInteractor creates a new edit rounding table interactor.
func NewInteractor(
	repo contracts.RoundingTableRepository,
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

// Execute applies the edit on the stored table, or on the preset when the category
// was never edited, and rewrites the whole category in one commit. The commit fails
// with domain.ErrRoundingTableChanged when another edit landed after the read.
func (i *Interactor) Execute(ctx context.Context, req *Request) (*domain.RoundingTable, error) {
	// 1. Load aggregate
	table, ok, err := i.repo.Get(ctx, req.Category)
	if err != nil {
		return nil, err
	}
	if !ok {
		table = domain.DefaultRoundingTable(req.Category)
	}
	readVersion := table.Version

	// 2. Call domain method
	switch req.Action {
	case ActionInsert:
		if req.MaxPrice == nil {
			return nil, domain.ErrRoundingUnbounded
		}
		err = table.InsertTier(*req.MaxPrice, req.Unit)
	case ActionUpdate:
		err = table.UpdateTier(req.Index, req.MaxPrice, req.Unit)
	case ActionRemove:
		err = table.RemoveTier(req.Index)
	default:
		err = fmt.Errorf("%w: %q", ErrUnknownAction, req.Action)
	}
	if err != nil {
		return nil, err
	}

	// 3. Create commit plan
	table.Version = readVersion + 1
	muts, err := i.repo.ReplaceMuts(table)
	if err != nil {
		return nil, err
	}
	plan := committer.NewPlan()
	plan.AddMultiple(muts)

	// 4. Add outbox event
	outboxEvent, err := i.outboxRepo.NewEvent(&domain.RoundingTableChangedEvent{
		Category:  table.Category,
		Change:    string(req.Action),
		Tiers:     table.Tiers,
		ChangedAt: i.clock.Now(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to serialize event: %w", err)
	}
	plan.Add(i.outboxRepo.InsertMut(outboxEvent))

	// 5. Apply plan
	check := i.repo.VersionCheck(table.Category, readVersion)
	if err := i.committer.ApplyWithVersionCheck(ctx, check, plan); err != nil {
		if errors.Is(err, committer.ErrVersionMismatch) {
			return nil, fmt.Errorf("%w: %w", domain.ErrRoundingTableChanged, err)
		}
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	i.logger.Info().
		Str("category", string(table.Category)).
		Str("action", string(req.Action)).
		Int("tiers", len(table.Tiers)).
		Int64("version", table.Version).
		Msg("rounding table changed")
	return table, nil
}
