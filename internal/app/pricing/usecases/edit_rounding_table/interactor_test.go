package edit_rounding_table

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/pricing-service/internal/app/pricing/pricingtest"
	"github.com/light-bringer/pricing-service/internal/pkg/clock"
	"github.com/light-bringer/pricing-service/internal/pkg/committer"
)

func money(units int64) *domain.Money {
	m := domain.NewMoney(units)
	return &m
}

func setup() (*Interactor, *pricingtest.Rounding, *pricingtest.Outbox, *pricingtest.Committer) {
	store := pricingtest.NewRounding()
	outbox := &pricingtest.Outbox{}
	comm := &pricingtest.Committer{}
	clk := clock.NewMockClock(time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC))
	return NewInteractor(store, outbox, comm, clk, zerolog.Nop()), store, outbox, comm
}

func TestEditRoundingTable_InsertIntoPreset(t *testing.T) {
	uc, _, outbox, comm := setup()

	table, err := uc.Execute(context.Background(), &Request{
		Category: domain.CategoryAlbum,
		Action:   ActionInsert,
		MaxPrice: money(10000),
		Unit:     domain.NewMoney(100),
	})
	require.NoError(t, err)

	// album preset: <30000 by 500, rest by 1000
	require.Len(t, table.Tiers, 3)
	assert.Equal(t, "10000", table.Tiers[0].MaxPrice.String())
	assert.False(t, table.Tiers[2].Bounded())

	// delete category + three rows + outbox row
	assert.Equal(t, 5, comm.LastPlan().Count())
	require.Equal(t, []string{"pricing.rounding_table.changed"}, outbox.EventTypes())
	event := outbox.Events[0].(*domain.RoundingTableChangedEvent)
	assert.Equal(t, "insert", event.Change)
}

func TestEditRoundingTable_UsesStoredTable(t *testing.T) {
	uc, store, _, _ := setup()
	stored, err := domain.NewRoundingTable(domain.CategoryFrame, []domain.RoundingTier{
		{MaxPrice: money(1000), Unit: domain.NewMoney(10)},
		{MaxPrice: money(5000), Unit: domain.NewMoney(100)},
		{Unit: domain.NewMoney(1000)},
	})
	require.NoError(t, err)
	store.Tables[domain.CategoryFrame] = stored

	table, err := uc.Execute(context.Background(), &Request{Category: domain.CategoryFrame, Action: ActionRemove, Index: 0})
	require.NoError(t, err)

	require.Len(t, table.Tiers, 2)
	assert.Equal(t, "5000", table.Tiers[0].MaxPrice.String())
}

func TestEditRoundingTable_Update(t *testing.T) {
	uc, _, _, _ := setup()

	table, err := uc.Execute(context.Background(), &Request{
		Category: domain.CategoryIndigo,
		Action:   ActionUpdate,
		Index:    2,
		Unit:     domain.NewMoney(500),
	})
	require.NoError(t, err)
	assert.Equal(t, "500", table.Tiers[2].Unit.String())
}

func TestEditRoundingTable_Rejected(t *testing.T) {
	cases := []struct {
		name string
		req  Request
		want error
	}{
		{"remove unbounded", Request{Category: domain.CategoryIndigo, Action: ActionRemove, Index: 2}, domain.ErrUnboundedTierRemoval},
		{"remove below minimum", Request{Category: domain.CategoryAlbum, Action: ActionRemove, Index: 0}, domain.ErrTooFewRoundingTiers},
		{"index out of range", Request{Category: domain.CategoryIndigo, Action: ActionRemove, Index: 7}, domain.ErrRoundingTierIndex},
		{"insert without bound", Request{Category: domain.CategoryIndigo, Action: ActionInsert, Unit: domain.NewMoney(10)}, domain.ErrRoundingUnbounded},
		{"insert misaligned bound", Request{Category: domain.CategoryIndigo, Action: ActionInsert, MaxPrice: money(150), Unit: domain.NewMoney(100)}, domain.ErrRoundingBoundary},
		{"insert zero unit", Request{Category: domain.CategoryIndigo, Action: ActionInsert, MaxPrice: money(5000), Unit: domain.Zero()}, domain.ErrInvalidRoundingUnit},
		{"bound the last tier", Request{Category: domain.CategoryIndigo, Action: ActionUpdate, Index: 2, MaxPrice: money(900000), Unit: domain.NewMoney(1000)}, domain.ErrRoundingUnbounded},
		{"unknown action", Request{Category: domain.CategoryIndigo, Action: "reorder"}, ErrUnknownAction},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			uc, _, _, comm := setup()
			_, err := uc.Execute(context.Background(), &tc.req)
			assert.ErrorIs(t, err, tc.want)
			assert.Empty(t, comm.Plans)
		})
	}
}

func TestEditRoundingTable_BumpsStoredVersion(t *testing.T) {
	uc, store, _, comm := setup()
	stored := domain.DefaultRoundingTable(domain.CategoryInkjet)
	stored.Version = 3
	store.Tables[domain.CategoryInkjet] = stored
	comm.Versions = map[string]int64{"rounding_tiers/inkjet": 3}

	table, err := uc.Execute(context.Background(), &Request{Category: domain.CategoryInkjet, Action: ActionUpdate, Index: 2, Unit: domain.NewMoney(500)})
	require.NoError(t, err)
	assert.Equal(t, int64(4), table.Version)
	assert.Equal(t, int64(4), comm.Versions["rounding_tiers/inkjet"])
}

func TestEditRoundingTable_ConcurrentEditRejected(t *testing.T) {
	uc, _, _, comm := setup()

	// the store is not written by the fake committer, so both edits read version 0
	_, err := uc.Execute(context.Background(), &Request{Category: domain.CategoryIndigo, Action: ActionInsert, MaxPrice: money(5000), Unit: domain.NewMoney(100)})
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), &Request{Category: domain.CategoryIndigo, Action: ActionInsert, MaxPrice: money(3000), Unit: domain.NewMoney(100)})
	assert.ErrorIs(t, err, domain.ErrRoundingTableChanged)
	assert.ErrorIs(t, err, committer.ErrVersionMismatch)

	assert.Len(t, comm.Plans, 1, "the stale edit is not committed")
}

func TestEditRoundingTable_StoreFailure(t *testing.T) {
	uc, store, _, _ := setup()
	store.Err = pricingtest.ErrInjected

	_, err := uc.Execute(context.Background(), &Request{Category: domain.CategoryIndigo, Action: ActionRemove, Index: 0})
	assert.ErrorIs(t, err, pricingtest.ErrInjected)
}
