package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func moneyPtr(units int64) *Money {
	m := NewMoney(units)
	return &m
}

func twoBucketTiers() []RoundingTier {
	return []RoundingTier{
		{MaxPrice: moneyPtr(10000), Unit: NewMoney(100)},
		{Unit: NewMoney(1000)},
	}
}

func mustParse(t *testing.T, s string) Money {
	t.Helper()
	m, err := ParseMoney(s)
	require.NoError(t, err)
	return m
}

func TestRoundPrice_BucketSelection(t *testing.T) {
	tiers := twoBucketTiers()

	t.Run("below the bound uses the small unit", func(t *testing.T) {
		got := RoundPrice(NewMoney(9949), tiers)
		assert.Equal(t, "9900", got.String())
		assert.True(t, got.Decimal().Mod(NewMoney(100).Decimal()).IsZero())
	})

	t.Run("9999 rounds to a multiple of 100", func(t *testing.T) {
		got := RoundPrice(NewMoney(9999), tiers)
		assert.True(t, got.Decimal().Mod(NewMoney(100).Decimal()).IsZero())
		assert.Equal(t, "10000", got.String())
	})

	t.Run("10001 rounds to a multiple of 1000", func(t *testing.T) {
		got := RoundPrice(NewMoney(10001), tiers)
		assert.True(t, got.Decimal().Mod(NewMoney(1000).Decimal()).IsZero())
		assert.Equal(t, "10000", got.String())
	})

	t.Run("bound itself falls into the next tier", func(t *testing.T) {
		assert.Equal(t, "10000", RoundPrice(NewMoney(10000), tiers).String())
		assert.Equal(t, "11000", RoundPrice(NewMoney(10500), tiers).String())
	})

	t.Run("no matching tier leaves the price unchanged", func(t *testing.T) {
		onlyBounded := []RoundingTier{{MaxPrice: moneyPtr(100), Unit: NewMoney(10)}}
		assert.Equal(t, "150", RoundPrice(NewMoney(150), onlyBounded).String())
	})
}

func TestRoundPrice_HalfUp(t *testing.T) {
	tiers := twoBucketTiers()

	cases := []struct {
		name string
		raw  string
		want string
	}{
		{"exact tie rounds up", "1250", "1300"},
		{"just below tie rounds down", "1249.99", "1200"},
		{"fraction above tie rounds up", "1250.01", "1300"},
		{"already a multiple", "1200", "1200"},
		{"zero", "0", "0"},
		{"negative tie rounds toward positive infinity", "-1250", "-1200"},
		{"negative beyond tie", "-1251", "-1300"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := RoundPrice(mustParse(t, tc.raw), tiers)
			assert.Equal(t, tc.want, got.String())
		})
	}
}

func TestRoundPrice_Idempotent(t *testing.T) {
	tables := map[string][]RoundingTier{
		"two buckets": twoBucketTiers(),
		"indigo":      DefaultRoundingTable(CategoryIndigo).Tiers,
		"inkjet":      DefaultRoundingTable(CategoryInkjet).Tiers,
		"album":       DefaultRoundingTable(CategoryAlbum).Tiers,
		"frame":       DefaultRoundingTable(CategoryFrame).Tiers,
	}
	inputs := []string{"0", "1", "49", "50", "99.5", "4999", "5050", "9950", "9999", "10001", "29750", "49999", "99999", "100250", "199999.99", "250001"}

	for name, tiers := range tables {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, ValidateRoundingTiers(tiers))
			for _, raw := range inputs {
				once := RoundPrice(mustParse(t, raw), tiers)
				twice := RoundPrice(once, tiers)
				assert.True(t, once.Equals(twice), "input %s: %s then %s", raw, once, twice)
			}
		})
	}
}

func TestParseRoundingCategory(t *testing.T) {
	got, err := ParseRoundingCategory(" Album ")
	require.NoError(t, err)
	assert.Equal(t, CategoryAlbum, got)

	_, err = ParseRoundingCategory("poster")
	assert.ErrorIs(t, err, ErrUnknownRoundingCategory)
}

func TestValidateRoundingTiers(t *testing.T) {
	t.Run("presets are valid", func(t *testing.T) {
		for _, c := range RoundingCategories {
			assert.NoError(t, ValidateRoundingTiers(DefaultRoundingTable(c).Tiers), string(c))
		}
	})

	t.Run("too few tiers", func(t *testing.T) {
		err := ValidateRoundingTiers([]RoundingTier{{Unit: NewMoney(100)}})
		assert.ErrorIs(t, err, ErrTooFewRoundingTiers)
	})

	t.Run("last tier must be unbounded", func(t *testing.T) {
		err := ValidateRoundingTiers([]RoundingTier{
			{MaxPrice: moneyPtr(1000), Unit: NewMoney(100)},
			{MaxPrice: moneyPtr(5000), Unit: NewMoney(500)},
		})
		assert.ErrorIs(t, err, ErrRoundingUnbounded)
	})

	t.Run("only the last tier may be unbounded", func(t *testing.T) {
		err := ValidateRoundingTiers([]RoundingTier{
			{Unit: NewMoney(100)},
			{Unit: NewMoney(500)},
		})
		assert.ErrorIs(t, err, ErrRoundingUnbounded)
	})

	t.Run("non positive unit", func(t *testing.T) {
		err := ValidateRoundingTiers([]RoundingTier{
			{MaxPrice: moneyPtr(1000), Unit: Zero()},
			{Unit: NewMoney(500)},
		})
		assert.ErrorIs(t, err, ErrInvalidRoundingUnit)
	})

	t.Run("bounds must ascend", func(t *testing.T) {
		err := ValidateRoundingTiers([]RoundingTier{
			{MaxPrice: moneyPtr(5000), Unit: NewMoney(100)},
			{MaxPrice: moneyPtr(5000), Unit: NewMoney(100)},
			{Unit: NewMoney(1000)},
		})
		assert.ErrorIs(t, err, ErrRoundingOrder)
	})

	t.Run("bound must be a multiple of both adjacent units", func(t *testing.T) {
		err := ValidateRoundingTiers([]RoundingTier{
			{MaxPrice: moneyPtr(10500), Unit: NewMoney(100)},
			{Unit: NewMoney(1000)},
		})
		assert.ErrorIs(t, err, ErrRoundingBoundary)
	})
}

func TestRoundingTable_InsertTier(t *testing.T) {
	t.Run("inserted at sorted position", func(t *testing.T) {
		table := DefaultRoundingTable(CategoryIndigo)
		require.NoError(t, table.InsertTier(NewMoney(50000), NewMoney(500)))

		require.Len(t, table.Tiers, 4)
		assert.Equal(t, "10000", table.Tiers[0].MaxPrice.String())
		assert.Equal(t, "50000", table.Tiers[1].MaxPrice.String())
		assert.Equal(t, "100000", table.Tiers[2].MaxPrice.String())
		assert.False(t, table.Tiers[3].Bounded())
	})

	t.Run("bound above all others stays before the unbounded tier", func(t *testing.T) {
		table := DefaultRoundingTable(CategoryAlbum)
		require.NoError(t, table.InsertTier(NewMoney(90000), NewMoney(1000)))
		require.Len(t, table.Tiers, 3)
		assert.Equal(t, "90000", table.Tiers[1].MaxPrice.String())
		assert.False(t, table.Tiers[2].Bounded())
	})

	t.Run("invalid edit leaves the table unchanged", func(t *testing.T) {
		table := DefaultRoundingTable(CategoryIndigo)
		err := table.InsertTier(NewMoney(10000), NewMoney(100))
		assert.ErrorIs(t, err, ErrRoundingOrder)
		assert.Len(t, table.Tiers, 3)
	})
}

func TestRoundingTable_RemoveTier(t *testing.T) {
	t.Run("removes a bounded tier", func(t *testing.T) {
		table := DefaultRoundingTable(CategoryIndigo)
		require.NoError(t, table.RemoveTier(1))
		require.Len(t, table.Tiers, 2)
		assert.Equal(t, "10000", table.Tiers[0].MaxPrice.String())
	})

	t.Run("unbounded tier cannot be removed", func(t *testing.T) {
		table := DefaultRoundingTable(CategoryIndigo)
		assert.ErrorIs(t, table.RemoveTier(2), ErrUnboundedTierRemoval)
	})

	t.Run("table cannot drop below two tiers", func(t *testing.T) {
		table := DefaultRoundingTable(CategoryAlbum)
		assert.ErrorIs(t, table.RemoveTier(0), ErrTooFewRoundingTiers)
	})

	t.Run("index out of range", func(t *testing.T) {
		table := DefaultRoundingTable(CategoryIndigo)
		assert.ErrorIs(t, table.RemoveTier(7), ErrRoundingTierIndex)
		assert.ErrorIs(t, table.RemoveTier(-1), ErrRoundingTierIndex)
	})
}

func TestRoundingTable_UpdateTier(t *testing.T) {
	t.Run("changes unit of the unbounded tier", func(t *testing.T) {
		table := DefaultRoundingTable(CategoryIndigo)
		require.NoError(t, table.UpdateTier(2, nil, NewMoney(500)))
		assert.Equal(t, "500", table.Tiers[2].Unit.String())
	})

	t.Run("bounded tier needs a max price", func(t *testing.T) {
		table := DefaultRoundingTable(CategoryIndigo)
		assert.ErrorIs(t, table.UpdateTier(0, nil, NewMoney(100)), ErrRoundingUnbounded)
	})

	t.Run("unbounded tier cannot receive a bound", func(t *testing.T) {
		table := DefaultRoundingTable(CategoryIndigo)
		assert.ErrorIs(t, table.UpdateTier(2, moneyPtr(500000), NewMoney(1000)), ErrRoundingUnbounded)
	})

	t.Run("new bound must keep order", func(t *testing.T) {
		table := DefaultRoundingTable(CategoryIndigo)
		err := table.UpdateTier(0, moneyPtr(200000), NewMoney(100))
		assert.ErrorIs(t, err, ErrRoundingOrder)
		assert.Equal(t, "10000", table.Tiers[0].MaxPrice.String())
	})
}

func TestNewRoundingTable(t *testing.T) {
	tiers := twoBucketTiers()
	table, err := NewRoundingTable(CategoryInkjet, tiers)
	require.NoError(t, err)
	assert.Equal(t, CategoryInkjet, table.Category)

	tiers[0].Unit = NewMoney(1)
	assert.Equal(t, "100", table.Tiers[0].Unit.String(), "table must own its tiers")

	_, err = NewRoundingTable(CategoryInkjet, tiers[:1])
	assert.ErrorIs(t, err, ErrTooFewRoundingTiers)
}
