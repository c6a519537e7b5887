package domain

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// PriceTier is a quantity bracket of a half product with its discount multiplier.
// MaxQuantity nil means the bracket has no upper bound.
type PriceTier struct {
	TierID       string          `json:"tierId,omitempty"`
	MinQuantity  int64           `json:"minQuantity"`
	MaxQuantity  *int64          `json:"maxQuantity,omitempty"`
	DiscountRate decimal.Decimal `json:"discountRate"`
}

// Contains reports whether qty falls inside the bracket (both ends inclusive).
func (t PriceTier) Contains(qty int64) bool {
	if qty < t.MinQuantity {
		return false
	}
	return t.MaxQuantity == nil || qty <= *t.MaxQuantity
}

// MatchTier returns the first tier, smallest MinQuantity first, that contains qty.
// The input slice is not modified.
func MatchTier(tiers []PriceTier, qty int64) (PriceTier, bool) {
	ordered := SortTiers(tiers)
	for _, tier := range ordered {
		if tier.Contains(qty) {
			return tier, true
		}
	}
	return PriceTier{}, false
}

// SortTiers returns a copy of tiers ordered by MinQuantity ascending.
func SortTiers(tiers []PriceTier) []PriceTier {
	ordered := make([]PriceTier, len(tiers))
	copy(ordered, tiers)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].MinQuantity < ordered[j].MinQuantity
	})
	return ordered
}

// ValidateTiers checks a tier configuration before it is written.
// Gaps between tiers are allowed; overlaps are not.
func ValidateTiers(tiers []PriceTier) error {
	ordered := SortTiers(tiers)
	for i, tier := range ordered {
		if tier.MinQuantity < 1 {
			return fmt.Errorf("%w: tier %d has minimum %d", ErrInvalidTierRange, i, tier.MinQuantity)
		}
		if tier.MaxQuantity != nil && *tier.MaxQuantity < tier.MinQuantity {
			return fmt.Errorf("%w: tier %d ends before it starts", ErrInvalidTierRange, i)
		}
		if tier.DiscountRate.IsNegative() {
			return fmt.Errorf("%w: tier %d", ErrInvalidTierRate, i)
		}
		if i == 0 {
			continue
		}
		prev := ordered[i-1]
		if prev.MaxQuantity == nil {
			return ErrUnboundedTierOrder
		}
		if tier.MinQuantity <= *prev.MaxQuantity {
			return fmt.Errorf("%w: %d-%d and tier starting at %d", ErrOverlappingTiers, prev.MinQuantity, *prev.MaxQuantity, tier.MinQuantity)
		}
	}
	return nil
}
