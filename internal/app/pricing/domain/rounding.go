package domain

import (
	"fmt"
	"sort"
	"strings"
)

// RoundingCategory names a price category with its own rounding table.
type RoundingCategory string

const (
	CategoryIndigo RoundingCategory = "indigo"
	CategoryInkjet RoundingCategory = "inkjet"
	CategoryAlbum  RoundingCategory = "album"
	CategoryFrame  RoundingCategory = "frame"
)

// RoundingCategories lists the preconfigured categories.
var RoundingCategories = []RoundingCategory{CategoryIndigo, CategoryInkjet, CategoryAlbum, CategoryFrame}

// ParseRoundingCategory validates a category name.
func ParseRoundingCategory(raw string) (RoundingCategory, error) {
	c := RoundingCategory(strings.ToLower(strings.TrimSpace(raw)))
	for _, known := range RoundingCategories {
		if c == known {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownRoundingCategory, raw)
}

// RoundingTier applies to prices strictly below MaxPrice. A nil MaxPrice is unbounded.
type RoundingTier struct {
	MaxPrice *Money `json:"maxPrice"`
	Unit     Money  `json:"unit"`
}

// Bounded reports whether the tier has an upper bound.
func (t RoundingTier) Bounded() bool {
	return t.MaxPrice != nil
}

// RoundPrice picks the first tier whose MaxPrice is greater than raw and rounds raw
// to the nearest multiple of that tier's unit, ties rounding up (toward +∞).
// A tier list without a matching tier leaves raw unchanged.
func RoundPrice(raw Money, tiers []RoundingTier) Money {
	for _, tier := range tiers {
		if tier.Bounded() && !tier.MaxPrice.GreaterThan(raw) {
			continue
		}
		return roundHalfUp(raw, tier.Unit)
	}
	return raw
}

func roundHalfUp(x, unit Money) Money {
	if !unit.IsPositive() {
		return x
	}
	q, r := x.d.QuoRem(unit.d, 0)
	twice := r.Add(r)
	switch {
	case r.IsPositive() && twice.GreaterThanOrEqual(unit.d):
		q = q.Add(rateOne)
	case r.IsNegative() && twice.Neg().GreaterThan(unit.d):
		q = q.Sub(rateOne)
	}
	return Money{d: q.Mul(unit.d)}
}

// RoundingTable is the ordered tier list of one category.
// Version counts stored revisions; presets that were never edited are version 0.
type RoundingTable struct {
	Category RoundingCategory `json:"category"`
	Tiers    []RoundingTier   `json:"tiers"`
	Version  int64            `json:"version"`
}

// NewRoundingTable validates and builds a table.
func NewRoundingTable(category RoundingCategory, tiers []RoundingTier) (*RoundingTable, error) {
	if err := ValidateRoundingTiers(tiers); err != nil {
		return nil, err
	}
	copied := make([]RoundingTier, len(tiers))
	copy(copied, tiers)
	return &RoundingTable{Category: category, Tiers: copied}, nil
}

// Round applies the table to a raw price.
func (t *RoundingTable) Round(raw Money) Money {
	return RoundPrice(raw, t.Tiers)
}

// InsertTier adds a bounded tier at its sorted position, always before the unbounded tier.
func (t *RoundingTable) InsertTier(maxPrice, unit Money) error {
	if len(t.Tiers) == 0 {
		return ErrTooFewRoundingTiers
	}
	bounded := t.Tiers[:len(t.Tiers)-1]
	pos := sort.Search(len(bounded), func(i int) bool {
		return !bounded[i].MaxPrice.LessThan(maxPrice)
	})

	next := make([]RoundingTier, 0, len(t.Tiers)+1)
	next = append(next, t.Tiers[:pos]...)
	next = append(next, RoundingTier{MaxPrice: &maxPrice, Unit: unit})
	next = append(next, t.Tiers[pos:]...)
	return t.replace(next)
}

// RemoveTier deletes a bounded tier. The unbounded tier stays.
func (t *RoundingTable) RemoveTier(index int) error {
	if index < 0 || index >= len(t.Tiers) {
		return ErrRoundingTierIndex
	}
	if index == len(t.Tiers)-1 {
		return ErrUnboundedTierRemoval
	}
	if len(t.Tiers) <= 2 {
		return ErrTooFewRoundingTiers
	}

	next := make([]RoundingTier, 0, len(t.Tiers)-1)
	next = append(next, t.Tiers[:index]...)
	next = append(next, t.Tiers[index+1:]...)
	return t.replace(next)
}

// UpdateTier edits one tier. maxPrice must be nil for the unbounded tier and set for the others.
func (t *RoundingTable) UpdateTier(index int, maxPrice *Money, unit Money) error {
	if index < 0 || index >= len(t.Tiers) {
		return ErrRoundingTierIndex
	}
	isLast := index == len(t.Tiers)-1
	if isLast != (maxPrice == nil) {
		return ErrRoundingUnbounded
	}

	next := make([]RoundingTier, len(t.Tiers))
	copy(next, t.Tiers)
	next[index] = RoundingTier{MaxPrice: maxPrice, Unit: unit}
	return t.replace(next)
}

func (t *RoundingTable) replace(next []RoundingTier) error {
	if err := ValidateRoundingTiers(next); err != nil {
		return err
	}
	t.Tiers = next
	return nil
}

// ValidateRoundingTiers enforces the table rules. Bounds must be multiples of the
// units on both sides so that rounding a rounded price returns it unchanged.
func ValidateRoundingTiers(tiers []RoundingTier) error {
	if len(tiers) < 2 {
		return ErrTooFewRoundingTiers
	}
	for i, tier := range tiers {
		if !tier.Unit.IsPositive() {
			return fmt.Errorf("%w: tier %d", ErrInvalidRoundingUnit, i)
		}
		last := i == len(tiers)-1
		if last != !tier.Bounded() {
			return ErrRoundingUnbounded
		}
		if last {
			continue
		}
		if !tier.MaxPrice.IsPositive() {
			return fmt.Errorf("%w: tier %d", ErrRoundingOrder, i)
		}
		if i > 0 && !tiers[i-1].MaxPrice.LessThan(*tier.MaxPrice) {
			return fmt.Errorf("%w: tier %d", ErrRoundingOrder, i)
		}
		bound := tier.MaxPrice.d
		if !bound.Mod(tier.Unit.d).IsZero() || !bound.Mod(tiers[i+1].Unit.d).IsZero() {
			return fmt.Errorf("%w: %s", ErrRoundingBoundary, tier.MaxPrice)
		}
	}
	return nil
}

// DefaultRoundingTable returns the preset table of a category.
func DefaultRoundingTable(category RoundingCategory) *RoundingTable {
	presets := map[RoundingCategory][][2]int64{
		CategoryIndigo: {{10000, 100}, {100000, 500}, {0, 1000}},
		CategoryInkjet: {{5000, 100}, {50000, 500}, {0, 1000}},
		CategoryAlbum:  {{30000, 500}, {0, 1000}},
		CategoryFrame:  {{20000, 100}, {200000, 1000}, {0, 5000}},
	}
	rows, ok := presets[category]
	if !ok {
		rows = presets[CategoryIndigo]
	}

	tiers := make([]RoundingTier, 0, len(rows))
	for i, row := range rows {
		tier := RoundingTier{Unit: NewMoney(row[1])}
		if i < len(rows)-1 {
			bound := NewMoney(row[0])
			tier.MaxPrice = &bound
		}
		tiers = append(tiers, tier)
	}
	return &RoundingTable{Category: category, Tiers: tiers}
}
