package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Applied policy labels, reported back with every calculation.
const (
	PolicyStandard      = "standard price"
	PolicyGroupOverride = "group override price"
	PolicyGroupGeneral  = "group general discount"
	PolicyGroupPremium  = "group premium discount"
	PolicyGroupImported = "group imported discount"
)

// AnomalyZeroUnitOverride flags an override price on an item whose unit price is zero.
const AnomalyZeroUnitOverride = "override price set on zero unit price"

// QuantityPolicy returns the label of a matched quantity tier.
func QuantityPolicy(minQuantity int64) string {
	return fmt.Sprintf("quantity discount (≥%d units)", minQuantity)
}

var (
	rateOne = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)
)

// GroupDiscounts holds the category discount percentages of a client group.
type GroupDiscounts struct {
	General  int64 `json:"generalDiscount"`
	Premium  int64 `json:"premiumDiscount"`
	Imported int64 `json:"importedDiscount"`
}

// NewGroupDiscounts validates each percentage is within 0-100.
func NewGroupDiscounts(general, premium, imported int64) (GroupDiscounts, error) {
	for _, p := range []int64{general, premium, imported} {
		if p < 0 || p > 100 {
			return GroupDiscounts{}, fmt.Errorf("%w, got %d", ErrInvalidPercentage, p)
		}
	}
	return GroupDiscounts{General: general, Premium: premium, Imported: imported}, nil
}

// Rate returns the multiplier and label for the given paper category.
func (g GroupDiscounts) Rate(paper PaperType) (decimal.Decimal, string) {
	percent, policy := g.General, PolicyGroupGeneral
	switch paper {
	case PaperPremium:
		percent, policy = g.Premium, PolicyGroupPremium
	case PaperImported:
		percent, policy = g.Imported, PolicyGroupImported
	}
	return rateOne.Sub(decimal.NewFromInt(percent).Div(hundred)), policy
}

// ClientGroup is the pricing relationship shared by the clients of a group.
type ClientGroup struct {
	GroupID   string         `json:"groupId"`
	Name      string         `json:"name"`
	Discounts GroupDiscounts `json:"discounts"`
}

// DiscountDecision is the single winner of the discount priority chain.
// FinalUnitPrice is set when the winner is an absolute price; Rate is then the
// informational ratio and the charge is taken from FinalUnitPrice.
type DiscountDecision struct {
	Rate           decimal.Decimal
	Policy         string
	Anomaly        string
	FinalUnitPrice *Money
}

// StandardDecision is the rate-1 fallback.
func StandardDecision() DiscountDecision {
	return DiscountDecision{Rate: rateOne, Policy: PolicyStandard}
}

// ProductDiscountInput carries the data the product chain needs.
// Group is nil for anonymous clients and for clients outside any group.
// Override is nil when the group has no override row for the product.
type ProductDiscountInput struct {
	UnitPrice Money
	Group     *ClientGroup
	Override  *Money
	PaperType PaperType
}

// ResolveProductDiscount applies: no group → standard, override → override ratio,
// otherwise the category discount selected by paper type.
func ResolveProductDiscount(in ProductDiscountInput) DiscountDecision {
	if in.Group == nil {
		return StandardDecision()
	}
	if in.Override != nil {
		return overrideDecision(in.UnitPrice, *in.Override)
	}
	rate, policy := in.Group.Discounts.Rate(in.PaperType)
	return DiscountDecision{Rate: rate, Policy: policy}
}

// HalfProductDiscountInput carries the data the half-product chain needs.
// Tier is nil when no quantity bracket matched.
type HalfProductDiscountInput struct {
	UnitPrice Money
	Group     *ClientGroup
	Override  *Money
	Tier      *PriceTier
}

// ResolveHalfProductDiscount starts from the quantity tier (or standard) and lets a
// group override replace it.
func ResolveHalfProductDiscount(in HalfProductDiscountInput) DiscountDecision {
	decision := StandardDecision()
	if in.Tier != nil {
		decision = DiscountDecision{Rate: in.Tier.DiscountRate, Policy: QuantityPolicy(in.Tier.MinQuantity)}
	}
	if in.Group != nil && in.Override != nil {
		return overrideDecision(in.UnitPrice, *in.Override)
	}
	return decision
}

// overrideDecision converts an absolute override into a multiplier. A zero unit price
// yields rate 0 and an anomaly flag instead of a division by zero.
func overrideDecision(unitPrice, override Money) DiscountDecision {
	if unitPrice.IsZero() {
		return DiscountDecision{Rate: decimal.Zero, Policy: PolicyGroupOverride, Anomaly: AnomalyZeroUnitOverride}
	}
	return DiscountDecision{
		Rate:           override.RatioTo(unitPrice),
		Policy:         PolicyGroupOverride,
		FinalUnitPrice: &override,
	}
}
