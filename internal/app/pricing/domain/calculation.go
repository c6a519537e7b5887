package domain

import "github.com/shopspring/decimal"

// ItemKind distinguishes the two kinds of catalog items.
type ItemKind string

const (
	ItemProduct     ItemKind = "product"
	ItemHalfProduct ItemKind = "half_product"
)

// ParseItemKind accepts both the singular kind and the plural path segment used by the API.
func ParseItemKind(raw string) (ItemKind, error) {
	switch raw {
	case "product", "products":
		return ItemProduct, nil
	case "half_product", "half-product", "half-products":
		return ItemHalfProduct, nil
	default:
		return "", ErrUnknownItemKind
	}
}

// CalculationResult is the auditable breakdown of one order-line price.
type CalculationResult struct {
	BasePrice      Money           `json:"basePrice"`
	OptionPrice    Money           `json:"optionPrice"`
	UnitPrice      Money           `json:"unitPrice"`
	Quantity       int64           `json:"quantity"`
	DiscountRate   decimal.Decimal `json:"discountRate"`
	DiscountAmount Money           `json:"discountAmount"`
	FinalUnitPrice Money           `json:"finalUnitPrice"`
	TotalPrice     Money           `json:"totalPrice"`
	AppliedPolicy  string          `json:"appliedPolicy"`
	Anomaly        string          `json:"anomaly,omitempty"`

	// Product calculations only.
	PaperType PaperType `json:"paperType,omitempty"`
	// Half-product calculations only.
	MatchedTier *PriceTier `json:"matchedTier,omitempty"`
}

// NewCalculationResult derives every amount from base, options, quantity and the decision:
//
//	unitPrice      = base + options
//	finalUnitPrice = unitPrice × rate, or the absolute price of an override
//	discountAmount = unitPrice − finalUnitPrice
//	totalPrice     = finalUnitPrice × quantity
//
// An override is charged exactly; unitPrice × rate then matches it to CurrencyPrecision.
func NewCalculationResult(base, options Money, qty int64, decision DiscountDecision) CalculationResult {
	unit := base.Add(options)
	final := unit.MultiplyBy(decision.Rate)
	if decision.FinalUnitPrice != nil {
		final = *decision.FinalUnitPrice
	}
	return CalculationResult{
		BasePrice:      base,
		OptionPrice:    options,
		UnitPrice:      unit,
		Quantity:       qty,
		DiscountRate:   decision.Rate,
		DiscountAmount: unit.Subtract(final),
		FinalUnitPrice: final,
		TotalPrice:     final.MultiplyByQuantity(qty),
		AppliedPolicy:  decision.Policy,
		Anomaly:        decision.Anomaly,
	}
}

// ValidateQuantity rejects quantities below one.
func ValidateQuantity(qty int64) error {
	if qty < 1 {
		return ErrInvalidQuantity
	}
	return nil
}
