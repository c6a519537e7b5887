package pricing

import (
	"strings"

	"github.com/light-bringer/pricing-service/internal/app/pricing/domain"
)

func toProductSelections(in []productOption) ([]domain.ProductSelection, error) {
	out := make([]domain.ProductSelection, 0, len(in))
	for _, opt := range in {
		t, err := domain.ParseOptionType(opt.OptionType)
		if err != nil {
			return nil, err
		}
		out = append(out, domain.ProductSelection{Type: t, OptionID: opt.OptionID})
	}
	return out, nil
}

func toCustomSelections(in []customOption) []domain.CustomSelection {
	out := make([]domain.CustomSelection, 0, len(in))
	for _, opt := range in {
		out = append(out, domain.CustomSelection{OptionID: opt.OptionID, Value: opt.Value})
	}
	return out
}

func toPriceTiers(in []priceTierInput) []domain.PriceTier {
	out := make([]domain.PriceTier, 0, len(in))
	for _, t := range in {
		out = append(out, domain.PriceTier{
			MinQuantity:  t.MinQuantity,
			MaxQuantity:  t.MaxQuantity,
			DiscountRate: *t.DiscountRate,
		})
	}
	return out
}

// clientID treats a blank id as an anonymous request.
func clientID(raw *string) *string {
	if raw == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*raw)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
