package pricingtest

import (
	"github.com/light-bringer/pricing-service/internal/app/pricing/domain"
)

// Product returns prod-1: base 10000 with three papers, a binding and a foil.
func Product() *domain.ProductCatalog {
	return &domain.ProductCatalog{
		ProductID: "prod-1",
		Name:      "Layflat Photobook",
		BasePrice: domain.NewMoney(10000),
		Options: map[domain.OptionType][]domain.OptionChoice{
			domain.OptionPaper: {
				{ID: "paper-matte", Type: domain.OptionPaper, Name: "Matte", Price: domain.NewMoney(2000), PaperType: domain.PaperNormal},
				{ID: "paper-silk", Type: domain.OptionPaper, Name: "Silk", Price: domain.NewMoney(3500), PaperType: domain.PaperPremium},
				{ID: "paper-fine-art", Type: domain.OptionPaper, Name: "Fine Art", Price: domain.NewMoney(5000), PaperType: domain.PaperImported},
			},
			domain.OptionBinding: {
				{ID: "bind-layflat", Type: domain.OptionBinding, Name: "Layflat", Price: domain.NewMoney(1500)},
			},
			domain.OptionFoil: {
				{ID: "foil-gold", Type: domain.OptionFoil, Name: "Gold", Price: domain.NewMoney(800)},
			},
		},
	}
}

// HalfProduct returns half-1: base 5000, an A4 specification (+1000) and an engraving option.
func HalfProduct() *domain.HalfProductCatalog {
	engraving := domain.NewMoney(700)
	return &domain.HalfProductCatalog{
		HalfProductID: "half-1",
		Name:          "Canvas Print",
		BasePrice:     domain.NewMoney(5000),
		Specifications: []domain.OptionChoice{
			{ID: "a4", Type: domain.OptionSpecification, Name: "A4", Price: domain.NewMoney(1000)},
		},
		CustomOptions: []domain.CustomOption{
			{ID: "engraving", Name: "Engraving", Values: []domain.CustomOptionValue{
				{Name: "name", Price: &engraving},
				{Name: "none"},
			}},
		},
	}
}

// Group returns a client group with the given category percentages.
func Group(id string, general, premium, imported int64) *domain.ClientGroup {
	return &domain.ClientGroup{
		GroupID:   id,
		Name:      "Group " + id,
		Discounts: domain.GroupDiscounts{General: general, Premium: premium, Imported: imported},
	}
}

// StringPtr returns a pointer to s.
func StringPtr(s string) *string {
	return &s
}
